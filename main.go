package main

import (
	"github.com/ledgerbot/ledger/cmd"
	"github.com/ledgerbot/ledger/common/log"
)

func main() {
	defer log.Sync()

	if err := cmd.Run(); err != nil {
		log.Fatal(err)
	}
}
