package cmd

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ledgerbot/ledger/cmd/bot"
	"github.com/ledgerbot/ledger/cmd/commands"
	"github.com/ledgerbot/ledger/cmd/migrate"
	"github.com/ledgerbot/ledger/common"
)

var app = &cli.App{
	Name:    "Ledger",
	Usage:   "Discord message activity and logging bot",
	Version: common.Version(),

	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the configuration file",
			Value:   "config.toml",
			EnvVars: []string{"LEDGER_CONFIG"},
		},
	},

	Commands: []*cli.Command{
		bot.Command,
		migrate.Command,
		commands.Command,
	},
}

func Run() error {
	return app.Run(os.Args)
}
