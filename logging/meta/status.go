package meta

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/session/shard"
	"github.com/diamondburned/arikawa/v3/state"

	"github.com/ledgerbot/ledger/common/log"
)

const statusInterval = 10 * time.Minute

func (bot *Bot) statusLoop() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer cancel()

	// wait for guild create events to come in
	time.Sleep(10 * time.Second)

	t := time.NewTicker(statusInterval)
	defer t.Stop()

	for {
		bot.updateStatus(ctx)

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (bot *Bot) updateStatus(ctx context.Context) {
	guilds, err := bot.Cabinet.Guilds(ctx)
	if err != nil {
		log.Errorf("getting guild count: %v", err)
	}

	numShards := bot.Manager.NumShards()
	i := 0
	bot.Manager.ForEach(func(s shard.Shard) {
		shardID := i
		i++

		err := s.(*state.State).Gateway().Send(ctx, &gateway.UpdatePresenceCommand{
			Status: discord.OnlineStatus,
			Activities: []discord.Activity{{
				Name: statusText(len(guilds), shardID, numShards),
				Type: discord.GameActivity,
			}},
		})
		if err != nil {
			log.Errorf("setting status for shard #%v: %v", shardID, err)
		}
	})
}

func statusText(guildCount, shardID, numShards int) string {
	s := "/help"
	if guildCount != 0 {
		s += fmt.Sprintf(" | in %v servers", guildCount)
	}
	if numShards > 1 {
		s += fmt.Sprintf(" | shard #%v", shardID)
	}
	return s
}
