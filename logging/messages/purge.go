package messages

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diamondburned/arikawa/v3/gateway"

	"github.com/ledgerbot/ledger/common/log"
)

const purgeInterval = time.Hour

// purgeLoop deletes archived messages older than the retention period every hour.
func (bot *Bot) purgeLoop() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		bot.purge(ctx)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (bot *Bot) purge(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	before := time.Now().Add(-bot.Config.MessageRetention())

	n, err := bot.DB.PurgeMessages(ctx, before)
	if err != nil {
		log.Errorf("purging messages: %v", err)
		return
	}
	if n > 0 {
		log.Infof("Purged %d message(s) from before %v", n, before.Format(time.RFC3339))
	}
}

func (bot *Bot) guildDelete(ev *gateway.GuildDeleteEvent) {
	if ev.Unavailable {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := bot.DB.DeleteGuildMessages(ctx, ev.ID); err != nil {
		log.Errorf("deleting archived messages for guild %v: %v", ev.ID, err)
	}
}
