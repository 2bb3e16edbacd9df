package bot

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"emperror.dev/errors"
	"github.com/getsentry/sentry-go"
	"github.com/urfave/cli/v2"

	"github.com/ledgerbot/ledger/bot"
	"github.com/ledgerbot/ledger/cmd/commands"
	configcommands "github.com/ledgerbot/ledger/commands/config"
	metacommands "github.com/ledgerbot/ledger/commands/meta"
	"github.com/ledgerbot/ledger/commands/owner"
	"github.com/ledgerbot/ledger/commands/stats"
	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/common/log"
	"github.com/ledgerbot/ledger/logging/cache"
	"github.com/ledgerbot/ledger/logging/members"
	"github.com/ledgerbot/ledger/logging/messages"
	"github.com/ledgerbot/ledger/logging/meta"
	"github.com/ledgerbot/ledger/web/server"
)

var Command = &cli.Command{
	Name:   "bot",
	Usage:  "Run the bot",
	Action: run,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "sync-commands",
			Usage: "Synchronize slash commands on startup",
			Value: true,
		},
	},
}

func run(c *cli.Context) error {
	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "reading config")
	}

	// set up sentry
	if conf.Auth.Sentry != "" {
		log.Debug("setting up sentry")
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     conf.Auth.Sentry,
			Release: common.Version(),
		})
		if err != nil {
			log.Fatalf("setting up sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)

		log.Debug("set up sentry")
	} else {
		log.Debugf("sentry DSN was not provided, not setting it up")
	}

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b, err := bot.New(ctx, conf)
	if err != nil {
		return errors.Wrap(err, "creating bot")
	}

	var restart atomic.Bool
	b.Restart = func() {
		restart.Store(true)
		cancel()
	}

	// set up modules (cache, logging, commands)
	cache.Setup(b)    // non-logging cache handlers
	messages.Setup(b) // message archiving and logging
	members.Setup(b)  // member join/leave logging
	meta.Setup(b)     // meta logging (guilds, ready)

	configcommands.Setup(b) // config commands
	metacommands.Setup(b)   // meta commands
	stats.Setup(b)          // activity statistics
	owner.Setup(b)          // bot owner commands

	if c.Bool("sync-commands") {
		err = commands.Sync(b.Rest, conf.Bot.CommandsGuildID)
		if err != nil {
			log.Errorf("syncing commands: %v", err)
		}
	} else {
		log.Info("Not syncing slash commands")
	}

	if conf.Web.Port != "" {
		srv := server.New(conf.Web.Token, b.Cabinet, b)
		go func() {
			if err := srv.Run(ctx, conf.Web.Port); err != nil {
				log.Errorf("running web server: %v", err)
			}
		}()
	}

	// actually run bot!
	err = b.Open(ctx)
	if err != nil {
		return errors.Wrap(err, "opening gateway connection")
	}

	log.Info("Connected to Discord. Press Ctrl-C or send an interrupt signal to stop.")

	<-ctx.Done()

	log.Info("Shutting down...")
	if err := b.Close(); err != nil {
		log.Errorf("closing bot: %v", err)
	}

	if restart.Load() {
		// the supervisor restarts the bot on a non-zero exit
		return cli.Exit("Restart requested", 1)
	}
	return nil
}
