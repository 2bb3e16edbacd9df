package commands

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/urfave/cli/v2"

	"github.com/ledgerbot/ledger/bot"
	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/common/log"
)

var Command = &cli.Command{
	Name:   "commands",
	Usage:  "Synchronize slash commands",
	Action: run,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "global",
			Usage: "Synchronize slash commands globally (mutually exclusive with --guild)",
		},
		&cli.Uint64Flag{
			Name:  "guild",
			Usage: "Synchronize slash commands to a specific guild",
		},
	},
}

func run(c *cli.Context) error {
	global := c.Bool("global")
	guild := c.Uint64("guild")
	if global && guild != 0 {
		return cli.Exit("`global` and `guild` are mutually exclusive", 1)
	}
	if !global && guild == 0 {
		return cli.Exit("Neither `global` nor `guild` were set", 1)
	}

	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "reading config")
	}

	client := api.NewClient("Bot " + conf.Auth.Discord)
	return Sync(client, discord.GuildID(guild))
}

// Sync overwrites the application's commands with common.Commands.
// If guildID is valid, the commands are only registered in that guild.
func Sync(client *api.Client, guildID discord.GuildID) error {
	app, err := client.CurrentApplication()
	if err != nil {
		return errors.Wrap(err, "getting current application")
	}

	if guildID.IsValid() {
		_, err = client.BulkOverwriteGuildCommands(app.ID, guildID, common.Commands)
		if err != nil {
			return errors.Wrapf(err, "overwriting commands in %v", guildID)
		}

		log.Infof("Synced %v commands in %v", len(common.Commands), guildID)
		return nil
	}

	_, err = client.BulkOverwriteCommands(app.ID, common.Commands)
	if err != nil {
		return errors.Wrap(err, "overwriting global commands")
	}

	log.Infof("Synced %v global commands", len(common.Commands))
	return nil
}
