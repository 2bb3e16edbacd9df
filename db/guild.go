package db

import (
	"context"
	"slices"

	"emperror.dev/errors"
	"github.com/Masterminds/squirrel"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"
)

// GuildConfig is the per-guild configuration.
type GuildConfig struct {
	Channels LogChannels `json:"channels"`
	// AdminRoles are allowed to view member activity.
	AdminRoles []discord.RoleID `json:"admin_roles"`
}

// LogChannels are the channels events are logged to.
type LogChannels struct {
	Message discord.ChannelID `json:"message"`
	Member  discord.ChannelID `json:"member"`
}

// For returns the channel that events with the given type name are logged to.
func (lc LogChannels) For(event string) discord.ChannelID {
	switch event {
	case "MessageUpdateEvent", "MessageDeleteEvent":
		return lc.Message
	case "GuildMemberAddEvent", "GuildMemberRemoveEvent":
		return lc.Member
	}
	return 0
}

// AddAdminRole adds id to the admin roles. It returns false if the role was already added.
func (c *GuildConfig) AddAdminRole(id discord.RoleID) bool {
	if slices.Contains(c.AdminRoles, id) {
		return false
	}
	c.AdminRoles = append(c.AdminRoles, id)
	return true
}

// RemoveAdminRole removes id from the admin roles. It returns false if the role wasn't added.
func (c *GuildConfig) RemoveAdminRole(id discord.RoleID) bool {
	i := slices.Index(c.AdminRoles, id)
	if i == -1 {
		return false
	}
	c.AdminRoles = slices.Delete(c.AdminRoles, i, i+1)
	return true
}

type guildRow struct {
	Config GuildConfig
}

func (db *DB) CreateGuild(ctx context.Context, id discord.GuildID) (alreadyExists bool, err error) {
	sql, args, err := sq.Insert("guilds").
		Columns("id", "config").
		Values(id, GuildConfig{}).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "building sql")
	}

	ct, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return false, errors.Wrap(err, "executing query")
	}

	return ct.RowsAffected() == 0, nil
}

// GuildConfig returns the configuration for the given guild.
// Guilds without a stored configuration get an empty one.
func (db *DB) GuildConfig(ctx context.Context, id discord.GuildID) (cfg GuildConfig, err error) {
	sql, args, err := sq.Select("config").From("guilds").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return cfg, errors.Wrap(err, "building sql")
	}

	var row guildRow
	err = pgxscan.Get(ctx, db, &row, sql, args...)
	if err != nil {
		if IsNotFound(err) {
			return GuildConfig{}, nil
		}
		return cfg, errors.Wrap(err, "getting guild config")
	}
	return row.Config, nil
}

// UpdateGuildConfig loads the guild's configuration, calls fn on it, and saves the result.
// The row is locked for the duration of the call. If fn returns an error, nothing is saved.
func (db *DB) UpdateGuildConfig(ctx context.Context, id discord.GuildID, fn func(*GuildConfig) error) (cfg GuildConfig, err error) {
	err = db.BeginFunc(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, "INSERT INTO guilds (id) VALUES ($1) ON CONFLICT DO NOTHING", id)
		if err != nil {
			return errors.Wrap(err, "creating guild")
		}

		sql, args, err := sq.Select("config").From("guilds").Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE").ToSql()
		if err != nil {
			return errors.Wrap(err, "building sql")
		}

		var row guildRow
		err = pgxscan.Get(ctx, tx, &row, sql, args...)
		if err != nil {
			return errors.Wrap(err, "getting guild config")
		}
		cfg = row.Config

		if err = fn(&cfg); err != nil {
			return err
		}

		sql, args, err = sq.Update("guilds").Set("config", cfg).Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return errors.Wrap(err, "building sql")
		}

		_, err = tx.Exec(ctx, sql, args...)
		return errors.Wrap(err, "updating guild config")
	})
	return cfg, err
}
