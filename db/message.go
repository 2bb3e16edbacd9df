package db

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/Masterminds/squirrel"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/georgysavva/scany/pgxscan"
)

// Message is a single archived message
type Message struct {
	ID        discord.MessageID
	UserID    discord.UserID
	ChannelID discord.ChannelID
	GuildID   discord.GuildID

	Content  string `db:"-"`
	Username string `db:"-"`

	EncryptedContent  []byte `db:"content"`
	EncryptedUsername []byte `db:"username"`

	AttachmentCount int
	CreatedAt       time.Time
}

// InsertMessage inserts a message, or updates its content if it already exists.
func (db *DB) InsertMessage(ctx context.Context, m Message) (err error) {
	if m.Content == "" {
		m.Content = "None"
	}

	m.EncryptedContent, err = Encrypt([]byte(m.Content), db.aesKey)
	if err != nil {
		return errors.Wrap(err, "encrypting content")
	}

	m.EncryptedUsername, err = Encrypt([]byte(m.Username), db.aesKey)
	if err != nil {
		return errors.Wrap(err, "encrypting username")
	}

	if m.CreatedAt.IsZero() {
		m.CreatedAt = m.ID.Time()
	}

	sql, args, err := sq.Insert("messages").
		Columns("id", "user_id", "channel_id", "guild_id", "content", "username", "attachment_count", "created_at").
		Values(m.ID, m.UserID, m.ChannelID, m.GuildID, m.EncryptedContent, m.EncryptedUsername, m.AttachmentCount, m.CreatedAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content").
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building sql")
	}

	_, err = db.Exec(ctx, sql, args...)
	if err != nil {
		return errors.Wrap(err, "executing query")
	}
	return nil
}

// GetMessage gets a single message
func (db *DB) GetMessage(ctx context.Context, id discord.MessageID) (m *Message, err error) {
	m = &Message{}

	sql, args, err := sq.Select("*").
		From("messages").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building sql")
	}

	err = pgxscan.Get(ctx, db, m, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "getting from database")
	}

	out, err := Decrypt(m.EncryptedContent, db.aesKey)
	if err != nil {
		return nil, errors.Wrap(err, "decrypting content")
	}
	m.Content = string(out)

	out, err = Decrypt(m.EncryptedUsername, db.aesKey)
	if err != nil {
		return nil, errors.Wrap(err, "decrypting username")
	}
	m.Username = string(out)

	return m, nil
}

// DeleteMessage deletes a message from the database
func (db *DB) DeleteMessage(ctx context.Context, id discord.MessageID) error {
	sql, args, err := sq.Delete("messages").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building sql")
	}

	_, err = db.Exec(ctx, sql, args...)
	if err != nil {
		return errors.Wrap(err, "executing query")
	}
	return nil
}

// PurgeMessages deletes all messages created before the given time, and returns the number of messages deleted.
func (db *DB) PurgeMessages(ctx context.Context, before time.Time) (n int64, err error) {
	sql, args, err := sq.Delete("messages").
		Where(squirrel.Lt{"created_at": before}).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building sql")
	}

	ct, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, errors.Wrap(err, "executing query")
	}
	return ct.RowsAffected(), nil
}

// DeleteGuildMessages deletes all archived messages from a guild.
func (db *DB) DeleteGuildMessages(ctx context.Context, guildID discord.GuildID) error {
	sql, args, err := sq.Delete("messages").
		Where(squirrel.Eq{"guild_id": guildID}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building sql")
	}

	_, err = db.Exec(ctx, sql, args...)
	if err != nil {
		return errors.Wrap(err, "executing query")
	}
	return nil
}
