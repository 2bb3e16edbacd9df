package bot

import (
	"os"
	"time"

	"emperror.dev/errors"
	"github.com/BurntSushi/toml"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/joho/godotenv"
)

type Config struct {
	Auth AuthConfig `toml:"auth"`
	Bot  BotConfig  `toml:"bot"`
	Scan ScanConfig `toml:"scan"`
	Web  WebConfig  `toml:"web"`
	Info InfoConfig `toml:"info"`
}

type AuthConfig struct {
	Discord  string `toml:"discord"`
	Postgres string `toml:"postgres"`
	Redis    string `toml:"redis"`
	Sentry   string `toml:"sentry"`

	Influx AuthInfluxConfig `toml:"influx"`
}

type AuthInfluxConfig struct {
	URL          string `toml:"url"`
	Token        string `toml:"token"`
	Organization string `toml:"organization"`
	Database     string `toml:"database"`
}

type BotConfig struct {
	Owner           discord.UserID    `toml:"owner"`
	AESKey          string            `toml:"aes_key"`
	CommandsGuildID discord.GuildID   `toml:"commands_guild_id"`
	JoinLeaveLog    discord.ChannelID `toml:"join_leave_log"`
	// Ready event logs
	MetaLog discord.ChannelID `toml:"meta_log"`

	// TestMode disables all interaction with Discord that is not necessary for building a cache.
	// No logging or command responses are done in this mode, members are still fetched.
	TestMode bool `toml:"test_mode"`

	// NoAutoMigrate specifies if migrations should be done automatically when the bot starts.
	// If this is set to true, migrations must be done manually by running the `./ledger migrate` command.
	NoAutoMigrate bool `toml:"no_auto_migrate"`

	Debug bool `toml:"debug"`

	// MessageRetentionDays is how long archived messages are kept.
	MessageRetentionDays int `toml:"message_retention_days"`
}

// ScanConfig bounds full history scans.
type ScanConfig struct {
	// 0 means unlimited.
	MaxMessagesPerChannel int      `toml:"max_messages_per_channel"`
	Timeout               Duration `toml:"timeout"`
}

type WebConfig struct {
	// The status API is disabled if Port is empty.
	Port  string `toml:"port"`
	Token string `toml:"token"`
}

type InfoConfig struct {
	SupportServer string `toml:"support_server"`
}

// Duration is a time.Duration read from a string such as "10m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

const (
	defaultRetentionDays = 15
	defaultScanTimeout   = 10 * time.Minute
)

// ShouldLog returns true if test mode is not enabled.
func (bot *Bot) ShouldLog() bool {
	return !bot.Config.Bot.TestMode
}

// ReadConfig reads the configuration file at path.
// A .env file in the working directory is loaded first, and the environment overrides the file.
// A missing config file is not an error if the environment supplies the required keys.
func ReadConfig(path string) (c Config, err error) {
	err = godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return c, errors.Wrap(err, "load .env")
	}

	b, err := os.ReadFile(path)
	if err == nil {
		err = toml.Unmarshal(b, &c)
		if err != nil {
			return c, errors.Wrap(err, "unmarshal config")
		}
	} else if !os.IsNotExist(err) {
		return c, errors.Wrap(err, "read config file")
	}

	c.applyEnv()
	c.applyDefaults()

	return c, c.Validate()
}

func (c *Config) applyEnv() {
	for env, dst := range map[string]*string{
		"DISCORD_TOKEN": &c.Auth.Discord,
		"DATABASE_URL":  &c.Auth.Postgres,
		"REDIS_URL":     &c.Auth.Redis,
		"SENTRY_DSN":    &c.Auth.Sentry,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Bot.MessageRetentionDays <= 0 {
		c.Bot.MessageRetentionDays = defaultRetentionDays
	}
	if c.Scan.Timeout.Duration <= 0 {
		c.Scan.Timeout.Duration = defaultScanTimeout
	}
}

// Validate returns an error if a required key is missing.
func (c Config) Validate() error {
	switch {
	case c.Auth.Discord == "":
		return errors.New("auth.discord (or DISCORD_TOKEN) is required")
	case c.Auth.Postgres == "":
		return errors.New("auth.postgres (or DATABASE_URL) is required")
	case c.Auth.Redis == "":
		return errors.New("auth.redis (or REDIS_URL) is required")
	case c.Bot.AESKey == "":
		return errors.New("bot.aes_key is required")
	case c.Web.Port != "" && c.Web.Token == "":
		return errors.New("web.token is required if web.port is set")
	case c.Scan.MaxMessagesPerChannel < 0:
		return errors.New("scan.max_messages_per_channel can't be negative")
	}
	return nil
}

// MessageRetention is how long archived messages are kept.
func (c Config) MessageRetention() time.Duration {
	return time.Duration(c.Bot.MessageRetentionDays) * 24 * time.Hour
}
