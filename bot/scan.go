package bot

import (
	"context"
	"iter"
	"sync"
	"time"

	"emperror.dev/errors"
	"github.com/ReneKroon/ttlcache/v2"
	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/ledgerbot/ledger/activity"
	"github.com/ledgerbot/ledger/activity/discordsource"
)

// ErrScanRunning is returned if a guild already has a history scan running.
const ErrScanRunning = errors.Sentinel("a scan is already running in this server")

// ScanGuard allows at most one history scan per guild at a time.
// Entries expire after the scan timeout, so a scan that never calls Done can't lock a guild forever.
type ScanGuard struct {
	mu    sync.Mutex
	cache *ttlcache.Cache
}

// NewScanGuard returns a ScanGuard whose entries expire after ttl.
func NewScanGuard(ttl time.Duration) *ScanGuard {
	c := ttlcache.NewCache()
	c.SkipTTLExtensionOnHit(true)
	if ttl > 0 {
		_ = c.SetTTL(ttl + time.Minute)
	}
	return &ScanGuard{cache: c}
}

// Start marks a scan as running in the guild.
// It returns false if one is already running.
func (g *ScanGuard) Start(guildID discord.GuildID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.cache.Get(guildID.String()); err == nil {
		return false
	}
	return g.cache.Set(guildID.String(), time.Now()) == nil
}

// Done marks the guild's scan as finished.
func (g *ScanGuard) Done(guildID discord.GuildID) {
	g.mu.Lock()
	_ = g.cache.Remove(guildID.String())
	g.mu.Unlock()
}

func (g *ScanGuard) Close() {
	_ = g.cache.Close()
}

// Aggregator returns an activity aggregator reading history through the REST client,
// bounded by the scan configuration.
func (bot *Bot) Aggregator() *activity.Aggregator {
	src := discordsource.New(bot.Rest)
	src.OnPage = bot.Metrics.AddScanned

	var hs activity.HistorySource = activity.HistoryFunc(func(ctx context.Context, ch activity.Channel) iter.Seq2[activity.Message, error] {
		bot.Metrics.IncScan()
		return src.History(ctx, ch)
	})
	return activity.New(activity.Limited(hs, bot.Config.Scan.MaxMessagesPerChannel))
}

// scan runs fn with the guild's scan guard held and the scan timeout applied.
func (bot *Bot) scan(ctx context.Context, guildID discord.GuildID, fn func(ctx context.Context, channels []activity.Channel) error) error {
	if !bot.Scans.Start(guildID) {
		return ErrScanRunning
	}
	defer bot.Scans.Done(guildID)

	if t := bot.Config.Scan.Timeout.Duration; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	channels, err := bot.Cabinet.TextChannels(ctx, guildID)
	if err != nil {
		return errors.Wrap(err, "getting channels")
	}

	return fn(ctx, channels)
}

// ServerActivity scans every text channel in the guild and returns this year's activity.
func (bot *Bot) ServerActivity(ctx context.Context, guildID discord.GuildID, month time.Month) (res activity.ServerActivity, err error) {
	err = bot.scan(ctx, guildID, func(ctx context.Context, channels []activity.Channel) (err error) {
		res, err = bot.Aggregator().AggregateServerActivity(ctx, channels, month)
		return err
	})
	return res, err
}

// RoleActivity scans every text channel in the guild and counts each member's messages.
func (bot *Bot) RoleActivity(ctx context.Context, guildID discord.GuildID, members []discord.UserID, filter activity.Filter) (res activity.RoleActivity, err error) {
	err = bot.scan(ctx, guildID, func(ctx context.Context, channels []activity.Channel) (err error) {
		res, err = bot.Aggregator().AggregateForRole(ctx, members, channels, filter)
		return err
	})
	return res, err
}
