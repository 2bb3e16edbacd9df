package bot

import (
	"context"
	"sync"

	"emperror.dev/errors"
	"github.com/ReneKroon/ttlcache/v2"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/api/webhook"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/session/shard"
	"github.com/diamondburned/arikawa/v3/state"
	arikawastore "github.com/diamondburned/arikawa/v3/state/store"
	"github.com/diamondburned/arikawa/v3/utils/ws"

	"github.com/ledgerbot/ledger/bot/metrics"
	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/common/log"
	"github.com/ledgerbot/ledger/db"
	"github.com/ledgerbot/ledger/store"
	"github.com/ledgerbot/ledger/store/memory"
	"github.com/ledgerbot/ledger/store/redis"
)

const Intents = gateway.IntentGuildMembers |
	gateway.IntentGuildMessages |
	gateway.IntentMessageContent |
	gateway.IntentGuildWebhooks |
	gateway.IntentGuilds

type Bot struct {
	Router  *cmdroute.Router
	Manager *shard.Manager
	Rest    *api.Client
	DB      *db.DB
	Metrics *metrics.Client

	Config Config

	Cabinet store.Cabinet
	Scans   *ScanGuard

	// Restart stops the bot so its supervisor can start it again.
	Restart func()

	redis *redis.Store

	user   discord.User
	userMu sync.RWMutex

	users *ttlcache.Cache

	queues         *common.Map[discord.WebhookID, *queue]
	webhooks       *common.Map[discord.ChannelID, *discord.Webhook]
	webhookClients *common.Map[discord.WebhookID, *webhook.Client]
}

// New creates a new Bot.
// ctx bounds the lifetime of background workers such as metrics submission.
func New(ctx context.Context, c Config) (*Bot, error) {
	log.SetDebug(c.Bot.Debug)

	// set up debug logging
	ws.WSDebug = log.Debug
	ws.WSError = func(err error) {
		log.SugaredLogger.Error("ws error: ", err)
	}

	// set up the shard manager, including intents and stores
	mgr, err := shard.NewManager("Bot "+c.Auth.Discord, state.NewShardFunc(func(m *shard.Manager, s *state.State) {
		s.AddIntents(Intents)

		// clear all stores that we manage ourselves, as well as ones we don't use (message/presence store)
		s.Cabinet.ChannelStore = arikawastore.Noop
		s.Cabinet.GuildStore = arikawastore.Noop
		s.Cabinet.MemberStore = arikawastore.Noop
		s.Cabinet.MessageStore = arikawastore.Noop
		s.Cabinet.PresenceStore = arikawastore.Noop
		s.Cabinet.RoleStore = arikawastore.Noop
	}))
	if err != nil {
		return nil, errors.Wrap(err, "creating shard manager")
	}

	bot := &Bot{
		Config:         c,
		Manager:        mgr,
		Router:         cmdroute.NewRouter(),
		Scans:          NewScanGuard(c.Scan.Timeout.Duration),
		Restart:        func() { log.Warn("Restart is not supported by this process") },
		users:          ttlcache.NewCache(),
		queues:         common.NewMap[discord.WebhookID, *queue](),
		webhooks:       common.NewMap[discord.ChannelID, *discord.Webhook](),
		webhookClients: common.NewMap[discord.WebhookID, *webhook.Client](),
	}
	bot.Rest = bot.newRest(c.Auth.Discord)
	_ = bot.users.SetTTL(userCacheTTL)

	// long-running commands get a deferred response
	bot.Router.Use(cmdroute.Deferrable(bot.Rest, cmdroute.DeferOpts{}))

	if c.Auth.Influx.URL != "" {
		log.Info("Setting up InfluxDB client")
		bot.Metrics = metrics.New(ctx, c.Auth.Influx.URL, c.Auth.Influx.Token, c.Auth.Influx.Organization, c.Auth.Influx.Database)
	}

	// setup database
	bot.DB, err = db.New(ctx, c.Auth.Postgres, db.Options{
		AESKey:    c.Bot.AESKey,
		NoMigrate: c.Bot.NoAutoMigrate,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating database")
	}

	// create stores
	memoryStore := memory.New()
	bot.redis, err = redis.New(ctx, c.Auth.Redis)
	if err != nil {
		return nil, errors.Wrap(err, "creating redis store")
	}

	bot.Cabinet = store.Cabinet{
		MemberStore:  bot.redis,
		ChannelStore: memoryStore,
		GuildStore:   memoryStore,
		RoleStore:    memoryStore,
	}

	// add self user cache handler
	mgr.Shard(0).(*state.State).AddHandler(bot.ready)
	bot.AddHandler(bot.interactionCreate, bot.handleEventForCache, bot.Metrics.EventHandler)

	return bot, nil
}

func (bot *Bot) Open(ctx context.Context) error {
	log.Debug("opening gateway connection")

	return bot.Manager.Open(ctx)
}

// Close closes the gateway connection and all stores.
func (bot *Bot) Close() error {
	err := bot.Manager.Close()
	if err != nil {
		err = errors.Wrap(err, "closing gateway")
	}

	bot.Scans.Close()
	_ = bot.users.Close()

	if rerr := bot.redis.Close(); rerr != nil {
		err = errors.Append(err, errors.Wrap(rerr, "closing redis"))
	}
	bot.DB.Close()

	return err
}

// AddHandler adds handlers to all states.
func (bot *Bot) AddHandler(i ...any) {
	bot.Manager.ForEach(func(shard shard.Shard) {
		s := shard.(*state.State)
		for _, hn := range i {
			s.AddHandler(hn)
		}
	})
}

func (bot *Bot) StateFromGuildID(guildID discord.GuildID) (s *state.State, id int) {
	shard, id := bot.Manager.FromGuildID(guildID)
	return shard.(*state.State), id
}

// Me returns the bot user.
func (bot *Bot) Me() discord.User {
	bot.userMu.RLock()
	defer bot.userMu.RUnlock()
	return bot.user
}

// ready sets the bot user for webhook purposes
func (bot *Bot) ready(ev *gateway.ReadyEvent) {
	if ev.Shard != nil && ev.Shard.ShardID() != 0 {
		return
	}

	bot.userMu.Lock()
	bot.user = ev.User
	bot.userMu.Unlock()
}
