package cache

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/json/option"

	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/common/log"
)

const (
	fetchInterval = 3 * time.Second
	chunkTimeout  = time.Minute
)

// fetchLoop requests one guild's members every fetchInterval.
func (bot *Bot) fetchLoop(s *state.State) {
	// close on interrupt signal
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ticker := time.NewTicker(fetchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			go bot.fetchOneGuild(ctx, s)
		case <-ctx.Done():
			return
		}
	}
}

// fetchOneGuild requests the full member list of a single guild in the shard's queue.
// The members themselves are stored in guildMembersChunk,
// and the guild is marked as cached once its last chunk arrives.
func (bot *Bot) fetchOneGuild(ctx context.Context, s *state.State) {
	shardID := s.Ready().Shard.ShardID()
	q := bot.queue(shardID)

	guildID, ok := q.Pop()
	if !ok {
		return
	}

	log.Debugf("requesting members for %v", guildID)

	wait := common.Expect(s, func(ev *gateway.GuildMembersChunkEvent) bool {
		return ev.GuildID == guildID && ev.ChunkIndex == ev.ChunkCount-1
	})

	sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := s.Gateway().Send(sendCtx, &gateway.RequestGuildMembersCommand{
		GuildIDs: []discord.GuildID{guildID},
		Query:    option.NewString(""),
		Limit:    0,
	})
	if err != nil {
		log.Errorf("sending chunk request for %v: %v", guildID, err)
		q.Add(guildID)
		_, _ = wait(ctx, 0) // stop listening
		return
	}

	if _, ok = wait(ctx, chunkTimeout); !ok {
		log.Warnf("didn't receive all member chunks for %v, requeueing", guildID)
		q.Add(guildID)
		return
	}

	markCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := bot.Cabinet.MarkGuildCached(markCtx, guildID); err != nil {
		log.Errorf("marking guild %v as cached: %v", guildID, err)
	}
}

func (bot *Bot) guildMembersChunk(ev *gateway.GuildMembersChunkEvent) {
	log.Debugf("received chunk %d/%d for guild %v", ev.ChunkIndex+1, ev.ChunkCount, ev.GuildID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := bot.Cabinet.SetMembers(ctx, ev.GuildID, ev.Members)
	if err != nil {
		log.Errorf("setting members for %v (chunk %d/%d): %v", ev.GuildID, ev.ChunkIndex+1, ev.ChunkCount, err)
	}
}
