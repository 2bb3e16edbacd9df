// Package discordsource reads channel history from the Discord REST API.
package discordsource

import (
	"context"
	"iter"

	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/ledgerbot/ledger/activity"
)

// DefaultPageSize is the largest page Discord returns in a single request.
const DefaultPageSize = 100

// Client is the subset of *api.Client used to page through history.
type Client interface {
	Messages(channelID discord.ChannelID, limit uint) ([]discord.Message, error)
	MessagesBefore(channelID discord.ChannelID, before discord.MessageID, limit uint) ([]discord.Message, error)
}

// Source pages through channel history, newest message first.
type Source struct {
	Client   Client
	PageSize uint

	// OnPage is called with the number of messages in every page fetched, if set.
	OnPage func(n int)
}

var _ activity.HistorySource = (*Source)(nil)

// New returns a Source using c.
func New(c Client) *Source {
	return &Source{Client: c, PageSize: DefaultPageSize}
}

// History implements activity.HistorySource.
// Pages are only fetched while the sequence is being consumed.
func (s *Source) History(ctx context.Context, ch activity.Channel) iter.Seq2[activity.Message, error] {
	size := s.PageSize
	if size == 0 || size > DefaultPageSize {
		size = DefaultPageSize
	}

	return func(yield func(activity.Message, error) bool) {
		var before discord.MessageID

		for {
			if err := ctx.Err(); err != nil {
				yield(activity.Message{}, activity.NewHistorySourceError(ch.ID, err))
				return
			}

			var (
				page []discord.Message
				err  error
			)
			if before.IsValid() {
				page, err = s.Client.MessagesBefore(ch.ID, before, size)
			} else {
				page, err = s.Client.Messages(ch.ID, size)
			}
			if err != nil {
				yield(activity.Message{}, activity.NewHistorySourceError(ch.ID, err))
				return
			}

			if s.OnPage != nil {
				s.OnPage(len(page))
			}

			for _, m := range page {
				if !yield(toMessage(ch.ID, m), nil) {
					return
				}
			}

			if uint(len(page)) < size {
				return
			}
			before = page[len(page)-1].ID
		}
	}
}

func toMessage(channelID discord.ChannelID, m discord.Message) activity.Message {
	if m.ChannelID.IsValid() {
		channelID = m.ChannelID
	}

	return activity.Message{
		AuthorID:  m.Author.ID,
		ChannelID: channelID,
		Timestamp: m.Timestamp.Time().UTC(),
	}
}
