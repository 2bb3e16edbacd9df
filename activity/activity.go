// Package activity counts messages per member, channel and month over a guild's channel history.
package activity

import (
	"context"
	"iter"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
)

// Message is a single message as seen by the aggregator.
type Message struct {
	AuthorID  discord.UserID
	ChannelID discord.ChannelID
	Timestamp time.Time
}

// Channel identifies a channel whose history is scanned.
type Channel struct {
	ID   discord.ChannelID
	Name string
}

// HistorySource produces the message history of a channel.
// Every call returns a fresh sequence starting at the newest message.
// A non-nil error ends the sequence.
type HistorySource interface {
	History(ctx context.Context, ch Channel) iter.Seq2[Message, error]
}

// HistoryFunc adapts a function to a HistorySource.
type HistoryFunc func(ctx context.Context, ch Channel) iter.Seq2[Message, error]

func (f HistoryFunc) History(ctx context.Context, ch Channel) iter.Seq2[Message, error] {
	return f(ctx, ch)
}

// MemberActivity is the number of messages a single member sent, per channel.
type MemberActivity struct {
	UserID   discord.UserID
	Total    int
	Channels ChannelCount
}

// RoleActivity holds one MemberActivity per requested member, in request order.
type RoleActivity []MemberActivity

// Total returns the number of messages sent by all members.
func (ra RoleActivity) Total() (total int) {
	for _, m := range ra {
		total += m.Total
	}
	return total
}

// ServerActivity is the per-month breakdown of a guild's messages in a single year.
type ServerActivity struct {
	Monthly         MonthlyActivity `json:"monthly"`
	MostActiveMonth string          `json:"most_active_month"`
	FilteredTotal   int             `json:"filtered_total"`
	Year            int             `json:"year"`
}

// Aggregator runs activity reports over a HistorySource.
type Aggregator struct {
	Source HistorySource
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// New returns an Aggregator reading from src.
func New(src HistorySource) *Aggregator {
	return &Aggregator{Source: src, Now: time.Now}
}

func (a *Aggregator) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// CountMessages returns the number of messages in history matching filter.
// If history yields an error, no count is returned.
func CountMessages(ctx context.Context, history iter.Seq2[Message, error], filter Filter) (count int, err error) {
	for m, err := range history {
		if err != nil {
			return 0, err
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		if filter.Matches(m) {
			count++
		}
	}
	return count, nil
}

// AggregateForRole counts the messages of each member in each channel.
// filter must not target a user.
func (a *Aggregator) AggregateForRole(ctx context.Context, members []discord.UserID, channels []Channel, filter Filter) (RoleActivity, error) {
	if filter.User.IsValid() {
		return nil, ErrUserFilterSet
	}

	ra := make(RoleActivity, 0, len(members))
	for _, id := range members {
		ma := MemberActivity{UserID: id}

		for _, ch := range channels {
			n, err := CountMessages(ctx, a.Source.History(ctx, ch), filter.WithUser(id))
			if err != nil {
				return nil, wrapHistory(ch, err)
			}

			ma.Channels.Add(ch, n)
			ma.Total += n
		}

		ra = append(ra, ma)
	}
	return ra, nil
}

// AggregateServerActivity counts this year's messages in channels, per month and channel.
// If month is set, FilteredTotal is the number of messages in that month.
func (a *Aggregator) AggregateServerActivity(ctx context.Context, channels []Channel, month time.Month) (res ServerActivity, err error) {
	res.Year = a.now().UTC().Year()

	for _, ch := range channels {
		for m, err := range a.Source.History(ctx, ch) {
			if err != nil {
				return ServerActivity{}, wrapHistory(ch, err)
			}
			if err := ctx.Err(); err != nil {
				return ServerActivity{}, wrapHistory(ch, err)
			}

			t := m.Timestamp.UTC()
			if t.Year() != res.Year {
				continue
			}

			res.Monthly.Add(t.Month(), ch, 1)
			if month != 0 && t.Month() == month {
				res.FilteredTotal++
			}
		}
	}

	res.MostActiveMonth = res.Monthly.MostActive()
	return res, nil
}

func wrapHistory(ch Channel, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errors.WithStack(err)
	}
	return NewHistorySourceError(ch.ID, err)
}

// Limit returns a sequence yielding at most n messages from seq. n <= 0 means no limit.
func Limit(seq iter.Seq2[Message, error], n int) iter.Seq2[Message, error] {
	if n <= 0 {
		return seq
	}

	return func(yield func(Message, error) bool) {
		i := 0
		for m, err := range seq {
			if !yield(m, err) || err != nil {
				return
			}

			i++
			if i >= n {
				return
			}
		}
	}
}

// Limited wraps src so that every history yields at most n messages.
func Limited(src HistorySource, n int) HistorySource {
	if n <= 0 {
		return src
	}

	return HistoryFunc(func(ctx context.Context, ch Channel) iter.Seq2[Message, error] {
		return Limit(src.History(ctx, ch), n)
	})
}
