package activity

import (
	"encoding/json"
	"iter"
	"time"
)

// ChannelCount maps channels to message counts.
// Iteration follows the order in which channels were first counted.
// The zero value is ready to use.
type ChannelCount struct {
	order  []Channel
	counts map[Channel]int
}

// Add adds n to the count for ch. Non-positive n is ignored.
func (c *ChannelCount) Add(ch Channel, n int) {
	if n <= 0 {
		return
	}

	if c.counts == nil {
		c.counts = make(map[Channel]int)
	}

	if _, ok := c.counts[ch]; !ok {
		c.order = append(c.order, ch)
	}
	c.counts[ch] += n
}

// Get returns the count for ch, or 0 if ch was never counted.
func (c *ChannelCount) Get(ch Channel) int {
	if c == nil {
		return 0
	}
	return c.counts[ch]
}

// Len returns the number of channels with a non-zero count.
func (c *ChannelCount) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Total returns the sum of all counts.
func (c *ChannelCount) Total() (total int) {
	if c == nil {
		return 0
	}

	for _, n := range c.counts {
		total += n
	}
	return total
}

// All iterates over channels and their counts in first-counted order.
func (c *ChannelCount) All() iter.Seq2[Channel, int] {
	return func(yield func(Channel, int) bool) {
		if c == nil {
			return
		}

		for _, ch := range c.order {
			if !yield(ch, c.counts[ch]) {
				return
			}
		}
	}
}

type channelCountJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MarshalJSON encodes c as an ordered array of {id, name, count} objects.
// It is defined on the value so embedded counts encode when their parent is passed by value.
func (c ChannelCount) MarshalJSON() ([]byte, error) {
	out := make([]channelCountJSON, 0, c.Len())
	for ch, n := range c.All() {
		out = append(out, channelCountJSON{ID: ch.ID.String(), Name: ch.Name, Count: n})
	}
	return json.Marshal(out)
}

// MonthlyActivity maps months to per-channel counts.
// Iteration follows the order in which months were first counted.
// The zero value is ready to use.
type MonthlyActivity struct {
	order  []time.Month
	months map[time.Month]*ChannelCount
}

// Add adds n messages in channel ch to month m.
func (ma *MonthlyActivity) Add(m time.Month, ch Channel, n int) {
	if n <= 0 {
		return
	}

	if ma.months == nil {
		ma.months = make(map[time.Month]*ChannelCount)
	}

	cc, ok := ma.months[m]
	if !ok {
		cc = &ChannelCount{}
		ma.months[m] = cc
		ma.order = append(ma.order, m)
	}
	cc.Add(ch, n)
}

// Get returns the channel counts for m. It never returns nil.
func (ma *MonthlyActivity) Get(m time.Month) *ChannelCount {
	if ma == nil || ma.months[m] == nil {
		return &ChannelCount{}
	}
	return ma.months[m]
}

// Len returns the number of months with at least one message.
func (ma *MonthlyActivity) Len() int {
	if ma == nil {
		return 0
	}
	return len(ma.order)
}

// Total returns the number of messages over all months.
func (ma *MonthlyActivity) Total() (total int) {
	for _, cc := range ma.All() {
		total += cc.Total()
	}
	return total
}

// All iterates over months in first-counted order.
func (ma *MonthlyActivity) All() iter.Seq2[time.Month, *ChannelCount] {
	return func(yield func(time.Month, *ChannelCount) bool) {
		if ma == nil {
			return
		}

		for _, m := range ma.order {
			if !yield(m, ma.months[m]) {
				return
			}
		}
	}
}

// MostActive returns the name of the month with the most messages, or NoMonth if there are none.
// Ties go to the month that was counted first.
func (ma *MonthlyActivity) MostActive() string {
	var (
		best  time.Month
		count = -1
	)

	for m, cc := range ma.All() {
		if total := cc.Total(); total > count {
			best, count = m, total
		}
	}

	if count < 0 {
		return NoMonth
	}
	return MonthName(best)
}

type monthJSON struct {
	Month    string        `json:"month"`
	Total    int           `json:"total"`
	Channels *ChannelCount `json:"channels"`
}

// MarshalJSON encodes ma as an ordered array of months.
func (ma MonthlyActivity) MarshalJSON() ([]byte, error) {
	out := make([]monthJSON, 0, ma.Len())
	for m, cc := range ma.All() {
		out = append(out, monthJSON{Month: MonthName(m), Total: cc.Total(), Channels: cc})
	}
	return json.Marshal(out)
}
