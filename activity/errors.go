package activity

import (
	"fmt"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
)

const (
	// ErrInvalidFilter matches every *InvalidFilterError with errors.Is.
	ErrInvalidFilter = errors.Sentinel("invalid activity filter")
	// ErrUserFilterSet is returned by AggregateForRole when the filter already targets a user.
	ErrUserFilterSet = errors.Sentinel("filter must not target a user")
)

// FilterReason is the part of a filter that failed validation.
type FilterReason int

const (
	ReasonMonth FilterReason = iota + 1
	ReasonYear
	ReasonFuture
)

// InvalidFilterError is returned when a month or year token can't be parsed,
// or when the requested month lies in the future.
type InvalidFilterError struct {
	Reason FilterReason
	Token  string
}

func (e *InvalidFilterError) Error() string {
	switch e.Reason {
	case ReasonMonth:
		return fmt.Sprintf("invalid month %q", e.Token)
	case ReasonYear:
		return fmt.Sprintf("invalid year %q", e.Token)
	case ReasonFuture:
		return fmt.Sprintf("date %v is in the future", e.Token)
	}
	return "invalid filter"
}

func (e *InvalidFilterError) Is(target error) bool {
	return target == ErrInvalidFilter
}

// Message returns a message suitable for showing to the user who supplied the filter.
func (e *InvalidFilterError) Message() string {
	switch e.Reason {
	case ReasonMonth:
		return "Invalid month format. Please use the first three letters of the month (e.g., Jan, Feb, Mar)."
	case ReasonYear:
		return "Invalid year format. Please enter a valid year (e.g., 2023)."
	case ReasonFuture:
		return "Searching messages from the future? I can't help you with that!"
	}
	return "Invalid filter."
}

// HistorySourceError is returned when a channel's history could not be delivered.
type HistorySourceError struct {
	ChannelID discord.ChannelID
	Err       error
}

// NewHistorySourceError wraps err for the given channel.
// If err already is a *HistorySourceError it is returned unchanged.
func NewHistorySourceError(channelID discord.ChannelID, err error) error {
	var hse *HistorySourceError
	if errors.As(err, &hse) {
		return err
	}
	return &HistorySourceError{ChannelID: channelID, Err: err}
}

func (e *HistorySourceError) Error() string {
	return fmt.Sprintf("reading history of channel %v: %v", e.ChannelID, e.Err)
}

func (e *HistorySourceError) Unwrap() error {
	return e.Err
}
