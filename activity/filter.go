package activity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
)

// NoMonth is reported as the most active month when there are no messages.
const NoMonth = "N/A"

var monthNames = [...]string{
	time.January:   "January",
	time.February:  "February",
	time.March:     "March",
	time.April:     "April",
	time.May:       "May",
	time.June:      "June",
	time.July:      "July",
	time.August:    "August",
	time.September: "September",
	time.October:   "October",
	time.November:  "November",
	time.December:  "December",
}

// MonthName returns the full English name of m, or an empty string if m is out of range.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m]
}

// ParseMonth parses a month token.
// It accepts the three-letter abbreviation or the full English name, in any case.
func ParseMonth(token string) (time.Month, error) {
	t := strings.ToLower(strings.TrimSpace(token))

	if len(t) >= 3 {
		for m := time.January; m <= time.December; m++ {
			name := strings.ToLower(monthNames[m])
			if t == name[:3] || t == name {
				return m, nil
			}
		}
	}

	return 0, &InvalidFilterError{Reason: ReasonMonth, Token: token}
}

// Filter restricts which messages are counted. Zero fields are unset.
type Filter struct {
	User  discord.UserID
	Month time.Month
	Year  int
}

// Matches reports whether m passes every set field of f.
func (f Filter) Matches(m Message) bool {
	if f.User.IsValid() && m.AuthorID != f.User {
		return false
	}

	t := m.Timestamp.UTC()
	if f.Month != 0 && t.Month() != f.Month {
		return false
	}
	if f.Year != 0 && t.Year() != f.Year {
		return false
	}
	return true
}

// WithUser returns a copy of f targeting the given user.
func (f Filter) WithUser(id discord.UserID) Filter {
	f.User = id
	return f
}

// Describe returns a short human-readable description of the period f covers,
// such as "March 2024", "March", "2024", or an empty string.
func (f Filter) Describe() string {
	switch {
	case f.Month != 0 && f.Year != 0:
		return fmt.Sprintf("%v %d", MonthName(f.Month), f.Year)
	case f.Month != 0:
		return MonthName(f.Month)
	case f.Year != 0:
		return strconv.Itoa(f.Year)
	}
	return ""
}

// ParseFilter parses optional month and year tokens.
// Empty tokens leave the field unset. A month and year that together start after now are rejected.
func ParseFilter(monthToken, yearToken string, now time.Time) (f Filter, err error) {
	if yearToken = strings.TrimSpace(yearToken); yearToken != "" {
		f.Year, err = strconv.Atoi(yearToken)
		if err != nil || f.Year <= 0 {
			return Filter{}, &InvalidFilterError{Reason: ReasonYear, Token: yearToken}
		}
	}

	if strings.TrimSpace(monthToken) != "" {
		f.Month, err = ParseMonth(monthToken)
		if err != nil {
			return Filter{}, err
		}
	}

	if f.Year != 0 && f.Month != 0 {
		start := time.Date(f.Year, f.Month, 1, 0, 0, 0, 0, time.UTC)
		if start.After(now.UTC()) {
			return Filter{}, &InvalidFilterError{Reason: ReasonFuture, Token: start.Format("2006-01")}
		}
	}

	return f, nil
}
