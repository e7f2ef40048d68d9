package services

import (
	"errors"
	"fmt"
	"milk-delivery-service/internal/domain"
	"slices"
	"strings"
	"time"
)

var ErrNotFound = errors.New("record not found")

// NotFoundError reports that no row matched the resolution policy.
type NotFoundError struct {
	User       string
	TargetDate string
}

func (e *NotFoundError) Error() string {
	if e.TargetDate != "" {
		return fmt.Sprintf("No entry found for user \"%s\" on date \"%s\"", e.User, e.TargetDate)
	}
	return fmt.Sprintf("No entries found for user \"%s\"", e.User)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Layouts accepted when ordering rows by date. The store keeps dates as free
// text, so anything outside this list is treated as unparseable.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Mon Jan 2 2006",
}

// ParseDate parses a stored date string using the accepted layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Resolve selects the single row an update or delete should act on.
//
// With a targetDate the first row matching user and date exactly is returned.
// Without one, the user's row with the latest parseable date wins. Equal dates
// keep store order, and rows whose date cannot be parsed rank below every
// parseable date. A blank user never matches, even rows whose user cell is
// empty.
func Resolve(records []domain.StoredRecord, user string, targetDate string) (domain.StoredRecord, error) {
	if strings.TrimSpace(user) == "" {
		return domain.StoredRecord{}, &NotFoundError{User: user, TargetDate: targetDate}
	}

	if targetDate != "" {
		for _, r := range records {
			if r.User == user && r.Date == targetDate {
				return r, nil
			}
		}
		return domain.StoredRecord{}, &NotFoundError{User: user, TargetDate: targetDate}
	}

	type candidate struct {
		rec    domain.StoredRecord
		at     time.Time
		parsed bool
	}

	candidates := make([]candidate, 0, len(records))
	for _, r := range records {
		if r.User != user {
			continue
		}
		at, ok := ParseDate(r.Date)
		candidates = append(candidates, candidate{rec: r, at: at, parsed: ok})
	}

	if len(candidates) == 0 {
		return domain.StoredRecord{}, &NotFoundError{User: user}
	}

	// Most recent first; stable so ties fall back to store order.
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		switch {
		case a.parsed && !b.parsed:
			return -1
		case !a.parsed && b.parsed:
			return 1
		case !a.parsed && !b.parsed:
			return 0
		}
		return b.at.Compare(a.at)
	})

	return candidates[0].rec, nil
}
