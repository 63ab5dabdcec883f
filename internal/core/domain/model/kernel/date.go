package kernel

import (
	"fmt"
	"time"

	"encomendas/internal/pkg/errs"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = time.DateOnly

// DateOf drops the clock part of t, keeping its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses "2006-01-02".
func ParseDate(paramName, s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%q is not a date: %w", s, err))
	}
	return t, nil
}

// FormatDate renders a date, or "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
