package ledger

import (
	"fmt"
	"time"

	"github.com/baxley/shopbook/internal/store"
)

// Date layouts used throughout the ledger. Dates are kept as strings in
// records (the snapshot format stores fixed-width text) but every input
// boundary validates them, so lexicographic range comparison is sound.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// ValidateDate rejects anything that is not a zero-padded ISO date.
// Unvalidated dates would silently mis-sort in range filters, so malformed
// input is an error here rather than a wrong answer later.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return store.NewInvalidInputError("date",
			fmt.Sprintf("%q is not a valid YYYY-MM-DD date", s))
	}
	return nil
}

// ValidateOptionalDate is ValidateDate but accepts the empty string,
// meaning "unbounded" in range filters.
func ValidateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	return ValidateDate(s)
}

// DateOnly truncates a datetime string to its date part. Transaction dates
// carry a time component; range filters compare calendar days.
func DateOnly(s string) string {
	if len(s) > len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return s
}

// InDateRange reports whether date falls inside [start, end] inclusive.
// Empty bounds are open. All three arguments must already be validated
// ISO dates (date may carry a time suffix, which is ignored).
func InDateRange(date, start, end string) bool {
	d := DateOnly(date)
	if start != "" && d < start {
		return false
	}
	if end != "" && d > end {
		return false
	}
	return true
}

// MonthOf returns the YYYY-MM prefix of a validated date.
func MonthOf(date string) string {
	if len(date) >= 7 {
		return date[:7]
	}
	return date
}
