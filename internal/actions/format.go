package actions

import (
	"strconv"
	"strings"
	"time"
)

// Clock returns the current time. Handlers take one so tests can pin it.
type Clock func() time.Time

const (
	instantLayout = "2006-01-02T15:04:05.000Z"
	minuteLayout  = "2006-01-02 15:04"
)

// FormatInstant renders t in UTC with millisecond precision.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(instantLayout)
}

// FormatMinute renders t in UTC to the minute, as used in section headings.
func FormatMinute(t time.Time) string {
	return t.UTC().Format(minuteLayout)
}

// FormatTags joins tags with ", " or returns "none" for an empty list.
func FormatTags(tags []string) string {
	if len(tags) == 0 {
		return "none"
	}
	return JoinTags(tags)
}

// JoinTags joins tags with ", " and returns "" for an empty list.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// FormatConfidence renders c with the shortest exact decimal form.
func FormatConfidence(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}
