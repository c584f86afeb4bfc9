package graph

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParsePercent converts a loosely formatted percentage field into a number.
// A trailing "%" is stripped before parsing; any parse failure yields 0.0.
// No bounds clamping is applied, so out-of-range values pass through
// unchanged.
func ParsePercent(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return value
}

// ParseAmount converts a loosely formatted currency amount into a number.
// Thousands-separator commas are stripped before parsing; any parse failure
// yields 0.0.
func ParseAmount(raw string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return value
}

// ParseDate converts a loosely formatted date field into a time.Time. Any
// unparseable or empty value yields the zero time.
func ParseDate(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}
	}

	value, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return value
}
