package config

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// maxRangeStart is the arbitrary early date used for the "max" period.
var maxRangeStart = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

var periodPattern = regexp.MustCompile(`^(\d+)(d|mo|y)$`)

// ResolveRange converts a period string into a concrete [start, end] date
// range ending at now. Accepted forms: "ytd", "max" and "<n><unit>" where
// unit is d (days), mo (months, approximated as 30 days) or y (years,
// approximated as 365 days), e.g. 5d, 6mo, 3y.
func ResolveRange(period string, now time.Time) (time.Time, time.Time, error) {
	switch period {
	case "":
		return time.Time{}, time.Time{}, fmt.Errorf("empty period")
	case "ytd":
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, now, nil
	case "max":
		return maxRangeStart, now, nil
	}

	m := periodPattern.FindStringSubmatch(period)
	if m == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period format: %s", period)
	}

	value, err := strconv.Atoi(m[1])
	if err != nil || value < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period value: %s", period)
	}

	var days int
	switch m[2] {
	case "d":
		days = value
	case "mo":
		days = value * 30
	case "y":
		days = value * 365
	}

	return now.AddDate(0, 0, -days), now, nil
}
