package xquery

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/topi314/csat-counter/internal/xstrconv"
)

func ParseTime(query url.Values, name string, layout string, defaultValue time.Time) time.Time {
	value := query.Get(name)
	if value == "" {
		return defaultValue
	}

	parsed, err := time.Parse(layout, value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func ParseBool(query url.Values, name string, defaultValue bool) bool {
	value := query.Get(name)
	if value == "" {
		return defaultValue
	}

	parsed, err := xstrconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// ParseInt returns defaultValue when name is not set. A value that is not a
// number is an error so callers can reject it.
func ParseInt(query url.Values, name string, defaultValue int) (int, error) {
	value := query.Get(name)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return parsed, nil
}

// ParseIntSlice parses a comma separated list like "3,6,9". Empty entries are
// skipped and a list without entries falls back to defaultValue. Any entry
// that is not a number is an error.
func ParseIntSlice(query url.Values, name string, defaultValue []int) ([]int, error) {
	value := query.Get(name)
	if value == "" {
		return defaultValue, nil
	}

	var result []int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parsed, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%s must be a comma separated list of numbers", name)
		}
		result = append(result, parsed)
	}
	if len(result) == 0 {
		return defaultValue, nil
	}
	return result, nil
}
