package xstrconv

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBool accepts the toggle words used in share links ("on", "show",
// "yes" and their opposites) on top of everything strconv.ParseBool knows.
func ParseBool(str string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "on", "show", "yes":
		return true, nil
	case "off", "hide", "no":
		return false, nil
	}

	b, err := strconv.ParseBool(str)
	if err != nil {
		return false, fmt.Errorf("invalid toggle %q", str)
	}
	return b, nil
}
