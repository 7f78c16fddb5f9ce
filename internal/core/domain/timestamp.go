package domain

import (
	"strconv"
	"strings"
)

// ParseTimestamp converts a display timestamp to an offset in seconds.
// Accepted forms: "H:MM:SS", "MM:SS", or a bare non-negative integer of
// seconds. Anything else parses to 0: the contract is deliberately
// lenient, a malformed label is never an error.
func ParseTimestamp(label string) int {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0
	}

	parts := strings.Split(label, ":")
	if len(parts) > 3 {
		return 0
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}
