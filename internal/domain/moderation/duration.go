package moderation

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidDuration reports an unparsable mute duration string.
var ErrInvalidDuration = errors.New("invalid duration")

var durationUnits = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
}

// ParseDuration parses a mute duration of the form <integer><unit> where the
// unit is one of s, m, h, d. "30m" parses to 30 minutes; an unrecognized unit
// or a missing/non-integer numeric part fails with ErrInvalidDuration.
func ParseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	unitChar := s[len(s)-1]
	if unitChar >= 'A' && unitChar <= 'Z' {
		unitChar += 'a' - 'A'
	}
	unit, ok := durationUnits[unitChar]
	if !ok {
		return 0, fmt.Errorf("%w: unrecognized unit in %q", ErrInvalidDuration, s)
	}

	amount, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || amount <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	return time.Duration(amount) * unit, nil
}
