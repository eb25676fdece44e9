package filter

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Supported decade range.
const (
	MinDecade = 1900
	MaxDecade = 2020
)

// shorthandCutoff is the largest two-digit value read as 20xx; larger values are read as 19xx.
const shorthandCutoff = 20

var (
	// ErrInvalidDecade is returned when a decade token is not numeric.
	ErrInvalidDecade = errors.New("invalid decade")
	// ErrDecadeOutOfRange is returned when a decade falls outside MinDecade..MaxDecade.
	ErrDecadeOutOfRange = errors.New("decade out of range")
)

// IsDecadeToken reports whether text is decade-shaped: an integer optionally followed by "s".
func IsDecadeToken(text string) bool {
	_, err := parseDecadeNumber(text)
	return err == nil
}

// ResolveDecade turns "1970", "70s", "70" or "1973" into a canonical decade.
// Two-digit values 0-20 are read as 2000-2020 and 21-99 as 1921-1999.
func ResolveDecade(text string) (int, error) {
	n, err := parseDecadeNumber(text)
	if err != nil {
		err = errors.Mark(errors.Newf("invalid decade: '%s'", text), ErrInvalidDecade)
		return 0, errors.WithHint(err, "Try: 1970, 70s, 70, 2000")
	}

	if n < 100 {
		if n >= 0 && n <= shorthandCutoff {
			n += 2000
		} else {
			n += 1900
		}
	}

	n = (n / 10) * 10

	if n < MinDecade || n > MaxDecade {
		err := errors.Mark(errors.Newf("decade %d out of range (%d-%d)", n, MinDecade, MaxDecade), ErrDecadeOutOfRange)
		return 0, err
	}
	return n, nil
}

func parseDecadeNumber(text string) (int, error) {
	s := strings.TrimRight(strings.ToLower(strings.TrimSpace(text)), "s")
	return strconv.Atoi(strings.TrimSpace(s))
}
