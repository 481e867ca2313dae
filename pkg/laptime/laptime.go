// Package laptime converts the lap time notations written by racing simulator servers into seconds.
//
// Two notations are understood:
//
//   - colon notation, "m:ss:mmm", where the last component is milliseconds (Assetto Corsa server logs)
//   - decimal notation, "[[h:]m:]ss.f", where the fraction may have any precision (e.g. "01:41.9000")
package laptime

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidTime = errors.New("laptime: invalid time")

const maxFractionDigits = 9

// Parse returns the number of seconds described by s. The result is the float64 closest to the
// decimal value written in s, so "1:41:900" is exactly 101.9.
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)

	if s == "" {
		return 0, ErrInvalidTime
	}

	if i := strings.IndexByte(s, '.'); i >= 0 {
		return parseDecimal(s, s[:i], s[i+1:])
	}

	parts := strings.Split(s, ":")

	if len(parts) != 3 {
		return 0, errors.Wrapf(ErrInvalidTime, "%q is not m:ss:mmm", s)
	}

	minutes, ok1 := digits(parts[0])
	seconds, ok2 := digits(parts[1])
	millis, ok3 := digits(parts[2])

	if !ok1 || !ok2 || !ok3 || len(parts[2]) > 3 || seconds >= 60 {
		return 0, errors.Wrapf(ErrInvalidTime, "%q is not m:ss:mmm", s)
	}

	return float64((minutes*60+seconds)*1000+millis) / 1000, nil
}

func parseDecimal(s, whole, fraction string) (float64, error) {
	frac, ok := digits(fraction)

	if !ok || len(fraction) > maxFractionDigits {
		return 0, errors.Wrapf(ErrInvalidTime, "%q has a bad fraction", s)
	}

	parts := strings.Split(whole, ":")

	if len(parts) > 3 {
		return 0, errors.Wrapf(ErrInvalidTime, "%q has too many components", s)
	}

	var total int64

	for i, part := range parts {
		n, ok := digits(part)

		// everything but the leading component is a base 60 digit
		if !ok || (i > 0 && n >= 60) {
			return 0, errors.Wrapf(ErrInvalidTime, "%q has a bad component %q", s, part)
		}

		total = total*60 + n
	}

	scale := int64(math.Pow10(len(fraction)))

	return float64(total*scale+frac) / float64(scale), nil
}

// digits parses a non-empty run of ASCII digits.
func digits(s string) (int64, bool) {
	if s == "" || len(s) > 18 {
		return 0, false
	}

	var n int64

	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}

		n = n*10 + int64(c-'0')
	}

	return n, true
}

// Format writes seconds as "m:ss.mmm".
func Format(seconds float64) string {
	if seconds < 0 {
		return "-" + Format(-seconds)
	}

	ms := int64(math.Round(seconds * 1000))

	return fmt.Sprintf("%d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}

// Round rounds seconds to 1/10000th of a second, the precision every supported notation fits in.
// Sums of lap times are rounded with it so they compare equal to the value a log would print.
func Round(seconds float64) float64 {
	return math.Round(seconds*1e4) / 1e4
}
