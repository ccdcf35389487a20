package codec

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/dsl"
)

// Calendar approximations used by the month and year units.
const (
	Day   = 24 * time.Hour
	Week  = 7 * Day
	Month = 2_630_016 * time.Second  // 30.44 days
	Year  = 31_557_600 * time.Second // 365.25 days
)

var durationUnits = map[string]time.Duration{
	"nsec": time.Nanosecond, "ns": time.Nanosecond,
	"usec": time.Microsecond, "us": time.Microsecond, "µs": time.Microsecond,
	"msec": time.Millisecond, "ms": time.Millisecond,
	"seconds": time.Second, "second": time.Second, "sec": time.Second, "s": time.Second,
	"minutes": time.Minute, "minute": time.Minute, "min": time.Minute, "m": time.Minute,
	"hours": time.Hour, "hour": time.Hour, "hr": time.Hour, "h": time.Hour,
	"days": Day, "day": Day, "d": Day,
	"weeks": Week, "week": Week, "w": Week,
	"months": Month, "month": Month, "M": Month,
	"years": Year, "year": Year, "y": Year,
}

var (
	errEmptyDuration = errors.New("empty duration")
	errOverflow      = errors.New("duration overflows")

	errNegativeDuration = errors.New("negative duration")
)

// Duration returns a Codec between human-readable duration text such as
// "234ms", "1h 30m" or "2days" and time.Duration. Negative durations have no
// wire form.
func Duration() tariffconv.Codec[string, time.Duration] {
	return durationCodec{}
}

type durationCodec struct{}

func (durationCodec) In() tariffconv.Schema[string] { return dsl.String() }
func (durationCodec) Out() tariffconv.Schema[time.Duration] {
	return valueSchema[time.Duration]{check: func(d time.Duration) error {
		if d < 0 {
			return invalidFormat("duration", errNegativeDuration)
		}
		return nil
	}}
}

func (durationCodec) Decode(ctx context.Context, a string) (time.Duration, error) {
	d, err := ParseDuration(a)
	if err != nil {
		return 0, invalidFormat("duration", err)
	}
	return d, nil
}

func (durationCodec) Encode(ctx context.Context, b time.Duration) (string, error) {
	if b < 0 {
		return "", encodeError("duration", errNegativeDuration)
	}
	return FormatDuration(b), nil
}

// ParseDuration parses a sequence of <integer><unit> items, optionally
// separated by whitespace, and sums them exactly.
func ParseDuration(s string) (time.Duration, error) {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return 0, errEmptyDuration
	}
	var total time.Duration
	for rest != "" {
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 0 {
			return 0, fmt.Errorf("expected number at %q", rest)
		}
		n, err := strconv.ParseInt(rest[:i], 10, 64)
		if err != nil {
			return 0, errOverflow
		}
		rest = rest[i:]
		j := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsLetter(r) && r != 'µ' })
		if j < 0 {
			j = len(rest)
		}
		unitName := rest[:j]
		if unitName == "" {
			return 0, fmt.Errorf("missing unit after %d", n)
		}
		unit, ok := durationUnits[unitName]
		if !ok {
			return 0, fmt.Errorf("unknown unit %q", unitName)
		}
		if n > math.MaxInt64/int64(unit) {
			return 0, errOverflow
		}
		item := time.Duration(n) * unit
		if total > math.MaxInt64-item {
			return 0, errOverflow
		}
		total += item
		rest = strings.TrimLeftFunc(rest[j:], unicode.IsSpace)
	}
	return total, nil
}

// FormatDuration renders d as space separated items from years down to
// nanoseconds, omitting zero items. Years, months and days are spelled out
// and pluralised ("2days"); smaller units use their short names ("1h 30m").
// d must not be negative.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	secs := int64(d / time.Second)
	nanos := int64(d % time.Second)

	years := secs / int64(Year/time.Second)
	ydays := secs % int64(Year/time.Second)
	months := ydays / int64(Month/time.Second)
	mdays := ydays % int64(Month/time.Second)
	days := mdays / 86400
	daySecs := mdays % 86400

	var parts []string
	plural := func(n int64, name string) {
		if n == 0 {
			return
		}
		if n == 1 {
			parts = append(parts, fmt.Sprintf("%d%s", n, name))
			return
		}
		parts = append(parts, fmt.Sprintf("%d%ss", n, name))
	}
	item := func(n int64, name string) {
		if n != 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, name))
		}
	}
	plural(years, "year")
	plural(months, "month")
	plural(days, "day")
	item(daySecs/3600, "h")
	item(daySecs/60%60, "m")
	item(daySecs%60, "s")
	item(nanos/1_000_000, "ms")
	item(nanos/1000%1000, "us")
	item(nanos%1000, "ns")
	return strings.Join(parts, " ")
}
