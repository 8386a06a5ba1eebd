// Package timefmt converts between lap-time strings and durations.
//
// The canonical string form is "M:SS.mmm" (no leading zero on minutes,
// two-digit seconds, three-digit milliseconds). A hundredths variant
// "M:SS.hh" exists purely for presentation on the kringen dashboard and
// for countdowns; aggregation always works on time.Duration.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses "M:SS.f", where the fractional part is scaled by
// its digit count (2 digits = hundredths, 3 = thousandths). Malformed
// input yields 0, which callers must treat as "no time yet".
func ParseDuration(s string) time.Duration {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0
	}
	mins, err := strconv.Atoi(parts[0])
	if err != nil || mins < 0 {
		return 0
	}

	secPart := parts[1]
	fracNanos := int64(0)
	if i := strings.IndexByte(secPart, '.'); i >= 0 {
		frac := secPart[i+1:]
		secPart = secPart[:i]
		if frac == "" {
			return 0
		}
		n, err := strconv.Atoi(frac)
		if err != nil || n < 0 {
			return 0
		}
		scale := int64(1)
		for range len(frac) {
			scale *= 10
		}
		fracNanos = int64(n) * int64(time.Second) / scale
	}

	secs, err := strconv.Atoi(secPart)
	if err != nil || secs < 0 {
		return 0
	}

	return time.Duration(mins)*time.Minute +
		time.Duration(secs)*time.Second +
		time.Duration(fracNanos)
}

// FormatDuration renders the canonical "M:SS.mmm" form.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int(d / time.Minute)
	d -= time.Duration(mins) * time.Minute
	secs := int(d / time.Second)
	ms := int((d % time.Second) / time.Millisecond)
	return fmt.Sprintf("%d:%02d.%03d", mins, secs, ms)
}

// FormatDurationHundredths renders "M:SS.hh", the presentation form used
// by the kringen dashboard and countdown displays.
func FormatDurationHundredths(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int(d / time.Minute)
	d -= time.Duration(mins) * time.Minute
	secs := int(d / time.Second)
	hundredths := int((d % time.Second) / (10 * time.Millisecond))
	return fmt.Sprintf("%d:%02d.%02d", mins, secs, hundredths)
}

// FormatClock renders a wall-clock timestamp as "HH:MM:SS".
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}

// CountdownTo returns the time remaining until today's hh:mm, floored at
// zero once the target has passed.
func CountdownTo(now time.Time, hour, min int) time.Duration {
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
	d := target.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// CountdownToNextMinute returns the time remaining until the next full
// minute.
func CountdownToNextMinute(now time.Time) time.Duration {
	next := now.Truncate(time.Minute).Add(time.Minute)
	return next.Sub(now)
}
