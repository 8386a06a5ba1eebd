package timefmt

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"1:23.456", time.Minute + 23*time.Second + 456*time.Millisecond},
		{"0:05.001", 5*time.Second + time.Millisecond},
		{"12:00.000", 12 * time.Minute},
		// two-digit fractions are hundredths, not milliseconds
		{"1:23.45", time.Minute + 23*time.Second + 450*time.Millisecond},
		{"1:23.4", time.Minute + 23*time.Second + 400*time.Millisecond},
		{"2:30", 2*time.Minute + 30*time.Second},
		{"null", 0},
		{"", 0},
		{"1:23:45", 0},
		{"1:", 0},
		{"1:23.", 0},
		{"-1:23.456", 0},
		{"1:-3.456", 0},
		{"abc:def", 0},
	}
	for _, c := range cases {
		if got := ParseDuration(c.in); got != c.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{time.Minute + 23*time.Second + 456*time.Millisecond, "1:23.456"},
		{5*time.Second + time.Millisecond, "0:05.001"},
		{12 * time.Minute, "12:00.000"},
		{0, "0:00.000"},
		{-3 * time.Second, "0:00.000"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.in); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	durations := []time.Duration{
		0,
		999 * time.Millisecond,
		time.Minute,
		4*time.Minute + 59*time.Second + 999*time.Millisecond,
		59 * time.Minute,
	}
	for _, d := range durations {
		if got := ParseDuration(FormatDuration(d)); got != d {
			t.Errorf("round trip %v: got %v", d, got)
		}
	}
}

func TestFormatDurationHundredths(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{time.Minute + 23*time.Second + 456*time.Millisecond, "1:23.45"},
		{2*time.Second + 90*time.Millisecond, "0:02.09"},
		{0, "0:00.00"},
		{-time.Second, "0:00.00"},
	}
	for _, c := range cases {
		if got := FormatDurationHundredths(c.in); got != c.want {
			t.Errorf("FormatDurationHundredths(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCountdownTo(t *testing.T) {
	now := time.Date(2025, 10, 14, 18, 30, 0, 0, time.UTC)
	if got := CountdownTo(now, 19, 0); got != 30*time.Minute {
		t.Fatalf("CountdownTo = %v, want 30m", got)
	}
	after := time.Date(2025, 10, 14, 19, 0, 1, 0, time.UTC)
	if got := CountdownTo(after, 19, 0); got != 0 {
		t.Fatalf("CountdownTo past target = %v, want 0", got)
	}
}

func TestCountdownToNextMinute(t *testing.T) {
	now := time.Date(2025, 10, 14, 18, 30, 45, 0, time.UTC)
	if got := CountdownToNextMinute(now); got != 15*time.Second {
		t.Fatalf("CountdownToNextMinute = %v, want 15s", got)
	}
	exact := time.Date(2025, 10, 14, 18, 30, 0, 0, time.UTC)
	if got := CountdownToNextMinute(exact); got != time.Minute {
		t.Fatalf("CountdownToNextMinute on boundary = %v, want 1m", got)
	}
}
