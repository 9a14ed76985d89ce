package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTimezoneLocation accepts IANA names ("Europe/Moscow"), "UTC"/"GMT",
// and fixed offsets ("UTC+3", "UTC-7", "UTC+5:30", "+3", "-03:30").
// Fixed offsets become a DST-agnostic time.FixedZone.
func ParseTimezoneLocation(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	switch strings.ToUpper(tz) {
	case "", "UTC", "ETC/UTC", "GMT":
		return time.UTC, nil
	}

	if loc, err := time.LoadLocation(tz); err == nil {
		return loc, nil
	}

	offset, ok := parseOffset(tz)
	if !ok {
		return nil, fmt.Errorf("unsupported timezone %q", tz)
	}

	sign := "+"
	abs := offset
	if offset < 0 {
		sign, abs = "-", -offset
	}
	name := fmt.Sprintf("UTC%s%02d:%02d", sign, abs/3600, (abs%3600)/60)

	return time.FixedZone(name, offset), nil
}

// parseOffset returns the offset in seconds for "+H[:MM]" or "UTC±H[:MM]".
func parseOffset(s string) (int, bool) {
	if len(s) >= 3 && strings.EqualFold(s[:3], "UTC") {
		s = strings.TrimSpace(s[3:])
	}
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, false
	}

	sign := 1
	if s[0] == '-' {
		sign = -1
	}

	hh, mm, found := strings.Cut(s[1:], ":")
	if !found {
		mm = "0"
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 14 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}

	return sign * (h*3600 + m*60), true
}

// CalendarDay truncates t to midnight of its calendar day in loc.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// CalendarDaysBetween counts calendar-day boundaries from a to b in loc.
// It ignores the time of day: 23:59 and 00:01 of the next day are one day
// apart. The result is negative when b is on an earlier day than a.
func CalendarDaysBetween(a, b time.Time, loc *time.Location) int {
	da := CalendarDay(a, loc)
	db := CalendarDay(b, loc)

	// Dates rebuilt in UTC keep DST shifts out of the division.
	ua := time.Date(da.Year(), da.Month(), da.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(db.Year(), db.Month(), db.Day(), 0, 0, 0, 0, time.UTC)

	return int(ub.Sub(ua).Hours() / 24)
}
