package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone, then UTC when tzdata is missing.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Clock is injected wherever "now" decides a business rule.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

func NowIn(clock Clock, tz string) time.Time {
	return clock.Now().In(Location(tz))
}

// DayStart returns midnight of t's calendar day in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func ParseDate(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, loc)
}

func ParseDateTime(date, hm string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+hm, loc)
}

// At anchors an "HH:MM" time of day to day's calendar date.
func At(day time.Time, hm string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
