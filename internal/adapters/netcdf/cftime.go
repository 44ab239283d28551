package netcdf

import (
	"fmt"
	"math"
	"strings"
	"time"
)

var timeUnits = map[string]float64{
	"second": 1, "seconds": 1, "sec": 1, "secs": 1, "s": 1,
	"minute": 60, "minutes": 60, "min": 60, "mins": 60,
	"hour": 3600, "hours": 3600, "hr": 3600, "hrs": 3600, "h": 3600,
	"day": 86400, "days": 86400, "d": 86400,
}

var refLayouts = []string{
	"2006-1-2 15:4:5",
	"2006-1-2T15:4:5",
	"2006-1-2 15:4",
	"2006-1-2T15:4",
	"2006-1-2",
}

// supportedCalendars are the calendars that map onto Go's proleptic
// Gregorian time.Time.
var supportedCalendars = map[string]bool{
	"":                    true,
	"standard":            true,
	"gregorian":           true,
	"proleptic_gregorian": true,
}

// cfTime decodes CF "<unit> since <reference>" time coordinates.
type cfTime struct {
	unit float64 // seconds per unit
	ref  time.Time
}

// parseCFTime parses a units attribute. ok is false when the attribute does
// not describe a time axis or uses a calendar time.Time cannot represent.
func parseCFTime(units, calendar string) (cfTime, bool, error) {
	unit, since, found := strings.Cut(strings.TrimSpace(units), " since ")
	if !found {
		return cfTime{}, false, nil
	}
	if !supportedCalendars[strings.ToLower(strings.TrimSpace(calendar))] {
		return cfTime{}, false, nil
	}
	secs, ok := timeUnits[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return cfTime{}, false, nil
	}

	ref, err := parseReference(since)
	if err != nil {
		return cfTime{}, false, fmt.Errorf("time units %q: %w", units, err)
	}
	return cfTime{unit: secs, ref: ref}, true, nil
}

func parseReference(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, " UTC")
	s = strings.TrimSuffix(s, "Z")
	s = strings.TrimSuffix(s, " +00:00")
	s = strings.TrimSpace(s)
	for _, layout := range refLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised reference date %q", s)
}

// At converts an offset in units to a time. Whole days are added by
// calendar arithmetic so long offsets do not overflow time.Duration.
// v must be finite.
func (c cfTime) At(v float64) time.Time {
	secs := v * c.unit
	days := math.Floor(secs / 86400)
	rem := secs - days*86400
	return c.ref.AddDate(0, 0, int(days)).Add(time.Duration(rem * float64(time.Second)))
}
