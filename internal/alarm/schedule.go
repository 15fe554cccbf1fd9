package alarm

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/teambition/rrule-go"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrUnschedulable is returned for alarms whose time can't be read as a
// wall clock time.
var ErrUnschedulable = errors.New("alarm is not schedulable")

var dayCodes = map[string]rrule.Weekday{
	"lun": rrule.MO, "mar": rrule.TU, "mie": rrule.WE, "jue": rrule.TH,
	"vie": rrule.FR, "sab": rrule.SA, "dom": rrule.SU,
	"mon": rrule.MO, "tue": rrule.TU, "wed": rrule.WE, "thu": rrule.TH,
	"fri": rrule.FR, "sat": rrule.SA, "sun": rrule.SU,
	// single letter codes used by Spanish day pickers
	"l": rrule.MO, "m": rrule.TU, "x": rrule.WE, "j": rrule.TH,
	"v": rrule.FR, "s": rrule.SA, "d": rrule.SU,
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ParseDay maps a day identifier ("Mon", "Miércoles", "X", ...) to a weekday.
func ParseDay(s string) (rrule.Weekday, bool) {
	folded, _, err := transform.String(stripMarks, strings.ToLower(strings.TrimSpace(s)))
	if err != nil || folded == "" {
		return rrule.Weekday{}, false
	}
	if len(folded) > 3 {
		folded = folded[:3]
	}
	wd, ok := dayCodes[folded]
	return wd, ok
}

// Schedule is the weekly recurrence an alarm describes. Days that can't be
// recognised are ignored; with no recognised day the alarm rings daily,
// the way the device treats a bare time.
type Schedule struct {
	hour, min, sec int
	days           []rrule.Weekday
	loc            *time.Location
}

// NewSchedule reads a's time ("HH:MM" or "HH:MM:SS") and days.
func NewSchedule(a Alarm, loc *time.Location) (*Schedule, error) {
	if loc == nil {
		loc = time.Local
	}

	var clock time.Time
	var err error
	for _, layout := range []string{"15:04", "15:04:05"} {
		clock, err = time.Parse(layout, strings.TrimSpace(a.Time))
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("alarm - NewSchedule - %q: %w", a.Time, ErrUnschedulable)
	}

	s := &Schedule{hour: clock.Hour(), min: clock.Minute(), sec: clock.Second(), loc: loc}
	seen := make(map[int]bool, len(a.Days))
	for _, d := range a.Days {
		wd, ok := ParseDay(d)
		if !ok || seen[wd.Day()] {
			continue
		}
		seen[wd.Day()] = true
		s.days = append(s.days, wd)
	}
	return s, nil
}

// Daily reports whether the schedule has no day restriction.
func (s *Schedule) Daily() bool { return len(s.days) == 0 }

// Rule returns the recurrence without a start date.
func (s *Schedule) Rule() rrule.ROption {
	if s.Daily() {
		return rrule.ROption{Freq: rrule.DAILY}
	}
	return rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: append([]rrule.Weekday(nil), s.days...),
	}
}

// Next returns the first firing strictly after t, or the zero time.
func (s *Schedule) Next(t time.Time) time.Time {
	local := t.In(s.loc)
	opt := s.Rule()
	opt.Dtstart = time.Date(local.Year(), local.Month(), local.Day(), s.hour, s.min, s.sec, 0, s.loc)

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return time.Time{}
	}
	return r.After(local, false)
}
