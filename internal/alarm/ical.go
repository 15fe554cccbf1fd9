package alarm

import (
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

const (
	icsProductID = "-//alarm-go//ESP32 alarms//ES"
	floatingTime = "20060102T150405"
)

// EventUID is the stable iCalendar UID of an alarm.
func EventUID(id int64) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("alarm-go:alarm:%d", id))).String()
}

// Calendar builds an iCalendar feed with one event per enabled alarm that
// has a readable time. Times are floating so a phone rings at the same wall
// clock time the device does.
func Calendar(alarms []Alarm, now time.Time, loc *time.Location) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icsProductID)

	for _, a := range alarms {
		if !a.Enabled {
			continue
		}
		s, err := NewSchedule(a, loc)
		if err != nil {
			continue
		}
		start := s.Next(now)
		if start.IsZero() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, EventUID(a.ID))
		event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
		event.Props.SetText(ical.PropSummary, "Alarma "+a.Time)
		if label := a.DaysLabel(); label != "" {
			event.Props.SetText(ical.PropDescription, label)
		}
		event.Props.Set(floating(ical.PropDateTimeStart, start))

		rule := s.Rule()
		recur := ical.NewProp(ical.PropRecurrenceRule)
		recur.Value = rule.String()
		event.Props.Set(recur)

		valarm := ical.NewComponent(ical.CompAlarm)
		valarm.Props.SetText(ical.PropAction, "DISPLAY")
		valarm.Props.SetText(ical.PropDescription, "Alarma "+a.Time)
		trigger := ical.NewProp(ical.PropTrigger)
		trigger.Value = "PT0S"
		valarm.Props.Set(trigger)
		event.Children = append(event.Children, valarm)

		cal.Children = append(cal.Children, event.Component)
	}
	return cal
}

func floating(name string, t time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.Value = t.Format(floatingTime)
	return p
}
