// Package alarm holds the alarm records shown on the page and the
// in-memory registry that owns them.
package alarm

import (
	"strings"
)

// Alarm is a user-defined time with recurrence days.
//
// Enabled is local state only; the device never learns about it.
type Alarm struct {
	ID      int64    `json:"id"`
	Time    string   `json:"time"`
	Days    []string `json:"days"`
	Enabled bool     `json:"enabled"`
}

// DaysLabel joins the selected days with a single space.
func (a Alarm) DaysLabel() string {
	return strings.Join(a.Days, " ")
}

// ToggleLabel is the caption of the activate/deactivate control.
func (a Alarm) ToggleLabel() string {
	if a.Enabled {
		return "Desactivar"
	}
	return "Activar"
}

func (a Alarm) clone() Alarm {
	c := a
	if a.Days != nil {
		c.Days = append(make([]string, 0, len(a.Days)), a.Days...)
	}
	return c
}
