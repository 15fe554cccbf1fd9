package alarm_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Raimguzhinov/alarm-go/internal/alarm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		in   string
		want rrule.Weekday
		ok   bool
	}{
		{in: "Mon", want: rrule.MO, ok: true},
		{in: "wednesday", want: rrule.WE, ok: true},
		{in: "Lun", want: rrule.MO, ok: true},
		{in: "Mar", want: rrule.TU, ok: true},
		{in: "Miércoles", want: rrule.WE, ok: true},
		{in: "Sáb", want: rrule.SA, ok: true},
		{in: " dom ", want: rrule.SU, ok: true},
		{in: "X", want: rrule.WE, ok: true},
		{in: "", ok: false},
		{in: "someday", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := alarm.ParseDay(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want.Day(), got.Day())
			}
		})
	}
}

func TestNewSchedule_Unschedulable(t *testing.T) {
	for _, in := range []string{"", "7.30", "25:00", "soon"} {
		_, err := alarm.NewSchedule(alarm.Alarm{Time: in}, time.UTC)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, alarm.ErrUnschedulable), in)
	}
}

func TestSchedule_NextWeekly(t *testing.T) {
	// 2024-06-03 is a Monday.
	monday := time.Date(2024, 6, 3, 6, 0, 0, 0, time.UTC)
	s, err := alarm.NewSchedule(alarm.Alarm{Time: "07:30", Days: []string{"Mon", "Wed"}}, time.UTC)
	require.NoError(t, err)
	assert.False(t, s.Daily())

	next := s.Next(monday)
	assert.Equal(t, time.Date(2024, 6, 3, 7, 30, 0, 0, time.UTC), next)

	next = s.Next(next)
	assert.Equal(t, time.Date(2024, 6, 5, 7, 30, 0, 0, time.UTC), next)

	next = s.Next(next)
	assert.Equal(t, time.Date(2024, 6, 10, 7, 30, 0, 0, time.UTC), next)
}

func TestSchedule_NextDailyWithoutDays(t *testing.T) {
	at := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	s, err := alarm.NewSchedule(alarm.Alarm{Time: "07:30", Days: []string{"whenever"}}, time.UTC)
	require.NoError(t, err)
	assert.True(t, s.Daily())

	assert.Equal(t, time.Date(2024, 6, 4, 7, 30, 0, 0, time.UTC), s.Next(at))
}

func TestSchedule_NextWithSeconds(t *testing.T) {
	at := time.Date(2024, 6, 3, 7, 30, 0, 0, time.UTC)
	s, err := alarm.NewSchedule(alarm.Alarm{Time: "07:30:15"}, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 6, 3, 7, 30, 15, 0, time.UTC), s.Next(at))
}

func TestSchedule_RuleDedupesDays(t *testing.T) {
	s, err := alarm.NewSchedule(alarm.Alarm{Time: "07:30", Days: []string{"Mon", "Lun", "Wed"}}, time.UTC)
	require.NoError(t, err)

	rule := s.Rule()
	assert.Equal(t, rrule.WEEKLY, rule.Freq)
	assert.Len(t, rule.Byweekday, 2)
}
