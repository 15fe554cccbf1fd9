package alarm_test

import (
	"sync"
	"testing"
	"time"

	"github.com/Raimguzhinov/alarm-go/internal/alarm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRegistry_Add(t *testing.T) {
	r := alarm.NewRegistry()

	a := r.Add("07:30", []string{"Mon", "Wed"})

	assert.Equal(t, 1, r.Len())
	assert.True(t, a.Enabled)
	assert.Equal(t, "07:30", a.Time)
	assert.Equal(t, []string{"Mon", "Wed"}, a.Days)
	assert.NotZero(t, a.ID)
}

func TestRegistry_AddAcceptsAnything(t *testing.T) {
	r := alarm.NewRegistry()

	a := r.Add("", nil)
	b := r.Add("not a time", []string{})

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "", a.Time)
	assert.Empty(t, b.Days)
}

func TestRegistry_IDsStrictlyIncreaseWithStalledClock(t *testing.T) {
	now := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	r := alarm.NewRegistry(alarm.WithClock(fixedClock(now)))

	first := r.Add("07:00", nil)
	second := r.Add("08:00", nil)
	third := r.Add("09:00", nil)

	assert.Equal(t, now.UnixMilli(), first.ID)
	assert.Equal(t, first.ID+1, second.ID)
	assert.Equal(t, second.ID+1, third.ID)
}

func TestRegistry_AddCopiesDays(t *testing.T) {
	r := alarm.NewRegistry()
	days := []string{"Mon"}

	a := r.Add("07:00", days)
	days[0] = "Sun"

	got, ok := r.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"Mon"}, got.Days)
}

func TestRegistry_Toggle(t *testing.T) {
	r := alarm.NewRegistry()
	a := r.Add("07:30", []string{"Mon"})
	b := r.Add("08:00", []string{"Tue"})

	toggled, ok := r.Toggle(a.ID)
	require.True(t, ok)
	assert.False(t, toggled.Enabled)
	assert.Equal(t, a.Time, toggled.Time)
	assert.Equal(t, a.Days, toggled.Days)

	other, ok := r.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, b, other)

	toggled, ok = r.Toggle(a.ID)
	require.True(t, ok)
	assert.True(t, toggled.Enabled)
}

func TestRegistry_ToggleUnknownIsNoop(t *testing.T) {
	r := alarm.NewRegistry()
	r.Add("07:30", nil)
	before := r.List()

	_, ok := r.Toggle(42)

	assert.False(t, ok)
	assert.Equal(t, before, r.List())
}

func TestRegistry_DeleteDenied(t *testing.T) {
	r := alarm.NewRegistry()
	a := r.Add("07:30", []string{"Mon"})
	r.Add("08:00", nil)
	before := r.List()

	var asked string
	deleted := r.Delete(a.ID, alarm.ConfirmFunc(func(prompt string) bool {
		asked = prompt
		return false
	}))

	assert.False(t, deleted)
	assert.Equal(t, alarm.DeletePrompt, asked)
	assert.Equal(t, before, r.List())
}

func TestRegistry_DeleteConfirmed(t *testing.T) {
	r := alarm.NewRegistry()
	first := r.Add("07:30", []string{"Mon"})
	second := r.Add("08:00", []string{"Tue"})
	third := r.Add("09:00", nil)

	deleted := r.Delete(second.ID, alarm.Answer(true))

	require.True(t, deleted)
	assert.Equal(t, []alarm.Alarm{first, third}, r.List())
}

func TestRegistry_DeleteFirstKeepsSecond(t *testing.T) {
	r := alarm.NewRegistry()
	first := r.Add("07:30", []string{"Mon", "Wed"})
	second := r.Add("21:15", []string{"Fri"})

	require.True(t, r.Delete(first.ID, alarm.Answer(true)))

	assert.Equal(t, []alarm.Alarm{second}, r.List())
}

func TestRegistry_DeleteUnknownDoesNotAsk(t *testing.T) {
	r := alarm.NewRegistry()
	r.Add("07:30", nil)

	deleted := r.Delete(99, alarm.ConfirmFunc(func(string) bool {
		t.Fatal("confirmation requested for unknown id")
		return true
	}))

	assert.False(t, deleted)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_DeleteNilConfirmer(t *testing.T) {
	r := alarm.NewRegistry()
	a := r.Add("07:30", nil)

	assert.False(t, r.Delete(a.ID, nil))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_SizeTracksAddsAndDeletes(t *testing.T) {
	r := alarm.NewRegistry()
	ids := make([]int64, 0, 10)
	for i := 0; i < 10; i++ {
		ids = append(ids, r.Add("06:00", nil).ID)
	}
	for _, id := range ids[:4] {
		r.Toggle(id)
	}
	deleted := 0
	for i, id := range ids {
		if r.Delete(id, alarm.Answer(i%3 == 0)) {
			deleted++
		}
	}

	assert.Equal(t, 4, deleted)
	assert.Equal(t, 10-deleted, r.Len())
}

func TestRegistry_ListIsSnapshot(t *testing.T) {
	r := alarm.NewRegistry()
	a := r.Add("07:30", []string{"Mon"})

	list := r.List()
	list[0].Enabled = false
	list[0].Days[0] = "Sun"

	got, _ := r.Get(a.ID)
	assert.True(t, got.Enabled)
	assert.Equal(t, []string{"Mon"}, got.Days)
}

func TestRegistry_ConcurrentAddsGetUniqueIDs(t *testing.T) {
	r := alarm.NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Add("07:00", nil)
		}()
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for _, a := range r.List() {
		assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
		seen[a.ID] = true
	}
	assert.Len(t, seen, 50)
}

func TestAlarm_Labels(t *testing.T) {
	a := alarm.Alarm{Time: "07:30", Days: []string{"Mon", "Wed"}, Enabled: true}
	assert.Equal(t, "Mon Wed", a.DaysLabel())
	assert.Equal(t, "Desactivar", a.ToggleLabel())

	a.Enabled = false
	assert.Equal(t, "Activar", a.ToggleLabel())
	assert.Equal(t, "", alarm.Alarm{}.DaysLabel())
}
