package ui_test

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/Raimguzhinov/alarm-go/internal/alarm"
	"github.com/Raimguzhinov/alarm-go/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *ui.Renderer {
	t.Helper()
	r, err := ui.NewRenderer("")
	require.NoError(t, err)
	return r
}

func TestRenderList_Empty(t *testing.T) {
	r := newRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.RenderList(&buf, nil))

	out := buf.String()
	assert.Contains(t, out, `id="no-alarms-message" style="display: block"`)
	assert.Equal(t, 0, strings.Count(out, `class="alarm-item"`))
}

func TestRenderList_Rows(t *testing.T) {
	r := newRenderer(t)
	alarms := []alarm.Alarm{
		{ID: 1, Time: "07:30", Days: []string{"Mon", "Wed"}, Enabled: true},
		{ID: 2, Time: "21:00", Days: nil, Enabled: false},
		{ID: 3, Time: "06:15", Days: []string{"Sáb"}, Enabled: true},
	}

	var buf bytes.Buffer
	require.NoError(t, r.RenderList(&buf, alarms))

	out := buf.String()
	assert.Contains(t, out, `id="no-alarms-message" style="display: none"`)
	assert.Equal(t, 3, strings.Count(out, `class="alarm-item"`))
	assert.Contains(t, out, "07:30")
	assert.Contains(t, out, "Mon Wed")
	assert.Contains(t, out, "Sáb")
	assert.Equal(t, 2, strings.Count(out, ">Desactivar<"))
	assert.Equal(t, 1, strings.Count(out, ">Activar<"))
	assert.Contains(t, out, `action="/alarms/2/toggle"`)
	assert.Contains(t, out, `action="/alarms/3/delete"`)
}

func TestRenderList_EscapesTime(t *testing.T) {
	r := newRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.RenderList(&buf, []alarm.Alarm{{ID: 1, Time: "<script>", Enabled: true}}))

	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestRenderPage_Skeleton(t *testing.T) {
	r := newRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, []alarm.Alarm{{ID: 9, Time: "08:00", Enabled: true}}))

	out := buf.String()
	for _, id := range []string{"alarm-list", "no-alarms-message", "add-alarm-form", "alarm-time"} {
		assert.Contains(t, out, `id="`+id+`"`)
	}
	assert.Contains(t, out, `class="hidden"`)
	for _, day := range ui.DayOptions {
		assert.Contains(t, out, `data-day="`+day+`"`)
	}
	assert.Equal(t, 1, strings.Count(out, `class="alarm-item"`))
}

func TestStatic(t *testing.T) {
	b, err := fs.ReadFile(ui.Static(), "app.js")
	require.NoError(t, err)
	assert.Contains(t, string(b), "/ws")
}
