// Package web serves the alarm page and its form endpoints.
package web

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Raimguzhinov/alarm-go/internal/alarm"
	"github.com/Raimguzhinov/alarm-go/internal/device"
	"github.com/Raimguzhinov/alarm-go/pkg/logger"
	"github.com/emersion/go-ical"
	"github.com/go-chi/chi/v5"
)

// AlarmUseCase -.
type AlarmUseCase interface {
	Add(t string, days []string) (alarm.Alarm, *device.Task)
	Toggle(id int64) (alarm.Alarm, bool)
	Delete(id int64, c alarm.Confirmer) bool
	List() []alarm.Alarm
}

// Renderer -.
type Renderer interface {
	RenderPage(w io.Writer, alarms []alarm.Alarm) error
	RenderList(w io.Writer, alarms []alarm.Alarm) error
}

type handler struct {
	uc       AlarmUseCase
	renderer Renderer
	l        *logger.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewRouter mounts the page, the form endpoints, the calendar export and
// the static assets on r.
func NewRouter(r chi.Router, uc AlarmUseCase, renderer Renderer, static http.FileSystem, l *logger.Logger, loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	h := &handler{
		uc:       uc,
		renderer: renderer,
		l:        l.With(slog.String("component", "http/web")),
		loc:      loc,
		now:      time.Now,
	}

	r.Get("/", h.page)
	r.Get("/alarms", h.list)
	r.Post("/alarms", h.create)
	r.Post("/alarms/{id}/toggle", h.toggle)
	r.Post("/alarms/{id}/delete", h.delete)
	r.Get("/alarms.ics", h.calendar)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(static)))
}

func (h *handler) render(w http.ResponseWriter, draw func(io.Writer, []alarm.Alarm) error) {
	var buf bytes.Buffer
	if err := draw(&buf, h.uc.List()); err != nil {
		h.l.Error("http - web - render", logger.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *handler) page(w http.ResponseWriter, _ *http.Request) {
	h.render(w, h.renderer.RenderPage)
}

func (h *handler) list(w http.ResponseWriter, _ *http.Request) {
	h.render(w, h.renderer.RenderList)
}

func backToPage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	// the device call outlives the request; its outcome goes to the console
	h.uc.Add(r.PostFormValue("time"), r.PostForm["days"])
	backToPage(w, r)
}

func formID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid alarm id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *handler) toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := formID(w, r)
	if !ok {
		return
	}
	h.uc.Toggle(id)
	backToPage(w, r)
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := formID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	confirmed, _ := strconv.ParseBool(r.PostFormValue("confirm"))
	h.uc.Delete(id, alarm.Answer(confirmed))
	backToPage(w, r)
}

func (h *handler) calendar(w http.ResponseWriter, _ *http.Request) {
	cal := alarm.Calendar(h.uc.List(), h.now(), h.loc)
	if len(cal.Children) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		h.l.Error("http - web - calendar - Encode", logger.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", ical.MIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="alarms.ics"`)
	_, _ = buf.WriteTo(w)
}
