// Package v1 is the JSON API over the alarm registry.
package v1

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Raimguzhinov/alarm-go/internal/alarm"
	"github.com/Raimguzhinov/alarm-go/internal/device"
	"github.com/Raimguzhinov/alarm-go/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// AlarmUseCase -.
type AlarmUseCase interface {
	Add(t string, days []string) (alarm.Alarm, *device.Task)
	Toggle(id int64) (alarm.Alarm, bool)
	Remove(id int64, c alarm.Confirmer) error
	List() []alarm.Alarm
	Get(id int64) (alarm.Alarm, bool)
}

type alarmRoutes struct {
	uc  AlarmUseCase
	l   *logger.Logger
	loc *time.Location
	now func() time.Time
}

// NewRouter mounts the alarm API on r.
func NewRouter(r chi.Router, uc AlarmUseCase, l *logger.Logger, loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	h := &alarmRoutes{
		uc:  uc,
		l:   l.With(slog.String("component", "http/v1")),
		loc: loc,
		now: time.Now,
	}

	r.Route("/api/v1/alarms", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Post("/{id}/toggle", h.toggle)
		r.Delete("/{id}", h.delete)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *alarmRoutes) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.l.Error("http - v1 - encode response", logger.Err(err))
	}
}

func (h *alarmRoutes) errorJSON(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

var errBadID = errors.New("invalid alarm id")

func alarmID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errBadID
	}
	return id, nil
}
