package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Raimguzhinov/alarm-go/internal/alarm"
	"github.com/Raimguzhinov/alarm-go/internal/device"
	"github.com/Raimguzhinov/alarm-go/internal/usecase"
	"github.com/Raimguzhinov/alarm-go/internal/usecase/etag"
	"github.com/Raimguzhinov/alarm-go/pkg/logger"
)

type alarmResponse struct {
	alarm.Alarm
	Next *time.Time `json:"next,omitempty"`
}

type createRequest struct {
	Time string   `json:"time"`
	Days []string `json:"days"`
}

type deviceResponse struct {
	Status int    `json:"status,omitempty"`
	Body   string `json:"body,omitempty"`
	Error  string `json:"error,omitempty"`
}

type createResponse struct {
	alarmResponse
	Device *deviceResponse `json:"device,omitempty"`
}

func (h *alarmRoutes) toResponse(a alarm.Alarm) alarmResponse {
	res := alarmResponse{Alarm: a}
	if a.Days == nil {
		res.Days = []string{}
	}
	if s, err := alarm.NewSchedule(a, h.loc); err == nil {
		if next := s.Next(h.now()); !next.IsZero() {
			res.Next = &next
		}
	}
	return res
}

func (h *alarmRoutes) list(w http.ResponseWriter, r *http.Request) {
	alarms := h.uc.List()
	out := make([]alarmResponse, 0, len(alarms))
	for _, a := range alarms {
		out = append(out, h.toResponse(a))
	}

	// the tag covers registry state only, not the moving "next" field
	tag, _, err := etag.FromJSON(alarms)
	if err != nil {
		h.l.Error("http - v1 - list - etag", logger.Err(err))
		h.errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.Header().Set("ETag", tag)
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *alarmRoutes) create(w http.ResponseWriter, r *http.Request) {
	var in createRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.errorJSON(w, http.StatusBadRequest, "invalid body (need {time, days})")
		return
	}

	a, task := h.uc.Add(in.Time, in.Days)
	out := createResponse{alarmResponse: h.toResponse(a)}

	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait && task != nil {
		select {
		case <-task.Done():
			out.Device = toDeviceResponse(task.Wait())
		case <-r.Context().Done():
		}
	}

	h.writeJSON(w, http.StatusCreated, out)
}

func toDeviceResponse(res device.Result) *deviceResponse {
	out := &deviceResponse{Status: res.StatusCode, Body: res.Body}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	return out
}

func (h *alarmRoutes) toggle(w http.ResponseWriter, r *http.Request) {
	id, err := alarmID(r)
	if err != nil {
		h.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	a, ok := h.uc.Toggle(id)
	if !ok {
		h.errorJSON(w, http.StatusNotFound, "alarm not found")
		return
	}
	h.writeJSON(w, http.StatusOK, h.toResponse(a))
}

func (h *alarmRoutes) delete(w http.ResponseWriter, r *http.Request) {
	id, err := alarmID(r)
	if err != nil {
		h.errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	switch err := h.uc.Remove(id, alarm.Answer(confirmed)); {
	case errors.Is(err, usecase.ErrNotFound):
		h.errorJSON(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrNotConfirmed):
		h.errorJSON(w, http.StatusConflict, err.Error())
	case err != nil:
		h.errorJSON(w, http.StatusInternalServerError, err.Error())
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
