// Package device pushes newly created alarms to the ESP32.
//
// The device only ever receives the alarm time: days, toggles and
// deletions stay on this side.
package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/Raimguzhinov/alarm-go/internal/alarm"
	"github.com/Raimguzhinov/alarm-go/pkg/logger"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"
)

const (
	formContentType  = "application/x-www-form-urlencoded"
	_defaultInFlight = 8
	consoleErrPrefix = "Error sending alarm: "
)

var (
	// ErrDeviceStatus is returned when the device answers with a non-2xx status.
	ErrDeviceStatus = errors.New("device answered with error status")
	// ErrTooManyInFlight is returned when a dispatch is dropped because too
	// many notifications are still waiting for the device.
	ErrTooManyInFlight = errors.New("too many notifications in flight")
)

// Result is the outcome of one notification.
type Result struct {
	AlarmID    int64
	StatusCode int
	Body       string
	Duration   time.Duration
	Err        error
}

func (r Result) OK() bool { return r.Err == nil }

// Console receives the text a browser console would have shown.
type Console interface {
	Log(text string)
	Error(text string)
}

type Notifier struct {
	url     string
	client  *resty.Client
	log     *logger.Logger
	metrics *Metrics
	console Console

	group errgroup.Group
}

type Option func(*Notifier)

// Timeout sets the client timeout. Zero keeps the client without one.
func Timeout(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.client.SetTimeout(d)
		}
	}
}

// MaxInFlight caps concurrent background notifications.
func MaxInFlight(size int) Option {
	return func(n *Notifier) {
		if size > 0 {
			n.group.SetLimit(size)
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(n *Notifier) {
		n.metrics = m
	}
}

func WithConsole(c Console) Option {
	return func(n *Notifier) {
		n.console = c
	}
}

// New -.
func New(deviceURL string, l *logger.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		url:    deviceURL,
		client: resty.New(),
		log:    l.With(slog.String("component", "device/notifier")),
	}
	n.group.SetLimit(_defaultInFlight)

	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify posts the alarm time to the device and waits for the answer.
func (n *Notifier) Notify(ctx context.Context, a alarm.Alarm) Result {
	form := url.Values{"time": {a.Time}}

	start := time.Now()
	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", formContentType).
		SetBody(form.Encode()).
		Post(n.url)

	res := Result{AlarmID: a.ID, Duration: time.Since(start)}
	switch {
	case err != nil:
		res.Err = fmt.Errorf("device - Notify - Post: %w", err)
	case resp.StatusCode() < 200 || resp.StatusCode() > 299:
		res.StatusCode = resp.StatusCode()
		res.Body = resp.String()
		res.Err = fmt.Errorf("device - Notify - status %d: %w", resp.StatusCode(), ErrDeviceStatus)
	default:
		res.StatusCode = resp.StatusCode()
		res.Body = resp.String()
	}

	n.report(res)
	return res
}

// Dispatch notifies the device in the background. The returned task is
// never nil; when the in-flight limit is reached it is already completed
// with ErrTooManyInFlight.
func (n *Notifier) Dispatch(a alarm.Alarm) *Task {
	task := newTask(a)

	started := n.group.TryGo(func() error {
		task.complete(n.Notify(context.Background(), a))
		return nil
	})
	if !started {
		res := Result{AlarmID: a.ID, Err: fmt.Errorf("device - Dispatch: %w", ErrTooManyInFlight)}
		n.report(res)
		task.complete(res)
	}
	return task
}

// Wait blocks until every dispatched notification has finished.
func (n *Notifier) Wait() {
	_ = n.group.Wait()
}

func (n *Notifier) report(r Result) {
	n.metrics.observe(r)

	if r.Err != nil {
		n.log.Error("error sending alarm",
			logger.AlarmID(r.AlarmID),
			logger.Err(r.Err),
			slog.String("body", r.Body),
		)
		if n.console != nil {
			n.console.Error(consoleErrPrefix + r.Err.Error())
		}
		return
	}

	n.log.Info("device answered",
		logger.AlarmID(r.AlarmID),
		slog.Int("status", r.StatusCode),
		slog.String("body", r.Body),
		slog.String("duration", r.Duration.String()),
	)
	if n.console != nil {
		n.console.Log(r.Body)
	}
}
