// Package usecase wires the alarm registry to the page and the device.
package usecase

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/Raimguzhinov/alarm-go/internal/alarm"
	"github.com/Raimguzhinov/alarm-go/internal/device"
	"github.com/Raimguzhinov/alarm-go/pkg/logger"
)

var (
	ErrNotFound     = errors.New("alarm not found")
	ErrNotConfirmed = errors.New("deletion not confirmed")
)

// Observer is told about the new registry state after every change.
type Observer interface {
	AlarmsChanged(alarms []alarm.Alarm)
}

// Dispatcher sends a created alarm to the device in the background.
type Dispatcher interface {
	Dispatch(a alarm.Alarm) *device.Task
}

// Alarms is the page controller: every mutation is followed by a full
// re-render, and only creation reaches the device.
//
// mu orders mutations with the renders they trigger, so observers always
// see snapshots in the order the registry changed.
type Alarms struct {
	mu sync.Mutex

	registry  *alarm.Registry
	notifier  Dispatcher
	observers []Observer
	log       *logger.Logger
}

func NewAlarms(registry *alarm.Registry, notifier Dispatcher, l *logger.Logger, observers ...Observer) *Alarms {
	return &Alarms{
		registry:  registry,
		notifier:  notifier,
		observers: observers,
		log:       l.With(slog.String("component", "usecase/alarms")),
	}
}

// Add stores a new enabled alarm, redraws, and pushes its time to the
// device. The returned task may be ignored.
func (uc *Alarms) Add(t string, days []string) (alarm.Alarm, *device.Task) {
	uc.mu.Lock()
	a := uc.registry.Add(t, days)
	uc.log.Info("alarm added",
		logger.AlarmID(a.ID),
		slog.String("time", a.Time),
		slog.Any("days", a.Days),
	)
	uc.changed()
	uc.mu.Unlock()

	return a, uc.notifier.Dispatch(a)
}

// Toggle flips the enabled flag locally. Unknown ids are a silent no-op.
func (uc *Alarms) Toggle(id int64) (alarm.Alarm, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	a, ok := uc.registry.Toggle(id)
	if !ok {
		return alarm.Alarm{}, false
	}
	uc.log.Info("alarm toggled", logger.AlarmID(id), slog.Bool("enabled", a.Enabled))
	uc.changed()
	return a, true
}

// Delete removes the alarm once c confirms.
func (uc *Alarms) Delete(id int64, c alarm.Confirmer) bool {
	return uc.Remove(id, c) == nil
}

// Remove is Delete that tells an unknown id (ErrNotFound) apart from a
// refused confirmation (ErrNotConfirmed).
func (uc *Alarms) Remove(id int64, c alarm.Confirmer) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, ok := uc.registry.Get(id); !ok {
		return ErrNotFound
	}
	if !uc.registry.Delete(id, c) {
		uc.log.Debug("alarm kept", logger.AlarmID(id))
		return ErrNotConfirmed
	}
	uc.log.Info("alarm deleted", logger.AlarmID(id))
	uc.changed()
	return nil
}

func (uc *Alarms) List() []alarm.Alarm {
	return uc.registry.List()
}

func (uc *Alarms) Get(id int64) (alarm.Alarm, bool) {
	return uc.registry.Get(id)
}

// changed must be called with mu held.
func (uc *Alarms) changed() {
	if len(uc.observers) == 0 {
		return
	}
	snapshot := uc.registry.List()
	for _, o := range uc.observers {
		o.AlarmsChanged(snapshot)
	}
}
