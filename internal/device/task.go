package device

import (
	"sync"

	"github.com/Raimguzhinov/alarm-go/internal/alarm"
	"github.com/Raimguzhinov/alarm-go/pkg/utils"
)

// Task is the handle of one background notification. Callers may wait on
// it, ignore it, or attach completion callbacks.
type Task struct {
	Alarm alarm.Alarm

	result *utils.OnceValue[Result]

	mu        sync.Mutex
	callbacks []func(Result)
}

func newTask(a alarm.Alarm) *Task {
	return &Task{Alarm: a, result: utils.NewOnceValue[Result]()}
}

// Done is closed once the notification finished.
func (t *Task) Done() <-chan struct{} {
	return t.result.Done()
}

// Wait blocks until the notification finished and returns its result.
func (t *Task) Wait() Result {
	return t.result.Get()
}

// OnComplete registers fn to run with the result. If the task already
// finished fn runs immediately on the calling goroutine.
func (t *Task) OnComplete(fn func(Result)) {
	t.mu.Lock()
	select {
	case <-t.result.Done():
		t.mu.Unlock()
		fn(t.result.Get())
		return
	default:
	}
	t.callbacks = append(t.callbacks, fn)
	t.mu.Unlock()
}

func (t *Task) complete(r Result) {
	t.mu.Lock()
	if !t.result.Set(r) {
		t.mu.Unlock()
		return
	}
	callbacks := t.callbacks
	t.callbacks = nil
	t.mu.Unlock()

	for _, fn := range callbacks {
		fn(r)
	}
}
