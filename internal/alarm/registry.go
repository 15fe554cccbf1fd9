package alarm

import (
	"sync"
	"time"
)

// Registry is the ordered collection of alarms for the lifetime of the
// process. Insertion order is kept; deletions do not reorder the rest.
type Registry struct {
	mu     sync.RWMutex
	alarms []Alarm
	lastID int64
	now    func() time.Time
}

type RegistryOption func(*Registry)

// WithClock overrides the time source used to derive ids.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.now = now
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// nextID derives an id from the clock in milliseconds. Ids are strictly
// increasing even when the clock stalls or goes backwards.
func (r *Registry) nextID() int64 {
	id := r.now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

// Add appends a new enabled alarm. Neither time nor days are validated.
func (r *Registry) Add(t string, days []string) Alarm {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := Alarm{
		ID:      r.nextID(),
		Time:    t,
		Days:    append(make([]string, 0, len(days)), days...),
		Enabled: true,
	}
	r.alarms = append(r.alarms, a)
	return a.clone()
}

// Toggle flips Enabled of the alarm with id. Unknown ids are ignored and
// reported with ok == false.
func (r *Registry) Toggle(id int64) (Alarm, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return Alarm{}, false
	}
	r.alarms[i].Enabled = !r.alarms[i].Enabled
	return r.alarms[i].clone(), true
}

// Delete removes the alarm with id once c confirms DeletePrompt. It reports
// whether an entry was removed; a denied confirmation leaves the registry
// untouched.
func (r *Registry) Delete(id int64, c Confirmer) bool {
	r.mu.RLock()
	found := r.indexOf(id) >= 0
	r.mu.RUnlock()
	if !found {
		return false
	}

	if c == nil || !c.Confirm(DeletePrompt) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// the entry may have gone while the user was deciding
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.alarms = append(r.alarms[:i], r.alarms[i+1:]...)
	return true
}

// Get returns a copy of the alarm with id.
func (r *Registry) Get(id int64) (Alarm, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return Alarm{}, false
	}
	return r.alarms[i].clone(), true
}

// List returns a snapshot of all alarms in insertion order.
func (r *Registry) List() []Alarm {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Alarm, len(r.alarms))
	for i, a := range r.alarms {
		out[i] = a.clone()
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.alarms)
}

func (r *Registry) indexOf(id int64) int {
	for i := range r.alarms {
		if r.alarms[i].ID == id {
			return i
		}
	}
	return -1
}
