package utils

import "sync"

// OnceValue is a value that is set exactly once and can be awaited.
type OnceValue[T any] struct {
	once  sync.Once
	value T
	done  chan struct{}
}

func NewOnceValue[T any]() *OnceValue[T] {
	ov := &OnceValue[T]{
		done: make(chan struct{}),
	}
	return ov
}

// Set stores value and releases waiters. Later calls are ignored and
// report false.
func (ov *OnceValue[T]) Set(value T) bool {
	set := false
	ov.once.Do(func() {
		ov.value = value
		close(ov.done)
		set = true
	})
	return set
}

// Get blocks until the value is set.
func (ov *OnceValue[T]) Get() T {
	<-ov.done
	return ov.value
}

func (ov *OnceValue[T]) Done() <-chan struct{} {
	return ov.done
}
