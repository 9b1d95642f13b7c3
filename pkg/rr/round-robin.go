package rr

import (
	"sync"
	"sync/atomic"
)

type RoundRobin[T any] interface {
	Next() (T, bool)
	Count() int
}

type rr[T any] struct {
	data  *atomic.Pointer[[]T]
	mu    *sync.Mutex
	index *atomic.Uint32
}

func New[T any](data *atomic.Pointer[[]T]) *rr[T] {
	return &rr[T]{
		data:  data,
		mu:    &sync.Mutex{},
		index: new(atomic.Uint32),
	}

}

// FromSlice wraps a fixed list.
func FromSlice[T any](items []T) *rr[T] {
	var list atomic.Pointer[[]T]
	list.Store(&items)
	return New(&list)
}

func (rr *rr[T]) Next() (T, bool) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	var zero T

	items := rr.data.Load()
	if items == nil || len(*items) == 0 {
		return zero, false
	}

	n := rr.index.Add(1)
	target := (*items)[(int(n)-1)%len(*items)]

	return target, true
}

func (rr *rr[T]) Count() int {
	items := rr.data.Load()
	if items == nil {
		return 0
	}
	return len(*items)
}
