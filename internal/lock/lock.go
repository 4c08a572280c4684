// Package lock guards the record store's append path so that concurrent
// writers never interleave partial lines.
package lock

import (
	"context"
	"sync"
)

// Locker serializes appends to the record store. Acquire blocks until the
// lock is held or ctx is done, and returns the release function.
type Locker interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// Mutex is the in-process Locker used when the service is the only writer.
type Mutex struct {
	mu sync.Mutex
}

func NewMutex() *Mutex {
	return &Mutex{}
}

func (m *Mutex) Acquire(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	return m.mu.Unlock, nil
}

var _ Locker = (*Mutex)(nil)
