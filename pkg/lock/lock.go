package lock

import (
	"context"
	"sync"

	"golang.org/x/xerrors"
)

// Regex guards the word table.
const Regex = "regex"

var ErrBusy = xerrors.New("lock is held")

// Interface hands out named locks. The returned release func must be called
// exactly once, including when the critical section fails.
type Interface interface {
	Lock(ctx context.Context, name string) (func(), error)
	TryLock(ctx context.Context, name string) (func(), bool, error)
}

type Local struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocal() *Local {
	return &Local{locks: map[string]*sync.Mutex{}}
}

func (l *Local) get(name string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[name]
	if !ok {
		m = &sync.Mutex{}
		l.locks[name] = m
	}
	return m
}

func (l *Local) Lock(ctx context.Context, name string) (func(), error) {
	m := l.get(name)
	acquired := make(chan struct{})
	go func() {
		m.Lock()
		close(acquired)
	}()
	select {
	case <-acquired:
		return m.Unlock, nil
	case <-ctx.Done():
		// hand the mutex back once the pending Lock completes
		go func() {
			<-acquired
			m.Unlock()
		}()
		return nil, ctx.Err()
	}
}

func (l *Local) TryLock(_ context.Context, name string) (func(), bool, error) {
	m := l.get(name)
	if !m.TryLock() {
		return nil, false, nil
	}
	return m.Unlock, true, nil
}
