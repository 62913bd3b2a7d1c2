package realtime

import (
	"context"
	"errors"
	"sync"
)

// Memory is the in-process transport: a fan-out hub with no external
// broker. It backs tests and single-binary deployments.
type Memory struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	closed bool
}

var _ Client = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{subs: make(map[chan Event]struct{})}
}

// Publish fans the event out to every subscriber. A subscriber whose
// buffer is full misses the event; that is acceptable because consumers
// refetch the full snapshot on any event, so a later one supersedes it.
func (m *Memory) Publish(ctx context.Context, e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errors.New("transport closed")
	}
	for ch := range m.subs {
		select {
		case ch <- e:
		default:
		}
	}
	return nil
}

// Subscribe registers a buffered subscriber channel, removed when the
// context is done.
func (m *Memory) Subscribe(ctx context.Context) (<-chan Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, errors.New("transport closed")
	}

	ch := make(chan Event, 16)
	m.subs[ch] = struct{}{}

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.subs[ch]; ok {
			delete(m.subs, ch)
			close(ch)
		}
	}()

	return ch, nil
}

func (m *Memory) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for ch := range m.subs {
		delete(m.subs, ch)
		close(ch)
	}
	return nil
}
