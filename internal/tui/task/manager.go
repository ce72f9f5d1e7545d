// Package task tracks background fetches: each spawned task gets a uuid
// handle registered under a class, spawning a new task in a class cancels
// the one already running there, and a shared counter drives the loading
// spinner.
package task

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/glabrego/crates-cli/internal/tui/action"
)

// Class groups tasks that supersede each other: starting a new search
// cancels the in-flight search but leaves a summary fetch alone.
type Class string

const (
	ClassSearch  Class = "search"
	ClassDetail  Class = "detail"
	ClassSummary Class = "summary"
)

// Func is the body of a background task. It must honor ctx cancellation;
// report is how the task feeds actions back to the dispatcher.
type Func func(ctx context.Context, report func(action.Action))

// Manager owns the handle registry and the loading counter. Notify is
// called from task goroutines, so the function installed with SetNotify
// must be safe for concurrent use (bubbletea's Program.Send is).
type Manager struct {
	mu       sync.Mutex
	handles  map[Class]map[uuid.UUID]context.CancelFunc
	cleaners map[Class][]func()

	notify  atomic.Value // func(action.Action)
	loading atomic.Int64

	log *slog.Logger
}

func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := &Manager{
		handles:  make(map[Class]map[uuid.UUID]context.CancelFunc),
		cleaners: make(map[Class][]func()),
		log:      log,
	}
	m.notify.Store(func(action.Action) {})
	return m
}

// SetNotify installs the sink task goroutines report actions through.
func (m *Manager) SetNotify(fn func(action.Action)) {
	if fn == nil {
		fn = func(action.Action) {}
	}
	m.notify.Store(fn)
}

// OnCancel registers a cleanup run whenever the class is cancelled, e.g.
// clearing the result slot the class writes into.
func (m *Manager) OnCancel(class Class, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleaners[class] = append(m.cleaners[class], fn)
}

// Loading reports whether any task is in flight.
func (m *Manager) Loading() bool {
	return m.loading.Load() > 0
}

// Spawn cancels whatever is running in the class, registers a fresh handle
// and starts fn in a goroutine. The task's final report is always a
// ClearTaskHandle carrying its own id, sent after fn returns on every exit
// path.
func (m *Manager) Spawn(class Class, fn Func) uuid.UUID {
	m.cancelClass(class)

	id := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())

	m.mu.Lock()
	if m.handles[class] == nil {
		m.handles[class] = make(map[uuid.UUID]context.CancelFunc)
	}
	m.handles[class][id] = cancel
	m.mu.Unlock()

	m.loading.Add(1)
	m.log.Debug("task spawned", "class", string(class), "id", id)

	go func() {
		defer func() {
			m.loading.Add(-1)
			m.report(action.ClearTaskHandle{ID: id})
		}()
		fn(ctx, m.report)
	}()
	return id
}

// CancelClass stops every task registered under the class and runs its
// cleaners. The cancelled goroutines still self-report ClearTaskHandle;
// by then the handle is gone, which Clear treats as a no-op.
func (m *Manager) CancelClass(class Class) {
	m.cancelClass(class)
}

func (m *Manager) cancelClass(class Class) {
	m.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(m.handles[class]))
	for _, cancel := range m.handles[class] {
		cancels = append(cancels, cancel)
	}
	delete(m.handles, class)
	cleaners := m.cleaners[class]
	m.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	for _, fn := range cleaners {
		fn()
	}
	if len(cancels) > 0 {
		m.log.Debug("task class cancelled", "class", string(class), "count", len(cancels))
	}
}

// Clear removes a finished task's handle. Unknown ids are fine: the task
// may have been cancelled and deregistered before its self-report arrived.
func (m *Manager) Clear(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for class, handles := range m.handles {
		if cancel, ok := handles[id]; ok {
			cancel()
			delete(handles, id)
			if len(handles) == 0 {
				delete(m.handles, class)
			}
			return
		}
	}
}

// Pending returns the number of registered handles in a class.
func (m *Manager) Pending(class Class) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handles[class])
}

func (m *Manager) report(a action.Action) {
	m.notify.Load().(func(action.Action))(a)
}
