package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/status-im/market-dashboard/events"
	"github.com/status-im/market-dashboard/interfaces"
)

// LoadFunc produces the data of a resource, usually through the fetch cache
type LoadFunc[T any] func(ctx context.Context) (T, interfaces.CacheStatus, error)

// Snapshot is a consistent copy of a resource
type Snapshot[T any] struct {
	State      State
	Key        string
	Data       T
	HasData    bool
	Err        error
	Stale      bool
	Status     interfaces.CacheStatus
	UpdatedAt  time.Time
	Generation uint64
	// Superseded is set on the result of a load that finished after a newer
	// one was issued; such a result is returned to its caller but not stored.
	Superseded bool
}

// Resource is a single piece of dashboard data moving through
// Idle -> Loading -> Ready | Errored. Every load takes a new generation and
// only the newest generation may publish its outcome.
type Resource[T any] struct {
	mu         sync.Mutex
	topic      string
	events     events.ISubscriptionManager
	now        func() time.Time
	state      State
	key        string
	data       T
	hasData    bool
	err        error
	status     interfaces.CacheStatus
	updatedAt  time.Time
	generation uint64
}

// NewResource creates an idle resource. State changes are emitted on topic
// when em is not nil.
func NewResource[T any](topic string, em events.ISubscriptionManager) *Resource[T] {
	return &Resource[T]{
		topic:  topic,
		events: em,
		now:    time.Now,
	}
}

// Load moves the resource to Loading and runs load. The outcome is stored
// only if no other load started in the meantime. On failure the last good
// data is kept and reported as stale.
func (r *Resource[T]) Load(ctx context.Context, key string, load LoadFunc[T]) Snapshot[T] {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	if r.key != key {
		// data of another key is never shown as stale
		var zero T
		r.data, r.hasData, r.updatedAt = zero, false, time.Time{}
	}
	r.key = key
	r.state = Loading
	r.mu.Unlock()
	r.emit(ctx, key)

	data, status, err := load(ctx)

	r.mu.Lock()
	if gen != r.generation {
		snap := Snapshot[T]{
			Key:        key,
			Err:        err,
			Status:     status,
			Generation: gen,
			Superseded: true,
		}
		if err != nil {
			// the failed caller still sees the last good data of its key
			snap.State = Errored
			if r.key == key && r.hasData {
				snap.Data, snap.HasData, snap.UpdatedAt, snap.Stale = r.data, true, r.updatedAt, true
			}
		} else {
			snap.State, snap.Data, snap.HasData, snap.UpdatedAt = Ready, data, true, r.now()
		}
		r.mu.Unlock()
		return snap
	}

	if err != nil {
		r.state = Errored
		r.err = err
		r.status = ""
	} else {
		r.state = Ready
		r.data = data
		r.hasData = true
		r.err = nil
		r.status = status
		r.updatedAt = r.now()
	}
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.emit(ctx, key)
	return snap
}

// Snapshot returns the current state of the resource
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Resource[T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{
		State:      r.state,
		Key:        r.key,
		Data:       r.data,
		HasData:    r.hasData,
		Err:        r.err,
		Stale:      r.state == Errored && r.hasData,
		Status:     r.status,
		UpdatedAt:  r.updatedAt,
		Generation: r.generation,
	}
}

func (r *Resource[T]) emit(ctx context.Context, key string) {
	if r.events == nil {
		return
	}
	r.events.Emit(ctx, events.Topic(r.topic, key))
}

// Group holds one resource per key, created on first use
type Group[T any] struct {
	mu        sync.Mutex
	topic     string
	events    events.ISubscriptionManager
	resources map[string]*Resource[T]
}

// NewGroup creates an empty group whose resources emit on topic
func NewGroup[T any](topic string, em events.ISubscriptionManager) *Group[T] {
	return &Group[T]{
		topic:     topic,
		events:    em,
		resources: make(map[string]*Resource[T]),
	}
}

// Get returns the resource of key, creating it if needed
func (g *Group[T]) Get(key string) *Resource[T] {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.resources[key]
	if !ok {
		r = NewResource[T](g.topic, g.events)
		g.resources[key] = r
	}
	return r
}

// Lookup returns the resource of key if it was ever used
func (g *Group[T]) Lookup(key string) (*Resource[T], bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.resources[key]
	return r, ok
}
