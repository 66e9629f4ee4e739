package events

import (
	"context"
	"strings"
	"sync"
)

// Topics emitted by the dashboard
const (
	TopicTable    = "table"
	TopicTrending = "trending"
	TopicCoinPage = "coin_page"
)

// Topic builds a topic scoped to a key, e.g. Topic(TopicTrending, "inr") is "trending:inr"
func Topic(base, key string) string {
	if key == "" {
		return base
	}
	return base + ":" + strings.ToLower(key)
}

// ISubscription defines the contract for subscription objects
type ISubscription interface {
	// Chan returns a read-only channel for self-handling events
	Chan() <-chan struct{}
	// Cancel unsubscribes and closes the channel. Safe for repeated calls
	Cancel()
	// Watch starts a goroutine that calls cb on each event
	// If callNow is true, cb is called immediately
	// When parentCtx finishes, the subscription is automatically cancelled
	Watch(parentCtx context.Context, cb func(), callNow bool) ISubscription
}

// ISubscriptionManager defines the contract for managing subscriptions
type ISubscriptionManager interface {
	// Subscribe creates a subscription to the given topics; no topics means all of them
	Subscribe(topics ...string) ISubscription
	// Unsubscribe removes a subscription by its channel
	Unsubscribe(ch chan struct{})
	// Emit notifies the subscribers of topic (non-blocking if their channel is full)
	Emit(ctx context.Context, topic string)
}

type Subscription struct {
	ch     chan struct{}
	topics map[string]struct{}
	mgr    *SubscriptionManager
	cancel context.CancelFunc
	once   sync.Once
}

// Chan returns a read-only channel for self-handling events.
// Notifications that arrive while one is pending are merged into it.
func (s *Subscription) Chan() <-chan struct{} { return s.ch }

// Cancel unsubscribes and closes the channel. Safe for repeated calls.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.mgr.Unsubscribe(s.ch)
	})
}

// Watch starts a goroutine that calls cb on each event.
// If callNow is true, cb is called immediately.
// When parentCtx finishes, the subscription is automatically cancelled.
func (s *Subscription) Watch(parentCtx context.Context, cb func(), callNow bool) ISubscription {
	ctx, cancel := context.WithCancel(parentCtx)
	s.cancel = cancel

	if callNow {
		cb()
	}

	go func(ctx context.Context) {
		defer s.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-s.ch:
				if !ok {
					return
				}
				cb()
			}
		}
	}(ctx)

	return s
}

func (s *Subscription) wants(topic string) bool {
	if len(s.topics) == 0 {
		return true
	}
	_, ok := s.topics[topic]
	return ok
}

type SubscriptionManager struct {
	mu          sync.RWMutex
	subscribers map[chan struct{}]*Subscription
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subscribers: make(map[chan struct{}]*Subscription),
	}
}

func (m *SubscriptionManager) Subscribe(topics ...string) ISubscription {
	sub := &Subscription{
		ch:     make(chan struct{}, 1),
		topics: make(map[string]struct{}, len(topics)),
		mgr:    m,
	}
	for _, topic := range topics {
		sub.topics[topic] = struct{}{}
	}

	m.mu.Lock()
	m.subscribers[sub.ch] = sub
	m.mu.Unlock()

	return sub
}

func (m *SubscriptionManager) Unsubscribe(ch chan struct{}) {
	m.mu.Lock()
	if _, ok := m.subscribers[ch]; ok {
		delete(m.subscribers, ch)
		close(ch)
	}
	m.mu.Unlock()
}

// Emit notifies every subscriber of topic (non-blocking if their channel is full).
func (m *SubscriptionManager) Emit(ctx context.Context, topic string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for ch, sub := range m.subscribers {
		if !sub.wants(topic) {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case ch <- struct{}{}:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscriptions
func (m *SubscriptionManager) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}
