package consumer

import (
	"sync"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/models"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/services"
)

type receivedEntry struct {
	id uint64
	fn func(models.ReceivedNotification)
}

type responseEntry struct {
	id uint64
	fn func(models.NotificationResponse)
}

// Listeners fans device events out to registered callbacks.
type Listeners struct {
	mu        sync.RWMutex
	nextID    uint64
	received  []receivedEntry
	responses []responseEntry
}

func NewListeners() *Listeners {
	return &Listeners{}
}

func (l *Listeners) AddReceivedListener(fn func(models.ReceivedNotification)) services.Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := l.nextID
	l.received = append(l.received, receivedEntry{id: id, fn: fn})
	return &subscription{remove: func() { l.removeReceived(id) }}
}

func (l *Listeners) AddResponseListener(fn func(models.NotificationResponse)) services.Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := l.nextID
	l.responses = append(l.responses, responseEntry{id: id, fn: fn})
	return &subscription{remove: func() { l.removeResponse(id) }}
}

func (l *Listeners) removeReceived(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.received {
		if e.id == id {
			l.received = append(l.received[:i], l.received[i+1:]...)
			return
		}
	}
}

func (l *Listeners) removeResponse(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.responses {
		if e.id == id {
			l.responses = append(l.responses[:i], l.responses[i+1:]...)
			return
		}
	}
}

// Active returns how many listeners are registered.
func (l *Listeners) Active() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.received) + len(l.responses)
}

// EmitReceived calls every received listener in registration order.
func (l *Listeners) EmitReceived(n models.ReceivedNotification) {
	l.mu.RLock()
	entries := append([]receivedEntry(nil), l.received...)
	l.mu.RUnlock()
	for _, e := range entries {
		e.fn(n)
	}
}

// EmitResponse calls every response listener in registration order.
func (l *Listeners) EmitResponse(r models.NotificationResponse) {
	l.mu.RLock()
	entries := append([]responseEntry(nil), l.responses...)
	l.mu.RUnlock()
	for _, e := range entries {
		e.fn(r)
	}
}

type subscription struct {
	once   sync.Once
	remove func()
}

func (s *subscription) Remove() {
	s.once.Do(s.remove)
}
