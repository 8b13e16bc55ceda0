package services

import (
	"sync"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_demo/internal/models"
)

// Snapshot is what the screen renders at a point in time.
type Snapshot struct {
	Token        models.PushToken             `json:"token"`
	Notification *models.ReceivedNotification `json:"notification,omitempty"`
}

// View holds the two UI-local entities. Listener callbacks arrive on other
// goroutines, so every access goes through the mutex.
type View struct {
	mu           sync.RWMutex
	token        models.PushToken
	notification *models.ReceivedNotification
}

func NewView() *View {
	return &View{token: models.PushToken{State: models.TokenUnset}}
}

func (v *View) setToken(value string, state models.TokenState) {
	v.mu.Lock()
	v.token = models.PushToken{Value: value, State: state}
	v.mu.Unlock()
}

func (v *View) setNotification(n models.ReceivedNotification) {
	v.mu.Lock()
	v.notification = &n
	v.mu.Unlock()
}

// Token returns the currently held token, whatever its state.
func (v *View) Token() models.PushToken {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.token
}

// Snapshot copies the current state.
func (v *View) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	s := Snapshot{Token: v.token}
	if v.notification != nil {
		n := *v.notification
		s.Notification = &n
	}
	return s
}
