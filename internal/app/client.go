package app

import (
	"sync"
	"time"

	"github.com/olwandejj/Quizzify/internal/domain"
)

// ClientState is the server-side state of one app instance: its navigation
// screen, its quiz session, and the subscribers watching it. Several
// connections may watch the same state, e.g. after a reconnect race.
type ClientState struct {
	id        string
	createdAt time.Time
	now       func() time.Time

	mu          sync.RWMutex
	name        string
	nav         *Navigator
	session     *QuizSession
	subscribers map[chan domain.ScreenView]struct{}
}

func newClientState(id string) *ClientState {
	return newClientStateWithClock(id, time.Now)
}

// newClientStateWithClock allows deterministic timestamps in tests.
func newClientStateWithClock(id string, now func() time.Time) *ClientState {
	return &ClientState{
		id:          id,
		createdAt:   now(),
		now:         now,
		nav:         NewNavigator(),
		session:     NewQuizSession(),
		subscribers: make(map[chan domain.ScreenView]struct{}),
	}
}

// NewClientState is exported for infrastructure layers that need to seed states.
func NewClientState(id string) *ClientState {
	return newClientState(id)
}

// NewClientStateWithClock is test-only for deterministic timestamps.
func NewClientStateWithClock(id string, now func() time.Time) *ClientState {
	return newClientStateWithClock(id, now)
}

// ID returns the stable client identifier.
func (c *ClientState) ID() string {
	return c.id
}

// Name returns the display name captured at login or registration.
func (c *ClientState) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// Screen returns the client's current screen.
func (c *ClientState) Screen() domain.Screen {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nav.Screen()
}

// IsInactive reports whether the state can be dropped: nobody is watching it
// and the client is back on the login screen with nothing worth keeping.
func (c *ClientState) IsInactive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subscribers) == 0 && c.nav.Screen() == domain.ScreenLogin
}

// subscribeLocked registers a watcher primed with the given view. The caller
// holds mu and composes the initial view for the current screen.
func (c *ClientState) subscribeLocked(initial domain.ScreenView) (<-chan domain.ScreenView, func()) {
	ch := make(chan domain.ScreenView, 8)
	c.subscribers[ch] = struct{}{}
	ch <- initial

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subscribers[ch]; ok {
			delete(c.subscribers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// broadcastLocked pushes a view to every subscriber without blocking on slow
// ones: a full channel loses its oldest update first.
func (c *ClientState) broadcastLocked(view domain.ScreenView) {
	for ch := range c.subscribers {
		select {
		case ch <- view:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
}
