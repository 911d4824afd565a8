package view

import (
	"errors"
	"sync"
)

// ErrLoginRequired is returned when navigating to a member screen while
// logged out.
var ErrLoginRequired = errors.New("login required")

// Navigator holds the single active screen.
type Navigator struct {
	mu      sync.Mutex
	current Screen
}

// NewNavigator starts on the landing screen.
func NewNavigator() *Navigator {
	return &Navigator{current: Landing{}}
}

// Current returns the active screen.
func (n *Navigator) Current() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Go switches to s. loggedIn gates screens that need a user.
func (n *Navigator) Go(s Screen, loggedIn bool) error {
	if RequiresUser(s) && !loggedIn {
		return ErrLoginRequired
	}
	n.mu.Lock()
	n.current = s
	n.mu.Unlock()
	return nil
}

// LoggedIn lands the user on the dashboard.
func (n *Navigator) LoggedIn() {
	n.mu.Lock()
	n.current = Dashboard{}
	n.mu.Unlock()
}

// LoggedOut returns to the landing screen.
func (n *Navigator) LoggedOut() {
	n.mu.Lock()
	n.current = Landing{}
	n.mu.Unlock()
}
