// Package view models which screen is active and what the dashboard shows.
package view

import (
	"errors"
	"fmt"
)

// Screen is one of the fixed set of top-level screens. The unexported
// method closes the set to this package.
type Screen interface {
	screen()
}

type (
	Landing   struct{}
	Login     struct{}
	Dashboard struct{}
	Profile   struct{}
	Research  struct{}
	Startups  struct{}
)

func (Landing) screen()   {}
func (Login) screen()     {}
func (Dashboard) screen() {}
func (Profile) screen()   {}
func (Research) screen()  {}
func (Startups) screen()  {}

// All lists every screen in display order.
var All = []Screen{Landing{}, Login{}, Dashboard{}, Profile{}, Research{}, Startups{}}

// ErrUnknownScreen is returned by Parse for names outside the fixed set.
var ErrUnknownScreen = errors.New("unknown screen")

// Name returns the wire name of s.
func Name(s Screen) string {
	switch s.(type) {
	case Landing:
		return "landing"
	case Login:
		return "login"
	case Dashboard:
		return "dashboard"
	case Profile:
		return "profile"
	case Research:
		return "research"
	case Startups:
		return "startups"
	}
	panic(fmt.Sprintf("view: unhandled screen %T", s))
}

// Parse resolves a wire name.
func Parse(name string) (Screen, error) {
	for _, s := range All {
		if Name(s) == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScreen, name)
}

// RequiresUser reports whether s can only be shown to a logged-in user.
func RequiresUser(s Screen) bool {
	switch s.(type) {
	case Landing, Login:
		return false
	case Dashboard, Profile, Research, Startups:
		return true
	}
	panic(fmt.Sprintf("view: unhandled screen %T", s))
}
