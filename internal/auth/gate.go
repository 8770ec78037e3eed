// ABOUTME: Access gate state machine for identity and role gating
// ABOUTME: Resolves exactly once per run, then routes view requests by role

package auth

import (
	"errors"

	"campusbot/internal/client"
)

// State is the gate's resolution state.
type State int

const (
	// StateResolving means identity is still unknown; no route-dependent
	// view may render yet.
	StateResolving State = iota
	// StateAnonymous means no identity; only the landing view is reachable.
	StateAnonymous
	// StateStandard means an authenticated non-admin identity.
	StateStandard
	// StateAdmin means an authenticated admin identity.
	StateAdmin
)

// View is a gated view class.
type View int

const (
	ViewLanding View = iota
	ViewChat
	ViewAdmin
)

// ErrAlreadyResolved is returned when a second resolution is attempted
// in the same run. Resolution happens exactly once per process start.
var ErrAlreadyResolved = errors.New("session already resolved")

// Gate owns the process-wide authenticated identity. Leaf components
// never mutate it; they read the resolved state through the gate.
type Gate struct {
	state    State
	identity *client.Identity
}

// NewGate returns a gate in the resolving state.
func NewGate() *Gate {
	return &Gate{state: StateResolving}
}

// State returns the current gate state.
func (g *Gate) State() State {
	return g.state
}

// Identity returns the resolved identity, nil when anonymous or resolving.
func (g *Gate) Identity() *client.Identity {
	return g.identity
}

// ResolveIdentity moves the gate out of resolving with an authenticated
// identity. The role flag picks the authenticated state.
func (g *Gate) ResolveIdentity(identity *client.Identity) error {
	if g.state != StateResolving {
		return ErrAlreadyResolved
	}
	g.identity = identity
	if identity.IsAdmin {
		g.state = StateAdmin
	} else {
		g.state = StateStandard
	}
	return nil
}

// ResolveAnonymous moves the gate out of resolving with no identity.
// An expired or missing session lands here; it is not an error.
func (g *Gate) ResolveAnonymous() error {
	if g.state != StateResolving {
		return ErrAlreadyResolved
	}
	g.identity = nil
	g.state = StateAnonymous
	return nil
}

// SignIn adopts an identity from the anonymous state. Only the token
// exchange path may call this; there is no way into an authenticated
// state that skips the exchange or the probe.
func (g *Gate) SignIn(identity *client.Identity) error {
	if g.state != StateAnonymous {
		return ErrAlreadyResolved
	}
	g.identity = identity
	if identity.IsAdmin {
		g.state = StateAdmin
	} else {
		g.state = StateStandard
	}
	return nil
}

// Logout discards the identity and returns the gate to anonymous.
// Valid from any authenticated state; a no-op when already anonymous.
func (g *Gate) Logout() {
	if g.state == StateResolving {
		return
	}
	g.identity = nil
	g.state = StateAnonymous
}

// RouteFor returns the view actually granted for a requested view,
// redirecting to the closest reachable one.
func (g *Gate) RouteFor(requested View) View {
	switch g.state {
	case StateAdmin:
		return requested
	case StateStandard:
		if requested == ViewAdmin {
			return ViewChat
		}
		return requested
	default:
		return ViewLanding
	}
}
