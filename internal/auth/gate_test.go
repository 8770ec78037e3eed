// ABOUTME: Tests for the access gate state machine
// ABOUTME: Verifies single resolution, role routing, and logout transitions

package auth

import (
	"testing"

	"campusbot/internal/client"
)

func TestGate_StartsResolving(t *testing.T) {
	g := NewGate()
	if g.State() != StateResolving {
		t.Errorf("expected StateResolving, got %v", g.State())
	}
	if g.Identity() != nil {
		t.Error("expected nil identity while resolving")
	}
}

func TestGate_ResolveIdentity(t *testing.T) {
	tests := []struct {
		name    string
		isAdmin bool
		want    State
	}{
		{"standard user", false, StateStandard},
		{"admin user", true, StateAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGate()
			err := g.ResolveIdentity(&client.Identity{ID: "u-1", IsAdmin: tt.isAdmin})
			if err != nil {
				t.Fatalf("ResolveIdentity failed: %v", err)
			}
			if g.State() != tt.want {
				t.Errorf("state = %v, want %v", g.State(), tt.want)
			}
		})
	}
}

func TestGate_ResolvesOnlyOnce(t *testing.T) {
	g := NewGate()
	if err := g.ResolveAnonymous(); err != nil {
		t.Fatalf("first resolution failed: %v", err)
	}
	if err := g.ResolveIdentity(&client.Identity{ID: "u-1"}); err != ErrAlreadyResolved {
		t.Errorf("expected ErrAlreadyResolved, got %v", err)
	}
	if err := g.ResolveAnonymous(); err != ErrAlreadyResolved {
		t.Errorf("expected ErrAlreadyResolved, got %v", err)
	}
}

func TestGate_SignInFromAnonymous(t *testing.T) {
	g := NewGate()
	g.ResolveAnonymous()

	if err := g.SignIn(&client.Identity{ID: "u-1", IsAdmin: true}); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if g.State() != StateAdmin {
		t.Errorf("expected StateAdmin, got %v", g.State())
	}
}

func TestGate_SignInRequiresAnonymous(t *testing.T) {
	g := NewGate()
	g.ResolveIdentity(&client.Identity{ID: "u-1"})

	if err := g.SignIn(&client.Identity{ID: "u-2"}); err != ErrAlreadyResolved {
		t.Errorf("expected ErrAlreadyResolved from authenticated state, got %v", err)
	}
}

func TestGate_Logout(t *testing.T) {
	g := NewGate()
	g.ResolveIdentity(&client.Identity{ID: "u-1", IsAdmin: true})

	g.Logout()
	if g.State() != StateAnonymous {
		t.Errorf("expected StateAnonymous after logout, got %v", g.State())
	}
	if g.Identity() != nil {
		t.Error("expected identity cleared after logout")
	}

	// No-op when already anonymous
	g.Logout()
	if g.State() != StateAnonymous {
		t.Errorf("expected logout to stay anonymous, got %v", g.State())
	}
}

func TestGate_LogoutWhileResolvingIsNoop(t *testing.T) {
	g := NewGate()
	g.Logout()
	if g.State() != StateResolving {
		t.Errorf("logout must not interrupt resolution, got %v", g.State())
	}
}

func TestGate_RouteFor(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*Gate)
		requested View
		want      View
	}{
		{"anonymous chat redirects to landing", func(g *Gate) { g.ResolveAnonymous() }, ViewChat, ViewLanding},
		{"anonymous admin redirects to landing", func(g *Gate) { g.ResolveAnonymous() }, ViewAdmin, ViewLanding},
		{"standard chat allowed", func(g *Gate) { g.ResolveIdentity(&client.Identity{}) }, ViewChat, ViewChat},
		{"standard admin redirects to chat", func(g *Gate) { g.ResolveIdentity(&client.Identity{}) }, ViewAdmin, ViewChat},
		{"admin admin allowed", func(g *Gate) { g.ResolveIdentity(&client.Identity{IsAdmin: true}) }, ViewAdmin, ViewAdmin},
		{"resolving routes to landing", func(g *Gate) {}, ViewChat, ViewLanding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGate()
			tt.setup(g)
			if got := g.RouteFor(tt.requested); got != tt.want {
				t.Errorf("RouteFor(%v) = %v, want %v", tt.requested, got, tt.want)
			}
		})
	}
}
