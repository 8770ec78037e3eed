// ABOUTME: Session resolution on startup: token exchange or session probe
// ABOUTME: Runs to completion exactly once before any gated view renders

package auth

import (
	"context"
	"errors"

	"campusbot/internal/client"
)

// SessionAPI is the slice of the backend client the resolver needs.
type SessionAPI interface {
	CreateSession(ctx context.Context, handoffToken string) (*client.Identity, error)
	CurrentUser(ctx context.Context) (*client.Identity, error)
}

// Resolution is the outcome of a session resolution pass.
type Resolution struct {
	Identity   *client.Identity // nil when anonymous
	CleanedURL string           // redirect URL with the token stripped, "" when none was given
	Err        error            // non-nil only for unexpected exchange failures
}

// Resolver decides between the token exchange and the session probe.
type Resolver struct {
	api SessionAPI
}

// NewResolver creates a resolver over the given session API.
func NewResolver(api SessionAPI) *Resolver {
	return &Resolver{api: api}
}

// Resolve performs the startup identity resolution. When rawURL carries
// a handoff token the token is exchanged once; a rejected token or
// transport failure resolves to anonymous and is never retried. When no
// token is present the durable session is probed instead, and a probe
// miss is the expected anonymous outcome.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) Resolution {
	if rawURL != "" {
		token, cleaned, err := ExtractHandoffToken(rawURL)
		if err != nil {
			return Resolution{Err: err}
		}
		if token != "" {
			identity, err := r.api.CreateSession(ctx, token)
			if err != nil {
				// One-time token: no retry. The user lands on the
				// unauthenticated view.
				return Resolution{CleanedURL: cleaned, Err: err}
			}
			return Resolution{Identity: identity, CleanedURL: cleaned}
		}
		// Token already consumed or never present; fall through to probe.
	}

	identity, err := r.api.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, client.ErrNotAuthenticated) {
			return Resolution{}
		}
		return Resolution{Err: err}
	}
	return Resolution{Identity: identity}
}
