// Package auth consolidates the portal's interchangeable identity
// backends behind one provider interface.
package auth

import (
	"context"
	"errors"

	"github.com/talkandgrow/referral-portal/internal/session"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Identity is the caller resolved for a request.
type Identity struct {
	UserID string
}

// IdentityProvider resolves the caller from the request's bearer
// token (which may be empty).
type IdentityProvider interface {
	Identify(ctx context.Context, bearerToken string) (Identity, error)
}

// StubProvider assigns every request the configured placeholder user.
// This reproduces the portal's known-incomplete auth wiring and is the
// default mode; switch auth_mode to "session" for real identity.
type StubProvider struct {
	UserID string
}

func NewStubProvider(userID string) *StubProvider {
	return &StubProvider{UserID: userID}
}

func (p *StubProvider) Identify(_ context.Context, _ string) (Identity, error) {
	return Identity{UserID: p.UserID}, nil
}

// SessionProvider resolves bearer tokens against the session store.
type SessionProvider struct {
	Sessions session.Store
}

func NewSessionProvider(sessions session.Store) *SessionProvider {
	return &SessionProvider{Sessions: sessions}
}

func (p *SessionProvider) Identify(ctx context.Context, bearerToken string) (Identity, error) {
	if bearerToken == "" {
		return Identity{}, ErrUnauthenticated
	}
	userID, err := p.Sessions.Get(ctx, bearerToken)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return Identity{}, ErrUnauthenticated
		}
		return Identity{}, err
	}
	return Identity{UserID: userID}, nil
}
