// Package session provides an injectable store for bearer-token
// sessions: in-memory for tests, Redis for deployments.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Store maps opaque session tokens to user ids.
type Store interface {
	Set(ctx context.Context, token, userID string, ttl time.Duration) error

	// Get returns the userID for token, or ErrNotFound when the token
	// is unknown or expired.
	Get(ctx context.Context, token string) (string, error)

	Delete(ctx context.Context, token string) error

	Close() error
}
