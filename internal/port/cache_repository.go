package port

import (
	"context"
	"time"

	"github.com/acruxa/storefront/internal/core/domain"
)

type CacheRepository interface {
	// SetIdempotency sets a key for idempotency check, returns false if already exists
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// DeleteIdempotency releases a key so a client may retry after a failed attempt
	DeleteIdempotency(ctx context.Context, key string) error
}

// SessionStore stands in for the external auth provider: it resolves bearer
// tokens to authenticated users.
type SessionStore interface {
	PutSession(ctx context.Context, s domain.Session, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (*domain.Session, error)
	DeleteSession(ctx context.Context, token string) error
}
