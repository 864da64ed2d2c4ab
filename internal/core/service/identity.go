package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/leadbook/crm-api/internal/core/domain"
	"github.com/leadbook/crm-api/internal/core/ports"
)

// IdentityResolver verifies a bearer token and resolves it to a user that
// still exists. Every failure is reported as domain.ErrUnauthenticated.
type IdentityResolver struct {
	tokens ports.TokenService
	users  ports.UserRepository
	cache  ports.IdentityCache // optional
	log    zerolog.Logger
}

// NewIdentityResolver returns an IdentityResolver. cache may be nil.
func NewIdentityResolver(tokens ports.TokenService, users ports.UserRepository, cache ports.IdentityCache, log zerolog.Logger) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, users: users, cache: cache, log: log}
}

func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	userID, err := r.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	// Cache failures are non-fatal; fall through to the store.
	if r.cache != nil {
		user, ok, err := r.cache.Get(ctx, userID)
		if err != nil {
			r.log.Warn().Err(err).Str("user_id", userID).Msg("identity cache read failed")
		} else if ok {
			return user, nil
		}
	}

	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			r.forget(ctx, userID)
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, user); err != nil {
			r.log.Warn().Err(err).Str("user_id", userID).Msg("identity cache write failed")
		}
	}
	return user, nil
}

// forget drops a cached identity whose user no longer exists.
func (r *IdentityResolver) forget(ctx context.Context, userID string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx, userID); err != nil {
		r.log.Warn().Err(err).Str("user_id", userID).Msg("identity cache invalidate failed")
	}
}
