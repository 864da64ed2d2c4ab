package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leadbook/crm-api/internal/core/domain"
)

const defaultIdentityTTL = time.Minute

// IdentityCache keeps recently resolved users so that authenticated requests
// can skip the user lookup. Entries expire after ttl.
// Key format: auth:user:<user_id>
type IdentityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdentityCache creates an IdentityCache. A non-positive ttl falls back to
// one minute.
func NewIdentityCache(client *redis.Client, ttl time.Duration) *IdentityCache {
	if ttl <= 0 {
		ttl = defaultIdentityTTL
	}
	return &IdentityCache{client: client, ttl: ttl}
}

// cachedUser is the cached projection of a user. The password hash is never
// written to the cache.
type cachedUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *IdentityCache) Get(ctx context.Context, userID string) (*domain.User, bool, error) {
	raw, err := c.client.Get(ctx, identityKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("identity cache get: %w", err)
	}

	u, err := decodeUser(raw)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (c *IdentityCache) Set(ctx context.Context, u *domain.User) error {
	raw, err := encodeUser(u)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, identityKey(u.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("identity cache set: %w", err)
	}
	return nil
}

// Invalidate drops the entry of userID, if any.
func (c *IdentityCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, identityKey(userID)).Err(); err != nil {
		return fmt.Errorf("identity cache invalidate: %w", err)
	}
	return nil
}

func identityKey(userID string) string {
	return "auth:user:" + userID
}

func encodeUser(u *domain.User) ([]byte, error) {
	return json.Marshal(cachedUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	})
}

func decodeUser(raw []byte) (*domain.User, error) {
	var cu cachedUser
	if err := json.Unmarshal(raw, &cu); err != nil {
		return nil, fmt.Errorf("identity cache decode: %w", err)
	}
	return &domain.User{
		ID:        cu.ID,
		Name:      cu.Name,
		Email:     cu.Email,
		Role:      cu.Role,
		CreatedAt: cu.CreatedAt,
	}, nil
}
