package cartstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"

	"raffle-marketplace-frontend/internal/models"
)

// RedisStore keeps the cart in Redis, keyed by the per-visitor cart id
// from the cookie session. The value is the same JSON blob the cookie
// backend writes; entries expire after the configured TTL.
type RedisStore struct {
	client       *redis.Client
	sessionStore sessions.Store
	ttl          time.Duration
}

// NewRedisStore creates a redis-backed cart store
func NewRedisStore(client *redis.Client, sessionStore sessions.Store, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, sessionStore: sessionStore, ttl: ttl}
}

func (s *RedisStore) key(cartID string) string {
	return fmt.Sprintf("cart:%s", cartID)
}

func (s *RedisStore) Load(r *http.Request) (*models.CartState, error) {
	session, err := s.sessionStore.Get(r, SessionName)
	if err != nil {
		return models.NewCartState(), nil
	}
	cartID, ok := session.Values[cartIDKey].(string)
	if !ok || cartID == "" {
		// No id minted yet means nothing was ever saved
		return models.NewCartState(), nil
	}

	raw, err := s.client.Get(r.Context(), s.key(cartID)).Result()
	if err == redis.Nil {
		return models.NewCartState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart %s: %w", cartID, err)
	}

	cart := models.NewCartState()
	if err := json.Unmarshal([]byte(raw), cart); err != nil {
		return models.NewCartState(), nil
	}
	return cart, nil
}

func (s *RedisStore) Save(w http.ResponseWriter, r *http.Request, cart *models.CartState) error {
	cartID, err := CartID(s.sessionStore, w, r)
	if err != nil {
		return err
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	if err := s.client.Set(r.Context(), s.key(cartID), string(data), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", cartID, err)
	}
	return nil
}

// ClearID deletes a cart without a request in hand. Expired reservations
// are purged through this path so an abandoned cart does not linger for
// the full TTL.
func (s *RedisStore) ClearID(ctx context.Context, cartID string) error {
	if cartID == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(cartID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart %s: %w", cartID, err)
	}
	return nil
}

func (s *RedisStore) Clear(w http.ResponseWriter, r *http.Request) error {
	session, err := s.sessionStore.Get(r, SessionName)
	if err != nil {
		return err
	}
	cartID, ok := session.Values[cartIDKey].(string)
	if !ok || cartID == "" {
		return nil
	}
	if err := s.client.Del(r.Context(), s.key(cartID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart %s: %w", cartID, err)
	}
	return nil
}
