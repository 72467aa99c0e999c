package cartstore

import (
	"context"
	"log"
	"time"

	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"

	"raffle-marketplace-frontend/internal/config"
)

// NewStore selects the cart persistence backend from config. Redis is used
// when requested and reachable; anything else falls back to the cookie
// session so a missing cache never blocks checkout.
func NewStore(cfg *config.Config, sessionStore sessions.Store) Store {
	if cfg.Cart.Store != "redis" || cfg.Redis.Addr == "" {
		return NewCookieStore(sessionStore)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: redis unavailable, using cookie cart store: %v", err)
		return NewCookieStore(sessionStore)
	}

	log.Printf("Cart store: redis at %s (ttl %s)", cfg.Redis.Addr, cfg.Cart.TTL)
	return NewRedisStore(client, sessionStore, cfg.Cart.TTL)
}
