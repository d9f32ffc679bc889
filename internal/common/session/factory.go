package session

import (
	"context"
	"fmt"

	"rfp-console/internal/common/config"
	"rfp-console/internal/common/database"
)

// Open builds the store selected by cfg.Session.Store. The returned close
// func releases any connection the store holds.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	ttl := cfg.Server.SessionTTLDuration()

	switch cfg.Session.Store {
	case "redis":
		client := database.NewRedis(cfg.Database.Redis)
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("open redis session store: %w", err)
		}
		return NewRedisStore(client, cfg.Session.KeyPrefix, ttl), client.Close, nil
	case "", "memory":
		return NewMemoryStore(ttl), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
