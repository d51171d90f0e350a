package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/digitalstore/storefront/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthPostgres "github.com/hellofresh/health-go/v5/checks/postgres"
	"github.com/redis/go-redis/v9"
)

// Handler builds the /health endpoint with liveness checks for Postgres
// and Redis.
func Handler(cfg *config.Config, redisClient *redis.Client) (http.Handler, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront",
			Version: "1.0.0",
		}),
		health.WithChecks(
			health.Config{
				Name:      "postgres",
				Timeout:   5 * time.Second,
				SkipOnErr: false,
				Check: healthPostgres.New(healthPostgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   5 * time.Second,
				SkipOnErr: true,
				Check: func(ctx context.Context) error {
					if err := redisClient.Ping(ctx).Err(); err != nil {
						return fmt.Errorf("redis ping failed: %w", err)
					}
					return nil
				},
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register health checks: %w", err)
	}

	return h.Handler(), nil
}
