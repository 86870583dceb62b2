package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"community-bot/monitoring"

	"github.com/alexliesenfeld/health"
	"go.uber.org/zap"
)

func (s *Server) healthCheck() http.HandlerFunc {
	opts := []health.CheckerOption{
		health.WithCacheDuration(1 * time.Second),
		health.WithTimeout(5 * time.Second),
	}

	if s.stores != nil {
		opts = append(opts, health.WithCheck(health.Check{
			Name: "database",
			Check: func(ctx context.Context) error {
				done := monitoring.ObserveStore(s.stores.Backend(), "health_check", "ping")
				defer done()
				if err := s.stores.Ping(ctx); err != nil {
					return fmt.Errorf("failed to ping %s: %w", s.stores.Backend(), err)
				}
				return nil
			},
			Timeout:        2 * time.Second,
			StatusListener: s.statusListener,
		}))
	}

	if s.session != nil {
		opts = append(opts, health.WithPeriodicCheck(15*time.Second, 5*time.Second, health.Check{
			Name: "discord_api",
			Check: func(ctx context.Context) error {
				if _, err := s.session.GatewayBot(); err != nil {
					return fmt.Errorf("failed to reach discord api: %w", err)
				}
				return nil
			},
			Timeout:        3 * time.Second,
			StatusListener: s.statusListener,
		}))
	}

	return health.NewHandler(health.NewChecker(opts...)).ServeHTTP
}

func (s *Server) statusListener(_ context.Context, name string, state health.CheckState) {
	s.logger.Info("health check status changed",
		zap.String("name", name),
		zap.String("state", string(state.Status)))
}
