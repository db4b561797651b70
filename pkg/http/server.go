package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/behaviorplanner/pkg/http/router"
	"github.com/lintang-b-s/behaviorplanner/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/behaviorplanner/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use starts the API in the background. It stops when ctx is canceled; Wait
// returns its error.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	plannerService controllers.PlannerService,
) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT_RPS", 200.0)
	viper.SetDefault("RATE_LIMIT_BURST", 50)

	config := http_server.Config{
		Port:         viper.GetInt("API_PORT"),
		Timeout:      viper.GetDuration("API_TIMEOUT"),
		UseRateLimit: useRateLimit,
		RateLimit:    viper.GetFloat64("RATE_LIMIT_RPS"),
		RateBurst:    viper.GetInt("RATE_LIMIT_BURST"),
	}

	server := http_router.NewAPI(log)

	s.g.Go(func() error {
		return server.Run(ctx, config, plannerService)
	})

	return s, nil
}

func (s *Server) Wait() error {
	return s.g.Wait()
}

// GracefulShutdown blocks until SIGINT or SIGTERM and returns the signal.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}
