package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/gpxmatch/pkg/http/router"
	"github.com/lintang-b-s/gpxmatch/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/gpxmatch/pkg/http/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use starts the API in the background. Wait returns its error once ctx is canceled.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,
	matchService controllers.MatchService,
	gatherer prometheus.Gatherer,
) (*Server, error) {
	viper.SetDefault("api_port", 6060)
	viper.SetDefault("api_timeout", "30s")

	config := http_server.Config{
		Port:         viper.GetInt("api_port"),
		Timeout:      viper.GetDuration("api_timeout"),
		RateLimitRPS: viper.GetFloat64("rate_limit_rps"),
	}

	server := http_router.NewAPI(log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, config, matchService, gatherer)
	})
	s.g = g

	return s, nil
}

func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}

// GracefulShutdown returns a context canceled on SIGINT or SIGTERM.
func GracefulShutdown(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
