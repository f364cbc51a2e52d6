package main

import (
	"context"

	"github.com/lintang-b-s/gpxmatch/pkg/engine"
	"github.com/lintang-b-s/gpxmatch/pkg/http"
	"github.com/lintang-b-s/gpxmatch/pkg/http/usecases"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only match query API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			if err := engine.Register(reg); err != nil {
				return err
			}

			matchService := usecases.NewMatchService(a.log, a.engine.GetQueryService(), a.engine.GetSource())

			ctx, stop := http.GracefulShutdown(cmd.Context())
			defer stop()

			api, err := http.NewServer(a.log).Use(ctx, a.log, matchService, reg)
			if err != nil {
				return err
			}

			err = api.Wait()
			if ctx.Err() != nil {
				a.log.Info("gpxmatch server stopped", zap.Error(context.Cause(ctx)))
			}
			return err
		},
	}

	cmd.Flags().Int("port", 0, "API port")
	cmd.Flags().Float64("rate-limit", 0, "requests per second per client, 0 disables")
	_ = viper.BindPFlag("api_port", cmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("rate_limit_rps", cmd.Flags().Lookup("rate-limit"))
	return cmd
}
