package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"haus-finance/config"
	"haus-finance/domain"
	httpLayer "haus-finance/http"
	"haus-finance/service"
)

var allowedOrigins string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators, insight hub and theme preference over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&allowedOrigins, "allowed-origins", "", "comma separated origins allowed to open websockets (default: same origin only)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	b, err := newBackends(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	provider, err := buildProvider(ctx, cfg.Insight, logger)
	if err != nil {
		return err
	}
	insight := service.NewInsightService(provider, cfg.Insight.TypingDelay, logger)
	theme := service.NewThemeStore(domain.ThemeSystem)

	limiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer limiter.Stop()

	router := httpLayer.NewRouter(logger, httpLayer.RouterDependencies{
		Calculator: b.calc,
		Insight:    insight,
		Theme:      theme,
		Limiter:    limiter,
		Probes: map[string]httpLayer.Pinger{
			"cache":   b.cache,
			"history": b.history,
		},
		AllowedOrigins: splitCSV(allowedOrigins),
	})
	server := httpLayer.NewServer(logger, cfg.HTTP, router)

	logger.Info("haus api configured",
		zap.String("cache", cfg.Cache.Backend),
		zap.String("history", cfg.History.Backend),
		zap.String("insight_provider", insight.Provider()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if cfg.AssumptionsFile != "" {
		watcher := config.NewAssumptionsWatcher(cfg.AssumptionsFile, b.calc.SetAssumptions, logger)
		g.Go(func() error { return watcher.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	logger.Info("server exited")
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
