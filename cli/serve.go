// ABOUTME: serve subcommand
// ABOUTME: Runs the REST API and web pages until interrupted
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/salescrm/ai"
	"github.com/harperreed/salescrm/db"
	"github.com/harperreed/salescrm/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, store, err := a.buildServer(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			addr := fmt.Sprintf(":%d", a.cfg.Server.Port)
			return srv.Run(ctx, addr, a.cfg.Server.ShutdownTimeout)
		},
	}
}

// buildServer opens the store, seeds it when configured, and wires the
// assistant. The caller owns the returned store.
func (a *app) buildServer(ctx context.Context) (*web.Server, *db.Store, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}

	if a.cfg.Database.SeedSampleData {
		counts, loaded, err := store.LoadSampleData(ctx)
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		if loaded {
			a.logger.Info("Sample data loaded", zap.Stringer("counts", counts))
		}
	}

	var gen ai.Generator
	if a.cfg.AI.APIKey != "" {
		gemini, err := ai.NewGeminiGenerator(ctx, ai.GeminiConfig{
			APIKey:          a.cfg.AI.APIKey,
			Model:           a.cfg.AI.Model,
			MaxOutputTokens: a.cfg.AI.MaxOutputTokens,
			Timeout:         a.cfg.AI.Timeout,
		})
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		a.logger.Info("AI assist enabled", zap.String("model", gemini.Name()))
		gen = gemini
	} else {
		a.logger.Warn("No AI API key configured; AI endpoints will return empty results")
	}

	srv, err := web.NewServer(store, ai.NewAssistant(store, gen, a.logger), a.logger, web.Options{
		CORSOrigins: a.cfg.Server.CORSOrigins,
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return srv, store, nil
}
