package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/get-hunter/hero365-app-sub011/internal/logger"
	"github.com/get-hunter/hero365-app-sub011/internal/orchestrator"
)

// generateCommand returns the generate command, a one-shot batch run for a
// single business.
func generateCommand() *cobra.Command {
	var (
		businessID string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the full page matrix for a business",
		Long: `Generate expands the business's services x locations x variants matrix and
generates every page, skipping specs that already have a published artifact
unless --force is set. Interrupting the run lets in-flight pages finish.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck // stdout sync failure is benign

			application, err := newApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer application.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runCfg := application.runConfig(force)
			runCfg.OnProgress = func(p orchestrator.Progress) {
				log.Info("generation progress",
					logger.Int("completed", p.Completed),
					logger.Int("total", p.Total),
					logger.Float64("percent", p.Percent))
			}

			result, err := application.orchestrator.GenerateAll(ctx, businessID, runCfg)
			if err != nil {
				return fmt.Errorf("generation run: %w", err)
			}

			fmt.Printf("generated %d pages in %s: %d template, %d enhanced, %d fallback, %d skipped, %d published, %d failed\n",
				result.Total, result.Duration.Round(time.Millisecond), result.TemplateCount, result.EnhancedCount,
				result.FallbackCount, result.Skipped, result.Published, len(result.Failures))

			if result.Cancelled {
				return errors.New("run cancelled before completion")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&businessID, "business", "", "business id to generate pages for")
	cmd.Flags().BoolVar(&force, "force", false, "regenerate pages that already have a published artifact")
	_ = cmd.MarkFlagRequired("business")

	return cmd
}
