package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/get-hunter/hero365-app-sub011/internal/config"
	"github.com/get-hunter/hero365-app-sub011/internal/logger"
)

const version = "1.0.0"

var (
	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:   "seogen",
		Short: "SEO landing-page generation service",
		Long: `seogen generates and serves local-SEO landing pages for trade businesses.
It expands each business's services x locations x variants matrix, generates
content per page on a template or generative tier, gates it for quality, and
serves published pages by tenant hostname.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yml", "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("seogen version %s\n", version)
		},
	})

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(generateCommand())
}

// loadConfig loads configuration and builds the process logger.
func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if debug {
		cfg.Debug = true
	}

	logCfg := logger.Config{Level: "info"}
	if cfg.Debug {
		logCfg.Level = "debug"
		logCfg.Development = true
	}
	return cfg, logger.Must(logCfg), nil
}
