package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/conform"
	"github.com/aretw0/conform/internal/cli"
	"github.com/aretw0/conform/internal/config"
	"github.com/aretw0/conform/internal/logging"
	"github.com/aretw0/conform/pkg/observability"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "conform",
	Short: "Conform validates dataset media types and label field schemas",
	Long: `Conform loads sample collections from a manifest file or a directory of
sample documents and checks media types, declared label field types and
sample values. It runs as a one-shot CLI, an HTTP API or an MCP server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrChecksFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to conform.yaml")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("dataset", "", "Manifest file or directory of sample documents")
	rootCmd.PersistentFlags().String("format", "", "Dataset format: auto, manifest or loam")
	rootCmd.PersistentFlags().String("media", "", "Media type of a loam dataset directory")
	rootCmd.PersistentFlags().Bool("json", false, "Print machine-readable JSON")
}

// env bundles what every command needs.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	svc     *conform.Service
}

// loadConfig reads the configuration file, then applies environment and flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadWithEnvOverrides(path)
	if err != nil {
		return nil, nil, err
	}

	flags := map[string]*string{
		"log-level": &cfg.LogLevel,
		"dataset":   &cfg.Dataset.Path,
		"format":    &cfg.Dataset.Format,
		"media":     &cfg.Dataset.MediaType,
	}
	for name, dst := range flags {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(level), nil
}

func setup(ctx context.Context, cmd *cobra.Command) (*env, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics()
	hooks := observability.Chain(metrics.Hooks(), observability.AuditHooks(logger))

	svc, err := cli.NewService(ctx, cfg, logger, hooks)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, metrics: metrics, svc: svc}, nil
}

func reporter(cmd *cobra.Command) *cli.Reporter {
	asJSON, _ := cmd.Flags().GetBool("json")
	return cli.NewReporter(cmd.OutOrStdout(), asJSON)
}
