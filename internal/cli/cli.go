package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/tahoe-conditions/internal/config"
	"github.com/pfrederiksen/tahoe-conditions/internal/fetch"
	"github.com/pfrederiksen/tahoe-conditions/internal/logger"
	"github.com/pfrederiksen/tahoe-conditions/internal/output"
	"github.com/pfrederiksen/tahoe-conditions/internal/pipeline"
	"github.com/pfrederiksen/tahoe-conditions/internal/registry"
	"github.com/pfrederiksen/tahoe-conditions/internal/scheduler"
	"github.com/pfrederiksen/tahoe-conditions/internal/weather"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagRegistry  string
	flagOutputDir string
	flagCacheDir  string
	flagFormat    string
	flagInterval  string
	flagVerbose   bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tahoe-conditions",
		Short: "Lake Tahoe ski resort conditions aggregator",
		Long: `Fetches ski resort operational and snow data plus NWS weather,
normalizes them into one schema, and writes static JSON artifacts.
Resorts whose sources fail fall back to last-known-good data marked stale.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagRegistry, "registry", "", "Path to resorts.yaml (default resorts.yaml)")
	root.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "Output directory (default public/data)")
	root.PersistentFlags().StringVar(&flagCacheDir, "cache-dir", "", "Cache directory (default .cache)")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	root.AddCommand(newUpdateCmd(), newWatchCmd())

	return root
}

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Fetch and update all resort conditions once",
		RunE:  runUpdate,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Run report format: text or json")
	return cmd
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run updates continuously on an interval",
		RunE:  runWatch,
	}
	cmd.Flags().StringVar(&flagInterval, "interval", "", "Update interval, e.g. 30m (default from config)")
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetVerbose()
	}

	format := Format(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg := loadConfig()

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := p.Run()
	if err != nil {
		return err
	}

	if flagVerbose {
		logger.Debug("Run metrics", logger.MetricsSnapshot())
	}

	return WriteReport(os.Stdout, report, format)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetVerbose()
	}

	cfg := loadConfig()
	if flagInterval != "" {
		d, err := time.ParseDuration(flagInterval)
		if err != nil {
			return fmt.Errorf("invalid interval: %w", err)
		}
		cfg.WatchInterval = d
	}

	// The fetch client persists across runs so caches and breaker state
	// carry over; the registry is reloaded every cycle.
	client := fetch.New(cfg)

	job := func() {
		p, err := buildPipelineWith(cfg, client)
		if err != nil {
			logger.Error("Update skipped", nil, err)
			return
		}
		if _, err := p.Run(); err != nil {
			logger.Error("Update failed", nil, err)
		}
	}

	logger.Info("Watching", logger.Fields{"interval": cfg.WatchInterval.String()})
	return scheduler.New(cfg.WatchInterval, job).Start()
}

// loadConfig loads settings and applies flag overrides.
func loadConfig() *config.Config {
	cfg := config.Load()
	if flagRegistry != "" {
		cfg.RegistryPath = flagRegistry
	}
	if flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	if flagCacheDir != "" {
		cfg.CacheDir = flagCacheDir
	}
	return cfg
}

func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	return buildPipelineWith(cfg, fetch.New(cfg))
}

func buildPipelineWith(cfg *config.Config, client *fetch.Client) (*pipeline.Pipeline, error) {
	resorts, err := registry.LoadEnabled(cfg.RegistryPath)
	if err != nil {
		return nil, err
	}

	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	return pipeline.New(resorts, client, weather.New(client), writer), nil
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
