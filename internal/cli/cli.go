package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/pydocs-parser/internal/config"
	"github.com/pfrederiksen/pydocs-parser/internal/logger"
	"github.com/pfrederiksen/pydocs-parser/internal/output"
	"github.com/pfrederiksen/pydocs-parser/internal/report"
	"github.com/pfrederiksen/pydocs-parser/internal/scraper"
	"github.com/pfrederiksen/pydocs-parser/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagClearCache bool
	flagOutput     string
	flagConfig     string
	flagBaseDir    string
	flagCacheTTL   time.Duration
	flagLogLevel   string
	flagVerbose    bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pydocs <mode>",
		Short: "Parse the Python documentation and PEP index",
		Long: `A parser for docs.python.org and peps.python.org.

Modes:
  whats-new        release-notes articles with their authors
  latest-versions  documentation versions and their status
  download         save the A4 PDF documentation archive to downloads/
  pep              PEP counts by status, warning about mismatched statuses`,
		Args:          cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:     report.ModeNames(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runParser,
	}

	cmd.Flags().BoolVarP(&flagClearCache, "clear-cache", "c", false, "Clear the HTTP cache before parsing")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output mode: "+strings.Join(output.Formats(), ", ")+" (default: plain lines)")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to a YAML config file (default: ./"+config.DefaultConfigFile+" if present)")
	cmd.Flags().StringVar(&flagBaseDir, "base-dir", "", "Directory for downloads/, results/ and logs/ (overrides config)")
	cmd.Flags().DurationVar(&flagCacheTTL, "cache-ttl", config.DefaultCacheTTL, "How long pages without cache headers are served from the cache (0 follows response headers)")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// runParser is the main command logic
func runParser(cmd *cobra.Command, args []string) error {
	mode := args[0]

	format, err := output.ParseFormat(flagOutput)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagBaseDir != "" {
		cfg.BaseDir = flagBaseDir
	}
	if cmd.Flags().Changed("cache-ttl") {
		cfg.CacheTTL = flagCacheTTL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level := logger.ParseLevel(flagLogLevel)
	if flagVerbose {
		level = logger.LevelDebug
	}
	log, err := logger.Init(logger.Options{Level: level, LogFile: cfg.LogFile(), Console: cmd.ErrOrStderr()})
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}

	log.Info("Parser started", nil)
	log.Info("Command line arguments", logger.Fields{
		"mode":        mode,
		"output":      string(format),
		"clear_cache": flagClearCache,
		"base_dir":    cfg.BaseDir,
	})

	store, err := storage.New(cfg.BaseDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	cache, err := scraper.OpenCache(cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer cache.Close() // nolint:errcheck

	if flagClearCache {
		removed, err := cache.Clear()
		if err != nil {
			return err
		}
		log.Info("Cache cleared", logger.Fields{"removed": removed, "path": cache.Path()})
	}

	fetcher := scraper.New(scraper.Options{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		Cache:     cache,
		CacheTTL:  cfg.CacheTTL,
	})

	r, err := report.Run(cmd.Context(), mode, report.Deps{
		Loader:   fetcher,
		Config:   cfg,
		Archives: store,
		Log:      log,
		Progress: report.ProgressBar(cmd.ErrOrStderr()),
	})
	if err != nil {
		log.Error("Parser failed", logger.Fields{"mode": mode}, err)
		return err
	}

	if r.ArchiveURL != "" && format != output.FormatJSON {
		fmt.Fprintln(cmd.OutOrStdout(), r.ArchiveURL)
	}

	w := &output.Writer{Out: cmd.OutOrStdout(), Store: store, Log: log}
	if err := w.Write(r, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	log.Debug("Metrics", logger.Fields(logger.GetMetricsSnapshot()))
	log.Info("Parser finished", nil)
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
