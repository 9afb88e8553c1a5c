package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"summon-cli/internal/config"
	"summon-cli/internal/discover"
	"summon-cli/internal/embeddings"
	"summon-cli/internal/index"
	"summon-cli/internal/launch"
	"summon-cli/internal/resolver"
	"summon-cli/internal/score"
)

var (
	flagDebug      bool
	flagNoSemantic bool
)

var rootCmd = &cobra.Command{
	Use:          "summon",
	Short:        "Summon — launch apps and folders from a free-text phrase",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `Summon resolves a free-text phrase ("chrome", "open my downloads",
"photoshop") to one launchable target on this machine and starts it.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Print debug information")
	rootCmd.PersistentFlags().BoolVar(&flagNoSemantic, "no-semantic", false, "Disable embedding-based matching for this run")
}

// Execute is called by main.go. SIGINT/SIGTERM cancel the command context
// so in-flight discovery and launch subprocesses are killed.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the logger shared by the internal services. User-facing
// output goes through the print helpers; the logger only carries warnings
// and, with --debug, the resolution trace.
func newLogger() *log.Logger {
	logger := log.New(os.Stderr)
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// newResolver wires the full pipeline from config: discovery provider,
// index service with on-disk cache, scoring engine, launcher.
func newResolver() (*resolver.Resolver, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	logger := newLogger()

	provider := discover.ForPlatform(runtime.GOOS, discover.Options{
		SkipExecutables: cfg.SkipExecutables,
		BinScanLimit:    cfg.BinScanLimit,
		Timeout:         time.Duration(cfg.DiscoveryTimeoutSec) * time.Second,
		Logger:          logger,
	})

	embedder := newEmbedder(cfg, logger)

	cachePath, err := config.CachePath()
	if err != nil {
		return nil, err
	}

	engine := score.NewEngine()
	engine.LexicalThreshold = cfg.LexicalThreshold
	engine.SemanticThreshold = cfg.SemanticThreshold

	return resolver.New(resolver.Options{
		Index:    index.NewService(provider, embedder, cachePath, logger),
		Engine:   engine,
		Embedder: embedder,
		Launcher: launch.New(launch.Options{
			Timeout: time.Duration(cfg.LaunchTimeoutSec) * time.Second,
			Logger:  logger,
		}),
		Logger: logger,
	}), nil
}

// newEmbedder returns the configured embeddings provider, or nil when
// semantic matching is disabled or unconfigured. Resolution works without
// it; matching just stays lexical.
func newEmbedder(cfg *config.Config, logger *log.Logger) embeddings.Provider {
	if flagNoSemantic || !cfg.Semantic {
		return nil
	}
	embCfg, err := embeddings.LoadConfig()
	if err != nil {
		logger.Warn("cannot load embeddings config, matching lexical-only", "err", err)
		return nil
	}
	prov, err := embeddings.NewFromConfig(embCfg)
	if err != nil {
		logger.Warn("embeddings provider unavailable, matching lexical-only", "err", err)
		return nil
	}
	return prov
}
