package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/rickgao/optionquotes/internal/config"
	"github.com/rickgao/optionquotes/internal/normalize"
	"github.com/rickgao/optionquotes/internal/stats"
	"github.com/rickgao/optionquotes/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	modeFlag := flag.String("mode", "", "deduplicate | merge_liquidity | passthrough (overrides config)")
	dropDups := flag.Bool("drop-dups", false, "drop every duplicated listing (legacy flag)")
	mergeLiq := flag.Bool("merge-liquidity", true, "merge duplicated listings (legacy flag)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting quoteloader",
		"version", version.String(),
		"config", *configPath,
	)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	legacySet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "drop-dups" || f.Name == "merge-liquidity" {
			legacySet = true
		}
	})
	mode, err := resolveMode(*modeFlag, legacySet, *dropDups, *mergeLiq, cfg.Normalize.Mode)
	if err != nil {
		logger.Error("invalid mode", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, mode, logger); err != nil {
		logger.Error("quoteloader failed", "error", err)
		os.Exit(1)
	}

	logger.Info("quoteloader finished")
}

func loadConfig(path string) (*config.LoaderConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadAndValidate(path)
}

// resolveMode picks the output mode: -mode first, then the legacy flag
// pair if either was given, then the config value.
func resolveMode(modeFlag string, legacySet, dropDups, mergeLiquidity bool, configured string) (normalize.Mode, error) {
	switch {
	case modeFlag != "":
		return normalize.ParseMode(modeFlag)
	case legacySet:
		return normalize.ModeFromFlags(dropDups, mergeLiquidity), nil
	default:
		return normalize.ParseMode(configured)
	}
}

func run(ctx context.Context, cfg *config.LoaderConfig, mode normalize.Mode, logger *slog.Logger) error {
	policy, err := normalize.ParseNegativeExpiryPolicy(cfg.Normalize.NegativeExpiry)
	if err != nil {
		return err
	}

	loader := normalize.NewLoader(
		normalize.WithExcludedIDs(cfg.Source.ExcludeOptionIDs...),
		normalize.WithNegativeExpiryPolicy(policy),
		normalize.WithLogger(logger),
	)

	table, err := loader.Load(cfg.Source.Path, mode)
	if err != nil {
		return fmt.Errorf("load quotes: %w", err)
	}

	loadID := uuid.New()
	logger.Info("table summary",
		"load_id", loadID,
		"mode", mode.String(),
		"excluded_rows", table.Stats.ExcludedRows,
		"duplicate_listings", table.Stats.DuplicateListings,
		"summary", stats.Summarize(table),
	)

	return writeSinks(ctx, cfg, loadID, table, logger)
}
