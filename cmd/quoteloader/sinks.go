package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/optionquotes/internal/config"
	"github.com/rickgao/optionquotes/internal/database"
	"github.com/rickgao/optionquotes/internal/export"
	"github.com/rickgao/optionquotes/internal/normalize"
	"github.com/rickgao/optionquotes/internal/writer"
)

// writeSinks fans the table out to every configured file and database sink.
// The first failure cancels the others.
func writeSinks(ctx context.Context, cfg *config.LoaderConfig, loadID uuid.UUID, table *normalize.Table, logger *slog.Logger) error {
	dbCtx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
	defer cancel()

	dbs, err := database.Open(dbCtx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open databases: %w", err)
	}
	defer dbs.Close()
	if dbs.Empty() {
		logger.Info("no database sinks configured")
	}

	g, gctx := errgroup.WithContext(dbCtx)

	if cfg.Output.CSVPath != "" {
		g.Go(func() error {
			path, err := export.WriteCSVFile(cfg.Output.CSVPath, table, cfg.Output.Compress)
			if err != nil {
				return fmt.Errorf("csv sink: %w", err)
			}
			logger.Info("wrote csv", "path", path, "rows", table.Len())
			return nil
		})
	}

	if cfg.Output.XLSXPath != "" {
		g.Go(func() error {
			if err := export.WriteXLSXFile(cfg.Output.XLSXPath, table); err != nil {
				return fmt.Errorf("xlsx sink: %w", err)
			}
			logger.Info("wrote xlsx", "path", cfg.Output.XLSXPath, "rows", table.Len())
			return nil
		})
	}

	for _, sink := range databaseSinks(cfg, dbs, logger) {
		g.Go(func() error {
			if err := sink.EnsureSchema(gctx); err != nil {
				return fmt.Errorf("%s sink: %w", sink.Name(), err)
			}
			if err := sink.Write(gctx, loadID, table); err != nil {
				return fmt.Errorf("%s sink: %w", sink.Name(), err)
			}
			s := sink.Stats()
			logger.Info("wrote database",
				"sink", sink.Name(),
				"load_id", loadID,
				"inserts", s.Inserts,
				"batches", s.Batches,
			)
			return nil
		})
	}

	return g.Wait()
}

func databaseSinks(cfg *config.LoaderConfig, dbs *database.Sinks, logger *slog.Logger) []writer.Sink {
	wcfg := writerConfig(cfg.Database)

	var sinks []writer.Sink
	if dbs.Timescale != nil {
		sinks = append(sinks, writer.NewTimescaleWriter(wcfg, dbs.Timescale, logger))
	}
	if dbs.ClickHouse != nil {
		sinks = append(sinks, writer.NewClickHouseWriter(wcfg, dbs.ClickHouse, logger))
	}
	return sinks
}

// writerConfig overlays the configured table and batch size on the writer defaults.
func writerConfig(cfg config.DatabaseConfig) writer.WriterConfig {
	wcfg := writer.DefaultWriterConfig()
	if cfg.Table != "" {
		wcfg.Table = cfg.Table
	}
	if cfg.BatchSize > 0 {
		wcfg.BatchSize = cfg.BatchSize
	}
	return wcfg
}
