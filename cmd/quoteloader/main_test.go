package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rickgao/optionquotes/internal/config"
	"github.com/rickgao/optionquotes/internal/normalize"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name       string
		modeFlag   string
		legacySet  bool
		dropDups   bool
		mergeLiq   bool
		configured string
		want       normalize.Mode
		wantErr    bool
	}{
		{"config default", "", false, false, true, "merge_liquidity", normalize.MergeLiquidity, false},
		{"config passthrough", "", false, false, true, "passthrough", normalize.Passthrough, false},
		{"mode flag wins", "deduplicate", true, false, false, "passthrough", normalize.Deduplicate, false},
		{"legacy drop dups", "", true, true, true, "passthrough", normalize.Deduplicate, false},
		{"legacy no merge", "", true, false, false, "merge_liquidity", normalize.Passthrough, false},
		{"bad mode flag", "dedupe", false, false, true, "merge_liquidity", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveMode(tt.modeFlag, tt.legacySet, tt.dropDups, tt.mergeLiq, tt.configured)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveMode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("resolveMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRun_FileSinks(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "spx_option_prices.csv")
	csv := "date,exdate,strike_price,best_bid,best_offer,volume,open_interest,optionid\n" +
		"20230101,20230201,4000,1.0,1.2,10,100,100\n" +
		"20230101,20230201,4000,1.1,1.1,5,50,100\n" +
		"20230101,20230217,3900,3.0,3.5,20,300,31622275\n"
	if err := os.WriteFile(src, []byte(csv), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	cfg := config.Default()
	cfg.Source.Path = src
	cfg.Output.CSVPath = filepath.Join(dir, "out.csv")
	cfg.Output.Compress = "zstd"
	cfg.Output.XLSXPath = filepath.Join(dir, "out.xlsx")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	if err := run(context.Background(), cfg, normalize.MergeLiquidity, logger); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(logs.String(), "no database sinks configured") {
		t.Errorf("logs = %q, should report no database sinks", logs.String())
	}

	for _, name := range []string{"out.csv.zst", "out.xlsx"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestRun_MissingSource(t *testing.T) {
	cfg := config.Default()
	cfg.Source.Path = filepath.Join(t.TempDir(), "missing.csv")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := run(context.Background(), cfg, normalize.MergeLiquidity, logger); err == nil {
		t.Error("run() expected error for missing source, got nil")
	}
}

func TestWriterConfig(t *testing.T) {
	tests := []struct {
		name          string
		cfg           config.DatabaseConfig
		wantTable     string
		wantBatchSize int
	}{
		{"defaults", config.DatabaseConfig{}, "option_quotes", 1000},
		{"overrides", config.DatabaseConfig{Table: "spx_quotes", BatchSize: 250}, "spx_quotes", 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := writerConfig(tt.cfg)
			if got.Table != tt.wantTable {
				t.Errorf("Table = %q, want %q", got.Table, tt.wantTable)
			}
			if got.BatchSize != tt.wantBatchSize {
				t.Errorf("BatchSize = %d, want %d", got.BatchSize, tt.wantBatchSize)
			}
		})
	}
}
