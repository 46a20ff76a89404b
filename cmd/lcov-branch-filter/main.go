package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/YusovID/lcov-branch-filter/internal/apperrors"
	"github.com/YusovID/lcov-branch-filter/internal/config"
	"github.com/YusovID/lcov-branch-filter/internal/filter"
	"github.com/YusovID/lcov-branch-filter/internal/metrics"
	"github.com/YusovID/lcov-branch-filter/internal/source"
	"github.com/YusovID/lcov-branch-filter/pkg/logger/sl"
	"github.com/YusovID/lcov-branch-filter/pkg/logger/slogpretty"
	"github.com/google/uuid"
)

const usage = "Usage : lcov-branch-filter coverage_file_path output_file_path"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, apperrors.ErrUsage) {
			fmt.Fprintln(os.Stdout, usage)
		} else {
			fmt.Fprintf(os.Stdout, "%s\n", err)
		}

		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: expected 2 arguments, got %d", apperrors.ErrUsage, len(args))
	}

	coveragePath, outputPath := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := slogpretty.SetupLogger(cfg.Env, stdout).With(
		slog.String("run_id", uuid.NewString()),
	)

	log.Info("filtering branch coverage",
		slog.String("from", coveragePath),
		slog.String("to", outputPath),
	)

	m := metrics.New()
	f := filter.New(source.OSOpener{}, cfg.SystemPrefixes, cfg.Markers, m, log)

	stats, err := f.FilterFile(coveragePath, outputPath)
	if err != nil {
		log.Error("filtering failed", sl.Err(err))
		return err
	}

	log.Info("branch coverage filtered",
		slog.Int("records", stats.Records),
		slog.Int("written", stats.Written),
		slog.Int("sections", stats.Sections),
		slog.Int("system_sections", stats.SystemSections),
		slog.Int("branches_kept", stats.BranchesKept),
		slog.Int("branches_dropped", stats.BranchesDropped),
		slog.Int("rewinds", stats.Rewinds),
	)

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	return nil
}
