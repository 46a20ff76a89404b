// Package filter drops LCOV branch records that do not point at a
// conditional construct in the referenced source line.
package filter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/YusovID/lcov-branch-filter/internal/apperrors"
	"github.com/YusovID/lcov-branch-filter/internal/lcov"
	"github.com/YusovID/lcov-branch-filter/internal/metrics"
	"github.com/YusovID/lcov-branch-filter/internal/source"
	"github.com/YusovID/lcov-branch-filter/pkg/logger/sl"
)

// Stats summarizes one filtering run.
type Stats struct {
	Records         int
	Written         int
	Sections        int
	SystemSections  int
	BranchesKept    int
	BranchesDropped int
	Rewinds         int
}

type Filter struct {
	opener         source.Opener
	systemPrefixes []string
	markers        []string
	metrics        *metrics.Metrics
	log            *slog.Logger
}

func New(
	opener source.Opener,
	systemPrefixes, markers []string,
	m *metrics.Metrics,
	log *slog.Logger,
) *Filter {
	return &Filter{
		opener:         opener,
		systemPrefixes: systemPrefixes,
		markers:        markers,
		metrics:        m,
		log:            log,
	}
}

// FilterFile filters the trace at inPath into outPath, creating or
// truncating outPath. Output written before a failure is left in place.
func (f *Filter) FilterFile(inPath, outPath string) (Stats, error) {
	const op = "filter.FilterFile"

	in, err := os.Open(inPath)
	if err != nil {
		return Stats{}, fmt.Errorf("%s: %w: %w", op, apperrors.ErrOpenTrace, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return Stats{}, fmt.Errorf("%s: %w: %w", op, apperrors.ErrOpenOutput, err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)

	stats, err := f.Run(in, w)
	if flushErr := w.Flush(); flushErr != nil && err == nil {
		err = fmt.Errorf("%s: failed to flush '%s': %w", op, outPath, flushErr)
	}

	if err != nil {
		return stats, err
	}

	if err := out.Close(); err != nil {
		return stats, fmt.Errorf("%s: failed to close '%s': %w", op, outPath, err)
	}

	return stats, nil
}

// Run copies the trace from in to out, keeping only the branch records
// whose source line is conditional.
func (f *Filter) Run(in io.Reader, out io.Writer) (stats Stats, err error) {
	const op = "filter.Run"

	r := bufio.NewReader(in)

	var active *source.Cursor

	closeActive := func() {
		if active == nil {
			return
		}

		stats.Rewinds += active.Rewinds()
		if f.metrics != nil {
			f.metrics.RewindsTotal.Add(float64(active.Rewinds()))
		}

		if cerr := active.Close(); cerr != nil {
			f.log.Warn("failed to close source file", slog.String("path", active.Path()), sl.Err(cerr))
		}

		active = nil
	}
	defer closeActive()

	for {
		line, rerr := r.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return stats, fmt.Errorf("%s: failed to read trace: %w", op, rerr)
		}

		if line == "" {
			return stats, nil
		}

		stats.Records++

		kind := lcov.Classify(line)
		if f.metrics != nil {
			f.metrics.RecordsTotal.WithLabelValues(kind.String()).Inc()
		}

		keep := true

		switch kind {
		case lcov.SourceFile:
			closeActive()

			path := lcov.SourcePath(line)
			stats.Sections++

			if err := f.write(out, line, &stats); err != nil {
				return stats, fmt.Errorf("%s: %w", op, err)
			}

			keep = false

			if isSystemPath(path, f.systemPrefixes) {
				stats.SystemSections++
				f.log.Debug("skipping system source", slog.String("path", path))

				break
			}

			active, err = source.Open(f.opener, path)
			if err != nil {
				return stats, fmt.Errorf("%s: %w", op, err)
			}

			f.log.Debug("opened source", slog.String("path", path))

		case lcov.EndOfRecord:
			closeActive()

		case lcov.BranchData:
			keep, err = f.keepBranch(active, line, stats.Records)
			if err != nil {
				return stats, fmt.Errorf("%s: %w", op, err)
			}

			if keep {
				stats.BranchesKept++
			} else {
				stats.BranchesDropped++
			}
		}

		if keep {
			if err := f.write(out, line, &stats); err != nil {
				return stats, fmt.Errorf("%s: %w", op, err)
			}
		}

		if rerr != nil {
			return stats, nil
		}
	}
}

func (f *Filter) keepBranch(active *source.Cursor, line string, lineNo int) (bool, error) {
	if active == nil {
		f.observe(metrics.DecisionSystem)
		return false, nil
	}

	n, ok := lcov.BranchLine(line)
	if !ok {
		return false, &apperrors.MalformedBranchError{LineNo: lineNo, Record: line}
	}

	text, err := active.Line(n)
	if err != nil {
		return false, err
	}

	if IsConditional(text, f.markers) {
		f.observe(metrics.DecisionKept)
		return true, nil
	}

	f.observe(metrics.DecisionNotConditional)

	return false, nil
}

func (f *Filter) observe(decision string) {
	if f.metrics != nil {
		f.metrics.BranchesTotal.WithLabelValues(decision).Inc()
	}
}

func (f *Filter) write(out io.Writer, line string, stats *Stats) error {
	if _, err := io.WriteString(out, line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	stats.Written++

	return nil
}
