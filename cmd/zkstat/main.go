// Package main provides the CLI entry point for zkstat, a report generator
// for RISC Zero auction benchmark results.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/weiihann/zkstat/bench"
	"github.com/weiihann/zkstat/chart"
	"github.com/weiihann/zkstat/export"
	"github.com/weiihann/zkstat/report"
)

const defaultResultsDir = "benchmark_results/latest"

var errNoData = errors.New("no benchmark data found")

// chartAvailable reports whether chart rendering was compiled in.
var chartAvailable = chart.Available

type notFoundError struct {
	dir string
}

func (e *notFoundError) Error() string {
	return "results directory not found: " + e.dir
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: level,
	}))

	root := newRootCmd(logger, level, stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}

	var nf *notFoundError

	switch {
	case errors.As(err, &nf):
		fmt.Fprintf(stderr, "Error: Results directory not found: %s\n", nf.dir)
		fmt.Fprintf(stderr, "\nUsage: %s\n", root.UseLine())
	case errors.Is(err, errNoData):
		fmt.Fprintln(stderr, "Error: No benchmark data found")
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}

	return 1
}

type options struct {
	noPlot     bool
	outputJSON bool
	verbose    bool
}

func newRootCmd(
	logger *slog.Logger,
	level *slog.LevelVar,
	stdout, stderr io.Writer,
) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "zkstat [results_dir]",
		Short: "Summarize RISC Zero auction benchmark results",
		Long: `Zkstat reads the benchmark records in a results directory, prints a
scaling analysis, writes detailed_analysis.csv next to the inputs and
renders benchmark_plots.png.

The results directory defaults to ` + defaultResultsDir + `.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				level.Set(slog.LevelDebug)
			}

			dir := defaultResultsDir
			if len(args) > 0 {
				dir = args[0]
			}

			out := stdout
			if opts.outputJSON {
				out = stderr
			}

			return analyze(cmd.Context(), logger, console{
				status: out,
				report: stdout,
			}, dir, opts)
		},
	}

	flags := root.Flags()
	flags.BoolVar(&opts.noPlot, "no-plot", false,
		"Skip chart rendering")
	flags.BoolVar(&opts.outputJSON, "json", false,
		"Print the report as JSON (progress lines go to stderr)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false,
		"Enable debug logging")

	return root
}

// console separates progress lines from the report body so that the JSON
// report stays machine readable.
type console struct {
	status io.Writer
	report io.Writer
}

func analyze(
	ctx context.Context,
	logger *slog.Logger,
	con console,
	dir string,
	opts options,
) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &notFoundError{dir: dir}
		}

		return fmt.Errorf("stat results dir: %w", err)
	}

	// An existing path that is not a directory holds no benchmark files.
	if !info.IsDir() {
		logger.DebugContext(ctx, "results path is not a directory",
			slog.String("dir", dir))

		return errNoData
	}

	available := chartAvailable()
	plotting := available && !opts.noPlot

	logger.DebugContext(ctx, "starting analysis",
		slog.String("dir", dir),
		slog.Bool("charts_available", available),
		slog.Bool("plotting", plotting),
	)

	// Step 1: Load records.
	fmt.Fprintf(con.status, "Loading benchmark data from: %s\n", dir)

	src, err := bench.Resolve(dir)
	if err != nil {
		return fmt.Errorf("resolve records: %w", err)
	}

	logger.DebugContext(ctx, "resolved record source",
		slog.String("kind", src.Kind.String()),
		slog.Int("files", len(src.Paths)),
	)

	records, err := src.Load()
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	if len(records) == 0 {
		return errNoData
	}

	fmt.Fprintf(con.status, "Loaded %d benchmark results\n", len(records))

	// Step 2: Report.
	if opts.outputJSON {
		if err := report.GenerateJSON(con.report, records); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	} else {
		if err := report.Generate(con.report, records); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
	}

	// Step 3: CSV.
	csvPath := filepath.Join(dir, export.FileName)
	if err := export.WriteFile(csvPath, records); err != nil {
		return fmt.Errorf("export CSV: %w", err)
	}

	fmt.Fprintf(con.status, "✓ Detailed CSV report saved to: %s\n", csvPath)

	// Step 4: Charts.
	switch {
	case opts.noPlot:
		logger.DebugContext(ctx, "chart rendering disabled by flag")
	case !plotting:
		fmt.Fprintln(con.status,
			"Note: chart rendering not available, skipping plot generation")
		fmt.Fprintln(con.status,
			"      Rebuild without the nochart tag to enable it")
	default:
		plotPath, err := chart.Render(dir, records)
		if err != nil {
			return fmt.Errorf("render charts: %w", err)
		}

		fmt.Fprintf(con.status, "✓ Plots saved to: %s\n", plotPath)
	}

	banner := strings.Repeat("=", 80)
	fmt.Fprintln(con.status)
	fmt.Fprintln(con.status, banner)
	fmt.Fprintln(con.status, "Analysis complete!")
	fmt.Fprintln(con.status, banner)
	fmt.Fprintln(con.status)

	logger.InfoContext(ctx, "analysis complete",
		slog.String("dir", dir),
		slog.Int("records", len(records)),
	)

	return nil
}
