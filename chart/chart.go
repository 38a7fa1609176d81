// Package chart renders benchmark trends as a four panel PNG figure.
//
// Rendering is compiled in by default. Building with the nochart tag
// drops the gonum/plot dependency tree; Available then reports false and
// Render returns ErrUnavailable.
package chart

import "errors"

// FileName is the image written into the results directory.
const FileName = "benchmark_plots.png"

// Title is drawn above the panel grid.
const Title = "RISC Zero Auction Benchmark Results"

var (
	// ErrUnavailable is returned by Render in builds without chart support.
	ErrUnavailable = errors.New("chart rendering not available")

	// ErrNoRecords is returned when there is nothing to plot.
	ErrNoRecords = errors.New("no records to plot")
)
