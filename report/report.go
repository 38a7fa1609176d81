// Package report formats benchmark records into a scaling analysis.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/weiihann/zkstat/bench"
)

// Title names the benchmark suite in report and chart headers.
const Title = "RISC Zero Auction Benchmark Analysis"

const (
	bannerWidth = 80
	tableWidth  = 135
)

// Generate writes the text report for records to w. Statistics are
// computed before anything is written, so a failing record leaves w
// untouched.
func Generate(w io.Writer, records bench.Set) error {
	s, err := Summarize(records)
	if err != nil {
		return err
	}

	banner := strings.Repeat("=", bannerWidth)
	rule := strings.Repeat("-", bannerWidth)
	tableRule := strings.Repeat("-", tableWidth)

	// Header.
	fmt.Fprintln(w)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, Title)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Total benchmark runs: %d\n", s.Runs)
	fmt.Fprintf(w, "Participant range: %d to %d\n",
		s.MinParticipants, s.MaxParticipants)
	fmt.Fprintln(w)

	// Table.
	fmt.Fprintln(w, "Detailed Results:")
	fmt.Fprintln(w, tableRule)
	fmt.Fprintf(w, "%4s | %12s | %13s | %8s | %12s | %10s | %12s | %12s\n",
		"N", "User Cycles", "Total Cycles", "Segments",
		"Proving (ms)", "Total (ms)", "Receipt (KB)", "Journal (KB)")
	fmt.Fprintln(w, tableRule)

	for _, r := range s.Records {
		fmt.Fprintf(w, "%4s | %12s | %13s | %8s | %12s | %10s | %12s | %12s\n",
			formatInt(r.ParticipantCount),
			formatInt(r.UserCycles),
			formatInt(r.TotalCycles),
			formatInt(r.SessionSegments),
			formatInt(r.ProvingTimeMs),
			formatInt(r.TotalTimeMs),
			formatKiB(r.ReceiptSizeBytes),
			formatKiB(r.JournalSizeBytes),
		)
	}

	fmt.Fprintln(w, tableRule)
	fmt.Fprintln(w)

	// Scaling.
	sc := s.Scaling

	fmt.Fprintln(w, "Scaling Analysis:")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Participants increased by: %.1fx (%d → %d)\n",
		sc.Participants, sc.First.ParticipantCount, sc.Last.ParticipantCount)
	fmt.Fprintf(w, "User cycles increased by:  %.2fx (%s → %s)\n",
		sc.UserCycles, formatInt(sc.First.UserCycles),
		formatInt(sc.Last.UserCycles))
	fmt.Fprintf(w, "Total cycles increased by: %.2fx (%s → %s)\n",
		sc.TotalCycles, formatInt(sc.First.TotalCycles),
		formatInt(sc.Last.TotalCycles))
	fmt.Fprintf(w, "Segments increased by:     %.2fx (%d → %d)\n",
		sc.Segments, sc.First.SessionSegments, sc.Last.SessionSegments)
	fmt.Fprintf(w, "Time increased by:         %.2fx (%sms → %sms)\n",
		sc.Time, formatInt(sc.First.TotalTimeMs),
		formatInt(sc.Last.TotalTimeMs))
	fmt.Fprintln(w)

	if c := s.Complexity; c != nil {
		fmt.Fprintln(w, "Estimated Computational Complexity:")
		fmt.Fprintf(w, "  User Cycles:  O(n^%.2f)\n", c.UserCycles)
		fmt.Fprintf(w, "  Total Cycles: O(n^%.2f)\n", c.TotalCycles)
		fmt.Fprintf(w, "  Time:         O(n^%.2f)\n", c.Time)
		fmt.Fprintln(w)
	}

	// Efficiency.
	e := s.Efficiency

	fmt.Fprintln(w, "Efficiency Metrics:")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Average user cycles per participant:    %s\n",
		formatRounded(e.UserCyclesPerParticipant))
	fmt.Fprintf(w, "Average total cycles per participant:   %s\n",
		formatRounded(e.TotalCyclesPerParticipant))
	fmt.Fprintf(w, "Average cycle overhead (padding):       %.1f%%\n",
		e.OverheadPercent)
	fmt.Fprintf(w, "Average time per participant:           %s ms\n",
		formatRounded(e.TimePerParticipantMs))
	fmt.Fprintln(w)

	return nil
}

// GenerateJSON writes the summary of records as JSON to w.
func GenerateJSON(w io.Writer, records bench.Set) error {
	s, err := Summarize(records)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(s)
}

func formatInt(n int64) string {
	return humanize.Comma(n)
}

func formatRounded(v float64) string {
	return humanize.Comma(int64(math.RoundToEven(v)))
}

func formatKiB(b int64) string {
	return fmt.Sprintf("%.2f", float64(b)/1024)
}
