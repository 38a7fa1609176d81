// Package export writes benchmark records with per-participant metrics
// to CSV.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/weiihann/zkstat/bench"
)

// FileName is the report file written into the results directory.
const FileName = "detailed_analysis.csv"

// Header lists the CSV columns in order.
var Header = []string{
	"N",
	"User Cycles",
	"Total Cycles",
	"Segments",
	"Proving Time (ms)",
	"Total Time (ms)",
	"Receipt Size (bytes)",
	"Journal Size (bytes)",
	"User Cycles/Participant",
	"Total Cycles/Participant",
	"Overhead %",
	"Time/Participant (ms)",
	"Timestamp",
}

// Write writes the header and one row per record, ordered by ascending
// participant count. Overhead is 0 for records without user cycles.
func Write(w io.Writer, records bench.Set) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records.Sorted() {
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("write row N=%d: %w", r.ParticipantCount, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteFile writes the CSV report to path, replacing any existing file.
// The file is closed before WriteFile returns.
func WriteFile(path string, records bench.Set) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", path, cerr))
		}
	}()

	if err := Write(f, records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

func row(r bench.Record) []string {
	return []string{
		strconv.FormatInt(r.ParticipantCount, 10),
		strconv.FormatInt(r.UserCycles, 10),
		strconv.FormatInt(r.TotalCycles, 10),
		strconv.FormatInt(r.SessionSegments, 10),
		strconv.FormatInt(r.ProvingTimeMs, 10),
		strconv.FormatInt(r.TotalTimeMs, 10),
		strconv.FormatInt(r.ReceiptSizeBytes, 10),
		strconv.FormatInt(r.JournalSizeBytes, 10),
		formatFloat(r.UserCyclesPerParticipant()),
		formatFloat(r.TotalCyclesPerParticipant()),
		formatFloat(r.OverheadPercent()),
		formatFloat(r.TimePerParticipantMs()),
		r.Timestamp,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
