// Package bench loads benchmark measurement records produced by the
// auction proving benchmarks.
package bench

import (
	"cmp"
	"slices"
)

// Record holds one measurement for a given participant count.
type Record struct {
	ParticipantCount int64  `json:"participant_count"`
	UserCycles       int64  `json:"user_cycles"`
	TotalCycles      int64  `json:"total_cycles"`
	SessionSegments  int64  `json:"session_segments"`
	ProvingTimeMs    int64  `json:"proving_time_ms"`
	TotalTimeMs      int64  `json:"total_time_ms"`
	ReceiptSizeBytes int64  `json:"receipt_size_bytes"`
	JournalSizeBytes int64  `json:"journal_size_bytes"`
	Timestamp        string `json:"timestamp"`
}

// UserCyclesPerParticipant returns user cycles divided by participant count.
func (r Record) UserCyclesPerParticipant() float64 {
	return float64(r.UserCycles) / float64(r.ParticipantCount)
}

// TotalCyclesPerParticipant returns total cycles divided by participant count.
func (r Record) TotalCyclesPerParticipant() float64 {
	return float64(r.TotalCycles) / float64(r.ParticipantCount)
}

// TimePerParticipantMs returns total time in milliseconds divided by
// participant count.
func (r Record) TimePerParticipantMs() float64 {
	return float64(r.TotalTimeMs) / float64(r.ParticipantCount)
}

// OverheadPercent returns the percentage by which total cycles exceed
// user cycles. It is 0 when the record has no user cycles.
func (r Record) OverheadPercent() float64 {
	if r.UserCycles == 0 {
		return 0
	}

	return float64(r.TotalCycles-r.UserCycles) / float64(r.UserCycles) * 100
}

// Set is a collection of records in load order. Participant counts are
// not required to be unique.
type Set []Record

// Sorted returns a copy of s ordered by ascending participant count.
// Records with equal counts keep their load order.
func (s Set) Sorted() Set {
	out := slices.Clone(s)
	slices.SortStableFunc(out, func(a, b Record) int {
		return cmp.Compare(a.ParticipantCount, b.ParticipantCount)
	})

	return out
}

// Bounds returns the first record with the smallest participant count
// and the first record with the largest. ok is false for an empty set.
func (s Set) Bounds() (lo, hi Record, ok bool) {
	if len(s) == 0 {
		return Record{}, Record{}, false
	}

	lo, hi = s[0], s[0]
	for _, r := range s[1:] {
		if r.ParticipantCount < lo.ParticipantCount {
			lo = r
		}
		if r.ParticipantCount > hi.ParticipantCount {
			hi = r
		}
	}

	return lo, hi, true
}
