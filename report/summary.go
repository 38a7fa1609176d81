package report

import (
	"errors"
	"fmt"
	"math"

	"github.com/weiihann/zkstat/bench"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmpty is returned when there are no records to summarize.
	ErrEmpty = errors.New("no results to report")

	// ErrZeroUserCycles is returned when a record has no user cycles.
	// The average overhead divides by user cycles for every record and
	// is undefined in that case. The CSV export and charts treat the
	// same record's overhead as 0 instead.
	ErrZeroUserCycles = errors.New("record has zero user cycles")

	// ErrUndefinedRatio is returned when a scaling ratio has a zero
	// baseline or a complexity exponent needs the logarithm of a
	// non-positive ratio.
	ErrUndefinedRatio = errors.New("undefined scaling ratio")
)

// Summary holds every statistic printed by Generate.
type Summary struct {
	Runs            int         `json:"runs"`
	MinParticipants int64       `json:"min_participants"`
	MaxParticipants int64       `json:"max_participants"`
	Records         bench.Set   `json:"records"`
	Scaling         Scaling     `json:"scaling"`
	Complexity      *Complexity `json:"complexity,omitempty"`
	Efficiency      Efficiency  `json:"efficiency"`
}

// Scaling compares the record with the fewest participants against the
// record with the most. Ratios are Last / First.
type Scaling struct {
	First        bench.Record `json:"first"`
	Last         bench.Record `json:"last"`
	Participants float64      `json:"participants_ratio"`
	UserCycles   float64      `json:"user_cycles_ratio"`
	TotalCycles  float64      `json:"total_cycles_ratio"`
	Segments     float64      `json:"segments_ratio"`
	Time         float64      `json:"time_ratio"`
}

// Complexity holds power-law exponents, so that metric ~ n^exponent.
type Complexity struct {
	UserCycles  float64 `json:"user_cycles_exponent"`
	TotalCycles float64 `json:"total_cycles_exponent"`
	Time        float64 `json:"time_exponent"`
}

// Efficiency holds per-participant averages across all records.
type Efficiency struct {
	UserCyclesPerParticipant  float64 `json:"avg_user_cycles_per_participant"`
	TotalCyclesPerParticipant float64 `json:"avg_total_cycles_per_participant"`
	OverheadPercent           float64 `json:"avg_overhead_percent"`
	TimePerParticipantMs      float64 `json:"avg_time_per_participant_ms"`
}

// Summarize computes all report statistics for records.
func Summarize(records bench.Set) (*Summary, error) {
	first, last, ok := records.Bounds()
	if !ok {
		return nil, ErrEmpty
	}

	eff, err := efficiency(records)
	if err != nil {
		return nil, err
	}

	scaling, err := compare(first, last)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Runs:            len(records),
		MinParticipants: first.ParticipantCount,
		MaxParticipants: last.ParticipantCount,
		Records:         records.Sorted(),
		Scaling:         scaling,
		Efficiency:      eff,
	}

	if scaling.Participants > 1 {
		c, err := complexity(scaling)
		if err != nil {
			return nil, err
		}

		s.Complexity = &c
	}

	return s, nil
}

func efficiency(records bench.Set) (Efficiency, error) {
	n := len(records)
	userPer := make([]float64, n)
	totalPer := make([]float64, n)
	timePer := make([]float64, n)
	overhead := make([]float64, n)

	for i, r := range records {
		if r.UserCycles == 0 {
			return Efficiency{}, fmt.Errorf("%w: participant_count %d",
				ErrZeroUserCycles, r.ParticipantCount)
		}

		userPer[i] = r.UserCyclesPerParticipant()
		totalPer[i] = r.TotalCyclesPerParticipant()
		timePer[i] = r.TimePerParticipantMs()
		overhead[i] = r.OverheadPercent()
	}

	return Efficiency{
		UserCyclesPerParticipant:  stat.Mean(userPer, nil),
		TotalCyclesPerParticipant: stat.Mean(totalPer, nil),
		OverheadPercent:           stat.Mean(overhead, nil),
		TimePerParticipantMs:      stat.Mean(timePer, nil),
	}, nil
}

func compare(first, last bench.Record) (Scaling, error) {
	s := Scaling{First: first, Last: last}

	ratios := []struct {
		name     string
		from, to int64
		dst      *float64
	}{
		{"participant_count", first.ParticipantCount, last.ParticipantCount, &s.Participants},
		{"user_cycles", first.UserCycles, last.UserCycles, &s.UserCycles},
		{"total_cycles", first.TotalCycles, last.TotalCycles, &s.TotalCycles},
		{"session_segments", first.SessionSegments, last.SessionSegments, &s.Segments},
		{"total_time_ms", first.TotalTimeMs, last.TotalTimeMs, &s.Time},
	}

	for _, r := range ratios {
		if r.from == 0 {
			return Scaling{}, fmt.Errorf("%w: %s is 0 at participant_count %d",
				ErrUndefinedRatio, r.name, first.ParticipantCount)
		}

		*r.dst = float64(r.to) / float64(r.from)
	}

	return s, nil
}

func complexity(s Scaling) (Complexity, error) {
	base := math.Log(s.Participants)

	exponent := func(name string, ratio float64) (float64, error) {
		if ratio <= 0 {
			return 0, fmt.Errorf("%w: %s ratio %g", ErrUndefinedRatio, name, ratio)
		}

		return math.Log(ratio) / base, nil
	}

	var (
		c   Complexity
		err error
	)

	if c.UserCycles, err = exponent("user_cycles", s.UserCycles); err != nil {
		return Complexity{}, err
	}

	if c.TotalCycles, err = exponent("total_cycles", s.TotalCycles); err != nil {
		return Complexity{}, err
	}

	if c.Time, err = exponent("total_time_ms", s.Time); err != nil {
		return Complexity{}, err
	}

	return c, nil
}
