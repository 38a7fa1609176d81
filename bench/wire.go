package bench

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var recordValidate = validator.New(validator.WithRequiredStructEnabled())

// wireRecord mirrors Record with pointer fields so that an absent key can
// be told apart from a zero value.
type wireRecord struct {
	ParticipantCount *int64  `json:"participant_count" validate:"required,gt=0"`
	UserCycles       *int64  `json:"user_cycles" validate:"required,gte=0"`
	TotalCycles      *int64  `json:"total_cycles" validate:"required,gte=0"`
	SessionSegments  *int64  `json:"session_segments" validate:"required,gte=0"`
	ProvingTimeMs    *int64  `json:"proving_time_ms" validate:"required,gte=0"`
	TotalTimeMs      *int64  `json:"total_time_ms" validate:"required,gte=0"`
	ReceiptSizeBytes *int64  `json:"receipt_size_bytes" validate:"required,gte=0"`
	JournalSizeBytes *int64  `json:"journal_size_bytes" validate:"required,gte=0"`
	Timestamp        *string `json:"timestamp" validate:"required"`
}

func (w *wireRecord) record() (Record, error) {
	if err := recordValidate.Struct(w); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	r := Record{
		ParticipantCount: *w.ParticipantCount,
		UserCycles:       *w.UserCycles,
		TotalCycles:      *w.TotalCycles,
		SessionSegments:  *w.SessionSegments,
		ProvingTimeMs:    *w.ProvingTimeMs,
		TotalTimeMs:      *w.TotalTimeMs,
		ReceiptSizeBytes: *w.ReceiptSizeBytes,
		JournalSizeBytes: *w.JournalSizeBytes,
		Timestamp:        *w.Timestamp,
	}

	if r.TotalCycles < r.UserCycles {
		return Record{}, fmt.Errorf("%w: total_cycles %d below user_cycles %d",
			ErrInvalidRecord, r.TotalCycles, r.UserCycles)
	}

	if r.TotalTimeMs < r.ProvingTimeMs {
		return Record{}, fmt.Errorf(
			"%w: total_time_ms %d below proving_time_ms %d",
			ErrInvalidRecord, r.TotalTimeMs, r.ProvingTimeMs)
	}

	return r, nil
}
