package order

import (
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
)

// NumberPrefix is the fixed prefix of every human-readable order number.
const NumberPrefix = "ORD"

// FormatNumber renders a human-readable order number of the form
// ORD-YYYYMMDD-NNN, where NNN is the daily sequence zero-padded to three
// digits (longer sequences keep all their digits). The date component is the
// UTC calendar day; the same day boundary is used by the daily sequence that
// supplies seq, so numbers restart from 001 at midnight UTC.
func FormatNumber(day time.Time, seq int) (string, error) {
	if seq < 1 {
		return "", errs.NewValueIsInvalidErrorWithCause("sequence", fmt.Errorf("%d is not a positive sequence number", seq))
	}
	return fmt.Sprintf("%s-%s-%03d", NumberPrefix, day.UTC().Format("20060102"), seq), nil
}
