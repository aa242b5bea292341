package normalizer

import (
	"errors"
	"fmt"
	"strings"

	"applyhome/internal/models"
	"applyhome/internal/timezone"
)

// Drop reasons. They are not failures: the caller counts them and moves on.
var (
	ErrNoClosingDate      = errors.New("no closing date")
	ErrInvalidClosingDate = errors.New("closing date is not YYYY-MM-DD")
	ErrExpired            = errors.New("reception window has closed")
)

// closingDateKeys are tried in order; categories disagree on the key name.
var closingDateKeys = []string{"RCEPT_ENDDE", "SUBSCRPT_RCEPT_ENDDE", "RECEPT_ENDDE"}

// Validator decides whether a record is still open for applications.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ClosingDate returns the first present, non-empty closing date of raw.
func (v *Validator) ClosingDate(raw models.RawRecord) (string, error) {
	for _, key := range closingDateKeys {
		val, ok := raw[key]
		if !ok || val == nil {
			continue
		}

		s := strings.TrimSpace(FormatValue(val))
		if s == "" {
			continue
		}

		if !timezone.IsDate(s) {
			return "", fmt.Errorf("%w: %s=%q", ErrInvalidClosingDate, key, s)
		}

		return s, nil
	}

	return "", ErrNoClosingDate
}

// Validate returns the closing date of raw when it is on or after today (YYYY-MM-DD).
// Fixed-width dates compare correctly as strings.
func (v *Validator) Validate(raw models.RawRecord, today string) (string, error) {
	closing, err := v.ClosingDate(raw)
	if err != nil {
		return "", err
	}

	if closing < today {
		return "", fmt.Errorf("%w: %s < %s", ErrExpired, closing, today)
	}

	return closing, nil
}
