// Package normalizer filters raw API records by closing date and projects the
// survivors onto the canonical listing fields.
package normalizer

import (
	"errors"
	"fmt"

	"applyhome/internal/models"
)

// Processor combines validation and transformation.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
	}
}

// Process returns the Listing for raw, or a drop error (ErrExpired, ErrNoClosingDate,
// ErrInvalidClosingDate) when the record must not be kept. today is YYYY-MM-DD.
func (p *Processor) Process(raw models.RawRecord, category, today string) (models.Listing, error) {
	closing, err := p.validator.Validate(raw, today)
	if err != nil {
		return models.Listing{}, fmt.Errorf("validation failed: %w", err)
	}

	return p.transformer.Transform(raw, category, closing), nil
}

// Stats counts the outcome of ProcessAll.
type Stats struct {
	Kept          int
	Expired       int
	NoClosingDate int
	InvalidDate   int
}

// Dropped returns the number of records not kept.
func (s Stats) Dropped() int {
	return s.Expired + s.NoClosingDate + s.InvalidDate
}

// ProcessAll processes records in order and returns the kept listings.
func (p *Processor) ProcessAll(records []models.RawRecord, category, today string) ([]models.Listing, Stats) {
	var (
		kept  = make([]models.Listing, 0, len(records))
		stats Stats
	)

	for _, raw := range records {
		l, err := p.Process(raw, category, today)

		switch {
		case err == nil:
			kept = append(kept, l)
			stats.Kept++
		case errors.Is(err, ErrExpired):
			stats.Expired++
		case errors.Is(err, ErrInvalidClosingDate):
			stats.InvalidDate++
		default:
			stats.NoClosingDate++
		}
	}

	return kept, stats
}
