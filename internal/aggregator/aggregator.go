// Package aggregator merges per-category listings into one run result.
package aggregator

import "applyhome/internal/models"

// CategoryResult is the normalized output of one category.
type CategoryResult struct {
	Label    string
	Listings []models.Listing
}

// Aggregate concatenates results in input order. Every category gets a count, zero included.
// Listings are not deduplicated.
func Aggregate(results []CategoryResult) models.RunResult {
	total := 0
	for _, r := range results {
		total += len(r.Listings)
	}

	out := models.RunResult{
		Listings: make([]models.Listing, 0, total),
		Counts:   make([]models.CategoryCount, 0, len(results)),
	}

	for _, r := range results {
		out.Listings = append(out.Listings, r.Listings...)
		out.Counts = append(out.Counts, models.CategoryCount{Label: r.Label, Count: len(r.Listings)})
	}

	return out
}
