package exporter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"applyhome/internal/models"
)

// WriteJSON writes listings as an indented UTF-8 JSON array. HTML characters are not escaped.
func WriteJSON(path string, listings []models.Listing) error {
	if listings == nil {
		listings = []models.Listing{}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(listings); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}
