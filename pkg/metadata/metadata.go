// Package metadata signs generated documents and verifies them later.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// TagStart is the start of the metadata block.
	TagStart = "<!-- METADATA_START"
	// TagEnd is the end of the metadata block.
	TagEnd = "METADATA_END -->"
)

// Version is the layout version written into new blocks.
const Version = "1"

// Metadata verification errors.
var (
	ErrNoMetadataBlock = errors.New("no metadata block found")
	ErrNoHashFound     = errors.New("no hash found in metadata")
	ErrHashMismatch    = errors.New("hash mismatch")
)

// Metadata describes one generated document.
type Metadata struct {
	GeneratedAt time.Time
	RunID       string
	Version     string
	Hash        string
	Listings    int
}

// New returns metadata for a document generated now by a fresh run.
func New(generatedAt time.Time, listings int) Metadata {
	return Metadata{
		GeneratedAt: generatedAt,
		RunID:       uuid.NewString(),
		Version:     Version,
		Listings:    listings,
	}
}

// metadataRegex matches the entire metadata block including tags.
var metadataRegex = regexp.MustCompile(`(?s)\s*<!--\s*METADATA_START\s*\n(.*?)\n\s*METADATA_END\s*-->\s*`)

// Extract removes the metadata block from content and returns both the metadata and the cleaned content.
// The cleaned content is what gets hashed.
func Extract(content string) (*Metadata, string) {
	match := metadataRegex.FindStringSubmatch(content)
	cleanContent := metadataRegex.ReplaceAllString(content, "\n")
	cleanContent = strings.TrimRight(cleanContent, " \t\r\n")

	if len(match) < 2 {
		return nil, cleanContent
	}

	meta := &Metadata{}

	for line := range strings.SplitSeq(match[1], "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		switch key {
		case "GENERATED_AT":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.GeneratedAt = t
			}
		case "RUN_ID":
			meta.RunID = val
		case "LISTINGS":
			if n, err := strconv.Atoi(val); err == nil {
				meta.Listings = n
			}
		case "HASH":
			meta.Hash = val
		case "VERSION":
			meta.Version = val
		}
	}

	return meta, cleanContent
}

// CalculateHash computes the SHA-256 hash of the content (excluding metadata).
func CalculateHash(content string) string {
	_, clean := Extract(content)
	hash := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(hash[:])
}

// Sign replaces any metadata block in content with one describing meta and the current hash.
func Sign(content string, meta Metadata) string {
	_, clean := Extract(content)

	if meta.Version == "" {
		meta.Version = Version
	}

	block := fmt.Sprintf("\n\n%s\nVERSION: %s\nRUN_ID: %s\nGENERATED_AT: %s\nLISTINGS: %d\nHASH: %s\n%s\n",
		TagStart,
		meta.Version,
		meta.RunID,
		meta.GeneratedAt.UTC().Format(time.RFC3339),
		meta.Listings,
		CalculateHash(clean),
		TagEnd,
	)

	return clean + block
}

// Verify checks if the content matches the hash in its metadata.
func Verify(content string) (*Metadata, error) {
	meta, clean := Extract(content)
	if meta == nil {
		return nil, ErrNoMetadataBlock
	}

	if meta.Hash == "" {
		return meta, ErrNoHashFound
	}

	calculated := CalculateHash(clean)
	if calculated != meta.Hash {
		return meta, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return meta, nil
}
