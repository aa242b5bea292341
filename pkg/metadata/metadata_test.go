package metadata

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const body = "# 🏠 전체 주택유형 청약정보 (1건)\n\n| 항목 | 내용 |\n| --- | --- |\n| 주택명 | Sample Tower |\n"

func TestSignAndVerify(t *testing.T) {
	generated := time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)
	meta := New(generated, 1)

	signed := Sign(body, meta)

	if !strings.Contains(signed, TagStart) || !strings.Contains(signed, TagEnd) {
		t.Fatalf("metadata block missing:\n%s", signed)
	}

	got, err := Verify(signed)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if got.RunID != meta.RunID {
		t.Errorf("RunID = %q, want %q", got.RunID, meta.RunID)
	}

	if got.Listings != 1 {
		t.Errorf("Listings = %d, want 1", got.Listings)
	}

	if !got.GeneratedAt.Equal(generated) {
		t.Errorf("GeneratedAt = %v, want %v", got.GeneratedAt, generated)
	}

	if got.Version != Version {
		t.Errorf("Version = %q", got.Version)
	}
}

func TestVerify_DetectsTampering(t *testing.T) {
	signed := Sign(body, New(time.Now(), 1))
	tampered := strings.Replace(signed, "Sample Tower", "Other Tower", 1)

	_, err := Verify(tampered)
	if !errors.Is(err, ErrHashMismatch) {
		t.Errorf("expected ErrHashMismatch, got %v", err)
	}
}

func TestVerify_NoBlock(t *testing.T) {
	if _, err := Verify(body); !errors.Is(err, ErrNoMetadataBlock) {
		t.Errorf("expected ErrNoMetadataBlock, got %v", err)
	}
}

func TestVerify_NoHash(t *testing.T) {
	doc := body + "\n" + TagStart + "\nRUN_ID: x\n" + TagEnd + "\n"

	if _, err := Verify(doc); !errors.Is(err, ErrNoHashFound) {
		t.Errorf("expected ErrNoHashFound, got %v", err)
	}
}

func TestSign_ReplacesExistingBlock(t *testing.T) {
	first := Sign(body, New(time.Now(), 1))
	second := Sign(first, New(time.Now(), 2))

	if strings.Count(second, TagStart) != 1 {
		t.Fatalf("expected one metadata block:\n%s", second)
	}

	meta, err := Verify(second)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if meta.Listings != 2 {
		t.Errorf("Listings = %d, want 2", meta.Listings)
	}
}

func TestCalculateHash_IgnoresMetadata(t *testing.T) {
	signed := Sign(body, New(time.Now(), 1))

	if CalculateHash(signed) != CalculateHash(body) {
		t.Error("hash should not depend on the metadata block")
	}
}

func TestNew_UniqueRunIDs(t *testing.T) {
	a, b := New(time.Now(), 0), New(time.Now(), 0)
	if a.RunID == "" || a.RunID == b.RunID {
		t.Errorf("run ids not unique: %q %q", a.RunID, b.RunID)
	}
}
