package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPartition(t *testing.T) {
	codes := []string{"SYSC", "COBS", "PRIN", "FEES", "SUP", "PERG", "TC"}

	batches := partition(codes, 3)
	if len(batches) != 3 {
		t.Fatalf("partition: expected 3 batches, got %d", len(batches))
	}
	if len(batches[0]) != 3 || len(batches[1]) != 3 || len(batches[2]) != 1 {
		t.Errorf("partition sizes = %d/%d/%d, want 3/3/1", len(batches[0]), len(batches[1]), len(batches[2]))
	}
	if batches[2][0] != "TC" {
		t.Errorf("last batch = %v, want [TC]", batches[2])
	}

	if got := partition(codes, 10); len(got) != 1 || len(got[0]) != 7 {
		t.Errorf("oversized batch: got %v", got)
	}
	if got := partition(nil, 3); got != nil {
		t.Errorf("partition(nil) = %v, want nil", got)
	}
}

func TestLoadInventory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.yaml")
	content := `codes:
  - SYSC
  - COBS
expected:
  SYSC:
    chapters: 28
    sections: 190
    paragraphs: 2400
  COBS:
    chapters: 22
    sections: 151
    paragraphs: 1800
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write inventory: %v", err)
	}

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory: %v", err)
	}
	if len(inv.Codes) != 2 || inv.Codes[0] != "SYSC" {
		t.Errorf("codes = %v", inv.Codes)
	}
	exp, ok := inv.Expected["SYSC"]
	if !ok {
		t.Fatal("missing expected counts for SYSC")
	}
	if exp.Chapters != 28 || exp.Sections != 190 || exp.Paragraphs != 2400 {
		t.Errorf("expected counts = %+v", exp)
	}
}

func TestLoadInventoryRejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.yaml")
	if err := os.WriteFile(path, []byte("expected: {}\n"), 0o644); err != nil {
		t.Fatalf("write inventory: %v", err)
	}
	if _, err := LoadInventory(path); err == nil {
		t.Error("expected error for inventory without codes")
	}
}
