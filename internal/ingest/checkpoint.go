package ingest

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CheckpointConfig drives a batched re-ingestion over a known code
// inventory. Batch indexes are 1-based and inclusive.
type CheckpointConfig struct {
	BatchSize          int
	StartBatch         int
	EndBatch           int
	MaxChaptersPerBook int
}

// Inventory is the expected-count manifest consumed by the checkpoint
// driver.
type Inventory struct {
	Codes    []string                  `yaml:"codes"`
	Expected map[string]ExpectedCounts `yaml:"expected"`
}

type ExpectedCounts struct {
	Chapters   int64 `yaml:"chapters"`
	Sections   int64 `yaml:"sections"`
	Paragraphs int64 `yaml:"paragraphs"`
}

func LoadInventory(path string) (*Inventory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	var inv Inventory
	if err := yaml.Unmarshal(raw, &inv); err != nil {
		return nil, fmt.Errorf("parse inventory: %w", err)
	}
	if len(inv.Codes) == 0 {
		return nil, fmt.Errorf("inventory lists no codes")
	}
	return &inv, nil
}

// CheckpointOutcome records one code's ingestion and verification result.
type CheckpointOutcome struct {
	Code       string
	Batch      int
	Ingested   bool
	Error      string
	Chapters   int64
	Sections   int64
	Paragraphs int64
	Verified   bool
	Match      bool
}

type CheckpointReport struct {
	BatchesRun int
	Outcomes   []CheckpointOutcome
}

// Failed reports whether any code in the report failed to ingest.
func (r *CheckpointReport) Failed() bool {
	for _, o := range r.Outcomes {
		if !o.Ingested {
			return true
		}
	}
	return false
}

// RunCheckpoint partitions the inventory into fixed-size batches, ingests
// batches [StartBatch..EndBatch] one code at a time (a failing code is
// recorded and does not stop the batch), then verifies persisted counts per
// code against the inventory.
func (s *service) RunCheckpoint(ctx context.Context, inv *Inventory, cfg CheckpointConfig) (*CheckpointReport, error) {
	if inv == nil || len(inv.Codes) == 0 {
		return nil, fmt.Errorf("empty inventory")
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive")
	}
	batches := partition(inv.Codes, cfg.BatchSize)

	start := cfg.StartBatch
	if start < 1 {
		start = 1
	}
	end := cfg.EndBatch
	if end < 1 || end > len(batches) {
		end = len(batches)
	}
	if start > end {
		return nil, fmt.Errorf("start batch %d beyond end batch %d", start, end)
	}

	report := &CheckpointReport{}
	for bi := start; bi <= end; bi++ {
		codes := batches[bi-1]
		s.log.Info("Checkpoint batch starting", "batch", bi, "codes", codes)

		outcomes := make([]CheckpointOutcome, 0, len(codes))
		for _, code := range codes {
			outcome := CheckpointOutcome{Code: code, Batch: bi, Ingested: true}
			_, err := s.Run(ctx, RunOptions{
				Codes:              []string{code},
				MaxChaptersPerBook: cfg.MaxChaptersPerBook,
			})
			if err != nil {
				outcome.Ingested = false
				outcome.Error = err.Error()
				s.log.Error("Checkpoint ingestion failed", "batch", bi, "code", code, "error", err)
			}
			outcomes = append(outcomes, outcome)
		}

		for i := range outcomes {
			s.verifyOutcome(ctx, inv, &outcomes[i])
		}
		report.Outcomes = append(report.Outcomes, outcomes...)
		report.BatchesRun++
	}
	return report, nil
}

func (s *service) verifyOutcome(ctx context.Context, inv *Inventory, outcome *CheckpointOutcome) {
	chapters, sections, paragraphs, err := s.countsForCode(ctx, outcome.Code)
	if err != nil {
		s.log.Error("Checkpoint count query failed", "code", outcome.Code, "error", err)
		return
	}
	outcome.Chapters = chapters
	outcome.Sections = sections
	outcome.Paragraphs = paragraphs

	expected, ok := inv.Expected[outcome.Code]
	if !ok {
		s.log.Warn("Checkpoint: no expected counts for code", "code", outcome.Code)
		return
	}
	outcome.Verified = true
	outcome.Match = chapters == expected.Chapters &&
		sections == expected.Sections &&
		paragraphs == expected.Paragraphs
	if outcome.Match {
		s.log.Info("Checkpoint verify ok",
			"code", outcome.Code,
			"chapters", chapters,
			"sections", sections,
			"paragraphs", paragraphs,
		)
	} else {
		s.log.Warn("Checkpoint verify mismatch",
			"code", outcome.Code,
			"chapters", chapters, "expected_chapters", expected.Chapters,
			"sections", sections, "expected_sections", expected.Sections,
			"paragraphs", paragraphs, "expected_paragraphs", expected.Paragraphs,
		)
	}
}

// countsForCode reports persisted chapter/section/paragraph counts for the
// latest version of a code.
func (s *service) countsForCode(ctx context.Context, code string) (chapters, sections, paragraphs int64, err error) {
	book, err := s.sourcebookRepo.GetByCode(ctx, nil, s.authority, code)
	if err != nil {
		return 0, 0, 0, err
	}
	if book == nil {
		return 0, 0, 0, nil
	}
	version, err := s.versionRepo.LatestBySourcebook(ctx, nil, book.ID)
	if err != nil {
		return 0, 0, 0, err
	}
	if version == nil {
		return 0, 0, 0, nil
	}
	if chapters, err = s.sectionRepo.CountByVersionAndLevel(ctx, nil, version.ID, 1); err != nil {
		return 0, 0, 0, err
	}
	if sections, err = s.sectionRepo.CountByVersionAndLevel(ctx, nil, version.ID, 2); err != nil {
		return 0, 0, 0, err
	}
	if paragraphs, err = s.paragraphRepo.CountByVersion(ctx, nil, version.ID); err != nil {
		return 0, 0, 0, err
	}
	return chapters, sections, paragraphs, nil
}

func partition(codes []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(codes); start += size {
		end := start + size
		if end > len(codes) {
			end = len(codes)
		}
		out = append(out, codes[start:end])
	}
	return out
}
