package ingest

import (
	"testing"

	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/clients/rulebook"
)

func sampleIndex() *rulebook.IndexDocument {
	return &rulebook.IndexDocument{
		Headers: []rulebook.TaxonomyNode{
			{
				EntityID: "h1",
				Name:     "High Level Standards",
				Parts: []rulebook.TaxonomyNode{
					{
						EntityID:     "sb1",
						Name:         "SYSC Senior Management Arrangements",
						Code:         "SYSC",
						DocType:      "handbook",
						HomeURL:      "https://example.org/SYSC",
						LastModified: "2024-01-01",
						Parts: []rulebook.TaxonomyNode{
							{
								EntityID: "ch1",
								Name:     "SYSC 3 Systems and Controls",
								Code:     "3",
								Parts: []rulebook.TaxonomyNode{
									{EntityID: "sec1", Name: "SYSC 3.1 General requirements", Code: "3.1"},
									{EntityID: "sec2", Name: "SYSC 3.2 Areas covered", Code: "3.2"},
									{EntityID: "sec3", Name: "SYSC 3.3 Deleted section", Code: "3.3", IsDeleted: true},
								},
							},
							{
								EntityID:  "ch2",
								Name:      "SYSC 4 Deleted chapter",
								Code:      "4",
								IsDeleted: true,
							},
							{
								EntityID: "ch3",
								Name:     "SYSC 4 Annex 1 Detailed requirements",
								Code:     "4A",
								Parts: []rulebook.TaxonomyNode{
									{EntityID: "sec4", Name: "SYSC 4.1 General", Code: "4.1"},
								},
							},
						},
					},
					{
						EntityID:  "sb2",
						Name:      "GONE Withdrawn sourcebook",
						Code:      "GONE",
						IsDeleted: true,
					},
				},
			},
		},
	}
}

func TestCollect(t *testing.T) {
	books := Collect(sampleIndex())
	if len(books) != 1 {
		t.Fatalf("Collect: expected 1 sourcebook, got %d", len(books))
	}
	book := books[0]
	if book.Code != "SYSC" {
		t.Errorf("Code = %q, want SYSC", book.Code)
	}
	if book.Title != "Senior Management Arrangements" {
		t.Errorf("Title = %q, want %q", book.Title, "Senior Management Arrangements")
	}
	if book.LastModified != "2024-01-01" {
		t.Errorf("LastModified = %q", book.LastModified)
	}

	if len(book.Chapters) != 2 {
		t.Fatalf("expected 2 chapters (deleted skipped), got %d", len(book.Chapters))
	}
	ch := book.Chapters[0]
	if ch.Key != "ch1" || ch.Reference != "SYSC 3" || ch.Title != "Systems and Controls" {
		t.Errorf("chapter 0 = %+v", ch)
	}
	if ch.OrderIndex != 0 {
		t.Errorf("chapter 0 order index = %d", ch.OrderIndex)
	}
	if ch.Path != "SYSC/3" {
		t.Errorf("chapter 0 path = %q, want SYSC/3", ch.Path)
	}
	annex := book.Chapters[1]
	if annex.Reference != "SYSC 4 Annex 1" || annex.OrderIndex != 1 {
		t.Errorf("chapter 1 = %+v", annex)
	}
	if annex.Path != "SYSC/4/Annex/1" {
		t.Errorf("chapter 1 path = %q", annex.Path)
	}

	if len(book.Sections) != 3 {
		t.Fatalf("expected 3 sections (deleted skipped), got %d", len(book.Sections))
	}
	sec := book.Sections[0]
	if sec.Key != "sec1" || sec.ParentKey != "ch1" || sec.Reference != "SYSC 3.1" {
		t.Errorf("section 0 = %+v", sec)
	}
	if book.Sections[2].ParentKey != "ch3" {
		t.Errorf("section 2 parent key = %q, want ch3", book.Sections[2].ParentKey)
	}
}

func TestCollectFallsBackToRawCode(t *testing.T) {
	doc := &rulebook.IndexDocument{
		Headers: []rulebook.TaxonomyNode{
			{
				Parts: []rulebook.TaxonomyNode{
					{
						EntityID: "sb1",
						Name:     "TC Training and Competence",
						Code:     "TC",
						Parts: []rulebook.TaxonomyNode{
							// Name yields no reference; falls back to raw code.
							{EntityID: "ch1", Name: "", Code: "App 1"},
							// No name or code; falls back to the node id.
							{EntityID: "ch2"},
						},
					},
				},
			},
		},
	}
	books := Collect(doc)
	if len(books) != 1 || len(books[0].Chapters) != 2 {
		t.Fatalf("unexpected collect shape: %+v", books)
	}
	if got := books[0].Chapters[0].Reference; got != "App 1" {
		t.Errorf("fallback reference = %q, want App 1", got)
	}
	if got := books[0].Chapters[1].Reference; got != "ch2" {
		t.Errorf("fallback reference = %q, want ch2", got)
	}
}

func TestCollectNilDocument(t *testing.T) {
	if got := Collect(nil); len(got) != 0 {
		t.Errorf("Collect(nil) = %v, want empty", got)
	}
}
