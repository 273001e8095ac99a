package handbook

import (
	"context"
	"testing"

	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/data/repos/testutil"
	types "github.com/MEMAtest/horizon-scanner-backend-sub013/internal/domain"
)

func TestParagraphRepoBulkInsertAndCounts(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewParagraphRepo(db, testutil.Logger(t))

	book := testutil.SeedSourcebook(t, ctx, tx, "FCA", "SYSC")
	version := testutil.SeedVersion(t, ctx, tx, book.ID, "fp")
	chapter := testutil.SeedSection(t, ctx, tx, version.ID, "SYSC 3", 1, nil)
	section := testutil.SeedSection(t, ctx, tx, version.ID, "SYSC 3.1", 2, &chapter.ID)

	inserted, err := repo.BulkInsert(ctx, tx, []*types.Paragraph{
		{SectionID: section.ID, Number: "3.1.1", Reference: "3.1.1R", Text: "A firm must take reasonable care."},
		{SectionID: section.ID, Number: "3.1.2", Reference: "3.1.2G", Text: "Guidance on the above."},
	})
	if err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}
	if inserted != 2 {
		t.Errorf("inserted = %d, want 2", inserted)
	}

	rows, err := repo.ListBySection(ctx, tx, section.ID)
	if err != nil {
		t.Fatalf("ListBySection: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ListBySection = %d rows, want 2", len(rows))
	}

	count, err := repo.CountByVersion(ctx, tx, version.ID)
	if err != nil {
		t.Fatalf("CountByVersion: %v", err)
	}
	if count != 2 {
		t.Errorf("CountByVersion = %d, want 2", count)
	}

	empty, err := repo.BulkInsert(ctx, tx, nil)
	if err != nil {
		t.Fatalf("BulkInsert empty: %v", err)
	}
	if empty != 0 {
		t.Errorf("empty insert = %d, want 0", empty)
	}
}
