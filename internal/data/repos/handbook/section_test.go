package handbook

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/data/repos/testutil"
	types "github.com/MEMAtest/horizon-scanner-backend-sub013/internal/domain"
)

func TestSectionRepoBulkInsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewSectionRepo(db, testutil.Logger(t))

	book := testutil.SeedSourcebook(t, ctx, tx, "FCA", "SYSC")
	version := testutil.SeedVersion(t, ctx, tx, book.ID, "fp")

	chapters := []*types.Section{
		{DocumentVersionID: version.ID, Level: 1, Reference: "SYSC 3", Title: "Systems and Controls", OrderIndex: 0},
		{DocumentVersionID: version.ID, Level: 1, Reference: "SYSC 4", Title: "General requirements", OrderIndex: 1},
	}
	refToID, err := repo.BulkInsert(ctx, tx, chapters)
	if err != nil {
		t.Fatalf("BulkInsert chapters: %v", err)
	}
	if len(refToID) != 2 {
		t.Fatalf("refToID size = %d, want 2", len(refToID))
	}
	parentID, ok := refToID["SYSC 3"]
	if !ok || parentID == uuid.Nil {
		t.Fatalf("missing assigned id for SYSC 3: %v", refToID)
	}

	sections := []*types.Section{
		{DocumentVersionID: version.ID, ParentID: &parentID, Level: 2, Reference: "SYSC 3.1", OrderIndex: 0},
		{DocumentVersionID: version.ID, ParentID: &parentID, Level: 2, Reference: "SYSC 3.2", OrderIndex: 1},
	}
	if _, err := repo.BulkInsert(ctx, tx, sections); err != nil {
		t.Fatalf("BulkInsert sections: %v", err)
	}

	rows, err := repo.ListByVersion(ctx, tx, version.ID)
	if err != nil {
		t.Fatalf("ListByVersion: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("ListByVersion = %d rows, want 4", len(rows))
	}
	if rows[0].Level != 1 || rows[0].Reference != "SYSC 3" {
		t.Errorf("rows not ordered by level/order_index: first = %+v", rows[0])
	}
	for _, row := range rows {
		if row.Level == 2 && (row.ParentID == nil || *row.ParentID != parentID) {
			t.Errorf("section %s parent = %v, want %s", row.Reference, row.ParentID, parentID)
		}
	}

	chapterCount, err := repo.CountByVersionAndLevel(ctx, tx, version.ID, 1)
	if err != nil {
		t.Fatalf("CountByVersionAndLevel: %v", err)
	}
	if chapterCount != 2 {
		t.Errorf("chapter count = %d, want 2", chapterCount)
	}
	sectionCount, err := repo.CountByVersionAndLevel(ctx, tx, version.ID, 2)
	if err != nil {
		t.Fatalf("CountByVersionAndLevel: %v", err)
	}
	if sectionCount != 2 {
		t.Errorf("section count = %d, want 2", sectionCount)
	}
}

func TestSectionRepoBulkInsertEmpty(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewSectionRepo(db, testutil.Logger(t))

	refToID, err := repo.BulkInsert(context.Background(), tx, nil)
	if err != nil {
		t.Fatalf("BulkInsert empty: %v", err)
	}
	if len(refToID) != 0 {
		t.Errorf("refToID = %v, want empty", refToID)
	}
}
