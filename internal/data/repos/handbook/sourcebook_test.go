package handbook

import (
	"context"
	"testing"

	types "github.com/MEMAtest/horizon-scanner-backend-sub013/internal/domain"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/data/repos/testutil"
)

func TestSourcebookRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewSourcebookRepo(db, testutil.Logger(t))

	first, err := repo.Upsert(ctx, tx, &types.Sourcebook{
		Authority: "FCA",
		Code:      "SYSC",
		Title:     "Senior Management Arrangements",
		Status:    "active",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if first == nil || first.ID.String() == "" {
		t.Fatal("Upsert returned no row")
	}

	second, err := repo.Upsert(ctx, tx, &types.Sourcebook{
		Authority: "FCA",
		Code:      "SYSC",
		Title:     "Senior Management Arrangements, Systems and Controls",
		Status:    "active",
	})
	if err != nil {
		t.Fatalf("Upsert second: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert by code must keep the existing id: %s != %s", second.ID, first.ID)
	}
	if second.Title != "Senior Management Arrangements, Systems and Controls" {
		t.Errorf("upsert must refresh title, got %q", second.Title)
	}

	// Same code under a different authority is a distinct row.
	other, err := repo.Upsert(ctx, tx, &types.Sourcebook{
		Authority: "PRA",
		Code:      "SYSC",
		Title:     "PRA view",
		Status:    "active",
	})
	if err != nil {
		t.Fatalf("Upsert other authority: %v", err)
	}
	if other.ID == first.ID {
		t.Error("different authority must not collide with existing row")
	}

	got, err := repo.GetByCode(ctx, tx, "FCA", "SYSC")
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if got == nil || got.ID != first.ID {
		t.Errorf("GetByCode = %+v, want id %s", got, first.ID)
	}

	missing, err := repo.GetByCode(ctx, tx, "FCA", "NOPE")
	if err != nil {
		t.Fatalf("GetByCode missing: %v", err)
	}
	if missing != nil {
		t.Errorf("GetByCode for unknown code = %+v, want nil", missing)
	}
}

func TestSourcebookRepoUpsertValidation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewSourcebookRepo(db, testutil.Logger(t))

	if _, err := repo.Upsert(context.Background(), tx, &types.Sourcebook{Code: "SYSC"}); err == nil {
		t.Error("expected error for missing authority")
	}
	if _, err := repo.Upsert(context.Background(), tx, &types.Sourcebook{Authority: "FCA"}); err == nil {
		t.Error("expected error for missing code")
	}
}
