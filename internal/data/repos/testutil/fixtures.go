package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/MEMAtest/horizon-scanner-backend-sub013/internal/domain"
)

func SeedSourcebook(tb testing.TB, ctx context.Context, tx *gorm.DB, authority, code string) *types.Sourcebook {
	tb.Helper()
	book := &types.Sourcebook{
		ID:        uuid.New(),
		Authority: authority,
		Code:      code,
		Title:     "Seed sourcebook",
		Status:    "active",
	}
	if err := tx.WithContext(ctx).Create(book).Error; err != nil {
		tb.Fatalf("seed sourcebook: %v", err)
	}
	return book
}

func SeedVersion(tb testing.TB, ctx context.Context, tx *gorm.DB, sourcebookID uuid.UUID, fingerprint string) *types.DocumentVersion {
	tb.Helper()
	version := &types.DocumentVersion{
		ID:           uuid.New(),
		SourcebookID: sourcebookID,
		VersionLabel: "seed",
		Fingerprint:  fingerprint,
	}
	if err := tx.WithContext(ctx).Create(version).Error; err != nil {
		tb.Fatalf("seed version: %v", err)
	}
	return version
}

func SeedSection(tb testing.TB, ctx context.Context, tx *gorm.DB, versionID uuid.UUID, reference string, level int, parentID *uuid.UUID) *types.Section {
	tb.Helper()
	section := &types.Section{
		ID:                uuid.New(),
		DocumentVersionID: versionID,
		ParentID:          parentID,
		Level:             level,
		Reference:         reference,
		Title:             "Seed section",
	}
	if err := tx.WithContext(ctx).Create(section).Error; err != nil {
		tb.Fatalf("seed section: %v", err)
	}
	return section
}
