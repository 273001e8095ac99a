package domain

import (
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/domain/handbook"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/domain/runs"
)

const (
	SectionLevelChapter = handbook.SectionLevelChapter
	SectionLevelSection = handbook.SectionLevelSection

	RunStatusRunning   = runs.RunStatusRunning
	RunStatusCompleted = runs.RunStatusCompleted
	RunStatusFailed    = runs.RunStatusFailed
)

type (
	Sourcebook      = handbook.Sourcebook
	DocumentVersion = handbook.DocumentVersion
	Section         = handbook.Section
	Paragraph       = handbook.Paragraph

	IngestRun = runs.IngestRun
	RunStats  = runs.RunStats
	RunError  = runs.RunError
)
