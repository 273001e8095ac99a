package ingest

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/clients/rulebook"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/data/repos"
	types "github.com/MEMAtest/horizon-scanner-backend-sub013/internal/domain"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/pkg/ingesterr"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/platform/logger"
)

// Service drives one ingestion of the regulator's rulebook: fetch the
// taxonomy index, flatten it, persist versioned sections per sourcebook,
// then fetch and persist each chapter's provisions, all under an audited
// IngestRun.
type Service interface {
	Run(ctx context.Context, opts RunOptions) (types.RunStats, error)
	RunCheckpoint(ctx context.Context, inv *Inventory, cfg CheckpointConfig) (*CheckpointReport, error)
}

type RunOptions struct {
	// Codes restricts ingestion to the named sourcebook codes. Empty means
	// all.
	Codes []string
	// MaxSourcebooks caps how many sourcebooks are processed. Zero means no
	// cap.
	MaxSourcebooks int
	// MaxChaptersPerBook caps how many chapters per sourcebook get their
	// provisions fetched. Zero means no cap.
	MaxChaptersPerBook int
}

type service struct {
	db             *gorm.DB
	log            *logger.Logger
	client         rulebook.Client
	sourcebookRepo repos.SourcebookRepo
	versionRepo    repos.DocumentVersionRepo
	sectionRepo    repos.SectionRepo
	paragraphRepo  repos.ParagraphRepo
	runRepo        repos.IngestRunRepo
	authority      string
	jurisdiction   string
	chapterWorkers int
}

func NewService(
	db *gorm.DB,
	baseLog *logger.Logger,
	client rulebook.Client,
	sourcebookRepo repos.SourcebookRepo,
	versionRepo repos.DocumentVersionRepo,
	sectionRepo repos.SectionRepo,
	paragraphRepo repos.ParagraphRepo,
	runRepo repos.IngestRunRepo,
	authority string,
	jurisdiction string,
	chapterWorkers int,
) Service {
	if chapterWorkers <= 0 {
		chapterWorkers = 4
	}
	return &service{
		db:             db,
		log:            baseLog.With("service", "IngestService"),
		client:         client,
		sourcebookRepo: sourcebookRepo,
		versionRepo:    versionRepo,
		sectionRepo:    sectionRepo,
		paragraphRepo:  paragraphRepo,
		runRepo:        runRepo,
		authority:      authority,
		jurisdiction:   jurisdiction,
		chapterWorkers: chapterWorkers,
	}
}

// runCounters accumulates run statistics. Counters are atomic because
// chapters within a sourcebook fan out across workers.
type runCounters struct {
	sourcebooks       atomic.Int64
	chapters          atomic.Int64
	sections          atomic.Int64
	paragraphs        atomic.Int64
	paragraphsDropped atomic.Int64
}

func (c *runCounters) snapshot() types.RunStats {
	return types.RunStats{
		Sourcebooks:       c.sourcebooks.Load(),
		Chapters:          c.chapters.Load(),
		Sections:          c.sections.Load(),
		Paragraphs:        c.paragraphs.Load(),
		ParagraphsDropped: c.paragraphsDropped.Load(),
	}
}

func (s *service) Run(ctx context.Context, opts RunOptions) (stats types.RunStats, err error) {
	// A dead store must fail before any fetch or run creation.
	if err := s.pingStore(ctx); err != nil {
		return stats, ingesterr.Wrap(ingesterr.KindPrecondition, "backing store unreachable", err)
	}

	run, err := s.runRepo.Create(ctx, nil, &types.IngestRun{
		Authority: s.authority,
		SourceURL: s.client.BaseURL(),
		Status:    types.RunStatusRunning,
	})
	if err != nil {
		return stats, ingesterr.Wrap(ingesterr.KindPersistence, "create ingest run", err)
	}
	s.log.Info("Ingest run started", "run_id", run.ID, "authority", s.authority)

	counters := &runCounters{}
	defer func() {
		stats = counters.snapshot()
		status := types.RunStatusCompleted
		var runErr *types.RunError
		if err != nil {
			status = types.RunStatusFailed
			runErr = &types.RunError{
				Kind:    string(ingesterr.KindOf(err)),
				Message: err.Error(),
				Trace:   string(debug.Stack()),
			}
		}
		if finErr := s.runRepo.Finish(context.WithoutCancel(ctx), nil, run.ID, status, stats, runErr); finErr != nil {
			s.log.Error("Failed to finalize ingest run", "run_id", run.ID, "error", finErr)
		}
		s.log.Info("Ingest run finished",
			"run_id", run.ID,
			"status", status,
			"sourcebooks", stats.Sourcebooks,
			"chapters", stats.Chapters,
			"sections", stats.Sections,
			"paragraphs", stats.Paragraphs,
			"paragraphs_dropped", stats.ParagraphsDropped,
		)
	}()

	doc, err := s.client.Index(ctx)
	if err != nil {
		return stats, ingesterr.Wrap(ingesterr.KindTransient, "fetch taxonomy index", err)
	}

	books := selectSourcebooks(Collect(doc), opts)
	s.log.Info("Collected sourcebooks", "total", len(books))

	for _, book := range books {
		if err = s.ingestSourcebook(ctx, book, opts.MaxChaptersPerBook, counters); err != nil {
			return stats, err
		}
		counters.sourcebooks.Add(1)
	}
	return stats, nil
}

func selectSourcebooks(books []CollectedSourcebook, opts RunOptions) []CollectedSourcebook {
	if len(opts.Codes) > 0 {
		wanted := make(map[string]bool, len(opts.Codes))
		for _, code := range opts.Codes {
			wanted[strings.ToUpper(strings.TrimSpace(code))] = true
		}
		filtered := books[:0:0]
		for _, b := range books {
			if wanted[strings.ToUpper(b.Code)] {
				filtered = append(filtered, b)
			}
		}
		books = filtered
	}
	if opts.MaxSourcebooks > 0 && len(books) > opts.MaxSourcebooks {
		books = books[:opts.MaxSourcebooks]
	}
	return books
}

// ingestSourcebook persists one sourcebook: upsert, a fresh version,
// chapter rows, section rows with parents resolved through the chapter
// ref→id map, then the per-chapter provisions. The transient-key→id map
// lives and dies inside this call.
func (s *service) ingestSourcebook(ctx context.Context, book CollectedSourcebook, maxChapters int, counters *runCounters) error {
	log := s.log.With("code", book.Code)

	persisted, err := s.sourcebookRepo.Upsert(ctx, nil, &types.Sourcebook{
		Authority:    s.authority,
		Jurisdiction: s.jurisdiction,
		Code:         book.Code,
		Title:        book.Title,
		DocType:      book.DocType,
		SourceURL:    book.SourceURL,
		Status:       "active",
	})
	if err != nil {
		return ingesterr.Wrap(storeKind(err), fmt.Sprintf("upsert sourcebook %s", book.Code), err)
	}

	version, err := s.versionRepo.Create(ctx, nil, &types.DocumentVersion{
		SourcebookID: persisted.ID,
		VersionLabel: book.LastModified,
		SourceURL:    book.SourceURL,
		Fingerprint:  FingerprintFields(book.Code, book.LastModified, strconv.Itoa(len(book.Chapters))),
	})
	if err != nil {
		return ingesterr.Wrap(storeKind(err), fmt.Sprintf("create version for %s", book.Code), err)
	}
	log.Info("Created document version", "version_id", version.ID, "chapters", len(book.Chapters))

	chapterRows := make([]*types.Section, 0, len(book.Chapters))
	keyToRef := make(map[string]string, len(book.Chapters))
	for _, ch := range book.Chapters {
		keyToRef[ch.Key] = ch.Reference
		chapterRows = append(chapterRows, &types.Section{
			DocumentVersionID: version.ID,
			Level:             types.SectionLevelChapter,
			Number:            ch.Number,
			Title:             ch.Title,
			Reference:         ch.Reference,
			Path:              ch.Path,
			Anchor:            anchorFor(ch.Reference),
			DisplayText:       displayText(ch.Reference, ch.Title),
			OrderIndex:        ch.OrderIndex,
			Fingerprint:       sectionFingerprint(ch.Reference, ch.Title),
		})
	}
	chapterRefToID, err := s.sectionRepo.BulkInsert(ctx, nil, chapterRows)
	if err != nil {
		return ingesterr.Wrap(storeKind(err), fmt.Sprintf("insert chapters for %s", book.Code), err)
	}
	counters.chapters.Add(int64(len(chapterRows)))

	sectionRows := make([]*types.Section, 0, len(book.Sections))
	kept := make([]CollectedSection, 0, len(book.Sections))
	for _, sec := range book.Sections {
		chapRef, ok := keyToRef[sec.ParentKey]
		if !ok {
			log.Warn("Section has no collected chapter; skipping", "reference", sec.Reference, "parent_key", sec.ParentKey)
			continue
		}
		parentID, ok := chapterRefToID[chapRef]
		if !ok || parentID == uuid.Nil {
			log.Warn("Section parent not persisted; skipping", "reference", sec.Reference, "chapter_ref", chapRef)
			continue
		}
		pid := parentID
		sectionRows = append(sectionRows, &types.Section{
			DocumentVersionID: version.ID,
			ParentID:          &pid,
			Level:             types.SectionLevelSection,
			Number:            sec.Number,
			Title:             sec.Title,
			Reference:         sec.Reference,
			Path:              sec.Path,
			Anchor:            anchorFor(sec.Reference),
			DisplayText:       displayText(sec.Reference, sec.Title),
			OrderIndex:        sec.OrderIndex,
			Fingerprint:       sectionFingerprint(sec.Reference, sec.Title),
		})
		kept = append(kept, sec)
	}
	sectionRefToID, err := s.sectionRepo.BulkInsert(ctx, nil, sectionRows)
	if err != nil {
		return ingesterr.Wrap(storeKind(err), fmt.Sprintf("insert sections for %s", book.Code), err)
	}
	counters.sections.Add(int64(len(sectionRows)))

	// Transient-key → persisted-id map for provision owner resolution.
	keyToID := make(map[string]uuid.UUID, len(book.Chapters)+len(kept))
	for _, ch := range book.Chapters {
		if id, ok := chapterRefToID[ch.Reference]; ok {
			keyToID[ch.Key] = id
		}
	}
	for _, sec := range kept {
		if id, ok := sectionRefToID[sec.Reference]; ok {
			keyToID[sec.Key] = id
		}
	}

	return s.ingestProvisions(ctx, book, keyToID, maxChapters, counters)
}

// storeKind maps a store error onto the run error taxonomy: connection
// failures are retryable, duplicate rows are a data problem, anything else
// is a persistence fault.
func storeKind(err error) ingesterr.Kind {
	switch {
	case repos.IsConnectionFailure(err):
		return ingesterr.KindTransient
	case repos.IsUniqueViolation(err):
		return ingesterr.KindData
	default:
		return ingesterr.KindPersistence
	}
}

func (s *service) pingStore(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("no database configured")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func sectionFingerprint(reference, title string) string {
	if reference != "" {
		return Fingerprint(reference)
	}
	return Fingerprint(title)
}

func displayText(reference, title string) string {
	if title == "" {
		return reference
	}
	return reference + " " + title
}

func anchorFor(reference string) string {
	return strings.Join(strings.Fields(reference), "-")
}
