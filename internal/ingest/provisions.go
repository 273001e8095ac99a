package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	types "github.com/MEMAtest/horizon-scanner-backend-sub013/internal/domain"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/pkg/ingesterr"
)

// ingestProvisions fetches and persists the leaf provisions for every
// chapter of one sourcebook, fanning chapters out across a bounded worker
// group. Ordering is not semantically required; orderIndex already carries
// the source walk's order.
func (s *service) ingestProvisions(ctx context.Context, book CollectedSourcebook, keyToID map[string]uuid.UUID, maxChapters int, counters *runCounters) error {
	chapters := book.Chapters
	if maxChapters > 0 && len(chapters) > maxChapters {
		chapters = chapters[:maxChapters]
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.chapterWorkers)
	for _, ch := range chapters {
		if ch.Key == "" {
			continue
		}
		ch := ch
		g.Go(func() error {
			return s.ingestChapterProvisions(gctx, book.Code, ch, keyToID, counters)
		})
	}
	return g.Wait()
}

func (s *service) ingestChapterProvisions(ctx context.Context, bookCode string, ch CollectedChapter, keyToID map[string]uuid.UUID, counters *runCounters) error {
	doc, err := s.client.ChapterProvisions(ctx, ch.Key)
	if err != nil {
		return ingesterr.Wrap(ingesterr.KindTransient, fmt.Sprintf("fetch provisions for %s %s", bookCode, ch.Reference), err)
	}
	if doc == nil || len(doc.Provisions) == 0 {
		return nil
	}

	rows := make([]*types.Paragraph, 0, len(doc.Provisions))
	for _, p := range doc.Provisions {
		if p.IsDeleted {
			continue
		}
		ownerID, ok := keyToID[p.SectionID]
		if !ok || ownerID == uuid.Nil {
			// Never persist an orphaned paragraph.
			counters.paragraphsDropped.Add(1)
			continue
		}
		reference := ProvisionRef(p.ProvisionName, p.ProvisionType)
		fpInput := p.ContentText
		if fpInput == "" {
			fpInput = p.ContentType
		}
		rows = append(rows, &types.Paragraph{
			SectionID:   ownerID,
			Number:      p.ProvisionName,
			Reference:   reference,
			Anchor:      anchorFor(reference),
			Text:        p.ContentText,
			Markup:      p.ContentType,
			Fingerprint: Fingerprint(fpInput),
		})
	}
	if len(rows) == 0 {
		return nil
	}

	inserted, err := s.paragraphRepo.BulkInsert(ctx, nil, rows)
	if err != nil {
		return ingesterr.Wrap(storeKind(err), fmt.Sprintf("insert provisions for %s %s", bookCode, ch.Reference), err)
	}
	counters.paragraphs.Add(inserted)
	return nil
}
