package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/clients/rulebook"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/data/db"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/data/repos"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/ingest"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/platform/envutil"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/platform/logger"
)

type codeList []string

func (l *codeList) String() string { return strings.Join(*l, ",") }
func (l *codeList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v != "" {
		*l = append(*l, v)
	}
	return nil
}

func main() {
	var codes codeList
	var maxSourcebooks int
	var maxChapters int
	flag.Var(&codes, "code", "sourcebook code to ingest (repeatable; default all)")
	flag.IntVar(&maxSourcebooks, "max-sourcebooks", 0, "cap on sourcebooks processed (0 = no cap)")
	flag.IntVar(&maxChapters, "max-chapters", 0, "cap on chapters per sourcebook (0 = no cap)")
	flag.Parse()

	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	client, err := rulebook.NewFromEnv(log)
	if err != nil {
		log.Error("Could not init rulebook client", "error", err)
		os.Exit(1)
	}

	svc := ingest.NewService(
		thePG,
		log,
		client,
		repos.NewSourcebookRepo(thePG, log),
		repos.NewDocumentVersionRepo(thePG, log),
		repos.NewSectionRepo(thePG, log),
		repos.NewParagraphRepo(thePG, log),
		repos.NewIngestRunRepo(thePG, log),
		envutil.String("RULEBOOK_AUTHORITY", "FCA"),
		envutil.String("RULEBOOK_JURISDICTION", "UK"),
		envutil.Int("INGEST_CHAPTER_WORKERS", 4),
	)

	stats, err := svc.Run(context.Background(), ingest.RunOptions{
		Codes:              codes,
		MaxSourcebooks:     maxSourcebooks,
		MaxChaptersPerBook: maxChapters,
	})
	if err != nil {
		log.Error("Ingestion failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf(
		"ingested %d sourcebooks, %d chapters, %d sections, %d paragraphs (%d dropped)\n",
		stats.Sourcebooks, stats.Chapters, stats.Sections, stats.Paragraphs, stats.ParagraphsDropped,
	)
}
