package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/clients/rulebook"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/data/db"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/data/repos"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/ingest"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/platform/envutil"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/platform/logger"
)

func main() {
	var batchSize int
	var startBatch int
	var endBatch int
	var maxChapters int
	var inventoryPath string
	flag.IntVar(&batchSize, "batch-size", 5, "codes per batch")
	flag.IntVar(&startBatch, "start", 1, "first batch to run (1-based, inclusive)")
	flag.IntVar(&endBatch, "end", 0, "last batch to run (1-based, inclusive; 0 = last)")
	flag.IntVar(&maxChapters, "max-chapters", 0, "cap on chapters per sourcebook (0 = no cap)")
	flag.StringVar(&inventoryPath, "inventory", "inventory.yaml", "path to expected-count inventory")
	flag.Parse()

	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	inv, err := ingest.LoadInventory(inventoryPath)
	if err != nil {
		log.Error("Could not load inventory", "path", inventoryPath, "error", err)
		os.Exit(1)
	}

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

	report, err := svc.RunCheckpoint(context.Background(), inv, ingest.CheckpointConfig{
		BatchSize:          batchSize,
		StartBatch:         startBatch,
		EndBatch:           endBatch,
		MaxChaptersPerBook: maxChapters,
	})
	if err != nil {
		log.Error("Checkpoint run failed", "error", err)
		os.Exit(1)
	}

	for _, o := range report.Outcomes {
		status := "ok"
		switch {
		case !o.Ingested:
			status = "failed: " + o.Error
		case !o.Verified:
			status = "unverified"
		case !o.Match:
			status = "mismatch"
		}
		fmt.Printf(
			"batch %d code %-8s chapters=%d sections=%d paragraphs=%d %s\n",
			o.Batch, o.Code, o.Chapters, o.Sections, o.Paragraphs, status,
		)
	}
	if report.Failed() {
		os.Exit(1)
	}
}
