package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"study-notes-backend/internal/config"
	"study-notes-backend/internal/domain/model"
	pg "study-notes-backend/internal/infra/db/postgres"
	"study-notes-backend/internal/usecase"
)

// Seeds a small catalog so the payment flow can be exercised end to end.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	logger := zerolog.Nop()
	catalogRepo := pg.NewCatalogRepo(pool)
	userRepo := pg.NewUserRepo(pool)
	catUC := usecase.NewCatalogUseCase(catalogRepo, userRepo, nil, &logger)

	subjects, err := catUC.ListSubjects(ctx)
	if err != nil {
		log.Fatalf("list subjects: %v", err)
	}
	if len(subjects) > 0 {
		fmt.Printf("%d subjects already present. No changes.\n", len(subjects))
		return
	}

	subject, err := catUC.CreateSubject(ctx, "Mathematics", 1)
	if err != nil {
		log.Fatalf("create subject: %v", err)
	}
	topic, err := catUC.CreateTopic(ctx, subject.ID, "Calculus", 1)
	if err != nil {
		log.Fatalf("create topic: %v", err)
	}
	folder, err := catUC.CreateFolder(ctx, topic.ID, "Limits and Continuity", 1)
	if err != nil {
		log.Fatalf("create folder: %v", err)
	}

	pdfs := []*model.PdfDocument{
		{
			FolderID:   folder.ID,
			Name:       "Limits Basics",
			FileURL:    "https://cdn.example.com/notes/limits-basics.pdf",
			AccessType: model.AccessFree,
			Price:      decimal.Zero,
		},
		{
			FolderID:   folder.ID,
			Name:       "Limits Complete Notes",
			FileURL:    "https://cdn.example.com/notes/limits-complete.pdf",
			AccessType: model.AccessPaid,
			Price:      decimal.NewFromInt(199),
		},
		{
			FolderID:   folder.ID,
			Name:       "Continuity Worked Problems",
			FileURL:    "https://cdn.example.com/notes/continuity-problems.pdf",
			AccessType: model.AccessPaid,
			Price:      decimal.NewFromInt(149),
		},
	}
	for _, d := range pdfs {
		if err := catUC.SavePDF(ctx, d); err != nil {
			log.Fatalf("save pdf %q: %v", d.Name, err)
		}
		fmt.Printf("seeded pdf: %s (id=%s, access=%s)\n", d.Name, d.ID, d.AccessType)
	}

	combo := &model.Combo{
		Name:       "Calculus Full Pack",
		PdfIDs:     []string{pdfs[1].ID, pdfs[2].ID},
		AccessType: model.AccessPaid,
		Price:      decimal.NewFromInt(299),
	}
	if err := catUC.SaveCombo(ctx, combo); err != nil {
		log.Fatalf("save combo: %v", err)
	}
	fmt.Printf("seeded combo: %s (id=%s)\n", combo.Name, combo.ID)

	fmt.Println("Seeding complete.")
}
