package repository

import (
	"context"

	"study-notes-backend/internal/domain/model"
)

type CatalogRepository interface {
	ListSubjects(ctx context.Context, tx Tx) ([]*model.Subject, error)
	ListTopics(ctx context.Context, tx Tx, subjectID string) ([]*model.Topic, error)
	ListFolders(ctx context.Context, tx Tx, topicID string) ([]*model.Folder, error)
	ListPDFs(ctx context.Context, tx Tx, folderID string) ([]*model.PdfDocument, error)
	ListCombos(ctx context.Context, tx Tx) ([]*model.Combo, error)

	FindPDF(ctx context.Context, tx Tx, id string) (*model.PdfDocument, error)
	FindCombo(ctx context.Context, tx Tx, id string) (*model.Combo, error)

	SaveSubject(ctx context.Context, tx Tx, s *model.Subject) error
	SaveTopic(ctx context.Context, tx Tx, t *model.Topic) error
	SaveFolder(ctx context.Context, tx Tx, f *model.Folder) error
	SavePDF(ctx context.Context, tx Tx, d *model.PdfDocument) error
	SaveCombo(ctx context.Context, tx Tx, c *model.Combo) error

	DeletePDF(ctx context.Context, tx Tx, id string) error
	DeleteCombo(ctx context.Context, tx Tx, id string) error
}
