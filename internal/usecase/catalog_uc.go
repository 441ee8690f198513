package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"study-notes-backend/internal/domain"
	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/domain/ports/repository"
)

// Compile-time check
var _ CatalogUseCase = (*catalogUC)(nil)

type CatalogUseCase interface {
	ListSubjects(ctx context.Context) ([]*model.Subject, error)
	ListTopics(ctx context.Context, subjectID string) ([]*model.Topic, error)
	ListFolders(ctx context.Context, topicID string) ([]*model.Folder, error)
	ListPDFs(ctx context.Context, folderID string) ([]*model.PdfDocument, error)
	ListCombos(ctx context.Context) ([]*model.Combo, error)

	// GetItem resolves a purchasable view of a combo or PDF by id.
	GetItem(ctx context.Context, itemID string, itemType model.ItemType) (model.Item, error)

	// Owns reports whether the user may access the item: free items are always
	// owned, paid items only when present in the purchased set.
	Owns(ctx context.Context, userID, itemID string, itemType model.ItemType) (bool, error)

	// Library returns the ids of all items the user has purchased.
	Library(ctx context.Context, userID string) ([]string, error)

	CreateSubject(ctx context.Context, name string, position int) (*model.Subject, error)
	CreateTopic(ctx context.Context, subjectID, name string, position int) (*model.Topic, error)
	CreateFolder(ctx context.Context, topicID, name string, position int) (*model.Folder, error)
	SavePDF(ctx context.Context, d *model.PdfDocument) error
	SaveCombo(ctx context.Context, c *model.Combo) error
	DeletePDF(ctx context.Context, id string) error
	DeleteCombo(ctx context.Context, id string) error
}

// CatalogCache is the read-through cache over subject listings. Implemented
// by the redis adapter; a nil cache disables caching.
type CatalogCache interface {
	GetSubjects(ctx context.Context) ([]*model.Subject, bool)
	SetSubjects(ctx context.Context, subjects []*model.Subject)
	Invalidate(ctx context.Context)
}

type catalogUC struct {
	catalog repository.CatalogRepository
	users   repository.UserRepository
	cache   CatalogCache
	log     *zerolog.Logger
}

func NewCatalogUseCase(catalog repository.CatalogRepository, users repository.UserRepository, cache CatalogCache, logger *zerolog.Logger) *catalogUC {
	l := logger.With().Str("component", "CatalogUC").Logger()
	return &catalogUC{catalog: catalog, users: users, cache: cache, log: &l}
}

func (u *catalogUC) ListSubjects(ctx context.Context) ([]*model.Subject, error) {
	if u.cache != nil {
		if subjects, ok := u.cache.GetSubjects(ctx); ok {
			return subjects, nil
		}
	}
	subjects, err := u.catalog.ListSubjects(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	if u.cache != nil {
		u.cache.SetSubjects(ctx, subjects)
	}
	return subjects, nil
}

func (u *catalogUC) ListTopics(ctx context.Context, subjectID string) ([]*model.Topic, error) {
	return u.catalog.ListTopics(ctx, repository.NoTX, subjectID)
}

func (u *catalogUC) ListFolders(ctx context.Context, topicID string) ([]*model.Folder, error) {
	return u.catalog.ListFolders(ctx, repository.NoTX, topicID)
}

func (u *catalogUC) ListPDFs(ctx context.Context, folderID string) ([]*model.PdfDocument, error) {
	return u.catalog.ListPDFs(ctx, repository.NoTX, folderID)
}

func (u *catalogUC) ListCombos(ctx context.Context) ([]*model.Combo, error) {
	return u.catalog.ListCombos(ctx, repository.NoTX)
}

func (u *catalogUC) GetItem(ctx context.Context, itemID string, itemType model.ItemType) (model.Item, error) {
	switch itemType {
	case model.ItemTypePDF:
		d, err := u.catalog.FindPDF(ctx, repository.NoTX, itemID)
		if err != nil {
			return model.Item{}, err
		}
		return d.Item(), nil
	case model.ItemTypeCombo:
		c, err := u.catalog.FindCombo(ctx, repository.NoTX, itemID)
		if err != nil {
			return model.Item{}, err
		}
		return c.Item(), nil
	default:
		return model.Item{}, domain.ErrValidation
	}
}

func (u *catalogUC) Owns(ctx context.Context, userID, itemID string, itemType model.ItemType) (bool, error) {
	item, err := u.GetItem(ctx, itemID, itemType)
	if err != nil {
		return false, err
	}
	if item.AccessType == model.AccessFree {
		return true, nil
	}
	user, err := u.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return false, err
	}
	if user.Owns(itemID) {
		return true, nil
	}
	// A combo purchase covers its member PDFs.
	if itemType == model.ItemTypePDF {
		combos, err := u.catalog.ListCombos(ctx, repository.NoTX)
		if err != nil {
			return false, err
		}
		for _, c := range combos {
			if !user.Owns(c.ID) {
				continue
			}
			for _, pdfID := range c.PdfIDs {
				if pdfID == itemID {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

func (u *catalogUC) Library(ctx context.Context, userID string) ([]string, error) {
	user, err := u.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}
	return user.PurchasedItems, nil
}

func (u *catalogUC) CreateSubject(ctx context.Context, name string, position int) (*model.Subject, error) {
	if name == "" {
		return nil, domain.ErrInvalidArgument
	}
	s := &model.Subject{ID: uuid.NewString(), Name: name, Position: position, CreatedAt: time.Now()}
	if err := u.catalog.SaveSubject(ctx, repository.NoTX, s); err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	return s, nil
}

func (u *catalogUC) CreateTopic(ctx context.Context, subjectID, name string, position int) (*model.Topic, error) {
	if subjectID == "" || name == "" {
		return nil, domain.ErrInvalidArgument
	}
	t := &model.Topic{ID: uuid.NewString(), SubjectID: subjectID, Name: name, Position: position, CreatedAt: time.Now()}
	if err := u.catalog.SaveTopic(ctx, repository.NoTX, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (u *catalogUC) CreateFolder(ctx context.Context, topicID, name string, position int) (*model.Folder, error) {
	if topicID == "" || name == "" {
		return nil, domain.ErrInvalidArgument
	}
	f := &model.Folder{ID: uuid.NewString(), TopicID: topicID, Name: name, Position: position, CreatedAt: time.Now()}
	if err := u.catalog.SaveFolder(ctx, repository.NoTX, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (u *catalogUC) SavePDF(ctx context.Context, d *model.PdfDocument) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
		d.CreatedAt = time.Now()
	}
	if d.Name == "" || d.FolderID == "" {
		return domain.ErrInvalidArgument
	}
	if d.AccessType == model.AccessPaid && !d.Price.IsPositive() {
		return domain.ErrInvalidArgument
	}
	d.UpdatedAt = time.Now()
	return u.catalog.SavePDF(ctx, repository.NoTX, d)
}

func (u *catalogUC) SaveCombo(ctx context.Context, c *model.Combo) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
		c.CreatedAt = time.Now()
	}
	if c.Name == "" || len(c.PdfIDs) == 0 {
		return domain.ErrInvalidArgument
	}
	if c.AccessType == model.AccessPaid && !c.Price.IsPositive() {
		return domain.ErrInvalidArgument
	}
	c.UpdatedAt = time.Now()
	return u.catalog.SaveCombo(ctx, repository.NoTX, c)
}

func (u *catalogUC) DeletePDF(ctx context.Context, id string) error {
	return u.catalog.DeletePDF(ctx, repository.NoTX, id)
}

func (u *catalogUC) DeleteCombo(ctx context.Context, id string) error {
	return u.catalog.DeleteCombo(ctx, repository.NoTX, id)
}

func (u *catalogUC) invalidate(ctx context.Context) {
	if u.cache != nil {
		u.cache.Invalidate(ctx)
	}
}
