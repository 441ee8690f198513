//go:build !integration

package web_test

import (
	"context"

	"study-notes-backend/internal/domain"
	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/domain/ports/repository"
	"study-notes-backend/internal/usecase"
)

// Hand-rolled use-case mocks. Each method delegates to its Func hook when
// set and otherwise returns a harmless default, so tests only wire what
// they assert on.

// ---- PaymentUseCase ----

type MockPaymentUC struct {
	CreateOrderFunc      func(ctx context.Context, in usecase.CreateOrderInput) (string, string, error)
	ReconcileFunc        func(ctx context.Context, orderID, path string) (*model.PaymentIntent, error)
	SyncTransactionsFunc func(ctx context.Context) (int, error)
	SumByPeriodFunc      func(ctx context.Context, tx repository.Tx, period string) (int64, error)
}

var _ usecase.PaymentUseCase = (*MockPaymentUC)(nil)

func (m *MockPaymentUC) CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (string, string, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, in)
	}
	return "order_test", "session_test", nil
}

func (m *MockPaymentUC) Reconcile(ctx context.Context, orderID, path string) (*model.PaymentIntent, error) {
	if m.ReconcileFunc != nil {
		return m.ReconcileFunc(ctx, orderID, path)
	}
	return &model.PaymentIntent{OrderID: orderID, Status: model.PaymentStatusSuccess}, nil
}

func (m *MockPaymentUC) SyncTransactions(ctx context.Context) (int, error) {
	if m.SyncTransactionsFunc != nil {
		return m.SyncTransactionsFunc(ctx)
	}
	return 0, nil
}

func (m *MockPaymentUC) SumByPeriod(ctx context.Context, tx repository.Tx, period string) (int64, error) {
	if m.SumByPeriodFunc != nil {
		return m.SumByPeriodFunc(ctx, tx, period)
	}
	return 0, nil
}

// ---- CatalogUseCase ----

type MockCatalogUC struct {
	ListSubjectsFunc func(ctx context.Context) ([]*model.Subject, error)
	GetItemFunc      func(ctx context.Context, itemID string, itemType model.ItemType) (model.Item, error)
	LibraryFunc      func(ctx context.Context, userID string) ([]string, error)
	SavePDFFunc      func(ctx context.Context, d *model.PdfDocument) error
	SaveComboFunc    func(ctx context.Context, c *model.Combo) error
	DeletePDFFunc    func(ctx context.Context, id string) error
}

var _ usecase.CatalogUseCase = (*MockCatalogUC)(nil)

func (m *MockCatalogUC) ListSubjects(ctx context.Context) ([]*model.Subject, error) {
	if m.ListSubjectsFunc != nil {
		return m.ListSubjectsFunc(ctx)
	}
	return nil, nil
}

func (m *MockCatalogUC) ListTopics(ctx context.Context, subjectID string) ([]*model.Topic, error) {
	return nil, nil
}

func (m *MockCatalogUC) ListFolders(ctx context.Context, topicID string) ([]*model.Folder, error) {
	return nil, nil
}

func (m *MockCatalogUC) ListPDFs(ctx context.Context, folderID string) ([]*model.PdfDocument, error) {
	return nil, nil
}

func (m *MockCatalogUC) ListCombos(ctx context.Context) ([]*model.Combo, error) {
	return nil, nil
}

func (m *MockCatalogUC) GetItem(ctx context.Context, itemID string, itemType model.ItemType) (model.Item, error) {
	if m.GetItemFunc != nil {
		return m.GetItemFunc(ctx, itemID, itemType)
	}
	return model.Item{}, domain.ErrNotFound
}

func (m *MockCatalogUC) Owns(ctx context.Context, userID, itemID string, itemType model.ItemType) (bool, error) {
	return false, nil
}

func (m *MockCatalogUC) Library(ctx context.Context, userID string) ([]string, error) {
	if m.LibraryFunc != nil {
		return m.LibraryFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCatalogUC) CreateSubject(ctx context.Context, name string, position int) (*model.Subject, error) {
	return &model.Subject{ID: "subject-1", Name: name, Position: position}, nil
}

func (m *MockCatalogUC) CreateTopic(ctx context.Context, subjectID, name string, position int) (*model.Topic, error) {
	return &model.Topic{ID: "topic-1", SubjectID: subjectID, Name: name, Position: position}, nil
}

func (m *MockCatalogUC) CreateFolder(ctx context.Context, topicID, name string, position int) (*model.Folder, error) {
	return &model.Folder{ID: "folder-1", TopicID: topicID, Name: name, Position: position}, nil
}

func (m *MockCatalogUC) SavePDF(ctx context.Context, d *model.PdfDocument) error {
	if m.SavePDFFunc != nil {
		return m.SavePDFFunc(ctx, d)
	}
	if d.ID == "" {
		d.ID = "pdf-1"
	}
	return nil
}

func (m *MockCatalogUC) SaveCombo(ctx context.Context, c *model.Combo) error {
	if m.SaveComboFunc != nil {
		return m.SaveComboFunc(ctx, c)
	}
	if c.ID == "" {
		c.ID = "combo-1"
	}
	return nil
}

func (m *MockCatalogUC) DeletePDF(ctx context.Context, id string) error {
	if m.DeletePDFFunc != nil {
		return m.DeletePDFFunc(ctx, id)
	}
	return nil
}

func (m *MockCatalogUC) DeleteCombo(ctx context.Context, id string) error {
	return nil
}

// ---- UserUseCase ----

type MockUserUC struct {
	RegisterFunc func(ctx context.Context, id, email, name, phone string) (*model.User, error)
	GetFunc      func(ctx context.Context, id string) (*model.User, error)
	CountFunc    func(ctx context.Context) (int, error)
}

var _ usecase.UserUseCase = (*MockUserUC)(nil)

func (m *MockUserUC) Register(ctx context.Context, id, email, name, phone string) (*model.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, id, email, name, phone)
	}
	return &model.User{ID: id, Email: email, Name: name, Phone: phone}, nil
}

func (m *MockUserUC) Get(ctx context.Context, id string) (*model.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserUC) List(ctx context.Context, offset, limit int) ([]*model.User, error) {
	return nil, nil
}

func (m *MockUserUC) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// ---- NotesUseCase ----

type MockNotesUC struct {
	SubmitFunc func(ctx context.Context, userID, subject, topic, prompt, modelName string) (*model.NotesJob, error)
	GetFunc    func(ctx context.Context, jobID string) (*model.NotesJob, error)
}

var _ usecase.NotesUseCase = (*MockNotesUC)(nil)

func (m *MockNotesUC) Submit(ctx context.Context, userID, subject, topic, prompt, modelName string) (*model.NotesJob, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, userID, subject, topic, prompt, modelName)
	}
	return &model.NotesJob{ID: "job-1", UserID: userID, Topic: topic, Status: model.NotesJobStatusPending}, nil
}

func (m *MockNotesUC) ProcessNext(ctx context.Context) (bool, error) {
	return false, nil
}

func (m *MockNotesUC) Get(ctx context.Context, jobID string) (*model.NotesJob, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, jobID)
	}
	return nil, domain.ErrNotFound
}

func (m *MockNotesUC) ListByUser(ctx context.Context, userID string, limit int) ([]*model.NotesJob, error) {
	return nil, nil
}

// ---- ChatUseCase ----

type MockChatUC struct {
	SendMessageFunc func(ctx context.Context, userID, text string) (*model.ChatMessage, error)
	HistoryFunc     func(ctx context.Context, userID string, limit int) (*model.ChatSession, []*model.ChatMessage, error)
}

var _ usecase.ChatUseCase = (*MockChatUC)(nil)

func (m *MockChatUC) SendMessage(ctx context.Context, userID, text string) (*model.ChatMessage, error) {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, userID, text)
	}
	return &model.ChatMessage{ID: "msg-1", SessionID: "sess-1", Role: model.ChatRoleUser, Text: text}, nil
}

func (m *MockChatUC) SupportReply(ctx context.Context, sessionID, text string) (*model.ChatMessage, error) {
	return &model.ChatMessage{ID: "msg-2", SessionID: sessionID, Role: model.ChatRoleSupport, Text: text}, nil
}

func (m *MockChatUC) History(ctx context.Context, userID string, limit int) (*model.ChatSession, []*model.ChatMessage, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, userID, limit)
	}
	return nil, nil, domain.ErrNotFound
}

func (m *MockChatUC) CloseSession(ctx context.Context, userID string) error {
	return nil
}
