//go:build !integration

package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"study-notes-backend/internal/domain"
	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/domain/ports/adapter"
	"study-notes-backend/internal/domain/ports/repository"
	"study-notes-backend/internal/usecase"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// =============================
// Adapters
// =============================

// ---- Mock PaymentGateway ----

type MockGateway struct {
	mu     sync.Mutex
	Orders map[string]*adapter.OrderState

	CreateOrderFunc    func(ctx context.Context, req adapter.CreateOrderRequest) (string, error)
	FetchOrderFunc     func(ctx context.Context, orderID string) (*adapter.OrderState, error)
	ListPaidOrdersFunc func(ctx context.Context, from, to time.Time, cursor string) ([]*adapter.OrderState, string, error)

	Calls struct {
		CreateOrder []adapter.CreateOrderRequest
		FetchOrder  []string
	}
}

var _ adapter.PaymentGateway = (*MockGateway)(nil)

func NewMockGateway() *MockGateway {
	return &MockGateway{Orders: map[string]*adapter.OrderState{}}
}

func (m *MockGateway) Name() string { return "mockpay" }

func (m *MockGateway) CreateOrder(ctx context.Context, req adapter.CreateOrderRequest) (string, error) {
	m.mu.Lock()
	m.Calls.CreateOrder = append(m.Calls.CreateOrder, req)
	m.mu.Unlock()
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, req)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Orders[req.OrderID] = &adapter.OrderState{
		OrderID: req.OrderID,
		Status:  adapter.OrderActive,
		Amount:  req.Amount,
		Tags:    req.Tags,
	}
	return "session_" + uuid.NewString(), nil
}

func (m *MockGateway) FetchOrder(ctx context.Context, orderID string) (*adapter.OrderState, error) {
	m.mu.Lock()
	m.Calls.FetchOrder = append(m.Calls.FetchOrder, orderID)
	m.mu.Unlock()
	if m.FetchOrderFunc != nil {
		return m.FetchOrderFunc(ctx, orderID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.Orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

// MarkPaid flips a stored order to PAID, simulating checkout completion.
func (m *MockGateway) MarkPaid(orderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.Orders[orderID]; ok {
		st.Status = adapter.OrderPaid
		now := time.Now()
		st.PaidAt = &now
	}
}

func (m *MockGateway) ListPaidOrders(ctx context.Context, from, to time.Time, cursor string) ([]*adapter.OrderState, string, error) {
	if m.ListPaidOrdersFunc != nil {
		return m.ListPaidOrdersFunc(ctx, from, to, cursor)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*adapter.OrderState
	for _, st := range m.Orders {
		if st.Status == adapter.OrderPaid {
			cp := *st
			out = append(out, &cp)
		}
	}
	return out, "", nil
}

// ---- Mock AIServiceAdapter ----

type MockAI struct {
	mu sync.Mutex

	ListModelsFunc        func(ctx context.Context) ([]string, error)
	CountTokensFunc       func(ctx context.Context, model string, msgs []adapter.Message) (int, error)
	GenerateFunc          func(ctx context.Context, model string, msgs []adapter.Message) (string, error)
	GenerateWithUsageFunc func(ctx context.Context, model string, msgs []adapter.Message) (string, adapter.Usage, error)

	Calls struct {
		Generate int
	}
}

var _ adapter.AIServiceAdapter = (*MockAI)(nil)

func (m *MockAI) ListModels(ctx context.Context) ([]string, error) {
	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx)
	}
	return []string{"gpt-4o-mini"}, nil
}

func (m *MockAI) CountTokens(ctx context.Context, model string, msgs []adapter.Message) (int, error) {
	if m.CountTokensFunc != nil {
		return m.CountTokensFunc(ctx, model, msgs)
	}
	n := 0
	for _, x := range msgs {
		n += len(x.Content)
	}
	return n, nil
}

func (m *MockAI) Generate(ctx context.Context, model string, msgs []adapter.Message) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, model, msgs)
	}
	return "ok", nil
}

func (m *MockAI) GenerateWithUsage(ctx context.Context, model string, msgs []adapter.Message) (string, adapter.Usage, error) {
	m.mu.Lock()
	m.Calls.Generate++
	m.mu.Unlock()
	if m.GenerateWithUsageFunc != nil {
		return m.GenerateWithUsageFunc(ctx, model, msgs)
	}
	return "# Notes", adapter.Usage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30}, nil
}

// ---- Mock SupportNotifier ----

type MockNotifier struct {
	mu   sync.Mutex
	Sent []string // texts in arrival order

	NotifyFunc func(ctx context.Context, userID, sessionID, text string) error
}

var _ adapter.SupportNotifier = (*MockNotifier)(nil)

func (m *MockNotifier) NotifySupportMessage(ctx context.Context, userID, sessionID, text string) error {
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, userID, sessionID, text)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, text)
	return nil
}

// ---- Mock RateLimiter ----

type MockLimiter struct {
	AllowFunc func(ctx context.Context, key string) (bool, error)
}

var _ usecase.RateLimiter = (*MockLimiter)(nil)

func (m *MockLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, key)
	}
	return true, nil
}

// =============================
// Repositories
// =============================

// MockTxManager runs the callback inline without a real transaction. Tests
// that need failure injection set WithTxFunc.
type MockTxManager struct {
	WithTxFunc func(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func (m *MockTxManager) WithTx(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, opts, fn)
	}
	return fn(ctx, repository.NoTX)
}

// ---- Mock PaymentIntentRepository ----

type MockPaymentRepo struct {
	mu    sync.Mutex
	byOID map[string]*model.PaymentIntent

	SaveFunc                  func(ctx context.Context, tx repository.Tx, p *model.PaymentIntent) error
	FindByOrderIDFunc         func(ctx context.Context, tx repository.Tx, orderID string) (*model.PaymentIntent, error)
	UpdateStatusIfPendingFunc func(ctx context.Context, tx repository.Tx, orderID string, status model.PaymentStatus) (bool, error)
}

var _ repository.PaymentIntentRepository = (*MockPaymentRepo)(nil)

func NewMockPaymentRepo() *MockPaymentRepo {
	return &MockPaymentRepo{byOID: map[string]*model.PaymentIntent{}}
}

func (r *MockPaymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.PaymentIntent) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, p)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.byOID[p.OrderID] = &cp
	return nil
}

func (r *MockPaymentRepo) FindByOrderID(ctx context.Context, tx repository.Tx, orderID string) (*model.PaymentIntent, error) {
	if r.FindByOrderIDFunc != nil {
		return r.FindByOrderIDFunc(ctx, tx, orderID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byOID[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *MockPaymentRepo) UpdateStatusIfPending(ctx context.Context, tx repository.Tx, orderID string, status model.PaymentStatus) (bool, error) {
	if r.UpdateStatusIfPendingFunc != nil {
		return r.UpdateStatusIfPendingFunc(ctx, tx, orderID, status)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byOID[orderID]
	if !ok || p.Status != model.PaymentStatusPending {
		return false, nil
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	return true, nil
}

func (r *MockPaymentRepo) ListPendingOlderThan(ctx context.Context, tx repository.Tx, olderThan time.Time, limit int) ([]*model.PaymentIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.PaymentIntent
	for _, p := range r.byOID {
		if p.Status == model.PaymentStatusPending && p.CreatedAt.Before(olderThan) {
			cp := *p
			out = append(out, &cp)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *MockPaymentRepo) SumByPeriod(ctx context.Context, tx repository.Tx, period string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, p := range r.byOID {
		if p.Status == model.PaymentStatusSuccess {
			total = total.Add(p.Amount)
		}
	}
	return total.IntPart(), nil
}

// Get returns the stored intent without copying, for assertions only.
func (r *MockPaymentRepo) Get(orderID string) *model.PaymentIntent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byOID[orderID]
}

// ---- Mock UserRepository ----

type MockUserRepo struct {
	mu   sync.Mutex
	byID map[string]*model.User

	GrantCalls int // total GrantItem invocations, duplicates included

	SaveFunc      func(ctx context.Context, tx repository.Tx, u *model.User) error
	FindByIDFunc  func(ctx context.Context, tx repository.Tx, id string) (*model.User, error)
	GrantItemFunc func(ctx context.Context, tx repository.Tx, userID, itemID string) error
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{byID: map[string]*model.User{}}
}

func (r *MockUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, u)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *MockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	cp.PurchasedItems = append([]string(nil), u.PurchasedItems...)
	return &cp, nil
}

func (r *MockUserRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.User
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MockUserRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID), nil
}

func (r *MockUserRepo) GrantItem(ctx context.Context, tx repository.Tx, userID, itemID string) error {
	r.mu.Lock()
	r.GrantCalls++
	r.mu.Unlock()
	if r.GrantItemFunc != nil {
		return r.GrantItemFunc(ctx, tx, userID, itemID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, id := range u.PurchasedItems {
		if id == itemID {
			return nil
		}
	}
	u.PurchasedItems = append(u.PurchasedItems, itemID)
	return nil
}

// ---- Mock CatalogRepository ----

type MockCatalogRepo struct {
	mu       sync.Mutex
	subjects map[string]*model.Subject
	topics   map[string]*model.Topic
	folders  map[string]*model.Folder
	pdfs     map[string]*model.PdfDocument
	combos   map[string]*model.Combo

	ListSubjectsFunc func(ctx context.Context, tx repository.Tx) ([]*model.Subject, error)
	FindPDFFunc      func(ctx context.Context, tx repository.Tx, id string) (*model.PdfDocument, error)
	FindComboFunc    func(ctx context.Context, tx repository.Tx, id string) (*model.Combo, error)

	Calls struct {
		ListSubjects int
	}
}

var _ repository.CatalogRepository = (*MockCatalogRepo)(nil)

func NewMockCatalogRepo() *MockCatalogRepo {
	return &MockCatalogRepo{
		subjects: map[string]*model.Subject{},
		topics:   map[string]*model.Topic{},
		folders:  map[string]*model.Folder{},
		pdfs:     map[string]*model.PdfDocument{},
		combos:   map[string]*model.Combo{},
	}
}

func (r *MockCatalogRepo) ListSubjects(ctx context.Context, tx repository.Tx) ([]*model.Subject, error) {
	r.mu.Lock()
	r.Calls.ListSubjects++
	r.mu.Unlock()
	if r.ListSubjectsFunc != nil {
		return r.ListSubjectsFunc(ctx, tx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Subject
	for _, s := range r.subjects {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MockCatalogRepo) ListTopics(ctx context.Context, tx repository.Tx, subjectID string) ([]*model.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Topic
	for _, t := range r.topics {
		if t.SubjectID == subjectID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockCatalogRepo) ListFolders(ctx context.Context, tx repository.Tx, topicID string) ([]*model.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Folder
	for _, f := range r.folders {
		if f.TopicID == topicID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockCatalogRepo) ListPDFs(ctx context.Context, tx repository.Tx, folderID string) ([]*model.PdfDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.PdfDocument
	for _, d := range r.pdfs {
		if d.FolderID == folderID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockCatalogRepo) ListCombos(ctx context.Context, tx repository.Tx) ([]*model.Combo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Combo
	for _, c := range r.combos {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MockCatalogRepo) FindPDF(ctx context.Context, tx repository.Tx, id string) (*model.PdfDocument, error) {
	if r.FindPDFFunc != nil {
		return r.FindPDFFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.pdfs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *MockCatalogRepo) FindCombo(ctx context.Context, tx repository.Tx, id string) (*model.Combo, error) {
	if r.FindComboFunc != nil {
		return r.FindComboFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.combos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *MockCatalogRepo) SaveSubject(ctx context.Context, tx repository.Tx, s *model.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.subjects[s.ID] = &cp
	return nil
}

func (r *MockCatalogRepo) SaveTopic(ctx context.Context, tx repository.Tx, t *model.Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.topics[t.ID] = &cp
	return nil
}

func (r *MockCatalogRepo) SaveFolder(ctx context.Context, tx repository.Tx, f *model.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.folders[f.ID] = &cp
	return nil
}

func (r *MockCatalogRepo) SavePDF(ctx context.Context, tx repository.Tx, d *model.PdfDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.pdfs[d.ID] = &cp
	return nil
}

func (r *MockCatalogRepo) SaveCombo(ctx context.Context, tx repository.Tx, c *model.Combo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.combos[c.ID] = &cp
	return nil
}

func (r *MockCatalogRepo) DeletePDF(ctx context.Context, tx repository.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pdfs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.pdfs, id)
	return nil
}

func (r *MockCatalogRepo) DeleteCombo(ctx context.Context, tx repository.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.combos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.combos, id)
	return nil
}

// ---- Mock NotesJobRepository ----

type MockNotesJobRepo struct {
	mu   sync.Mutex
	byID map[string]*model.NotesJob

	SaveFunc         func(ctx context.Context, tx repository.Tx, j *model.NotesJob) error
	UpdateStatusFunc func(ctx context.Context, tx repository.Tx, id string, status model.NotesJobStatus, result, lastError string) error
}

var _ repository.NotesJobRepository = (*MockNotesJobRepo)(nil)

func NewMockNotesJobRepo() *MockNotesJobRepo {
	return &MockNotesJobRepo{byID: map[string]*model.NotesJob{}}
}

func (r *MockNotesJobRepo) Save(ctx context.Context, tx repository.Tx, j *model.NotesJob) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, j)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *j
	r.byID[j.ID] = &cp
	return nil
}

func (r *MockNotesJobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.NotesJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (r *MockNotesJobRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.NotesJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.NotesJob
	for _, j := range r.byID {
		if j.UserID == userID {
			cp := *j
			out = append(out, &cp)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// FetchAndMarkProcessing claims the pending job with the lowest id; ULIDs
// sort by creation time so this matches the queue order of the real repo.
func (r *MockNotesJobRepo) FetchAndMarkProcessing(ctx context.Context) (*model.NotesJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var oldest *model.NotesJob
	for _, j := range r.byID {
		if j.Status != model.NotesJobStatusPending {
			continue
		}
		if oldest == nil || j.ID < oldest.ID {
			oldest = j
		}
	}
	if oldest == nil {
		return nil, domain.ErrNotFound
	}
	oldest.Status = model.NotesJobStatusProcessing
	oldest.UpdatedAt = time.Now()
	cp := *oldest
	return &cp, nil
}

func (r *MockNotesJobRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id string, status model.NotesJobStatus, result, lastError string) error {
	if r.UpdateStatusFunc != nil {
		return r.UpdateStatusFunc(ctx, tx, id, status, result, lastError)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	j.Status = status
	j.Result = result
	j.LastError = lastError
	j.UpdatedAt = time.Now()
	return nil
}

// Get returns the stored job without copying, for assertions only.
func (r *MockNotesJobRepo) Get(id string) *model.NotesJob {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id]
}

// ---- Mock ChatSessionRepository ----

type MockChatRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.ChatSession   // by session id
	messages map[string][]*model.ChatMessage // by session id

	FindOpenByUserFunc func(ctx context.Context, tx repository.Tx, userID string) (*model.ChatSession, error)
	AppendMessageFunc  func(ctx context.Context, tx repository.Tx, m *model.ChatMessage) error
}

var _ repository.ChatSessionRepository = (*MockChatRepo)(nil)

func NewMockChatRepo() *MockChatRepo {
	return &MockChatRepo{
		sessions: map[string]*model.ChatSession{},
		messages: map[string][]*model.ChatMessage{},
	}
}

func (r *MockChatRepo) FindOpenByUser(ctx context.Context, tx repository.Tx, userID string) (*model.ChatSession, error) {
	if r.FindOpenByUserFunc != nil {
		return r.FindOpenByUserFunc(ctx, tx, userID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.UserID == userID && s.Open {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MockChatRepo) SaveSession(ctx context.Context, tx repository.Tx, s *model.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *MockChatRepo) AppendMessage(ctx context.Context, tx repository.Tx, m *model.ChatMessage) error {
	if r.AppendMessageFunc != nil {
		return r.AppendMessageFunc(ctx, tx, m)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.messages[m.SessionID] = append(r.messages[m.SessionID], &cp)
	return nil
}

func (r *MockChatRepo) ListMessages(ctx context.Context, tx repository.Tx, sessionID string, limit int) ([]*model.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.messages[sessionID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]*model.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

// ---- In-memory CatalogCache ----

type memCatalogCache struct {
	mu       sync.Mutex
	subjects []*model.Subject
	set      bool

	Hits, Misses, Invalidations int
}

var _ usecase.CatalogCache = (*memCatalogCache)(nil)

func (c *memCatalogCache) GetSubjects(ctx context.Context) ([]*model.Subject, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.set {
		c.Misses++
		return nil, false
	}
	c.Hits++
	return c.subjects, true
}

func (c *memCatalogCache) SetSubjects(ctx context.Context, subjects []*model.Subject) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subjects = subjects
	c.set = true
}

func (c *memCatalogCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subjects = nil
	c.set = false
	c.Invalidations++
}
