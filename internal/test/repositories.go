package test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/deliveryportal/internal/domain/errors"
	"github.com/polkiloo/deliveryportal/internal/domain/model"
)

// InvoiceRepositoryStub keeps invoices in memory and applies the same
// conditional writes as the PostgreSQL repository.
type InvoiceRepositoryStub struct {
	mu       sync.Mutex
	invoices map[string]*model.InvoiceWithOwner

	// Owners resolves the owning client of a project for invoices created through Create,
	// mirroring the projects join of the PostgreSQL repository.
	Owners map[string]string

	Err               error
	GetFn             func(context.Context, string) (*model.InvoiceWithOwner, error)
	SetGatewayOrderFn func(context.Context, string, string) (bool, error)
	MarkPaidFn        func(context.Context, string, string, time.Time) (*model.Invoice, error)
	MarkOverdueFn     func(context.Context, time.Time, int) ([]model.InvoiceWithOwner, error)

	SetGatewayOrderCalls int
	MarkPaidCalls        int
}

// NewInvoiceRepositoryStub constructs stub repository seeded with invoices.
func NewInvoiceRepositoryStub(invoices ...model.InvoiceWithOwner) *InvoiceRepositoryStub {
	s := &InvoiceRepositoryStub{invoices: make(map[string]*model.InvoiceWithOwner)}
	for _, inv := range invoices {
		s.Put(inv)
	}
	return s
}

// Put stores a copy of inv.
func (s *InvoiceRepositoryStub) Put(inv model.InvoiceWithOwner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.invoices == nil {
		s.invoices = make(map[string]*model.InvoiceWithOwner)
	}
	stored := cloneInvoice(inv)
	s.invoices[inv.ID] = &stored
}

// Snapshot returns a copy of the stored invoice.
func (s *InvoiceRepositoryStub) Snapshot(id string) (model.InvoiceWithOwner, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok {
		return model.InvoiceWithOwner{}, false
	}
	return cloneInvoice(*inv), true
}

func (s *InvoiceRepositoryStub) GetWithProjectOwner(ctx context.Context, id string) (*model.InvoiceWithOwner, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	inv, ok := s.Snapshot(id)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &inv, nil
}

func (s *InvoiceRepositoryStub) SetGatewayOrder(ctx context.Context, id, orderID string) (bool, error) {
	s.mu.Lock()
	s.SetGatewayOrderCalls++
	s.mu.Unlock()
	if s.SetGatewayOrderFn != nil {
		return s.SetGatewayOrderFn(ctx, id, orderID)
	}
	if s.Err != nil {
		return false, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok || inv.HasGatewayOrder() || inv.Status == model.InvoiceStatusPaid {
		return false, nil
	}
	inv.GatewayOrderID = &orderID
	inv.Status = model.InvoiceStatusPending
	return true, nil
}

func (s *InvoiceRepositoryStub) FindByGatewayOrderID(ctx context.Context, orderID string) (*model.InvoiceWithOwner, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invoices {
		if inv.GatewayOrderID != nil && *inv.GatewayOrderID == orderID {
			found := cloneInvoice(*inv)
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *InvoiceRepositoryStub) MarkPaid(ctx context.Context, id, paymentID string, paidAt time.Time) (*model.Invoice, error) {
	s.mu.Lock()
	s.MarkPaidCalls++
	s.mu.Unlock()
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, id, paymentID, paidAt)
	}
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok || (inv.GatewayPaymentID != nil && *inv.GatewayPaymentID != paymentID) {
		return nil, domainErrors.ErrPaymentConflict
	}
	inv.Status = model.InvoiceStatusPaid
	inv.GatewayPaymentID = &paymentID
	if inv.PaidAt == nil {
		inv.PaidAt = &paidAt
	}
	paid := cloneInvoice(*inv)
	return &paid.Invoice, nil
}

func (s *InvoiceRepositoryStub) Create(ctx context.Context, in model.NewInvoice) (*model.Invoice, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	inv := model.InvoiceWithOwner{Invoice: model.Invoice{
		ID:        uuid.NewString(),
		ProjectID: in.ProjectID,
		Title:     in.Title,
		Amount:    in.Amount,
		Currency:  in.Currency,
		Status:    in.Status,
		DueDate:   in.DueDate,
		CreatedAt: time.Now(),
	}, OwnerID: s.Owners[in.ProjectID]}
	s.Put(inv)
	return &inv.Invoice, nil
}

func (s *InvoiceRepositoryStub) ListByProject(ctx context.Context, projectID string) ([]model.Invoice, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Invoice
	for _, inv := range s.invoices {
		if inv.ProjectID == projectID {
			result = append(result, cloneInvoice(*inv).Invoice)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (s *InvoiceRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.InvoiceStatus) (*model.Invoice, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	inv.Status = status
	updated := cloneInvoice(*inv)
	return &updated.Invoice, nil
}

func (s *InvoiceRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invoices[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.invoices, id)
	return nil
}

func (s *InvoiceRepositoryStub) MarkOverdue(ctx context.Context, now time.Time, limit int) ([]model.InvoiceWithOwner, error) {
	if s.MarkOverdueFn != nil {
		return s.MarkOverdueFn(ctx, now, limit)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.InvoiceWithOwner
	for _, inv := range s.invoices {
		if len(result) >= limit {
			break
		}
		if inv.Status == model.InvoiceStatusPending && inv.DueDate != nil && inv.DueDate.Before(now) {
			inv.Status = model.InvoiceStatusOverdue
			result = append(result, cloneInvoice(*inv))
		}
	}
	return result, nil
}

func cloneInvoice(in model.InvoiceWithOwner) model.InvoiceWithOwner {
	out := in
	if in.DueDate != nil {
		v := *in.DueDate
		out.DueDate = &v
	}
	if in.GatewayOrderID != nil {
		v := *in.GatewayOrderID
		out.GatewayOrderID = &v
	}
	if in.GatewayPaymentID != nil {
		v := *in.GatewayPaymentID
		out.GatewayPaymentID = &v
	}
	if in.PaidAt != nil {
		v := *in.PaidAt
		out.PaidAt = &v
	}
	return out
}

// ProfileRepositoryStub maps user ids to roles.
type ProfileRepositoryStub struct {
	Roles map[string]model.Role
	Err   error
}

func (s ProfileRepositoryStub) Role(ctx context.Context, userID string) (model.Role, error) {
	if s.Err != nil {
		return "", s.Err
	}
	if role, ok := s.Roles[userID]; ok {
		return role, nil
	}
	return "", domainErrors.ErrNotFound
}

// ProjectRepositoryStub maps project ids to owning client ids.
type ProjectRepositoryStub struct {
	Owners map[string]string
	Err    error
}

func (s ProjectRepositoryStub) OwnerID(ctx context.Context, projectID string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	if owner, ok := s.Owners[projectID]; ok {
		return owner, nil
	}
	return "", domainErrors.ErrNotFound
}

// NotificationRepositoryStub records created notifications.
type NotificationRepositoryStub struct {
	mu    sync.Mutex
	Items []model.Notification
	Err   error
}

func (s *NotificationRepositoryStub) Create(ctx context.Context, n model.Notification) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Items = append(s.Items, n)
	return nil
}

// Len returns the number of stored notifications.
func (s *NotificationRepositoryStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Items)
}

// PaymentEventRepositoryStub records audit entries and deduplicates by event id.
type PaymentEventRepositoryStub struct {
	mu      sync.Mutex
	Records []model.PaymentEventRecord
	Err     error
}

func (s *PaymentEventRepositoryStub) Record(ctx context.Context, rec model.PaymentEventRecord) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.EventID != "" {
		for _, existing := range s.Records {
			if existing.Provider == rec.Provider && existing.EventID == rec.EventID {
				return false, nil
			}
		}
	}
	s.Records = append(s.Records, rec)
	return true, nil
}
