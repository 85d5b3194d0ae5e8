package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/deliveryportal/internal/domain/errors"
	"github.com/polkiloo/deliveryportal/internal/domain/model"
	"github.com/polkiloo/deliveryportal/internal/domain/repository"
	"github.com/polkiloo/deliveryportal/internal/pkg/currency"
)

// InvoiceUseCase covers administrative invoice management and listing.
type InvoiceUseCase struct {
	invoices repository.InvoiceRepository
	projects repository.ProjectRepository
	logger   *slog.Logger
}

// NewInvoiceUseCase constructs InvoiceUseCase.
func NewInvoiceUseCase(invoices repository.InvoiceRepository, projects repository.ProjectRepository, logger *slog.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices, projects: projects, logger: logger}
}

// Create issues a new invoice for a project.
func (u *InvoiceUseCase) Create(ctx context.Context, caller model.Identity, in model.NewInvoice) (*model.Invoice, error) {
	if !caller.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}
	if err := validateID(in.ProjectID, "project_id"); err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domainErrors.ErrBadRequest)
	}
	code, err := currency.Normalize(in.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrBadRequest, err)
	}
	in.Currency = code
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domainErrors.ErrBadRequest)
	}
	if !currency.Representable(in.Amount, in.Currency) {
		return nil, fmt.Errorf("%w: amount has too many decimal places for %s", domainErrors.ErrBadRequest, in.Currency)
	}
	switch in.Status {
	case "":
		in.Status = model.InvoiceStatusPending
	case model.InvoiceStatusDraft, model.InvoiceStatusPending:
	default:
		return nil, fmt.Errorf("%w: new invoices must be draft or pending", domainErrors.ErrBadRequest)
	}

	if _, err := u.projects.OwnerID(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	inv, err := u.invoices.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	u.logger.Info("invoice created",
		slog.String("invoice_id", inv.ID),
		slog.String("project_id", inv.ProjectID),
		slog.String("amount", inv.Amount.String()),
		slog.String("currency", inv.Currency),
	)
	return inv, nil
}

// ListByProject returns invoices of a project visible to the caller, newest first.
func (u *InvoiceUseCase) ListByProject(ctx context.Context, caller model.Identity, projectID string) ([]model.Invoice, error) {
	if err := validateID(projectID, "project_id"); err != nil {
		return nil, err
	}
	owner, err := u.projects.OwnerID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccess(owner) {
		return nil, domainErrors.ErrForbidden
	}
	return u.invoices.ListByProject(ctx, projectID)
}

// UpdateStatus is the manual override. It does not touch payment linkage.
func (u *InvoiceUseCase) UpdateStatus(ctx context.Context, caller model.Identity, id string, status model.InvoiceStatus) (*model.Invoice, error) {
	if !caller.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}
	if err := validateID(id, "invoice id"); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domainErrors.ErrBadRequest, status)
	}
	inv, err := u.invoices.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	u.logger.Info("invoice status changed manually",
		slog.String("invoice_id", id),
		slog.String("status", string(status)),
		slog.String("admin_id", caller.UserID),
	)
	return inv, nil
}

// Delete removes an invoice.
func (u *InvoiceUseCase) Delete(ctx context.Context, caller model.Identity, id string) error {
	if !caller.IsAdmin() {
		return domainErrors.ErrForbidden
	}
	if err := validateID(id, "invoice id"); err != nil {
		return err
	}
	return u.invoices.Delete(ctx, id)
}

func validateID(id, field string) error {
	if id == "" {
		return fmt.Errorf("%w: %s is required", domainErrors.ErrBadRequest, field)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s is malformed", domainErrors.ErrBadRequest, field)
	}
	return nil
}
