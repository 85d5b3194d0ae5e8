package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/deliveryportal/internal/domain/errors"
	"github.com/polkiloo/deliveryportal/internal/domain/model"
)

const invoiceColumns = `i.id::text, i.project_id::text, i.title, i.amount, i.currency, i.status, i.due_date,
       i.razorpay_order_id, i.razorpay_payment_id, i.paid_at, i.created_at`

const selectInvoiceWithOwner = `SELECT ` + invoiceColumns + `, COALESCE(p.client_id::text, '')
       FROM invoices i JOIN projects p ON p.id = i.project_id`

func scanInvoice(row pgx.Row, inv *model.Invoice, extra ...any) error {
	dest := []any{
		&inv.ID, &inv.ProjectID, &inv.Title, &inv.Amount, &inv.Currency, &inv.Status, &inv.DueDate,
		&inv.GatewayOrderID, &inv.GatewayPaymentID, &inv.PaidAt, &inv.CreatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *invoiceRepository) getWithOwner(ctx context.Context, query string, arg any) (*model.InvoiceWithOwner, error) {
	var inv model.InvoiceWithOwner
	if err := scanInvoice(r.storage.pool.QueryRow(ctx, query, arg), &inv.Invoice, &inv.OwnerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) GetWithProjectOwner(ctx context.Context, id string) (*model.InvoiceWithOwner, error) {
	const query = selectInvoiceWithOwner + ` WHERE i.id=$1`
	return r.getWithOwner(ctx, query, id)
}

func (r *invoiceRepository) FindByGatewayOrderID(ctx context.Context, orderID string) (*model.InvoiceWithOwner, error) {
	const query = selectInvoiceWithOwner + ` WHERE i.razorpay_order_id=$1`
	return r.getWithOwner(ctx, query, orderID)
}

func (r *invoiceRepository) SetGatewayOrder(ctx context.Context, id, orderID string) (bool, error) {
	const query = `UPDATE invoices SET razorpay_order_id=$2, status='pending'
                   WHERE id=$1 AND razorpay_order_id IS NULL AND status <> 'paid'`
	tag, err := r.storage.pool.Exec(ctx, query, id, orderID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *invoiceRepository) MarkPaid(ctx context.Context, id, paymentID string, paidAt time.Time) (*model.Invoice, error) {
	const query = `UPDATE invoices i SET status='paid', razorpay_payment_id=$2, paid_at=COALESCE(i.paid_at, $3)
                   WHERE i.id=$1 AND (i.razorpay_payment_id IS NULL OR i.razorpay_payment_id=$2)
                   RETURNING ` + invoiceColumns
	var inv model.Invoice
	if err := scanInvoice(r.storage.pool.QueryRow(ctx, query, id, paymentID, paidAt), &inv); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrPaymentConflict
		}
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) Create(ctx context.Context, in model.NewInvoice) (*model.Invoice, error) {
	const query = `INSERT INTO invoices AS i (project_id, title, amount, currency, status, due_date)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING ` + invoiceColumns
	var inv model.Invoice
	err := scanInvoice(r.storage.pool.QueryRow(ctx, query, in.ProjectID, in.Title, in.Amount, in.Currency, in.Status, in.DueDate), &inv)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) ListByProject(ctx context.Context, projectID string) ([]model.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices i WHERE i.project_id=$1 ORDER BY i.created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Invoice
	for rows.Next() {
		var inv model.Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, err
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id string, status model.InvoiceStatus) (*model.Invoice, error) {
	const query = `UPDATE invoices i SET status=$2 WHERE i.id=$1 RETURNING ` + invoiceColumns
	var inv model.Invoice
	if err := scanInvoice(r.storage.pool.QueryRow(ctx, query, id, status), &inv); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM invoices WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *invoiceRepository) MarkOverdue(ctx context.Context, now time.Time, limit int) ([]model.InvoiceWithOwner, error) {
	const query = `UPDATE invoices i SET status='overdue'
                   FROM projects p
                   WHERE p.id = i.project_id AND i.status='pending' AND i.id IN (
                       SELECT id FROM invoices
                       WHERE status='pending' AND due_date < $1::date
                       ORDER BY due_date
                       LIMIT $2
                       FOR UPDATE SKIP LOCKED)
                   RETURNING ` + invoiceColumns + `, COALESCE(p.client_id::text, '')`
	rows, err := r.storage.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.InvoiceWithOwner
	for rows.Next() {
		var inv model.InvoiceWithOwner
		if err := scanInvoice(rows, &inv.Invoice, &inv.OwnerID); err != nil {
			return nil, err
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
