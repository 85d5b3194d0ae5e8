package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/deliveryportal/internal/domain/errors"
	"github.com/polkiloo/deliveryportal/internal/domain/model"
)

// --- ProfileRepository implementation ---

func (r *profileRepository) Role(ctx context.Context, userID string) (model.Role, error) {
	const query = `SELECT role FROM profiles WHERE id=$1`
	var role model.Role
	if err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domainErrors.ErrNotFound
		}
		return "", err
	}
	return role, nil
}

// --- ProjectRepository implementation ---

func (r *projectRepository) OwnerID(ctx context.Context, projectID string) (string, error) {
	const query = `SELECT COALESCE(client_id::text, '') FROM projects WHERE id=$1`
	var owner string
	if err := r.storage.pool.QueryRow(ctx, query, projectID).Scan(&owner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domainErrors.ErrNotFound
		}
		return "", err
	}
	return owner, nil
}

// --- NotificationRepository implementation ---

func (r *notificationRepository) Create(ctx context.Context, n model.Notification) error {
	const query = `INSERT INTO notifications (user_id, project_id, title, message) VALUES ($1, $2, $3, $4)`
	_, err := r.storage.pool.Exec(ctx, query, n.UserID, nullable(n.ProjectID), n.Title, n.Message)
	return err
}

// --- PaymentEventRepository implementation ---

func (r *paymentEventRepository) Record(ctx context.Context, rec model.PaymentEventRecord) (bool, error) {
	const query = `INSERT INTO payment_events (provider, event_id, event_type, order_id, payment_id, outcome, received_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   ON CONFLICT DO NOTHING`
	tag, err := r.storage.pool.Exec(ctx, query,
		rec.Provider, nullable(rec.EventID), rec.EventType, nullable(rec.OrderID), nullable(rec.PaymentID), rec.Outcome, rec.ReceivedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
