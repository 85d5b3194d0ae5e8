package repository

import (
	"context"

	"github.com/polkiloo/deliveryportal/internal/domain/model"
)

// ProfileRepository resolves portal roles of users.
type ProfileRepository interface {
	Role(ctx context.Context, userID string) (model.Role, error)
}

// ProjectRepository exposes the project data the billing flow depends on.
type ProjectRepository interface {
	OwnerID(ctx context.Context, projectID string) (string, error)
}
