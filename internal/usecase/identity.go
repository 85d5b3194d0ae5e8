package usecase

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/polkiloo/deliveryportal/internal/domain/errors"
	"github.com/polkiloo/deliveryportal/internal/domain/model"
	"github.com/polkiloo/deliveryportal/internal/domain/repository"
)

// TokenParser extracts the user id from a bearer token.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// IdentityUseCase turns bearer tokens into portal identities.
type IdentityUseCase struct {
	tokens   TokenParser
	profiles repository.ProfileRepository
	logger   *slog.Logger
}

// NewIdentityUseCase constructs IdentityUseCase.
func NewIdentityUseCase(tokens TokenParser, profiles repository.ProfileRepository, logger *slog.Logger) *IdentityUseCase {
	return &IdentityUseCase{tokens: tokens, profiles: profiles, logger: logger}
}

// Resolve validates token and loads the caller role. Users without a profile are clients.
func (u *IdentityUseCase) Resolve(ctx context.Context, token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, domainErrors.ErrUnauthorized
	}
	userID, err := u.tokens.ParseToken(token)
	if err != nil || userID == "" {
		return model.Identity{}, domainErrors.ErrUnauthorized
	}

	role, err := u.profiles.Role(ctx, userID)
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		role = model.RoleClient
	case err != nil:
		u.logger.Error("failed to load profile role", slog.String("user_id", userID), slog.String("error", err.Error()))
		return model.Identity{}, err
	case role != model.RoleAdmin:
		role = model.RoleClient
	}

	return model.Identity{UserID: userID, Role: role}, nil
}
