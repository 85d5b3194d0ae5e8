package test

import (
	"context"

	"github.com/polkiloo/deliveryportal/internal/domain/model"
	pkgAuth "github.com/polkiloo/deliveryportal/internal/pkg/auth"
)

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(string) (string, error)
	ParseFn func(string) (string, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	return "token:" + userID, nil
}

// ParseToken maps "token:<id>" back to the user id.
func (s StrategyStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	const prefix = "token:"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", pkgAuth.ErrInvalidToken
	}
	return token[len(prefix):], nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// IdentityResolverStub implements the middleware identity contract.
type IdentityResolverStub struct {
	Identity  model.Identity
	Err       error
	ResolveFn func(context.Context, string) (model.Identity, error)
}

// ResolveIdentity either delegates to override or returns predefined result.
func (s IdentityResolverStub) ResolveIdentity(ctx context.Context, token string) (model.Identity, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	if s.Err != nil {
		return model.Identity{}, s.Err
	}
	return s.Identity, nil
}

var _ pkgAuth.Strategy = StrategyStub{}
