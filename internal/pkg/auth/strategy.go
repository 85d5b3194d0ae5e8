package auth

import "time"

// Strategy verifies access tokens issued by the identity service.
type Strategy interface {
	IssueToken(userID string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL      time.Duration
	Audience string
}
