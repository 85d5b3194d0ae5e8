package model

// Role is the portal role of an authenticated user.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// Identity describes the caller resolved from a bearer token.
type Identity struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the caller has administrative rights.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanAccess reports whether the caller may act on a project owned by ownerID.
func (i Identity) CanAccess(ownerID string) bool {
	if i.IsAdmin() {
		return true
	}
	return ownerID != "" && ownerID == i.UserID
}
