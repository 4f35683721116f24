package domain

import "time"

// Role is the closed set of user roles in the review workflow.
type Role string

const (
	RoleReviewer Role = "reviewer"
	RoleApprover Role = "approver"
)

// ParseRole validates a raw role string against the closed enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleReviewer, RoleApprover:
		return Role(s), nil
	default:
		return "", ErrValidation
	}
}

// User models an authenticated actor. The password hash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
