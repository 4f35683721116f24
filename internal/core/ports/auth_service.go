package ports

import (
	"context"

	"github.com/contractflow/review-api/internal/core/domain"
)

// AuthService implements user creation, credential verification and token
// issuance, plus user lookups used by the public users endpoints.
type AuthService interface {
	CreateUser(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	// Login verifies the credentials and returns a signed bearer token.
	Login(ctx context.Context, email, password string) (string, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
