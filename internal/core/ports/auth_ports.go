package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/syncup/api/internal/core/domain"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Timezone string
}

// AuthService is the authentication collaborator at the edge of the core:
// it issues and parses tokens so the poll and vote services only ever see
// an already-resolved user id.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error) // returns a signed access token
	ParseToken(token string) (uuid.UUID, error)
}
