package ports

import (
	"context"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username string
	Password string
	Role     domain.Role
}

// UpdateAccountInput carries an administrator's edit of an account.
// An empty Password keeps the current one.
type UpdateAccountInput struct {
	Username string
	Password string
	Role     domain.Role
}

// Directory owns the account collection.
type Directory interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Account, error)
	Register(ctx context.Context, actor *domain.Account, input RegisterInput) (*domain.Account, error)
	Get(ctx context.Context, username string) (*domain.Account, error)
	List(ctx context.Context, actor *domain.Account) ([]domain.Account, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, actor *domain.Account, input UpdateAccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, actor *domain.Account, username string) error
}

// DeveloperLookup resolves a username to an account so the tracker can check
// assignees without owning the account collection.
type DeveloperLookup interface {
	Get(ctx context.Context, username string) (*domain.Account, error)
}
