package ports

import (
	"context"

	"github.com/logicem/callcenter-api/internal/core/domain"
)

// ListUsersFilter carries the query parameters of the user list view.
type ListUsersFilter struct {
	Search        string // partial, case-insensitive match on name or email
	SortField     string // name | email | role | created_at
	SortAscending bool
	Page          int // 1-based
	Limit         int // rows per page, capped by the service
}

// UserRepository defines persistence for back-office user profiles.
type UserRepository interface {
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.AppUser, int64, error)
	FindByEmail(ctx context.Context, email string) (*domain.AppUser, error)
	Insert(ctx context.Context, user *domain.AppUser) error
	// Update rewrites name and role only; email is immutable.
	Update(ctx context.Context, id, name string, role domain.Role) (*domain.AppUser, error)
	Delete(ctx context.Context, id string) error
}

// CreateUserInput is the payload for creating a user profile plus its
// credential.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UpdateUserInput rewrites the mutable profile fields.
type UpdateUserInput struct {
	Name string
	Role domain.Role
}

// UserService implements user administration.
type UserService interface {
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.AppUser, int64, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.AppUser, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.AppUser, error)
	// Delete removes the profile and its credential together.
	Delete(ctx context.Context, id string) error
}
