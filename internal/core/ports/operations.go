package ports

import (
	"context"

	"github.com/logicem/callcenter-api/internal/core/domain"
)

// ListOperationsFilter carries the query parameters of the operation list.
type ListOperationsFilter struct {
	Search        string // partial match on name, origin or destination
	Status        domain.OperationStatus
	ClientID      string
	SortField     string // name | status | created_at
	SortAscending bool
	Page          int
	Limit         int
}

// OperationRepository defines persistence for operations.
type OperationRepository interface {
	Insert(ctx context.Context, op *domain.Operation) error
	FindByID(ctx context.Context, id string) (*domain.Operation, error)
	Update(ctx context.Context, op *domain.Operation) error
	List(ctx context.Context, filter ListOperationsFilter) ([]*domain.Operation, int64, error)
	// FindByIDs returns the operations matching any of the given ids,
	// newest first. Missing ids are skipped, not errors.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Operation, error)
}

// OperationInput is the payload for creating or updating an operation.
type OperationInput struct {
	Name          string
	ClientID      string
	VehicleTypeID string
	TrailerTypeID string
	ProductType   string
	Origin        string
	Destination   string
}

// OperationService implements operation management.
type OperationService interface {
	Create(ctx context.Context, in OperationInput, createdBy string) (*domain.Operation, error)
	Update(ctx context.Context, id string, in OperationInput) (*domain.Operation, error)
	// Inactivate marks the operation inactive and stamps deactivated_at.
	Inactivate(ctx context.Context, id string) error
	List(ctx context.Context, filter ListOperationsFilter) ([]*domain.Operation, int64, error)
}
