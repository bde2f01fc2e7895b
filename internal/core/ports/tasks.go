package ports

import (
	"context"

	"github.com/logicem/callcenter-api/internal/core/domain"
)

// ListTasksFilter carries the query parameters of the task queue view.
type ListTasksFilter struct {
	Search        string // partial match on id or category
	Status        domain.TaskStatus
	Category      domain.TaskCategory
	SortField     string // category | priority | status | created_at
	SortAscending bool
	Page          int
	Limit         int
}

// TaskRepository defines persistence for the task queue.
type TaskRepository interface {
	Insert(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, int64, error)
	// Close stamps the closing fields on a still-pending task. It fails
	// with ErrTaskAlreadyClosed when the task exists but is closed, and
	// ErrTaskNotFound when it does not exist.
	Close(ctx context.Context, id, observations, closedBy string) error
}

// CreateTaskInput is the payload of a data-update form submission. FormID is
// one of the five fixed form ids; Data is the category-specific payload.
type CreateTaskInput struct {
	FormID    string
	Data      map[string]any
	CreatedBy string
}

// TaskService implements the ticket queue.
type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, int64, error)
	// Close requires non-empty observations.
	Close(ctx context.Context, id, observations, closedBy string) error
}
