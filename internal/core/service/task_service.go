package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

var taskSortFields = map[string]struct{}{
	"category": {}, "priority": {}, "status": {}, "created_at": {},
}

// TaskService implements the back-office ticket queue. Tasks are created by
// data-update form submissions and closed by back-office staff with
// mandatory observations.
type TaskService struct {
	repo ports.TaskRepository
	log  zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, log: log}
}

// Create builds a pending task from a data-update form submission. Category
// and priority derive from the form id; the form payload is stored as-is.
func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	category, ok := domain.CategoryForForm(in.FormID)
	if !ok {
		return nil, fmt.Errorf("unknown data-update form %q", in.FormID)
	}

	priority := domain.DefaultPriority(category)
	task := &domain.Task{
		ID:           ulid.Make().String(),
		Category:     category,
		Priority:     priority,
		PriorityRank: priority.Rank(),
		Status:       domain.TaskPending,
		Data:         in.Data,
		CreatedAt:    time.Now().UTC(),
		CreatedBy:    in.CreatedBy,
	}
	if err := s.repo.Insert(ctx, task); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("task_id", task.ID).
		Str("category", string(task.Category)).
		Str("priority", string(task.Priority)).
		Msg("task created")

	return task, nil
}

func (s *TaskService) List(ctx context.Context, filter ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	if _, ok := taskSortFields[filter.SortField]; !ok {
		filter.SortField = "created_at"
		filter.SortAscending = false
	}
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	return s.repo.List(ctx, filter)
}

// Close closes a pending task. Observations are mandatory; closing an
// already-closed task fails.
func (s *TaskService) Close(ctx context.Context, id, observations, closedBy string) error {
	observations = strings.TrimSpace(observations)
	if observations == "" {
		return domain.ErrObservationsRequired
	}

	if err := s.repo.Close(ctx, id, observations, closedBy); err != nil {
		return err
	}

	s.log.Info().Str("task_id", id).Str("closed_by", closedBy).Msg("task closed")
	return nil
}
