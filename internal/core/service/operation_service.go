package service

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

var operationSortFields = map[string]struct{}{
	"name": {}, "status": {}, "created_at": {},
}

// OperationService implements operation management. Operations are never
// deleted: inactivation keeps historical campaigns resolvable.
type OperationService struct {
	repo ports.OperationRepository
	log  zerolog.Logger
}

func NewOperationService(repo ports.OperationRepository, log zerolog.Logger) *OperationService {
	return &OperationService{repo: repo, log: log}
}

func (s *OperationService) Create(ctx context.Context, in ports.OperationInput, createdBy string) (*domain.Operation, error) {
	op := &domain.Operation{
		ID:            ulid.Make().String(),
		Name:          in.Name,
		ClientID:      in.ClientID,
		VehicleTypeID: in.VehicleTypeID,
		TrailerTypeID: in.TrailerTypeID,
		ProductType:   in.ProductType,
		Origin:        in.Origin,
		Destination:   in.Destination,
		Status:        domain.OperationActive,
		CreatedAt:     time.Now().UTC(),
		CreatedBy:     createdBy,
	}
	if err := s.repo.Insert(ctx, op); err != nil {
		return nil, err
	}

	s.log.Info().Str("operation", op.Name).Str("origin", op.Origin).Str("destination", op.Destination).Msg("operation created")
	return op, nil
}

func (s *OperationService) Update(ctx context.Context, id string, in ports.OperationInput) (*domain.Operation, error) {
	op, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	op.Name = in.Name
	op.ClientID = in.ClientID
	op.VehicleTypeID = in.VehicleTypeID
	op.TrailerTypeID = in.TrailerTypeID
	op.ProductType = in.ProductType
	op.Origin = in.Origin
	op.Destination = in.Destination

	if err := s.repo.Update(ctx, op); err != nil {
		return nil, err
	}
	return op, nil
}

// Inactivate marks the operation inactive and stamps deactivated_at.
func (s *OperationService) Inactivate(ctx context.Context, id string) error {
	op, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if op.Status == domain.OperationInactive {
		return nil
	}

	now := time.Now().UTC()
	op.Status = domain.OperationInactive
	op.DeactivatedAt = &now
	if err := s.repo.Update(ctx, op); err != nil {
		return err
	}

	s.log.Info().Str("operation_id", id).Msg("operation inactivated")
	return nil
}

func (s *OperationService) List(ctx context.Context, filter ports.ListOperationsFilter) ([]*domain.Operation, int64, error) {
	if _, ok := operationSortFields[filter.SortField]; !ok {
		filter.SortField = "created_at"
		filter.SortAscending = false
	}
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	return s.repo.List(ctx, filter)
}
