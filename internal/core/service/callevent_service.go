package service

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) used by the call
// event pipeline.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, vehicleID, result string, ts time.Time) (bool, error)
	Mark(ctx context.Context, vehicleID, result string, ts time.Time) error
}

type callEventService struct {
	vehicles ports.VehicleRepository
	callLogs ports.CallLogRepository
	dedup    DedupChecker
	log      zerolog.Logger
}

// NewCallEventService returns a CallEventService implementation for the
// async dialer-integration pipeline.
func NewCallEventService(
	vehicles ports.VehicleRepository,
	callLogs ports.CallLogRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.CallEventService {
	return &callEventService{vehicles: vehicles, callLogs: callLogs, dedup: dedup, log: log}
}

// Process validates, deduplicates, and applies a single ingested call event.
func (s *callEventService) Process(ctx context.Context, in ports.CallEventInput) error {
	result := domain.CallResultType(in.Result)
	if !domain.ValidCallResult(result) {
		return fmt.Errorf("process call event: unknown result %q", in.Result)
	}

	// Idempotency check; duplicates are silently skipped.
	isDup, err := s.dedup.IsDuplicate(ctx, in.VehicleID, in.Result, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("vehicle_id", in.VehicleID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("vehicle_id", in.VehicleID).Str("result", in.Result).Msg("duplicate call event skipped")
		return nil
	}

	vehicle, err := s.vehicles.FindByID(ctx, in.VehicleID)
	if err != nil {
		return fmt.Errorf("process call event: %w", err)
	}

	// Mark before writing so a retry after a partial failure is a no-op.
	if markErr := s.dedup.Mark(ctx, in.VehicleID, in.Result, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("vehicle_id", in.VehicleID).Msg("failed to set dedup key")
	}

	if err := s.vehicles.UpdateStatus(ctx, vehicle.ID, result.VehicleStatus()); err != nil {
		return fmt.Errorf("process call event: update vehicle: %w", err)
	}

	entry := &domain.CallLog{
		ID:          ulid.Make().String(),
		VehicleID:   vehicle.ID,
		ResultType:  result,
		PhoneNumber: vehicle.DriverPhone,
		CreatedAt:   in.Timestamp,
		CreatedBy:   in.Source,
	}
	if err := s.callLogs.Insert(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("vehicle_id", vehicle.ID).Msg("failed to insert call log")
	}

	s.log.Info().
		Str("vehicle_id", vehicle.ID).
		Str("result", in.Result).
		Str("source", in.Source).
		Msg("call event processed")

	return nil
}
