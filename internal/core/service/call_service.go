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

// CallService implements the guided call-management flow. Recording a result
// updates the vehicle's status and appends an immutable call log entry.
type CallService struct {
	ops       ports.OperationRepository
	campaigns ports.CampaignRepository
	vehicles  ports.VehicleRepository
	callLogs  ports.CallLogRepository
	log       zerolog.Logger
}

func NewCallService(
	ops ports.OperationRepository,
	campaigns ports.CampaignRepository,
	vehicles ports.VehicleRepository,
	callLogs ports.CallLogRepository,
	log zerolog.Logger,
) *CallService {
	return &CallService{ops: ops, campaigns: campaigns, vehicles: vehicles, callLogs: callLogs, log: log}
}

// OperationsWithPendingCampaigns returns active operations that still have
// at least one pending campaign; only those are workable from the phones.
func (s *CallService) OperationsWithPendingCampaigns(ctx context.Context) ([]*domain.Operation, error) {
	ids, err := s.campaigns.DistinctOperationIDs(ctx, domain.CampaignPending)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Operation{}, nil
	}

	ops, err := s.ops.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	active := make([]*domain.Operation, 0, len(ops))
	for _, op := range ops {
		if op.Status == domain.OperationActive {
			active = append(active, op)
		}
	}
	return active, nil
}

func (s *CallService) PendingCampaigns(ctx context.Context, operationID string) ([]*domain.Campaign, error) {
	return s.campaigns.ListByOperation(ctx, operationID, domain.CampaignPending)
}

// UnmanagedVehicles returns the vehicles of a campaign still waiting for a
// first call.
func (s *CallService) UnmanagedVehicles(ctx context.Context, campaignID string) ([]*domain.CampaignVehicle, error) {
	return s.vehicles.ListByCampaign(ctx, campaignID, domain.VehicleUnmanaged)
}

// RecordResult applies a call outcome: the vehicle moves to the status the
// result maps to, and the call is appended to the audit trail. The audit
// insert is non-fatal; the status update is the source of truth.
func (s *CallService) RecordResult(ctx context.Context, in ports.RecordCallInput) (*domain.CampaignVehicle, error) {
	if !domain.ValidCallResult(in.Result) {
		return nil, fmt.Errorf("%w: unknown call result %q", domain.ErrInvalidTransition, in.Result)
	}

	vehicle, err := s.vehicles.FindByID(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}

	newStatus := in.Result.VehicleStatus()
	if err := s.vehicles.UpdateStatus(ctx, in.VehicleID, newStatus); err != nil {
		return nil, err
	}
	vehicle.Status = newStatus
	vehicle.UpdatedAt = time.Now().UTC()

	entry := &domain.CallLog{
		ID:          ulid.Make().String(),
		VehicleID:   vehicle.ID,
		ResultType:  in.Result,
		PhoneNumber: vehicle.DriverPhone,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   in.CreatedBy,
	}
	if err := s.callLogs.Insert(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("vehicle_id", vehicle.ID).Msg("failed to insert call log")
	}

	s.log.Info().
		Str("vehicle_id", vehicle.ID).
		Str("plate", vehicle.Plate).
		Str("result", string(in.Result)).
		Msg("call result recorded")

	return vehicle, nil
}

// VehicleHistory returns the vehicle's call audit trail, most recent first.
// The vehicle must exist; an unknown id is a not-found error rather than an
// empty list.
func (s *CallService) VehicleHistory(ctx context.Context, vehicleID string) ([]*domain.CallLog, error) {
	if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.callLogs.ListByVehicle(ctx, vehicleID)
}
