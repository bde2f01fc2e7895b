package ports

import (
	"context"
	"time"

	"github.com/logicem/callcenter-api/internal/core/domain"
)

// CallLogRepository defines persistence for the call audit trail.
type CallLogRepository interface {
	Insert(ctx context.Context, log *domain.CallLog) error
	ListByVehicle(ctx context.Context, vehicleID string) ([]*domain.CallLog, error)
}

// RecordCallInput is the payload of an interactive call-result entry.
type RecordCallInput struct {
	VehicleID string
	Result    domain.CallResultType
	CreatedBy string
}

// CallService implements the guided call-management flow: pick an active
// operation, then a pending campaign, then an unmanaged vehicle, then record
// the result.
type CallService interface {
	// OperationsWithPendingCampaigns returns active operations that still
	// have at least one pending campaign.
	OperationsWithPendingCampaigns(ctx context.Context) ([]*domain.Operation, error)
	PendingCampaigns(ctx context.Context, operationID string) ([]*domain.Campaign, error)
	// UnmanagedVehicles returns the vehicles of a campaign still waiting
	// for a first call.
	UnmanagedVehicles(ctx context.Context, campaignID string) ([]*domain.CampaignVehicle, error)
	RecordResult(ctx context.Context, in RecordCallInput) (*domain.CampaignVehicle, error)
	// VehicleHistory returns the vehicle's call audit trail, most recent
	// first.
	VehicleHistory(ctx context.Context, vehicleID string) ([]*domain.CallLog, error)
}

// CallEventInput is one dialer-integration call result ingested through the
// async pipeline.
type CallEventInput struct {
	VehicleID string
	Result    string
	Timestamp time.Time
	Source    string
}

// CallEventService processes ingested call events.
type CallEventService interface {
	Process(ctx context.Context, in CallEventInput) error
}
