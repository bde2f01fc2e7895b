package ports

import (
	"context"

	"github.com/logicem/callcenter-api/internal/core/domain"
)

// ListCampaignsFilter carries the query parameters of the campaign list.
type ListCampaignsFilter struct {
	Status        domain.CampaignStatus
	OperationID   string
	SortField     string // campaign_date | status | created_at
	SortAscending bool
	Page          int
	Limit         int
}

// CampaignRepository defines persistence for campaigns.
type CampaignRepository interface {
	Insert(ctx context.Context, c *domain.Campaign) error
	FindByID(ctx context.Context, id string) (*domain.Campaign, error)
	List(ctx context.Context, filter ListCampaignsFilter) ([]*domain.Campaign, int64, error)
	SetStatus(ctx context.Context, id string, status domain.CampaignStatus) error
	// Delete removes a campaign document. Used only to roll back a
	// creation whose vehicle batch failed to persist.
	Delete(ctx context.Context, id string) error
	// ListByOperation returns campaigns of one operation in the given
	// status, newest first.
	ListByOperation(ctx context.Context, operationID string, status domain.CampaignStatus) ([]*domain.Campaign, error)
	// DistinctOperationIDs returns the distinct operation ids that have at
	// least one campaign in the given status.
	DistinctOperationIDs(ctx context.Context, status domain.CampaignStatus) ([]string, error)
}

// VehicleRepository defines persistence for campaign vehicles.
type VehicleRepository interface {
	InsertMany(ctx context.Context, vehicles []*domain.CampaignVehicle) error
	FindByID(ctx context.Context, id string) (*domain.CampaignVehicle, error)
	ListByCampaign(ctx context.Context, campaignID string, statuses ...domain.VehicleStatus) ([]*domain.CampaignVehicle, error)
	// ListByStatuses returns vehicles across all campaigns matching any of
	// the given statuses.
	ListByStatuses(ctx context.Context, statuses ...domain.VehicleStatus) ([]*domain.CampaignVehicle, error)
	UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error
}

// VehicleInput is one plate/driver row of a new campaign.
type VehicleInput struct {
	Plate       string
	DriverName  string
	DriverPhone string
}

// CreateCampaignInput is the payload for creating a campaign with its
// vehicle list. Vehicles and BulkLines are combined; BulkLines holds raw
// tab-separated rows pasted from a spreadsheet.
type CreateCampaignInput struct {
	OperationID  string
	CampaignDate string
	Vehicles     []VehicleInput
	BulkLines    string
}

// CampaignService implements campaign and vehicle management.
type CampaignService interface {
	Create(ctx context.Context, in CreateCampaignInput, createdBy string) (*domain.Campaign, error)
	List(ctx context.Context, filter ListCampaignsFilter) ([]*domain.Campaign, int64, error)
	Get(ctx context.Context, id string) (*domain.Campaign, error)
	ChangeStatus(ctx context.Context, id string, status domain.CampaignStatus) error
	UpdateVehicleStatus(ctx context.Context, vehicleID string, status domain.VehicleStatus) error
	Stats(ctx context.Context, campaignID string) (*domain.CampaignStats, error)
	// InterestedVehicles backs the interests report: vehicles whose last
	// call ended interested or interested-later.
	InterestedVehicles(ctx context.Context) ([]*domain.CampaignVehicle, error)
}
