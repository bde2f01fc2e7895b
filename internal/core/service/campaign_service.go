package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

var (
	plateRe = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)
	phoneRe = regexp.MustCompile(`^[0-9]{10}$`)
)

var campaignSortFields = map[string]struct{}{
	"campaign_date": {}, "status": {}, "created_at": {},
}

// VehicleDataError reports the per-line problems of a rejected vehicle list.
// Messages are user-facing and map to the lines the operator pasted.
type VehicleDataError struct {
	Problems []string
}

func (e *VehicleDataError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// CampaignService implements campaign and vehicle management.
type CampaignService struct {
	campaigns ports.CampaignRepository
	vehicles  ports.VehicleRepository
	ops       ports.OperationRepository
	log       zerolog.Logger
}

func NewCampaignService(campaigns ports.CampaignRepository, vehicles ports.VehicleRepository, ops ports.OperationRepository, log zerolog.Logger) *CampaignService {
	return &CampaignService{campaigns: campaigns, vehicles: vehicles, ops: ops, log: log}
}

// ParseBulkVehicles parses tab-separated rows ("PLATE<TAB>DRIVER<TAB>PHONE",
// one vehicle per line) as pasted from a spreadsheet. It returns the parsed
// rows and a per-line problem list; the caller rejects the batch if any
// problem is reported.
func ParseBulkVehicles(bulk string) ([]ports.VehicleInput, []string) {
	var (
		rows     []ports.VehicleInput
		problems []string
		seen     = make(map[string]struct{})
	)

	for i, line := range strings.Split(strings.TrimSpace(bulk), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}
		if len(parts) < 3 {
			problems = append(problems, fmt.Sprintf("línea %d: faltan datos (necesita placa, nombre, celular)", i+1))
			continue
		}

		plate, driver, phone := parts[0], parts[1], parts[2]
		if !plateRe.MatchString(plate) {
			problems = append(problems, fmt.Sprintf("línea %d: placa %q debe tener formato AAA123", i+1, plate))
			continue
		}
		if !phoneRe.MatchString(phone) {
			problems = append(problems, fmt.Sprintf("línea %d: celular %q debe tener 10 dígitos", i+1, phone))
			continue
		}
		if _, dup := seen[plate]; dup {
			problems = append(problems, fmt.Sprintf("línea %d: placa %q está duplicada", i+1, plate))
			continue
		}

		seen[plate] = struct{}{}
		rows = append(rows, ports.VehicleInput{Plate: plate, DriverName: driver, DriverPhone: phone})
	}

	return rows, problems
}

// Create creates a campaign with its vehicle list. Form-built vehicles and
// bulk rows are combined; the whole batch is rejected on any problem.
func (s *CampaignService) Create(ctx context.Context, in ports.CreateCampaignInput, createdBy string) (*domain.Campaign, error) {
	if _, err := s.ops.FindByID(ctx, in.OperationID); err != nil {
		return nil, err
	}

	inputs := in.Vehicles
	var problems []string
	if strings.TrimSpace(in.BulkLines) != "" {
		bulkRows, bulkProblems := ParseBulkVehicles(in.BulkLines)
		problems = append(problems, bulkProblems...)
		inputs = append(inputs, bulkRows...)
	}

	// Form-built rows follow the same rules as bulk rows; both paths are
	// validated here over the combined list.
	seen := make(map[string]struct{}, len(inputs))
	for i, v := range inputs {
		switch {
		case !plateRe.MatchString(v.Plate):
			problems = append(problems, fmt.Sprintf("vehículo %d: placa %q debe tener formato AAA123", i+1, v.Plate))
		case !phoneRe.MatchString(v.DriverPhone):
			problems = append(problems, fmt.Sprintf("vehículo %d: celular %q debe tener 10 dígitos", i+1, v.DriverPhone))
		default:
			if _, dup := seen[v.Plate]; dup {
				problems = append(problems, fmt.Sprintf("placa %q está duplicada", v.Plate))
			}
			seen[v.Plate] = struct{}{}
		}
	}
	if len(problems) > 0 {
		return nil, &VehicleDataError{Problems: problems}
	}
	if len(inputs) == 0 {
		return nil, &VehicleDataError{Problems: []string{"debe agregar al menos un vehículo a la campaña"}}
	}

	now := time.Now().UTC()
	campaign := &domain.Campaign{
		ID:           ulid.Make().String(),
		OperationID:  in.OperationID,
		CampaignDate: in.CampaignDate,
		Status:       domain.CampaignPending,
		CreatedAt:    now,
		CreatedBy:    createdBy,
	}

	vehicles := make([]*domain.CampaignVehicle, 0, len(inputs))
	for _, v := range inputs {
		vehicles = append(vehicles, &domain.CampaignVehicle{
			ID:          ulid.Make().String(),
			CampaignID:  campaign.ID,
			Plate:       v.Plate,
			DriverName:  v.DriverName,
			DriverPhone: v.DriverPhone,
			Status:      domain.VehicleUnmanaged,
			CreatedAt:   now,
			UpdatedAt:   now,
			CreatedBy:   createdBy,
		})
	}

	if err := s.campaigns.Insert(ctx, campaign); err != nil {
		return nil, err
	}
	if err := s.vehicles.InsertMany(ctx, vehicles); err != nil {
		// A campaign without vehicles is unusable; roll it back.
		if delErr := s.campaigns.Delete(ctx, campaign.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("campaign_id", campaign.ID).Msg("orphaned campaign after vehicle insert failure")
		}
		return nil, err
	}
	campaign.Vehicles = vehicles

	s.log.Info().
		Str("campaign_id", campaign.ID).
		Str("operation_id", campaign.OperationID).
		Int("vehicles", len(vehicles)).
		Msg("campaign created")

	return campaign, nil
}

func (s *CampaignService) List(ctx context.Context, filter ports.ListCampaignsFilter) ([]*domain.Campaign, int64, error) {
	if _, ok := campaignSortFields[filter.SortField]; !ok {
		filter.SortField = "created_at"
		filter.SortAscending = false
	}
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	return s.campaigns.List(ctx, filter)
}

// Get returns one campaign with its vehicle list attached.
func (s *CampaignService) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	campaign, err := s.campaigns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.vehicles.ListByCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	campaign.Vehicles = vehicles
	return campaign, nil
}

// ChangeStatus advances the campaign state machine: pending to completed or
// closed, completed to closed. Anything else is rejected.
func (s *CampaignService) ChangeStatus(ctx context.Context, id string, status domain.CampaignStatus) error {
	campaign, err := s.campaigns.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !campaign.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, campaign.Status, status)
	}
	if err := s.campaigns.SetStatus(ctx, id, status); err != nil {
		return err
	}

	s.log.Info().Str("campaign_id", id).Str("status", string(status)).Msg("campaign status changed")
	return nil
}

func (s *CampaignService) UpdateVehicleStatus(ctx context.Context, vehicleID string, status domain.VehicleStatus) error {
	if !domain.ValidVehicleStatus(status) {
		return fmt.Errorf("%w: unknown vehicle status %q", domain.ErrInvalidTransition, status)
	}
	if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
		return err
	}
	return s.vehicles.UpdateStatus(ctx, vehicleID, status)
}

// Stats summarises vehicle management progress for one campaign.
func (s *CampaignService) Stats(ctx context.Context, campaignID string) (*domain.CampaignStats, error) {
	vehicles, err := s.vehicles.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	stats := &domain.CampaignStats{Total: len(vehicles)}
	for _, v := range vehicles {
		switch v.Status {
		case domain.VehicleUnmanaged:
			stats.Unmanaged++
		case domain.VehicleInterested, domain.VehicleInterestedLater:
			stats.Interested++
			stats.Managed++
		default:
			stats.Managed++
		}
	}
	return stats, nil
}

// InterestedVehicles backs the interests report.
func (s *CampaignService) InterestedVehicles(ctx context.Context) ([]*domain.CampaignVehicle, error) {
	return s.vehicles.ListByStatuses(ctx, domain.VehicleInterested, domain.VehicleInterestedLater)
}
