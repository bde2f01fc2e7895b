package domain

import "time"

// CampaignStatus represents the lifecycle state of a calling campaign.
type CampaignStatus string

const (
	CampaignPending   CampaignStatus = "pending"
	CampaignCompleted CampaignStatus = "completed"
	CampaignClosed    CampaignStatus = "closed"
)

// campaignTransitions defines the allowed state machine transitions.
var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignPending:   {CampaignCompleted, CampaignClosed},
	CampaignCompleted: {CampaignClosed},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	for _, allowed := range campaignTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Campaign is one day of calls against an operation's vehicle list.
type Campaign struct {
	ID           string             `json:"id" bson:"_id"`
	OperationID  string             `json:"operation_id" bson:"operation_id"`
	CampaignDate string             `json:"campaign_date" bson:"campaign_date"`
	Status       CampaignStatus     `json:"status" bson:"status"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	CompletedAt  *time.Time         `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	ClosedAt     *time.Time         `json:"closed_at,omitempty" bson:"closed_at,omitempty"`
	CreatedBy    string             `json:"created_by,omitempty" bson:"created_by,omitempty"`
	Vehicles     []*CampaignVehicle `json:"vehicles,omitempty" bson:"-"`
}

// VehicleStatus is the call-management state of a single vehicle inside a
// campaign. A freshly loaded vehicle starts at "sin-gestion"; every other
// status records the outcome of agent work.
type VehicleStatus string

const (
	VehicleUnmanaged         VehicleStatus = "sin-gestion"
	VehicleManaged           VehicleStatus = "gestionado"
	VehicleVoicemail         VehicleStatus = "buzon"
	VehicleNoDriver          VehicleStatus = "no-conductor"
	VehicleChanged           VehicleStatus = "cambio-vehiculo"
	VehicleNoLogicemInterest VehicleStatus = "no-interesado-logicem"
	VehicleLoadRestriction   VehicleStatus = "restriccion-cargue"
	VehicleNotInterested     VehicleStatus = "no-interesado"
	VehicleInterestedLater   VehicleStatus = "interesado-despues"
	VehicleInterested        VehicleStatus = "interesado"
	VehicleCancelled         VehicleStatus = "cancelada"
)

var vehicleStatuses = map[VehicleStatus]struct{}{
	VehicleUnmanaged:         {},
	VehicleManaged:           {},
	VehicleVoicemail:         {},
	VehicleNoDriver:          {},
	VehicleChanged:           {},
	VehicleNoLogicemInterest: {},
	VehicleLoadRestriction:   {},
	VehicleNotInterested:     {},
	VehicleInterestedLater:   {},
	VehicleInterested:        {},
	VehicleCancelled:         {},
}

// ValidVehicleStatus reports whether s is a known vehicle status.
func ValidVehicleStatus(s VehicleStatus) bool {
	_, ok := vehicleStatuses[s]
	return ok
}

// CampaignVehicle is one plate/driver pair loaded into a campaign.
type CampaignVehicle struct {
	ID          string        `json:"id" bson:"_id"`
	CampaignID  string        `json:"campaign_id" bson:"campaign_id"`
	Plate       string        `json:"plate" bson:"plate"`
	DriverName  string        `json:"driver_name" bson:"driver_name"`
	DriverPhone string        `json:"driver_phone" bson:"driver_phone"`
	Status      VehicleStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
	CreatedBy   string        `json:"created_by,omitempty" bson:"created_by,omitempty"`
}

// CampaignStats summarises vehicle management progress for one campaign.
type CampaignStats struct {
	Total      int `json:"total"`
	Unmanaged  int `json:"sin_gestion"`
	Managed    int `json:"gestionados"`
	Interested int `json:"interesados"`
}
