package domain

import "time"

// OperationStatus is the lifecycle state of an operation. Operations are
// never deleted, only inactivated.
type OperationStatus string

const (
	OperationActive   OperationStatus = "active"
	OperationInactive OperationStatus = "inactive"
)

// Operation is a recurring transport lane a client contracts: a named
// origin/destination pair with the vehicle profile it requires. Campaigns
// hang off operations.
type Operation struct {
	ID            string          `json:"id" bson:"_id"`
	Name          string          `json:"name" bson:"name"`
	ClientID      string          `json:"client_id,omitempty" bson:"client_id,omitempty"`
	VehicleTypeID string          `json:"vehicle_type_id,omitempty" bson:"vehicle_type_id,omitempty"`
	TrailerTypeID string          `json:"trailer_type_id,omitempty" bson:"trailer_type_id,omitempty"`
	ProductType   string          `json:"product_type,omitempty" bson:"product_type,omitempty"`
	Origin        string          `json:"origin" bson:"origin"`
	Destination   string          `json:"destination" bson:"destination"`
	Status        OperationStatus `json:"status" bson:"status"`
	CreatedAt     time.Time       `json:"created_at" bson:"created_at"`
	DeactivatedAt *time.Time      `json:"deactivated_at,omitempty" bson:"deactivated_at,omitempty"`
	CreatedBy     string          `json:"created_by,omitempty" bson:"created_by,omitempty"`
}
