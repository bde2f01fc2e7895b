package domain

import "time"

// CallResultType is the outcome an agent records after dialling a driver.
type CallResultType string

const (
	ResultVoicemail CallResultType = "buzon"
	ResultNoAnswer  CallResultType = "no-contesta"
	ResultAnswered  CallResultType = "contesta"
)

// ValidCallResult reports whether r is a known call result.
func ValidCallResult(r CallResultType) bool {
	switch r {
	case ResultVoicemail, ResultNoAnswer, ResultAnswered:
		return true
	}
	return false
}

// VehicleStatus maps a call result onto the vehicle status it produces:
// voicemail keeps the voicemail marker, an unanswered call flags the number
// as unreachable, an answered call counts as managed.
func (r CallResultType) VehicleStatus() VehicleStatus {
	switch r {
	case ResultVoicemail:
		return VehicleVoicemail
	case ResultNoAnswer:
		return VehicleNoDriver
	default:
		return VehicleManaged
	}
}

// CallLog is the immutable record of a single dialled call.
type CallLog struct {
	ID          string         `json:"id" bson:"_id"`
	VehicleID   string         `json:"vehicle_id" bson:"vehicle_id"`
	ResultType  CallResultType `json:"result_type" bson:"result_type"`
	PhoneNumber string         `json:"phone_number" bson:"phone_number"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	CreatedBy   string         `json:"created_by" bson:"created_by"`
}
