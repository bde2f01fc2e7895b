package handler

import "time"

type callEventRequest struct {
	VehicleID string    `json:"vehicle_id" validate:"required"`
	Result    string    `json:"result"     validate:"required,oneof=buzon no-contesta contesta"`
	Timestamp time.Time `json:"timestamp"  validate:"required"`
	Source    string    `json:"source"     validate:"required"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
