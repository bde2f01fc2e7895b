package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logicem/callcenter-api/internal/api/metrics"
	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

// CallHandler handles the guided call-management flow.
type CallHandler struct {
	service ports.CallService
}

func NewCallHandler(service ports.CallService) *CallHandler {
	return &CallHandler{service: service}
}

type recordCallRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required"`
	Result    string `json:"result" validate:"required,oneof=buzon no-contesta contesta"`
}

// Operations handles GET /v1/calls/operations: active operations that still
// have pending campaigns, the first step of the guided flow.
//
// @Summary      Operations with pending campaigns
// @Tags         calls
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Operation
// @Router       /v1/calls/operations [get]
func (h *CallHandler) Operations(c echo.Context) error {
	ops, err := h.service.OperationsWithPendingCampaigns(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ops)
}

// PendingCampaigns handles GET /v1/calls/operations/:id/campaigns.
//
// @Summary      Pending campaigns of an operation
// @Tags         calls
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Operation id"
// @Success      200  {array}  domain.Campaign
// @Router       /v1/calls/operations/{id}/campaigns [get]
func (h *CallHandler) PendingCampaigns(c echo.Context) error {
	campaigns, err := h.service.PendingCampaigns(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaigns)
}

// UnmanagedVehicles handles GET /v1/calls/campaigns/:id/vehicles: the
// vehicles of a campaign still waiting for a first call.
//
// @Summary      Unmanaged vehicles of a campaign
// @Tags         calls
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Campaign id"
// @Success      200  {array}  domain.CampaignVehicle
// @Router       /v1/calls/campaigns/{id}/vehicles [get]
func (h *CallHandler) UnmanagedVehicles(c echo.Context) error {
	vehicles, err := h.service.UnmanagedVehicles(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vehicles)
}

// RecordResult handles POST /v1/calls/results: records one call outcome and
// returns the vehicle with its new status.
//
// @Summary      Record a call result
// @Tags         calls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordCallRequest  true  "Call outcome"
// @Success      200   {object}  domain.CampaignVehicle
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/calls/results [post]
func (h *CallHandler) RecordResult(c echo.Context) error {
	act, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req recordCallRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	vehicle, err := h.service.RecordResult(c.Request().Context(), ports.RecordCallInput{
		VehicleID: req.VehicleID,
		Result:    domain.CallResultType(req.Result),
		CreatedBy: act.Email,
	})
	if err != nil {
		return err
	}

	metrics.CallResultsTotal.WithLabelValues(req.Result).Inc()
	return c.JSON(http.StatusOK, vehicle)
}

// VehicleHistory handles GET /v1/calls/vehicles/:id/history: the call audit
// trail of one vehicle, newest first.
//
// @Summary      Call history of a vehicle
// @Tags         calls
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Vehicle id"
// @Success      200  {array}  domain.CallLog
// @Failure      404  {object}  map[string]string
// @Router       /v1/calls/vehicles/{id}/history [get]
func (h *CallHandler) VehicleHistory(c echo.Context) error {
	logs, err := h.service.VehicleHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []*domain.CallLog{}
	}
	return c.JSON(http.StatusOK, logs)
}
