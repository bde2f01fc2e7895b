package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logicem/callcenter-api/internal/api/metrics"
	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

// CampaignHandler handles calling-campaign management.
type CampaignHandler struct {
	service ports.CampaignService
}

func NewCampaignHandler(service ports.CampaignService) *CampaignHandler {
	return &CampaignHandler{service: service}
}

type vehicleRow struct {
	Plate       string `json:"plate" validate:"required"`
	DriverName  string `json:"driver_name" validate:"required"`
	DriverPhone string `json:"driver_phone" validate:"required"`
}

type createCampaignRequest struct {
	OperationID  string       `json:"operation_id" validate:"required"`
	CampaignDate string       `json:"campaign_date" validate:"required"`
	Vehicles     []vehicleRow `json:"vehicles" validate:"dive"`
	BulkLines    string       `json:"bulk_lines"`
}

type changeCampaignStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed closed"`
}

type updateVehicleStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create handles POST /v1/campaigns. Vehicle rows can come structured or as
// raw tab-separated lines pasted from a spreadsheet; a single bad row rejects
// the whole batch.
//
// @Summary      Create a campaign with its vehicle list
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCampaignRequest  true  "Campaign"
// @Success      201   {object}  domain.Campaign
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/campaigns [post]
func (h *CampaignHandler) Create(c echo.Context) error {
	act, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createCampaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.CreateCampaignInput{
		OperationID:  req.OperationID,
		CampaignDate: req.CampaignDate,
		BulkLines:    req.BulkLines,
	}
	for _, v := range req.Vehicles {
		in.Vehicles = append(in.Vehicles, ports.VehicleInput{
			Plate:       v.Plate,
			DriverName:  v.DriverName,
			DriverPhone: v.DriverPhone,
		})
	}

	campaign, err := h.service.Create(c.Request().Context(), in, act.Email)
	if err != nil {
		return err
	}

	metrics.CampaignsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, campaign)
}

// List handles GET /v1/campaigns.
//
// @Summary      List campaigns
// @Tags         campaigns
// @Produce      json
// @Security     BearerAuth
// @Param        status        query     string  false  "pending | completed | closed"
// @Param        operation_id  query     string  false  "Filter by operation"
// @Param        sort          query     string  false  "campaign_date | status | created_at"
// @Param        dir           query     string  false  "asc | desc"
// @Param        page          query     int     false  "Page number"
// @Param        limit         query     int     false  "Page size"
// @Success      200           {object}  listResponse
// @Router       /v1/campaigns [get]
func (h *CampaignHandler) List(c echo.Context) error {
	q := parseListQuery(c)
	campaigns, total, err := h.service.List(c.Request().Context(), ports.ListCampaignsFilter{
		Status:        domain.CampaignStatus(c.QueryParam("status")),
		OperationID:   c.QueryParam("operation_id"),
		SortField:     q.SortField,
		SortAscending: q.Ascending,
		Page:          q.Page,
		Limit:         q.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Items: campaigns, Total: total, Page: q.Page, Limit: q.Limit})
}

// Get handles GET /v1/campaigns/:id, returning the campaign with its
// vehicles embedded.
//
// @Summary      Get a campaign with its vehicles
// @Tags         campaigns
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Campaign id"
// @Success      200  {object}  domain.Campaign
// @Failure      404  {object}  map[string]string
// @Router       /v1/campaigns/{id} [get]
func (h *CampaignHandler) Get(c echo.Context) error {
	campaign, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}

// ChangeStatus handles POST /v1/campaigns/:id/status. Only forward
// transitions are allowed: pending to completed or closed, completed to
// closed.
//
// @Summary      Change a campaign's status
// @Tags         campaigns
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                       true  "Campaign id"
// @Param        body  body  changeCampaignStatusRequest  true  "Target status"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/campaigns/{id}/status [post]
func (h *CampaignHandler) ChangeStatus(c echo.Context) error {
	var req changeCampaignStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ChangeStatus(c.Request().Context(), c.Param("id"), domain.CampaignStatus(req.Status)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateVehicleStatus handles PUT /v1/vehicles/:id/status.
//
// @Summary      Set a vehicle's management status
// @Tags         campaigns
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                      true  "Vehicle id"
// @Param        body  body  updateVehicleStatusRequest  true  "Target status"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/vehicles/{id}/status [put]
func (h *CampaignHandler) UpdateVehicleStatus(c echo.Context) error {
	var req updateVehicleStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateVehicleStatus(c.Request().Context(), c.Param("id"), domain.VehicleStatus(req.Status)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /v1/campaigns/:id/stats.
//
// @Summary      Campaign management progress counters
// @Tags         campaigns
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Campaign id"
// @Success      200  {object}  domain.CampaignStats
// @Failure      404  {object}  map[string]string
// @Router       /v1/campaigns/{id}/stats [get]
func (h *CampaignHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
