package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

// ReportHandler serves the read-only call-management reports.
type ReportHandler struct {
	campaigns ports.CampaignService
	vehicles  ports.VehicleRepository
}

func NewReportHandler(campaigns ports.CampaignService, vehicles ports.VehicleRepository) *ReportHandler {
	return &ReportHandler{campaigns: campaigns, vehicles: vehicles}
}

// NoAnswer handles GET /v1/reports/no-answer: drivers whose numbers did not
// answer, across all campaigns.
//
// @Summary      Numbers-that-do-not-answer report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.CampaignVehicle
// @Router       /v1/reports/no-answer [get]
func (h *ReportHandler) NoAnswer(c echo.Context) error {
	vehicles, err := h.vehicles.ListByStatuses(c.Request().Context(), domain.VehicleNoDriver, domain.VehicleVoicemail)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vehicles)
}

// Interests handles GET /v1/reports/interests: vehicles whose last recorded
// call ended interested or interested-later.
//
// @Summary      Interest-detail report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.CampaignVehicle
// @Router       /v1/reports/interests [get]
func (h *ReportHandler) Interests(c echo.Context) error {
	vehicles, err := h.campaigns.InterestedVehicles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vehicles)
}
