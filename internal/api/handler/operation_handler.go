package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

// OperationHandler handles transport-operation management.
type OperationHandler struct {
	service ports.OperationService
}

func NewOperationHandler(service ports.OperationService) *OperationHandler {
	return &OperationHandler{service: service}
}

type operationRequest struct {
	Name          string `json:"name" validate:"required"`
	ClientID      string `json:"client_id" validate:"required"`
	VehicleTypeID string `json:"vehicle_type_id" validate:"required"`
	TrailerTypeID string `json:"trailer_type_id" validate:"required"`
	ProductType   string `json:"product_type" validate:"required"`
	Origin        string `json:"origin" validate:"required"`
	Destination   string `json:"destination" validate:"required"`
}

func (r operationRequest) input() ports.OperationInput {
	return ports.OperationInput{
		Name:          r.Name,
		ClientID:      r.ClientID,
		VehicleTypeID: r.VehicleTypeID,
		TrailerTypeID: r.TrailerTypeID,
		ProductType:   r.ProductType,
		Origin:        r.Origin,
		Destination:   r.Destination,
	}
}

// List handles GET /v1/operations.
//
// @Summary      List operations
// @Tags         operations
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Partial match on name, origin or destination"
// @Param        status  query     string  false  "active | inactive"
// @Param        sort    query     string  false  "name | status | created_at"
// @Param        dir     query     string  false  "asc | desc"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listResponse
// @Router       /v1/operations [get]
func (h *OperationHandler) List(c echo.Context) error {
	q := parseListQuery(c)
	ops, total, err := h.service.List(c.Request().Context(), ports.ListOperationsFilter{
		Search:        q.Search,
		Status:        domain.OperationStatus(c.QueryParam("status")),
		ClientID:      c.QueryParam("client_id"),
		SortField:     q.SortField,
		SortAscending: q.Ascending,
		Page:          q.Page,
		Limit:         q.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Items: ops, Total: total, Page: q.Page, Limit: q.Limit})
}

// Create handles POST /v1/operations.
//
// @Summary      Create an operation
// @Tags         operations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      operationRequest  true  "Operation"
// @Success      201   {object}  domain.Operation
// @Failure      400   {object}  map[string]string
// @Router       /v1/operations [post]
func (h *OperationHandler) Create(c echo.Context) error {
	act, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req operationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	op, err := h.service.Create(c.Request().Context(), req.input(), act.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, op)
}

// Update handles PUT /v1/operations/:id.
//
// @Summary      Update an operation
// @Tags         operations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Operation id"
// @Param        body  body      operationRequest  true  "Operation"
// @Success      200   {object}  domain.Operation
// @Failure      404   {object}  map[string]string
// @Router       /v1/operations/{id} [put]
func (h *OperationHandler) Update(c echo.Context) error {
	var req operationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	op, err := h.service.Update(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, op)
}

// Inactivate handles POST /v1/operations/:id/inactivate. Operations are
// never deleted; past campaigns keep pointing at them.
//
// @Summary      Inactivate an operation
// @Tags         operations
// @Security     BearerAuth
// @Param        id  path  string  true  "Operation id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/operations/{id}/inactivate [post]
func (h *OperationHandler) Inactivate(c echo.Context) error {
	if err := h.service.Inactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
