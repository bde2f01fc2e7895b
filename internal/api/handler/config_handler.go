package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logicem/callcenter-api/internal/core/ports"
)

// ConfigHandler handles the configurable lookup lists.
type ConfigHandler struct {
	service ports.ConfigService
}

func NewConfigHandler(service ports.ConfigService) *ConfigHandler {
	return &ConfigHandler{service: service}
}

type addItemRequest struct {
	Description string `json:"description" validate:"required"`
}

type updateItemRequest struct {
	Description string `json:"description" validate:"required"`
}

type toggleItemResponse struct {
	Active bool `json:"active"`
}

// Sections handles GET /v1/config.
//
// @Summary      List configuration sections
// @Tags         config
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.ConfigSection
// @Router       /v1/config [get]
func (h *ConfigHandler) Sections(c echo.Context) error {
	sections, err := h.service.Sections(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sections)
}

// Section handles GET /v1/config/:key.
//
// @Summary      Get one configuration section
// @Tags         config
// @Produce      json
// @Security     BearerAuth
// @Param        key  path      string  true  "Section key (e.g. vehicle-types)"
// @Success      200  {object}  domain.ConfigSection
// @Failure      404  {object}  map[string]string
// @Router       /v1/config/{key} [get]
func (h *ConfigHandler) Section(c echo.Context) error {
	section, err := h.service.Section(c.Request().Context(), c.Param("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, section)
}

// AddItem handles POST /v1/config/:key/items.
//
// @Summary      Add an item to a section
// @Tags         config
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key   path      string          true  "Section key"
// @Param        body  body      addItemRequest  true  "New item"
// @Success      201   {object}  domain.ConfigItem
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/config/{key}/items [post]
func (h *ConfigHandler) AddItem(c echo.Context) error {
	act, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.AddItem(c.Request().Context(), c.Param("key"), req.Description, act.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem handles PUT /v1/config/:key/items/:item_id.
//
// @Summary      Rename an item
// @Tags         config
// @Accept       json
// @Security     BearerAuth
// @Param        key      path  string             true  "Section key"
// @Param        item_id  path  string             true  "Item id"
// @Param        body     body  updateItemRequest  true  "New description"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/config/{key}/items/{item_id} [put]
func (h *ConfigHandler) UpdateItem(c echo.Context) error {
	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateItem(c.Request().Context(), c.Param("key"), c.Param("item_id"), req.Description); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleItem handles POST /v1/config/:key/items/:item_id/toggle. Items are
// never deleted; historical records keep resolving against inactive items.
//
// @Summary      Toggle an item's active flag
// @Tags         config
// @Produce      json
// @Security     BearerAuth
// @Param        key      path      string  true  "Section key"
// @Param        item_id  path      string  true  "Item id"
// @Success      200      {object}  toggleItemResponse
// @Failure      404      {object}  map[string]string
// @Router       /v1/config/{key}/items/{item_id}/toggle [post]
func (h *ConfigHandler) ToggleItem(c echo.Context) error {
	active, err := h.service.ToggleItem(c.Request().Context(), c.Param("key"), c.Param("item_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toggleItemResponse{Active: active})
}
