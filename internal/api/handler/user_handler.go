package handler

import (
	"encoding/csv"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

// UserHandler handles user administration routes.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=admin manager agent"`
}

type updateUserRequest struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required,oneof=admin manager agent"`
}

// List handles GET /v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Partial match on name or email"
// @Param        sort    query     string  false  "Sort field: name, email, role, created_at"
// @Param        dir     query     string  false  "Sort direction: asc or desc"
// @Param        page    query     int     false  "1-based page"
// @Param        limit   query     int     false  "Rows per page"
// @Success      200     {object}  listResponse
// @Failure      401     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	q := parseListQuery(c)
	filter := ports.ListUsersFilter{
		Search:        q.Search,
		SortField:     q.SortField,
		SortAscending: q.Ascending,
		Page:          q.Page,
		Limit:         q.Limit,
	}

	users, total, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Items: users, Total: total, Page: filter.Page, Limit: filter.Limit})
}

// Create handles POST /v1/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  domain.AppUser
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.ParseRole(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Update handles PUT /v1/users/:id. Email is immutable.
//
// @Summary      Update a user's name and role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Updated fields"
// @Success      200   {object}  domain.AppUser
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name: req.Name,
		Role: domain.ParseRole(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/:id.
//
// @Summary      Delete a user and its credential
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Export handles GET /v1/users/export — the full user list as CSV.
//
// @Summary      Export users as CSV
// @Tags         users
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {string}  string
// @Router       /v1/users/export [get]
func (h *UserHandler) Export(c echo.Context) error {
	users, _, err := h.service.List(c.Request().Context(), ports.ListUsersFilter{Limit: 100, Page: 1})
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="usuarios.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"nombre", "email", "rol", "creado"}); err != nil {
		return err
	}
	for _, u := range users {
		row := []string{u.Name, u.Email, string(u.Role), u.CreatedAt.Format(time.RFC3339)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
