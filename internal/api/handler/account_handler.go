package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/api/metrics"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/ports"
)

// AccountHandler exposes the directory's administration operations.
type AccountHandler struct {
	directory ports.Directory
}

func NewAccountHandler(directory ports.Directory) *AccountHandler {
	return &AccountHandler{directory: directory}
}

// List handles GET /v1/accounts.
//
// @Summary      List all accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listAccountsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	actor, err := currentAccount(c, h.directory)
	if err != nil {
		return err
	}
	accounts, err := h.directory.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountList(accounts))
}

// Developers handles GET /v1/developers, the choices offered when assigning.
//
// @Summary      List developer accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listAccountsResponse
// @Router       /v1/developers [get]
func (h *AccountHandler) Developers(c echo.Context) error {
	devs, err := h.directory.ListByRole(c.Request().Context(), domain.RoleDeveloper)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountList(devs))
}

// Create handles POST /v1/accounts.
//
// @Summary      Register an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := currentAccount(c, h.directory)
	if err != nil {
		return err
	}
	acc, err := h.directory.Register(c.Request().Context(), actor, ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	metrics.AccountsRegisteredTotal.WithLabelValues(string(acc.Role)).Inc()

	return c.JSON(http.StatusCreated, toAccountResponse(acc))
}

// Update handles PUT /v1/accounts/:username.
//
// @Summary      Change an account's role or password
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string                true  "Username"
// @Param        body      body      updateAccountRequest  true  "New role and optional password"
// @Success      200       {object}  accountResponse
// @Failure      400       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/accounts/{username} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := currentAccount(c, h.directory)
	if err != nil {
		return err
	}
	acc, err := h.directory.UpdateAccount(c.Request().Context(), actor, ports.UpdateAccountInput{
		Username: c.Param("username"),
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(acc))
}

// Delete handles DELETE /v1/accounts/:username.
//
// @Summary      Delete an account
// @Tags         accounts
// @Security     BearerAuth
// @Param        username  path  string  true  "Username"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/accounts/{username} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	actor, err := currentAccount(c, h.directory)
	if err != nil {
		return err
	}
	if err := h.directory.DeleteAccount(c.Request().Context(), actor, c.Param("username")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
