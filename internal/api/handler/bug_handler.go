package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/api/metrics"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/ports"
)

// BugHandler handles HTTP requests for bug records.
type BugHandler struct {
	tracker  ports.Tracker
	accounts accountGetter
}

func NewBugHandler(tracker ports.Tracker, accounts accountGetter) *BugHandler {
	return &BugHandler{tracker: tracker, accounts: accounts}
}

// List handles GET /v1/bugs. Rows and columns depend on the caller's role.
//
// @Summary      List the bugs visible to the caller
// @Tags         bugs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listBugsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/bugs [get]
func (h *BugHandler) List(c echo.Context) error {
	actor, err := currentAccount(c, h.accounts)
	if err != nil {
		return err
	}
	views, err := h.tracker.ListForRole(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	resp := listBugsResponse{Data: make([]bugViewResponse, len(views))}
	for i, v := range views {
		resp.Data[i] = toBugViewResponse(v)
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /v1/bugs/:id. A bug outside the caller's listing is
// reported as not found.
//
// @Summary      Get a bug by id
// @Tags         bugs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Bug id"
// @Success      200  {object}  bugViewResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/bugs/{id} [get]
func (h *BugHandler) Get(c echo.Context) error {
	id, err := bugID(c)
	if err != nil {
		return err
	}
	actor, err := currentAccount(c, h.accounts)
	if err != nil {
		return err
	}
	views, err := h.tracker.ListForRole(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	for _, v := range views {
		if v.ID == id {
			return c.JSON(http.StatusOK, toBugViewResponse(v))
		}
	}
	return fmt.Errorf("bug %d: %w", id, domain.ErrBugNotFound)
}

// Report handles POST /v1/bugs.
//
// @Summary      Report a bug
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reportBugRequest  true  "Bug details"
// @Success      201   {object}  bugResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/bugs [post]
func (h *BugHandler) Report(c echo.Context) error {
	var req reportBugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := currentAccount(c, h.accounts)
	if err != nil {
		return err
	}
	bug, err := h.tracker.Report(c.Request().Context(), actor, toReportInput(req))
	if err != nil {
		return err
	}
	metrics.BugsReportedTotal.WithLabelValues(string(bug.Priority)).Inc()

	c.Response().Header().Set(echo.HeaderLocation, bugLinksFor(bug.ID).Self)
	return c.JSON(http.StatusCreated, toBugResponse(bug))
}

// Assign handles PUT /v1/bugs/:id/assignee.
//
// @Summary      Assign a bug to a developer
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Bug id"
// @Param        body  body      assignBugRequest  true  "Developer username"
// @Success      200   {object}  bugResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/bugs/{id}/assignee [put]
func (h *BugHandler) Assign(c echo.Context) error {
	id, err := bugID(c)
	if err != nil {
		return err
	}
	var req assignBugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := currentAccount(c, h.accounts)
	if err != nil {
		return err
	}
	bug, err := h.tracker.Assign(c.Request().Context(), actor, id, req.Developer)
	if err != nil {
		return err
	}
	metrics.BugAssignmentsTotal.Inc()

	return c.JSON(http.StatusOK, toBugResponse(bug))
}

// UpdateStatus handles PUT /v1/bugs/:id/status.
//
// @Summary      Change a bug's status
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Bug id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  bugResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/bugs/{id}/status [put]
func (h *BugHandler) UpdateStatus(c echo.Context) error {
	id, err := bugID(c)
	if err != nil {
		return err
	}
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := currentAccount(c, h.accounts)
	if err != nil {
		return err
	}
	bug, err := h.tracker.UpdateStatus(c.Request().Context(), actor, id, domain.BugStatus(req.Status))
	if err != nil {
		return err
	}
	metrics.BugStatusChangesTotal.WithLabelValues(string(bug.Status)).Inc()

	return c.JSON(http.StatusOK, toBugResponse(bug))
}

func bugID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid bug id")
	}
	return id, nil
}
