package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/ports"
)

type NotificationHandler struct {
	inbox    ports.Inbox
	accounts accountGetter
}

func NewNotificationHandler(inbox ports.Inbox, accounts accountGetter) *NotificationHandler {
	return &NotificationHandler{inbox: inbox, accounts: accounts}
}

// List returns the caller's own notifications, oldest first.
//
// @Summary      My notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listNotificationsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	acc, err := currentAccount(c, h.accounts)
	if err != nil {
		return err
	}

	items, err := h.inbox.Inbox(c.Request().Context(), acc.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNotificationList(items))
}
