package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/api/middleware"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
)

// accountGetter is the slice of ports.Directory the handlers need to
// resolve the caller.
type accountGetter interface {
	Get(ctx context.Context, username string) (*domain.Account, error)
}

// currentAccount resolves the token's username against the directory, so
// the actor passed to the services always carries the stored role. A token
// for a deleted account is rejected with 401.
func currentAccount(c echo.Context, accounts accountGetter) (*domain.Account, error) {
	username, _ := c.Get(middleware.UsernameKey).(string)
	if username == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	acc, err := accounts.Get(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
		}
		return nil, err
	}
	return acc, nil
}
