package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rusafhasan/agencymanagement/internal/api/middleware"
	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

// callerFrom extracts the caller injected by the Auth middleware. Its
// absence means the route was mounted without Auth, which is a wiring bug
// surfaced as 401 rather than a panic.
func callerFrom(c echo.Context) (domain.Caller, error) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return domain.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return caller, nil
}

// bind decodes and validates a request body.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
}

func message(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}
