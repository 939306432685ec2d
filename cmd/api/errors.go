package main

import (
	"errors"
	"net/http"

	"github.com/david5010/AetherGrid/internal/grid"
	"github.com/david5010/AetherGrid/internal/providers/openmeteo"
	"github.com/david5010/AetherGrid/internal/table"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error" example:"unknown grid operator: \"NotAnISO\""`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, openmeteo.ErrConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, grid.ErrUnknownOperator):
		return http.StatusNotFound
	case errors.Is(err, openmeteo.ErrTransport), errors.Is(err, grid.ErrTransport):
		return http.StatusBadGateway
	case errors.Is(err, openmeteo.ErrForecastTypeNotFound),
		errors.Is(err, openmeteo.ErrMissingField),
		errors.Is(err, table.ErrTimeParse),
		errors.Is(err, table.ErrColumnNotFound),
		errors.Is(err, table.ErrRaggedColumns),
		errors.Is(err, table.ErrMalformed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (app *App) respondError(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		app.logger.Error(msg,
			"path", c.Request.URL.Path,
			"requestID", c.GetString(requestIDKey),
			"error", err,
		)
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
