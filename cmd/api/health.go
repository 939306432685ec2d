package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PingResponse represents the response for the ping endpoint
type PingResponse struct {
	Message   string    `json:"message" example:"pong"`
	RequestID string    `json:"requestId" example:"6f1c2a9e-8d3b-4a57-9f0e-2b7c1d4e5a6f"`
	Time      time.Time `json:"time"`
}

// handlePing godoc
// @Summary Ping health check
// @Description Check if the API is running. Echoes the request id assigned to the call.
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (app *App) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message:   "pong",
		RequestID: c.GetString(requestIDKey),
		Time:      time.Now().UTC(),
	})
}
