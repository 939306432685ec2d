package main

import (
	"context"
	"net/http"

	"github.com/david5010/AetherGrid/internal/grid"
	"github.com/david5010/AetherGrid/internal/table"
	"github.com/gin-gonic/gin"
)

type OperatorsResponse struct {
	Operators []string `json:"operators" example:"CAISO,PJM"`
}

// GridLoadResponse holds one load table of an operator
type GridLoadResponse struct {
	Operator string       `json:"operator" example:"CAISO"`
	Date     string       `json:"date" example:"today"`
	Table    *table.Table `json:"table"`
}

// handleListOperators godoc
// @Summary List grid operators
// @Description Names of the configured grid operators
// @Tags grid
// @Produce json
// @Success 200 {object} OperatorsResponse
// @Router /grid/operators [get]
func (app *App) handleListOperators(c *gin.Context) {
	c.JSON(http.StatusOK, OperatorsResponse{Operators: app.gridRegistry.Names()})
}

// handleGetLoad godoc
// @Summary Get grid load
// @Description Observed load of a grid operator for a date
// @Tags grid
// @Produce json
// @Param operator path string true "Operator name" example(CAISO)
// @Param date query string false "today or YYYY-MM-DD" default(today)
// @Success 200 {object} GridLoadResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /grid/{operator}/load [get]
func (app *App) handleGetLoad(c *gin.Context) {
	app.handleGridTable(c, grid.Operator.Load)
}

// handleGetLoadForecast godoc
// @Summary Get grid load forecast
// @Description Published load forecast of a grid operator for a date
// @Tags grid
// @Produce json
// @Param operator path string true "Operator name" example(CAISO)
// @Param date query string false "today or YYYY-MM-DD" default(today)
// @Success 200 {object} GridLoadResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /grid/{operator}/load-forecast [get]
func (app *App) handleGetLoadForecast(c *gin.Context) {
	app.handleGridTable(c, grid.Operator.LoadForecast)
}

func (app *App) handleGridTable(c *gin.Context, get func(grid.Operator, context.Context, string) (*table.Table, error)) {
	name := c.Param("operator")
	date := c.DefaultQuery("date", grid.Today)

	op, err := app.gridRegistry.New(name)
	if err != nil {
		app.respondError(c, err, "failed to create grid operator")
		return
	}

	tbl, err := get(op, c.Request.Context(), date)
	if err != nil {
		app.respondError(c, err, "failed to get grid data")
		return
	}

	c.JSON(http.StatusOK, GridLoadResponse{Operator: op.Name(), Date: date, Table: tbl})
}
