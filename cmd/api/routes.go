package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	// Forecast endpoints
	app.router.GET("/forecast", app.handleGetForecast)
	app.router.GET("/forecast/stream", app.handleStreamForecast)

	// Grid endpoints
	app.router.GET("/grid/operators", app.handleListOperators)
	app.router.GET("/grid/:operator/load", app.handleGetLoad)
	app.router.GET("/grid/:operator/load-forecast", app.handleGetLoadForecast)

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
