package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/middleware"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, ingredientH *handler.IngredientHandler, referenceH *handler.ReferenceHandler) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	//認証必須のAPI
	api := e.Group("/api/v1", middleware.AuthJWT(cfg))
	ingredientH.RegisterRoutes(api)
	referenceH.RegisterRoutes(api)
}
