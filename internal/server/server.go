package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"app/internal/config"
	"app/internal/handler"
)

// Newはechoサーバを組み立てる。
func New(cfg config.Config, ingredientH *handler.IngredientHandler, referenceH *handler.ReferenceHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	RegisterRoutes(e, cfg, ingredientH, referenceH)
	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
