package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"app/internal/usecase"
)

// /categories /units のAPI（表示用の参照データ）
type ReferenceHandler struct {
	uc *usecase.ReferenceUsecase
}

// DI
func NewReferenceHandler(uc *usecase.ReferenceUsecase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

func (h *ReferenceHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/categories", h.listCategories)
	g.GET("/units", h.listUnits)
}

func (h *ReferenceHandler) listCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *ReferenceHandler) listUnits(c echo.Context) error {
	units, err := h.uc.ListUnits(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, units)
}
