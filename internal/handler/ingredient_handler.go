package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func userIDFrom(c echo.Context) (model.UserID, error) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return userID, nil
}

// /ingredients のAPI
type IngredientHandler struct {
	uc *usecase.IngredientUsecase
}

// DI
func NewIngredientHandler(uc *usecase.IngredientUsecase) *IngredientHandler {
	return &IngredientHandler{uc: uc}
}

func (h *IngredientHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/ingredients", h.create)
	g.GET("/ingredients", h.list)
	g.GET("/ingredients/expiring-soon", h.expiringSoon)
	g.GET("/ingredients/low-stock", h.lowStock)
	g.GET("/ingredients/out-of-stock", h.outOfStock)
	g.GET("/ingredients/summary", h.summary)
	g.GET("/ingredients/total-stock", h.totalStock)
	g.POST("/ingredients/check-expiries", h.checkExpiries)
	g.GET("/ingredients/:id", h.detail)
	g.PATCH("/ingredients/:id", h.update)
	g.DELETE("/ingredients/:id", h.delete)
	g.POST("/ingredients/:id/consume", h.consume)
	g.POST("/ingredients/:id/replenish", h.replenish)
}

type createIngredientRequest struct {
	Name           string   `json:"name"`
	CategoryID     string   `json:"category_id"`
	Memo           *string  `json:"memo"`
	Price          *float64 `json:"price"`
	PurchaseDate   string   `json:"purchase_date"`
	Quantity       float64  `json:"quantity"`
	UnitID         string   `json:"unit_id"`
	StorageType    string   `json:"storage_type"`
	StorageDetail  string   `json:"storage_detail"`
	Threshold      *float64 `json:"threshold"`
	BestBeforeDate *string  `json:"best_before_date"`
	UseByDate      *string  `json:"use_by_date"`
}

func (h *IngredientHandler) create(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	var req createIngredientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != "" {
		d, err := parseDate(req.PurchaseDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid purchase_date"})
		}
		purchaseDate = d
	}
	bestBefore, err := parseOptionalDate(req.BestBeforeDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid best_before_date"})
	}
	useBy, err := parseOptionalDate(req.UseByDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid use_by_date"})
	}

	out, err := h.uc.Create(c.Request().Context(), userID, usecase.CreateIngredientInput{
		Name:           req.Name,
		CategoryID:     req.CategoryID,
		Memo:           req.Memo,
		Price:          req.Price,
		PurchaseDate:   purchaseDate,
		Quantity:       req.Quantity,
		UnitID:         req.UnitID,
		StorageType:    req.StorageType,
		StorageDetail:  req.StorageDetail,
		Threshold:      req.Threshold,
		BestBeforeDate: bestBefore,
		UseByDate:      useBy,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *IngredientHandler) list(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	// category_id / storage_type での絞り込みに対応
	if categoryID := c.QueryParam("category_id"); categoryID != "" {
		out, err := h.uc.ListByCategory(c.Request().Context(), userID, categoryID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
	if storageType := c.QueryParam("storage_type"); storageType != "" {
		out, err := h.uc.ListByStorageLocation(c.Request().Context(), userID, storageType)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}

	out, err := h.uc.List(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *IngredientHandler) detail(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	out, err := h.uc.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateIngredientRequest struct {
	Name           *string  `json:"name"`
	CategoryID     *string  `json:"category_id"`
	Memo           *string  `json:"memo"`
	ClearMemo      bool     `json:"clear_memo"`
	Price          *float64 `json:"price"`
	ClearPrice     bool     `json:"clear_price"`
	BestBeforeDate *string  `json:"best_before_date"`
	UseByDate      *string  `json:"use_by_date"`
	ClearExpiry    bool     `json:"clear_expiry"`
}

func (h *IngredientHandler) update(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	var req updateIngredientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	bestBefore, err := parseOptionalDate(req.BestBeforeDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid best_before_date"})
	}
	useBy, err := parseOptionalDate(req.UseByDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid use_by_date"})
	}

	out, err := h.uc.Update(c.Request().Context(), userID, c.Param("id"), usecase.UpdateIngredientInput{
		Name:           req.Name,
		CategoryID:     req.CategoryID,
		Memo:           req.Memo,
		ClearMemo:      req.ClearMemo,
		Price:          req.Price,
		ClearPrice:     req.ClearPrice,
		BestBeforeDate: bestBefore,
		UseByDate:      useBy,
		ClearExpiry:    req.ClearExpiry,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *IngredientHandler) delete(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

func (h *IngredientHandler) consume(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.uc.Consume(c.Request().Context(), userID, c.Param("id"), req.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *IngredientHandler) replenish(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.uc.Replenish(c.Request().Context(), userID, c.Param("id"), req.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *IngredientHandler) expiringSoon(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	// days（default 3）
	days := 3
	if v := c.QueryParam("days"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid days"})
		}
		days = d
	}

	out, err := h.uc.ListExpiringSoon(c.Request().Context(), userID, days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *IngredientHandler) lowStock(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	var threshold *float64
	if v := c.QueryParam("threshold"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid threshold"})
		}
		threshold = &t
	}

	out, err := h.uc.ListLowStock(c.Request().Context(), userID, threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *IngredientHandler) outOfStock(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	out, err := h.uc.ListOutOfStock(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *IngredientHandler) summary(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	out, err := h.uc.SummaryByCategory(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *IngredientHandler) totalStock(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	unitID := c.QueryParam("unit_id")
	if unitID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unit_id required"})
	}

	out, err := h.uc.TotalStock(c.Request().Context(), userID, unitID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type checkExpiriesResponse struct {
	Notified int `json:"notified"`
}

func (h *IngredientHandler) checkExpiries(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	notified, err := h.uc.CheckExpiries(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, checkExpiriesResponse{Notified: notified})
}

func parseDate(v string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", v, time.Local)
}

func parseOptionalDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	d, err := parseDate(*v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
