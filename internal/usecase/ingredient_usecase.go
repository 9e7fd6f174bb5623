package usecase

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"app/internal/domain/model"
	"app/internal/domain/service"
	repo "app/internal/repository"
)

type IngredientUsecase struct {
	ingredientRepo repo.IngredientRepository
	categoryRepo   repo.CategoryRepository
	unitRepo       repo.UnitRepository
	txManager      repo.TransactionManager
	eventBus       repo.EventBus

	dupCheck  *service.DuplicateCheckService
	stockCalc *service.StockCalculationService
}

// DI
func NewIngredientUsecase(
	ingredientRepo repo.IngredientRepository,
	categoryRepo repo.CategoryRepository,
	unitRepo repo.UnitRepository,
	txManager repo.TransactionManager,
	eventBus repo.EventBus,
) *IngredientUsecase {
	return &IngredientUsecase{
		ingredientRepo: ingredientRepo,
		categoryRepo:   categoryRepo,
		unitRepo:       unitRepo,
		txManager:      txManager,
		eventBus:       eventBus,
		dupCheck:       service.NewDuplicateCheckService(),
		stockCalc:      service.NewStockCalculationService(),
	}
}

// ===== 入出力DTO =====

type CreateIngredientInput struct {
	Name           string
	CategoryID     string
	Memo           *string
	Price          *float64
	PurchaseDate   time.Time
	Quantity       float64
	UnitID         string
	StorageType    string
	StorageDetail  string
	Threshold      *float64
	BestBeforeDate *time.Time
	UseByDate      *time.Time
}

type UpdateIngredientInput struct {
	Name           *string
	CategoryID     *string
	Memo           *string
	ClearMemo      bool
	Price          *float64
	ClearPrice     bool
	BestBeforeDate *time.Time
	UseByDate      *time.Time
	ClearExpiry    bool
}

type IngredientOutput struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	CategoryID      string   `json:"category_id"`
	Memo            *string  `json:"memo,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	PurchaseDate    string   `json:"purchase_date"`
	Quantity        float64  `json:"quantity"`
	UnitID          string   `json:"unit_id"`
	StorageType     string   `json:"storage_type"`
	StorageDetail   string   `json:"storage_detail,omitempty"`
	StorageLabel    string   `json:"storage_label"`
	Threshold       *float64 `json:"threshold,omitempty"`
	BestBeforeDate  *string  `json:"best_before_date,omitempty"`
	UseByDate       *string  `json:"use_by_date,omitempty"`
	DaysUntilExpiry *int     `json:"days_until_expiry,omitempty"`
	IsExpired       bool     `json:"is_expired"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

type IngredientListOutput struct {
	Items []IngredientOutput `json:"items"`
	Total int                `json:"total"`
}

type StockOutput struct {
	ID       string  `json:"id"`
	Quantity float64 `json:"quantity"`
	UnitID   string  `json:"unit_id"`
}

type CategorySummaryOutput struct {
	CategoryID      string  `json:"category_id"`
	TotalQuantity   float64 `json:"total_quantity"`
	IngredientCount int     `json:"ingredient_count"`
}

type TotalStockOutput struct {
	UnitID        string  `json:"unit_id"`
	TotalQuantity float64 `json:"total_quantity"`
}

// ===== 登録 =====

func (u *IngredientUsecase) Create(ctx context.Context, userID model.UserID, in CreateIngredientInput) (IngredientOutput, error) {
	name, err := model.NewIngredientName(in.Name)
	if err != nil {
		return IngredientOutput{}, toHTTPError(err)
	}
	categoryID, err := model.ParseCategoryID(in.CategoryID)
	if err != nil {
		return IngredientOutput{}, toHTTPError(err)
	}
	unitID, err := model.ParseUnitID(in.UnitID)
	if err != nil {
		return IngredientOutput{}, toHTTPError(err)
	}
	location, err := model.NewStorageLocation(model.StorageType(in.StorageType), in.StorageDetail)
	if err != nil {
		return IngredientOutput{}, toHTTPError(err)
	}
	quantity, err := model.NewQuantityFromFloat(in.Quantity)
	if err != nil {
		return IngredientOutput{}, toHTTPError(err)
	}

	var memo *model.Memo
	if in.Memo != nil {
		m, err := model.NewMemo(*in.Memo)
		if err != nil {
			return IngredientOutput{}, toHTTPError(err)
		}
		memo = &m
	}
	var price *model.Price
	if in.Price != nil {
		p, err := model.NewPriceFromFloat(*in.Price)
		if err != nil {
			return IngredientOutput{}, toHTTPError(err)
		}
		price = &p
	}
	var threshold *model.Quantity
	if in.Threshold != nil {
		t, err := model.NewQuantityFromFloat(*in.Threshold)
		if err != nil {
			return IngredientOutput{}, toHTTPError(err)
		}
		threshold = &t
	}
	expiry, err := buildExpiryInfo(in.BestBeforeDate, in.UseByDate)
	if err != nil {
		return IngredientOutput{}, toHTTPError(err)
	}

	// カテゴリ・単位の存在確認はトランザクション開始前に済ませる
	if _, err := u.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if err == repo.ErrNotFound {
			return IngredientOutput{}, NewHTTPError(http.StatusBadRequest, "カテゴリが存在しません")
		}
		return IngredientOutput{}, toHTTPError(err)
	}
	if _, err := u.unitRepo.FindByID(ctx, unitID); err != nil {
		if err == repo.ErrNotFound {
			return IngredientOutput{}, NewHTTPError(http.StatusBadRequest, "単位が存在しません")
		}
		return IngredientOutput{}, toHTTPError(err)
	}

	ing, err := model.NewIngredient(model.NewIngredientParams{
		UserID:          userID,
		Name:            name,
		CategoryID:      categoryID,
		Memo:            memo,
		Price:           price,
		PurchaseDate:    in.PurchaseDate,
		Quantity:        quantity,
		UnitID:          unitID,
		StorageLocation: location,
		Threshold:       threshold,
		ExpiryInfo:      expiry,
	})
	if err != nil {
		return IngredientOutput{}, toHTTPError(err)
	}

	// 同一ユーザー・同名・同期限・同保管場所のロットは重複として弾く
	existing, err := u.ingredientRepo.FindDuplicates(ctx, repo.DuplicateCriteria{
		UserID:          userID,
		Name:            name,
		ExpiryInfo:      expiry,
		StorageLocation: location,
	})
	if err != nil {
		return IngredientOutput{}, toHTTPError(err)
	}
	if u.dupCheck.IsDuplicate(ing, existing) {
		return IngredientOutput{}, NewHTTPError(http.StatusConflict, "同じ食材がすでに登録されています")
	}

	err = u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		return r.Ingredients().Save(ctx, ing)
	})
	if err != nil {
		return IngredientOutput{}, toHTTPError(err)
	}

	u.publishEvents(ctx, ing)
	return toOutput(ing), nil
}

// ===== 在庫操作 =====

func (u *IngredientUsecase) Consume(ctx context.Context, userID model.UserID, ingredientID string, amount float64) (StockOutput, error) {
	id, err := model.ParseIngredientID(ingredientID)
	if err != nil {
		return StockOutput{}, toHTTPError(err)
	}
	quantity, err := model.NewQuantityFromFloat(amount)
	if err != nil {
		return StockOutput{}, toHTTPError(err)
	}

	var ing *model.Ingredient
	err = u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		found, err := r.Ingredients().FindByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := found.Consume(quantity, userID); err != nil {
			return err
		}
		if err := r.Ingredients().Update(ctx, found); err != nil {
			return err
		}
		ing = found
		return nil
	})
	if err != nil {
		return StockOutput{}, toHTTPError(err)
	}

	u.publishEvents(ctx, ing)
	return toStockOutput(ing), nil
}

func (u *IngredientUsecase) Replenish(ctx context.Context, userID model.UserID, ingredientID string, amount float64) (StockOutput, error) {
	id, err := model.ParseIngredientID(ingredientID)
	if err != nil {
		return StockOutput{}, toHTTPError(err)
	}
	quantity, err := model.NewQuantityFromFloat(amount)
	if err != nil {
		return StockOutput{}, toHTTPError(err)
	}

	var ing *model.Ingredient
	err = u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		found, err := r.Ingredients().FindByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := found.Replenish(quantity, userID); err != nil {
			return err
		}
		if err := r.Ingredients().Update(ctx, found); err != nil {
			return err
		}
		ing = found
		return nil
	})
	if err != nil {
		return StockOutput{}, toHTTPError(err)
	}

	u.publishEvents(ctx, ing)
	return toStockOutput(ing), nil
}

// ===== 更新・削除 =====

func (u *IngredientUsecase) Update(ctx context.Context, userID model.UserID, ingredientID string, in UpdateIngredientInput) (IngredientOutput, error) {
	id, err := model.ParseIngredientID(ingredientID)
	if err != nil {
		return IngredientOutput{}, toHTTPError(err)
	}

	params := model.UpdateIngredientParams{
		ClearMemo:   in.ClearMemo,
		ClearPrice:  in.ClearPrice,
		ClearExpiry: in.ClearExpiry,
	}
	if in.Name != nil {
		name, err := model.NewIngredientName(*in.Name)
		if err != nil {
			return IngredientOutput{}, toHTTPError(err)
		}
		params.Name = &name
	}
	if in.CategoryID != nil {
		categoryID, err := model.ParseCategoryID(*in.CategoryID)
		if err != nil {
			return IngredientOutput{}, toHTTPError(err)
		}
		if _, err := u.categoryRepo.FindByID(ctx, categoryID); err != nil {
			if err == repo.ErrNotFound {
				return IngredientOutput{}, NewHTTPError(http.StatusBadRequest, "カテゴリが存在しません")
			}
			return IngredientOutput{}, toHTTPError(err)
		}
		params.CategoryID = &categoryID
	}
	if in.Memo != nil {
		memo, err := model.NewMemo(*in.Memo)
		if err != nil {
			return IngredientOutput{}, toHTTPError(err)
		}
		params.Memo = &memo
	}
	if in.Price != nil {
		price, err := model.NewPriceFromFloat(*in.Price)
		if err != nil {
			return IngredientOutput{}, toHTTPError(err)
		}
		params.Price = &price
	}
	if in.BestBeforeDate != nil || in.UseByDate != nil {
		expiry, err := buildExpiryInfo(in.BestBeforeDate, in.UseByDate)
		if err != nil {
			return IngredientOutput{}, toHTTPError(err)
		}
		params.ExpiryInfo = expiry
	}

	var ing *model.Ingredient
	err = u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		found, err := r.Ingredients().FindByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := found.Update(params, userID); err != nil {
			return err
		}
		if err := r.Ingredients().Update(ctx, found); err != nil {
			return err
		}
		ing = found
		return nil
	})
	if err != nil {
		return IngredientOutput{}, toHTTPError(err)
	}

	u.publishEvents(ctx, ing)
	return toOutput(ing), nil
}

func (u *IngredientUsecase) Delete(ctx context.Context, userID model.UserID, ingredientID string) error {
	id, err := model.ParseIngredientID(ingredientID)
	if err != nil {
		return toHTTPError(err)
	}

	var ing *model.Ingredient
	err = u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		found, err := r.Ingredients().FindByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := found.Delete(userID); err != nil {
			return err
		}
		if err := r.Ingredients().Update(ctx, found); err != nil {
			return err
		}
		ing = found
		return nil
	})
	if err != nil {
		return toHTTPError(err)
	}

	u.publishEvents(ctx, ing)
	return nil
}

// ===== 照会 =====

func (u *IngredientUsecase) Get(ctx context.Context, userID model.UserID, ingredientID string) (IngredientOutput, error) {
	id, err := model.ParseIngredientID(ingredientID)
	if err != nil {
		return IngredientOutput{}, toHTTPError(err)
	}
	ing, err := u.ingredientRepo.FindByID(ctx, userID, id)
	if err != nil {
		return IngredientOutput{}, toHTTPError(err)
	}
	return toOutput(ing), nil
}

func (u *IngredientUsecase) List(ctx context.Context, userID model.UserID) (IngredientListOutput, error) {
	ingredients, err := u.ingredientRepo.FindAll(ctx, userID)
	if err != nil {
		return IngredientListOutput{}, toHTTPError(err)
	}
	return toListOutput(ingredients), nil
}

func (u *IngredientUsecase) ListExpiringSoon(ctx context.Context, userID model.UserID, days int) (IngredientListOutput, error) {
	if days < 0 {
		return IngredientListOutput{}, NewHTTPError(http.StatusBadRequest, "日数は0以上でなければなりません")
	}
	ingredients, err := u.ingredientRepo.FindExpiringSoon(ctx, userID, days)
	if err != nil {
		return IngredientListOutput{}, toHTTPError(err)
	}
	return toListOutput(ingredients), nil
}

func (u *IngredientUsecase) ListLowStock(ctx context.Context, userID model.UserID, threshold *float64) (IngredientListOutput, error) {
	var t *decimal.Decimal
	if threshold != nil {
		if *threshold < 0 {
			return IngredientListOutput{}, NewHTTPError(http.StatusBadRequest, "閾値は0以上でなければなりません")
		}
		v := decimal.NewFromFloat(*threshold)
		t = &v
	}
	ingredients, err := u.ingredientRepo.FindLowStock(ctx, userID, t)
	if err != nil {
		return IngredientListOutput{}, toHTTPError(err)
	}
	return toListOutput(ingredients), nil
}

func (u *IngredientUsecase) ListOutOfStock(ctx context.Context, userID model.UserID) (IngredientListOutput, error) {
	ingredients, err := u.ingredientRepo.FindOutOfStock(ctx, userID)
	if err != nil {
		return IngredientListOutput{}, toHTTPError(err)
	}
	return toListOutput(ingredients), nil
}

func (u *IngredientUsecase) ListByCategory(ctx context.Context, userID model.UserID, categoryID string) (IngredientListOutput, error) {
	id, err := model.ParseCategoryID(categoryID)
	if err != nil {
		return IngredientListOutput{}, toHTTPError(err)
	}
	ingredients, err := u.ingredientRepo.FindByCategory(ctx, userID, id)
	if err != nil {
		return IngredientListOutput{}, toHTTPError(err)
	}
	return toListOutput(ingredients), nil
}

func (u *IngredientUsecase) ListByStorageLocation(ctx context.Context, userID model.UserID, storageType string) (IngredientListOutput, error) {
	t, err := model.ParseStorageType(storageType)
	if err != nil {
		return IngredientListOutput{}, toHTTPError(err)
	}
	ingredients, err := u.ingredientRepo.FindByStorageLocation(ctx, userID, t)
	if err != nil {
		return IngredientListOutput{}, toHTTPError(err)
	}
	return toListOutput(ingredients), nil
}

// CheckExpiriesは期限切れの食材を走査してIngredientExpiredを発行する。
// 冪等性は呼び出し側（スケジューラ）の責務。
func (u *IngredientUsecase) CheckExpiries(ctx context.Context, userID model.UserID) (int, error) {
	expired, err := u.ingredientRepo.FindExpired(ctx, userID)
	if err != nil {
		return 0, toHTTPError(err)
	}
	notified := 0
	for _, ing := range expired {
		if ing.CheckAndNotifyExpiry() {
			u.publishEvents(ctx, ing)
			notified++
		}
	}
	return notified, nil
}

func (u *IngredientUsecase) SummaryByCategory(ctx context.Context, userID model.UserID) ([]CategorySummaryOutput, error) {
	ingredients, err := u.ingredientRepo.FindAll(ctx, userID)
	if err != nil {
		return nil, toHTTPError(err)
	}
	summaries := u.stockCalc.AggregateByCategory(ingredients)
	out := make([]CategorySummaryOutput, 0, len(summaries))
	for categoryID, s := range summaries {
		total, _ := s.TotalQuantity.Float64()
		out = append(out, CategorySummaryOutput{
			CategoryID:      categoryID.String(),
			TotalQuantity:   total,
			IngredientCount: s.IngredientCount,
		})
	}
	return out, nil
}

func (u *IngredientUsecase) TotalStock(ctx context.Context, userID model.UserID, unitID string) (TotalStockOutput, error) {
	id, err := model.ParseUnitID(unitID)
	if err != nil {
		return TotalStockOutput{}, toHTTPError(err)
	}
	ingredients, err := u.ingredientRepo.FindAll(ctx, userID)
	if err != nil {
		return TotalStockOutput{}, toHTTPError(err)
	}
	total, _ := u.stockCalc.CalculateTotalStock(ingredients, id).Float64()
	return TotalStockOutput{UnitID: id.String(), TotalQuantity: total}, nil
}

// ===== 内部ヘルパ =====

// commit後にだけ呼ぶこと。publishしたらバッファを空にする。
func (u *IngredientUsecase) publishEvents(ctx context.Context, ing *model.Ingredient) {
	events := ing.UncommittedEvents()
	if len(events) == 0 {
		return
	}
	// 配送失敗はバス側の責務。本体の操作は成功している。
	_ = u.eventBus.Publish(ctx, events)
	ing.MarkEventsCommitted()
}

func buildExpiryInfo(bestBefore, useBy *time.Time) (*model.ExpiryInfo, error) {
	if bestBefore == nil && useBy == nil {
		return nil, nil
	}
	e, err := model.NewExpiryInfo(bestBefore, useBy)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func toOutput(ing *model.Ingredient) IngredientOutput {
	stock := ing.Stock()

	out := IngredientOutput{
		ID:            ing.ID().String(),
		Name:          ing.Name().Value(),
		CategoryID:    ing.CategoryID().String(),
		PurchaseDate:  ing.PurchaseDate().Format("2006-01-02"),
		Quantity:      stock.Quantity().Float64(),
		UnitID:        stock.UnitID().String(),
		StorageType:   string(stock.StorageLocation().Type()),
		StorageDetail: stock.StorageLocation().Detail(),
		StorageLabel:  stock.StorageLocation().String(),
		IsExpired:     ing.IsExpired(),
		CreatedAt:     ing.CreatedAt().Format(time.RFC3339),
		UpdatedAt:     ing.UpdatedAt().Format(time.RFC3339),
	}
	if ing.Memo() != nil {
		v := ing.Memo().Value()
		out.Memo = &v
	}
	if ing.Price() != nil {
		v := ing.Price().Float64()
		out.Price = &v
	}
	if stock.Threshold() != nil {
		v := stock.Threshold().Float64()
		out.Threshold = &v
	}
	if info := stock.ExpiryInfo(); info != nil {
		if d := info.BestBeforeDate(); d != nil {
			s := d.Format("2006-01-02")
			out.BestBeforeDate = &s
		}
		if d := info.UseByDate(); d != nil {
			s := d.Format("2006-01-02")
			out.UseByDate = &s
		}
		out.DaysUntilExpiry = info.DaysUntilExpiry()
	}
	return out
}

func toStockOutput(ing *model.Ingredient) StockOutput {
	return StockOutput{
		ID:       ing.ID().String(),
		Quantity: ing.Stock().Quantity().Float64(),
		UnitID:   ing.Stock().UnitID().String(),
	}
}

func toListOutput(ingredients []*model.Ingredient) IngredientListOutput {
	items := make([]IngredientOutput, 0, len(ingredients))
	for _, ing := range ingredients {
		items = append(items, toOutput(ing))
	}
	return IngredientListOutput{Items: items, Total: len(items)}
}
