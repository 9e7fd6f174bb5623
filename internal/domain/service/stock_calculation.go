package service

import (
	"github.com/shopspring/decimal"

	"app/internal/domain/model"
)

// StockCalculationServiceは在庫量に関する計算。ステートレス。
type StockCalculationService struct{}

func NewStockCalculationService() *StockCalculationService {
	return &StockCalculationService{}
}

// StockRequirementは必要量の指定（レシピの材料など）。
type StockRequirement struct {
	IngredientID model.IngredientID
	Quantity     model.Quantity
}

// CategoryStockSummaryはカテゴリごとの集計。
type CategoryStockSummary struct {
	TotalQuantity   decimal.Decimal `json:"total_quantity"`
	IngredientCount int             `json:"ingredient_count"`
}

func (s *StockCalculationService) HasEnoughStock(ingredient *model.Ingredient, required model.Quantity) bool {
	return ingredient.Stock().Quantity().GreaterThanOrEqual(required)
}

// CheckMultipleStocksはID→充足のマップを返す。
// ingredientsに無いIDはfalse。
func (s *StockCalculationService) CheckMultipleStocks(
	ingredients []*model.Ingredient,
	requirements []StockRequirement,
) map[model.IngredientID]bool {
	byID := indexByID(ingredients)
	result := make(map[model.IngredientID]bool, len(requirements))
	for _, req := range requirements {
		ing, ok := byID[req.IngredientID]
		result[req.IngredientID] = ok && s.HasEnoughStock(ing, req.Quantity)
	}
	return result
}

// GetInsufficientIngredientsは必要量を満たさない食材だけを返す。
func (s *StockCalculationService) GetInsufficientIngredients(
	ingredients []*model.Ingredient,
	requirements []StockRequirement,
) []*model.Ingredient {
	byID := indexByID(ingredients)
	var insufficient []*model.Ingredient
	for _, req := range requirements {
		ing, ok := byID[req.IngredientID]
		if !ok {
			continue
		}
		if !s.HasEnoughStock(ing, req.Quantity) {
			insufficient = append(insufficient, ing)
		}
	}
	return insufficient
}

// AggregateByCategoryは削除済みを除いてカテゴリごとに集計する。
func (s *StockCalculationService) AggregateByCategory(
	ingredients []*model.Ingredient,
) map[model.CategoryID]CategoryStockSummary {
	result := map[model.CategoryID]CategoryStockSummary{}
	for _, ing := range ingredients {
		if ing.IsDeleted() {
			continue
		}
		summary := result[ing.CategoryID()]
		summary.TotalQuantity = summary.TotalQuantity.Add(ing.Stock().Quantity().Value())
		summary.IngredientCount++
		result[ing.CategoryID()] = summary
	}
	return result
}

// CalculateTotalStockは指定単位の在庫だけを合計する。
// 単位換算はしない。別単位（換算可能でも）は黙って除外する。
func (s *StockCalculationService) CalculateTotalStock(
	ingredients []*model.Ingredient,
	unitID model.UnitID,
) decimal.Decimal {
	total := decimal.Zero
	for _, ing := range ingredients {
		if ing.IsDeleted() {
			continue
		}
		if ing.Stock().UnitID() != unitID {
			continue
		}
		total = total.Add(ing.Stock().Quantity().Value())
	}
	return total
}

func indexByID(ingredients []*model.Ingredient) map[model.IngredientID]*model.Ingredient {
	byID := make(map[model.IngredientID]*model.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID()] = ing
	}
	return byID
}
