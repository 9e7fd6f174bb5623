package specification

import (
	"github.com/shopspring/decimal"

	"app/internal/domain/model"
)

// LowStockSpecificationは「在庫が閾値以下」。
type LowStockSpecification struct {
	threshold decimal.Decimal
}

func NewLowStockSpecification(threshold decimal.Decimal) (*LowStockSpecification, error) {
	if threshold.IsNegative() {
		return nil, model.NewValidationError("閾値は0以上でなければなりません")
	}
	return &LowStockSpecification{threshold: threshold}, nil
}

func (s *LowStockSpecification) IsSatisfiedBy(ingredient *model.Ingredient) bool {
	return ingredient.Stock().Quantity().Value().LessThanOrEqual(s.threshold)
}
