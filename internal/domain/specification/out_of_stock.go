package specification

import "app/internal/domain/model"

// OutOfStockSpecificationは「在庫がちょうど0」。許容誤差なし。
type OutOfStockSpecification struct{}

func NewOutOfStockSpecification() *OutOfStockSpecification {
	return &OutOfStockSpecification{}
}

func (s *OutOfStockSpecification) IsSatisfiedBy(ingredient *model.Ingredient) bool {
	return ingredient.Stock().Quantity().IsZero()
}
