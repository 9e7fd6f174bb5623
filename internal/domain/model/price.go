package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// maxPriceは価格の上限（9,999,999.99円）
var maxPrice = decimal.RequireFromString("9999999.99")

// Priceは価格。0以上・上限以下・小数2桁まで。
type Price struct {
	value decimal.Decimal
}

func NewPrice(value decimal.Decimal) (Price, error) {
	if value.IsNegative() {
		return Price{}, NewValidationError("価格は0以上で入力してください")
	}
	if value.GreaterThan(maxPrice) {
		return Price{}, NewValidationError("価格は9,999,999.99以下で入力してください")
	}
	if !value.Round(2).Equal(value) {
		return Price{}, NewValidationError("価格は小数点以下2桁までで入力してください")
	}
	return Price{value: value}, nil
}

func NewPriceFromFloat(value float64) (Price, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Price{}, NewValidationError("価格が不正です")
	}
	return NewPrice(decimal.NewFromFloat(value))
}

func (p Price) Value() decimal.Decimal { return p.value }

func (p Price) Float64() float64 {
	f, _ := p.value.Float64()
	return f
}

func (p Price) Equals(other Price) bool {
	return p.value.Equal(other.value)
}

func (p Price) String() string { return p.value.String() }
