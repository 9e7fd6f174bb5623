package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// Quantityは在庫数量。0以上。
// 消費・補充の引数としても使う（その場合は正の値であること）。
type Quantity struct {
	value decimal.Decimal
}

func NewQuantity(value decimal.Decimal) (Quantity, error) {
	if value.IsNegative() {
		return Quantity{}, NewValidationError("数量は0以上でなければなりません")
	}
	return Quantity{value: value}, nil
}

func NewQuantityFromFloat(value float64) (Quantity, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Quantity{}, NewValidationError("数量が不正です")
	}
	return NewQuantity(decimal.NewFromFloat(value))
}

func ZeroQuantity() Quantity {
	return Quantity{value: decimal.Zero}
}

func (q Quantity) Value() decimal.Decimal { return q.value }

func (q Quantity) Float64() float64 {
	f, _ := q.value.Float64()
	return f
}

func (q Quantity) IsZero() bool { return q.value.IsZero() }

func (q Quantity) IsPositive() bool { return q.value.IsPositive() }

func (q Quantity) Equals(other Quantity) bool {
	return q.value.Equal(other.value)
}

func (q Quantity) LessThanOrEqual(other Quantity) bool {
	return q.value.LessThanOrEqual(other.value)
}

func (q Quantity) GreaterThanOrEqual(other Quantity) bool {
	return q.value.GreaterThanOrEqual(other.value)
}

func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value.Add(other.value)}
}

// Subtractは共通の数量減算。結果が負になる場合はInsufficientStockError。
// 集約のConsumeも在庫エンティティのConsumeもこの一本を通る。
func (q Quantity) Subtract(amount Quantity) (Quantity, error) {
	if amount.value.GreaterThan(q.value) {
		return Quantity{}, &InsufficientStockError{Requested: amount, Available: q}
	}
	return Quantity{value: q.value.Sub(amount.value)}, nil
}

func (q Quantity) String() string { return q.value.String() }
