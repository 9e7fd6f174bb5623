package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/internal/domain/model"
)

func TestNewQuantity_Negative(t *testing.T) {
	_, err := model.NewQuantity(decimal.RequireFromString("-1"))
	assert.EqualError(t, err, "数量は0以上でなければなりません")
}

func TestNewQuantity_ZeroIsValid(t *testing.T) {
	q, err := model.NewQuantity(decimal.Zero)
	assert.NoError(t, err)
	assert.True(t, q.IsZero())
}

func TestQuantity_Subtract(t *testing.T) {
	q, _ := model.NewQuantityFromFloat(10)
	amount, _ := model.NewQuantityFromFloat(3)

	remaining, err := q.Subtract(amount)
	require.NoError(t, err)
	assert.Equal(t, "7", remaining.String())
}

func TestQuantity_Subtract_Insufficient(t *testing.T) {
	q, _ := model.NewQuantityFromFloat(5)
	amount, _ := model.NewQuantityFromFloat(6)

	_, err := q.Subtract(amount)
	assert.EqualError(t, err, "在庫が不足しています")

	//業務ルール違反として分類される
	assert.Equal(t, model.ErrKindBusinessRule, model.KindOf(err))
}

func TestQuantity_Subtract_ExactlyAll(t *testing.T) {
	q, _ := model.NewQuantityFromFloat(5)
	amount, _ := model.NewQuantityFromFloat(5)

	remaining, err := q.Subtract(amount)
	require.NoError(t, err)
	assert.True(t, remaining.IsZero())
}

func TestQuantity_Add(t *testing.T) {
	q, _ := model.NewQuantityFromFloat(1.5)
	amount, _ := model.NewQuantityFromFloat(0.5)
	assert.Equal(t, "2", q.Add(amount).String())
}
