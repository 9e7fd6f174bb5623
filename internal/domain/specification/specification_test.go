package specification_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/internal/domain/model"
	"app/internal/domain/specification"
)

func newIngredient(t *testing.T, quantity float64, bestBefore *time.Time) *model.Ingredient {
	t.Helper()

	name, err := model.NewIngredientName("トマト")
	require.NoError(t, err)
	location, err := model.NewStorageLocation(model.StorageTypeRefrigerated, "")
	require.NoError(t, err)
	q, err := model.NewQuantityFromFloat(quantity)
	require.NoError(t, err)

	params := model.NewIngredientParams{
		UserID:          "usr_owner",
		Name:            name,
		CategoryID:      "cat_vegetable",
		PurchaseDate:    time.Now(),
		Quantity:        q,
		UnitID:          "unt_piece",
		StorageLocation: location,
	}
	if bestBefore != nil {
		expiry, err := model.NewExpiryInfo(bestBefore, nil)
		require.NoError(t, err)
		params.ExpiryInfo = &expiry
	}

	ing, err := model.NewIngredient(params)
	require.NoError(t, err)
	return ing
}

func TestLowStockSpecification(t *testing.T) {
	spec, err := specification.NewLowStockSpecification(decimal.NewFromInt(5))
	require.NoError(t, err)

	//閾値ちょうどは低在庫
	assert.True(t, spec.IsSatisfiedBy(newIngredient(t, 5, nil)))
	assert.True(t, spec.IsSatisfiedBy(newIngredient(t, 3, nil)))
	assert.True(t, spec.IsSatisfiedBy(newIngredient(t, 0, nil)))
	assert.False(t, spec.IsSatisfiedBy(newIngredient(t, 6, nil)))
}

func TestLowStockSpecification_NegativeThreshold(t *testing.T) {
	_, err := specification.NewLowStockSpecification(decimal.NewFromInt(-1))
	assert.EqualError(t, err, "閾値は0以上でなければなりません")
}

func TestOutOfStockSpecification(t *testing.T) {
	outOfStock := specification.NewOutOfStockSpecification()
	lowAtZero, err := specification.NewLowStockSpecification(decimal.Zero)
	require.NoError(t, err)

	for _, quantity := range []float64{0, 0.5, 10} {
		ing := newIngredient(t, quantity, nil)
		//在庫切れは閾値0の低在庫と一致する
		assert.Equal(t, lowAtZero.IsSatisfiedBy(ing), outOfStock.IsSatisfiedBy(ing))
	}
	assert.True(t, outOfStock.IsSatisfiedBy(newIngredient(t, 0, nil)))
	assert.False(t, outOfStock.IsSatisfiedBy(newIngredient(t, 0.5, nil)))
}

func TestExpiringSoonSpecification(t *testing.T) {
	spec, err := specification.NewExpiringSoonSpecification(3)
	require.NoError(t, err)

	in2Days := time.Now().AddDate(0, 0, 2)
	in3Days := time.Now().AddDate(0, 0, 3)
	in4Days := time.Now().AddDate(0, 0, 4)
	yesterday := time.Now().AddDate(0, 0, -1)

	assert.True(t, spec.IsSatisfiedBy(newIngredient(t, 1, &in2Days)))
	assert.True(t, spec.IsSatisfiedBy(newIngredient(t, 1, &in3Days)))
	assert.False(t, spec.IsSatisfiedBy(newIngredient(t, 1, &in4Days)))
	//期限切れ済みも「間近」に含む
	assert.True(t, spec.IsSatisfiedBy(newIngredient(t, 1, &yesterday)))
	//期限情報なしは対象外
	assert.False(t, spec.IsSatisfiedBy(newIngredient(t, 1, nil)))
}

func TestExpiringSoonSpecification_ZeroDays(t *testing.T) {
	spec, err := specification.NewExpiringSoonSpecification(0)
	require.NoError(t, err)

	//当日は時刻に関係なく「今日切れる」
	endOfToday := time.Date(
		time.Now().Year(), time.Now().Month(), time.Now().Day(),
		23, 59, 59, 0, time.Local,
	)
	assert.True(t, spec.IsSatisfiedBy(newIngredient(t, 1, &endOfToday)))

	tomorrow := time.Now().AddDate(0, 0, 1)
	assert.False(t, spec.IsSatisfiedBy(newIngredient(t, 1, &tomorrow)))
}

func TestExpiringSoonSpecification_NegativeDays(t *testing.T) {
	_, err := specification.NewExpiringSoonSpecification(-1)
	assert.EqualError(t, err, "日数は0以上でなければなりません")
}

func TestSpecification_AndOr(t *testing.T) {
	lowStock, err := specification.NewLowStockSpecification(decimal.NewFromInt(5))
	require.NoError(t, err)
	expiringSoon, err := specification.NewExpiringSoonSpecification(3)
	require.NoError(t, err)

	tomorrow := time.Now().AddDate(0, 0, 1)
	nextMonth := time.Now().AddDate(0, 1, 0)

	lowAndSoon := newIngredient(t, 2, &tomorrow)
	lowOnly := newIngredient(t, 2, &nextMonth)
	soonOnly := newIngredient(t, 20, &tomorrow)
	neither := newIngredient(t, 20, &nextMonth)

	and := specification.And(lowStock, expiringSoon)
	assert.True(t, and.IsSatisfiedBy(lowAndSoon))
	assert.False(t, and.IsSatisfiedBy(lowOnly))
	assert.False(t, and.IsSatisfiedBy(soonOnly))

	or := specification.Or(lowStock, expiringSoon)
	assert.True(t, or.IsSatisfiedBy(lowAndSoon))
	assert.True(t, or.IsSatisfiedBy(lowOnly))
	assert.True(t, or.IsSatisfiedBy(soonOnly))
	assert.False(t, or.IsSatisfiedBy(neither))
}
