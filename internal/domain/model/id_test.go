package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/internal/domain/model"
)

func TestNewIngredientID_HasPrefix(t *testing.T) {
	id := model.NewIngredientID()
	assert.True(t, strings.HasPrefix(id.String(), "ing_"))
	assert.Greater(t, len(id.String()), len("ing_"))
}

func TestNewIDs_AreUnique(t *testing.T) {
	a := model.NewIngredientID()
	b := model.NewIngredientID()
	assert.NotEqual(t, a, b)
}

func TestParseIngredientID(t *testing.T) {
	id, err := model.ParseIngredientID("ing_abc123")
	require.NoError(t, err)
	assert.Equal(t, "ing_abc123", id.String())
}

func TestParseIngredientID_Malformed(t *testing.T) {
	cases := []string{"", "ing_", "cat_abc123", "abc123"}
	for _, v := range cases {
		_, err := model.ParseIngredientID(v)
		assert.EqualError(t, err, "食材IDの形式が不正です", v)
	}
}

func TestParseOtherIDs(t *testing.T) {
	_, err := model.ParseCategoryID("cat_xyz")
	assert.NoError(t, err)
	_, err = model.ParseUnitID("unt_xyz")
	assert.NoError(t, err)
	_, err = model.ParseUserID("usr_xyz")
	assert.NoError(t, err)

	_, err = model.ParseCategoryID("unt_xyz")
	assert.Error(t, err)
	_, err = model.ParseUserID("ing_xyz")
	assert.Error(t, err)
}
