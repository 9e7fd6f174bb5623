package model

import (
	"strings"
	"unicode/utf8"
)

const ingredientNameMaxLength = 50

// IngredientNameは食材名。必須・50文字以内。
type IngredientName struct {
	value string
}

func NewIngredientName(value string) (IngredientName, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return IngredientName{}, NewValidationError("食材名は必須です")
	}
	if utf8.RuneCountInString(v) > ingredientNameMaxLength {
		return IngredientName{}, NewValidationError("食材名は50文字以内で入力してください")
	}
	return IngredientName{value: v}, nil
}

func (n IngredientName) Value() string { return n.value }

func (n IngredientName) Equals(other IngredientName) bool {
	return n.value == other.value
}

func (n IngredientName) String() string { return n.value }
