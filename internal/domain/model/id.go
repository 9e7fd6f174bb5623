package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// IDはすべて「短いASCIIプレフィックス + ランダムトークン」の形式。
// ing_xxx / cat_xxx / unt_xxx / usr_xxx
const (
	ingredientIDPrefix = "ing_"
	categoryIDPrefix   = "cat_"
	unitIDPrefix       = "unt_"
	userIDPrefix       = "usr_"
)

type IngredientID string

type CategoryID string

type UnitID string

type UserID string

func newIDToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func parseID(prefix, value, label string) (string, error) {
	if !strings.HasPrefix(value, prefix) || len(value) == len(prefix) {
		return "", NewValidationError(fmt.Sprintf("%sの形式が不正です", label))
	}
	return value, nil
}

func NewIngredientID() IngredientID {
	return IngredientID(ingredientIDPrefix + newIDToken())
}

func ParseIngredientID(value string) (IngredientID, error) {
	v, err := parseID(ingredientIDPrefix, value, "食材ID")
	if err != nil {
		return "", err
	}
	return IngredientID(v), nil
}

func (id IngredientID) String() string { return string(id) }

func NewCategoryID() CategoryID {
	return CategoryID(categoryIDPrefix + newIDToken())
}

func ParseCategoryID(value string) (CategoryID, error) {
	v, err := parseID(categoryIDPrefix, value, "カテゴリID")
	if err != nil {
		return "", err
	}
	return CategoryID(v), nil
}

func (id CategoryID) String() string { return string(id) }

func NewUnitID() UnitID {
	return UnitID(unitIDPrefix + newIDToken())
}

func ParseUnitID(value string) (UnitID, error) {
	v, err := parseID(unitIDPrefix, value, "単位ID")
	if err != nil {
		return "", err
	}
	return UnitID(v), nil
}

func (id UnitID) String() string { return string(id) }

func NewUserID() UserID {
	return UserID(userIDPrefix + newIDToken())
}

func ParseUserID(value string) (UserID, error) {
	v, err := parseID(userIDPrefix, value, "ユーザーID")
	if err != nil {
		return "", err
	}
	return UserID(v), nil
}

func (id UserID) String() string { return string(id) }
