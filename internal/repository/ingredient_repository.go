package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 重複検索の条件。
type DuplicateCriteria struct {
	UserID          model.UserID
	Name            model.IngredientName
	ExpiryInfo      *model.ExpiryInfo
	StorageLocation model.StorageLocation
}

// 食材の永続化の約束。
// すべての読み書きはuserIDで絞り、論理削除済みは除外する。
// 他ユーザーの食材は「存在しない」のと同じ扱い（ErrNotFound）。
type IngredientRepository interface {
	FindByID(ctx context.Context, userID model.UserID, id model.IngredientID) (*model.Ingredient, error)
	FindByName(ctx context.Context, userID model.UserID, name model.IngredientName) ([]*model.Ingredient, error)
	FindAll(ctx context.Context, userID model.UserID) ([]*model.Ingredient, error)
	FindByUserID(ctx context.Context, userID model.UserID) ([]*model.Ingredient, error)

	Save(ctx context.Context, ingredient *model.Ingredient) error
	Update(ctx context.Context, ingredient *model.Ingredient) error

	FindDuplicates(ctx context.Context, criteria DuplicateCriteria) ([]*model.Ingredient, error)
	ExistsByUserAndNameAndExpiryAndLocation(ctx context.Context, criteria DuplicateCriteria) (bool, error)

	// 以下のクエリはdomain/specificationの述語と一致すること。
	FindExpiringSoon(ctx context.Context, userID model.UserID, days int) ([]*model.Ingredient, error)
	FindExpired(ctx context.Context, userID model.UserID) ([]*model.Ingredient, error)
	FindByCategory(ctx context.Context, userID model.UserID, categoryID model.CategoryID) ([]*model.Ingredient, error)
	FindByStorageLocation(ctx context.Context, userID model.UserID, storageType model.StorageType) ([]*model.Ingredient, error)
	FindOutOfStock(ctx context.Context, userID model.UserID) ([]*model.Ingredient, error)

	// thresholdがnilのときは各在庫自身の閾値を使う（閾値未設定の在庫は対象外）。
	FindLowStock(ctx context.Context, userID model.UserID, threshold *decimal.Decimal) ([]*model.Ingredient, error)
}
