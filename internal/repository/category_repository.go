package repository

import (
	"context"

	"app/internal/domain/model"
)

// カテゴリの参照だけを約束。コアは参照データを所有しない。
type CategoryRepository interface {
	FindByID(ctx context.Context, id model.CategoryID) (model.Category, error)
	FindAllActive(ctx context.Context) ([]model.Category, error)
}
