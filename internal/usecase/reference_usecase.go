package usecase

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// ReferenceCacheはカテゴリ・単位のキャッシュの約束。nil実装なしで省略可能にする。
type ReferenceCache interface {
	GetCategories(ctx context.Context) ([]model.Category, bool, error)
	SetCategories(ctx context.Context, categories []model.Category) error
	GetUnits(ctx context.Context) ([]model.Unit, bool, error)
	SetUnits(ctx context.Context, units []model.Unit) error
}

// ReferenceUsecaseはカテゴリ・単位の参照。cache-aside。
type ReferenceUsecase struct {
	categoryRepo repo.CategoryRepository
	unitRepo     repo.UnitRepository
	cache        ReferenceCache // nilならキャッシュなし
}

// DI
func NewReferenceUsecase(
	categoryRepo repo.CategoryRepository,
	unitRepo repo.UnitRepository,
	cache ReferenceCache,
) *ReferenceUsecase {
	return &ReferenceUsecase{
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		cache:        cache,
	}
}

func (u *ReferenceUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	if u.cache != nil {
		if categories, ok, err := u.cache.GetCategories(ctx); err == nil && ok {
			return categories, nil
		}
	}
	categories, err := u.categoryRepo.FindAllActive(ctx)
	if err != nil {
		return nil, toHTTPError(err)
	}
	if u.cache != nil {
		// キャッシュ書き込みの失敗は無視してよい
		_ = u.cache.SetCategories(ctx, categories)
	}
	return categories, nil
}

func (u *ReferenceUsecase) ListUnits(ctx context.Context) ([]model.Unit, error) {
	if u.cache != nil {
		if units, ok, err := u.cache.GetUnits(ctx); err == nil && ok {
			return units, nil
		}
	}
	units, err := u.unitRepo.FindAllActive(ctx)
	if err != nil {
		return nil, toHTTPError(err)
	}
	if u.cache != nil {
		_ = u.cache.SetUnits(ctx, units)
	}
	return units, nil
}
