package repository

import (
	"context"

	"gorm.io/gorm"

	repo "app/internal/repository"
)

type txReposGorm struct {
	ingredients repo.IngredientRepository
	categories  repo.CategoryRepository
	units       repo.UnitRepository
}

func (r *txReposGorm) Ingredients() repo.IngredientRepository { return r.ingredients }
func (r *txReposGorm) Categories() repo.CategoryRepository    { return r.categories }
func (r *txReposGorm) Units() repo.UnitRepository             { return r.units }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			ingredients: NewIngredientGormRepository(tx),
			categories:  NewCategoryGormRepository(tx),
			units:       NewUnitGormRepository(tx),
		}
		return fn(r)
	})
}
