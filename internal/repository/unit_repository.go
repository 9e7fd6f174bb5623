package repository

import (
	"context"

	"app/internal/domain/model"
)

// 単位の参照だけを約束。
type UnitRepository interface {
	FindByID(ctx context.Context, id model.UnitID) (model.Unit, error)
	FindAllActive(ctx context.Context) ([]model.Unit, error)
}
