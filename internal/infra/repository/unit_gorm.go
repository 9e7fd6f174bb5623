package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type unitRecord struct {
	ID           string `gorm:"type:varchar(40);primaryKey"`
	Name         string `gorm:"type:varchar(50);not null"`
	Symbol       string `gorm:"type:varchar(20);not null"`
	DisplayOrder int    `gorm:"not null;default:0"`
	IsActive     bool   `gorm:"not null;default:true"`
}

func (unitRecord) TableName() string { return "units" }

type UnitGormRepository struct {
	db *gorm.DB
}

func NewUnitGormRepository(db *gorm.DB) *UnitGormRepository {
	return &UnitGormRepository{db: db}
}

func (r *UnitGormRepository) FindByID(ctx context.Context, id model.UnitID) (model.Unit, error) {
	var rec unitRecord
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Unit{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Unit{}, err
	}
	return toUnit(rec), nil
}

func (r *UnitGormRepository) FindAllActive(ctx context.Context) ([]model.Unit, error) {
	var recs []unitRecord
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	units := make([]model.Unit, 0, len(recs))
	for _, rec := range recs {
		units = append(units, toUnit(rec))
	}
	return units, nil
}

func toUnit(rec unitRecord) model.Unit {
	return model.Unit{
		ID:           model.UnitID(rec.ID),
		Name:         rec.Name,
		Symbol:       rec.Symbol,
		DisplayOrder: rec.DisplayOrder,
		IsActive:     rec.IsActive,
	}
}
