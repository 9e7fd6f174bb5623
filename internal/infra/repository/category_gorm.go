package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type categoryRecord struct {
	ID           string `gorm:"type:varchar(40);primaryKey"`
	Name         string `gorm:"type:varchar(50);not null"`
	DisplayOrder int    `gorm:"not null;default:0"`
	IsActive     bool   `gorm:"not null;default:true"`
}

func (categoryRecord) TableName() string { return "categories" }

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id model.CategoryID) (model.Category, error) {
	var rec categoryRecord
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return toCategory(rec), nil
}

func (r *CategoryGormRepository) FindAllActive(ctx context.Context) ([]model.Category, error) {
	var recs []categoryRecord
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	categories := make([]model.Category, 0, len(recs))
	for _, rec := range recs {
		categories = append(categories, toCategory(rec))
	}
	return categories, nil
}

func toCategory(rec categoryRecord) model.Category {
	return model.Category{
		ID:           model.CategoryID(rec.ID),
		Name:         rec.Name,
		DisplayOrder: rec.DisplayOrder,
		IsActive:     rec.IsActive,
	}
}
