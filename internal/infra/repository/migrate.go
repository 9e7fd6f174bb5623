package repository

import (
	"gorm.io/gorm"

	"app/internal/domain/model"
)

// AutoMigrateはテーブルを作成する。
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ingredientRecord{},
		&categoryRecord{},
		&unitRecord{},
	)
}

// SeedReferenceDataはカテゴリと単位が空のとき初期データを入れる。
func SeedReferenceData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&categoryRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		names := []string{"野菜", "肉", "魚介", "乳製品", "調味料", "飲料", "その他"}
		for i, name := range names {
			rec := categoryRecord{
				ID:           model.NewCategoryID().String(),
				Name:         name,
				DisplayOrder: i + 1,
				IsActive:     true,
			}
			if err := db.Create(&rec).Error; err != nil {
				return err
			}
		}
	}

	if err := db.Model(&unitRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		units := []struct {
			name   string
			symbol string
		}{
			{"個", "個"},
			{"グラム", "g"},
			{"キログラム", "kg"},
			{"ミリリットル", "ml"},
			{"リットル", "L"},
			{"本", "本"},
			{"パック", "パック"},
		}
		for i, u := range units {
			rec := unitRecord{
				ID:           model.NewUnitID().String(),
				Name:         u.name,
				Symbol:       u.symbol,
				DisplayOrder: i + 1,
				IsActive:     true,
			}
			if err := db.Create(&rec).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
