package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// ingredientRecordは食材集約の永続化表現。
// 在庫は1対1の合成なので同じ行に持つ。
type ingredientRecord struct {
	ID             string           `gorm:"type:varchar(40);primaryKey"`
	UserID         string           `gorm:"type:varchar(40);not null;index"`
	Name           string           `gorm:"type:varchar(50);not null"`
	CategoryID     string           `gorm:"type:varchar(40);not null;index"`
	Memo           *string          `gorm:"type:varchar(500)"`
	Price          *decimal.Decimal `gorm:"type:numeric(9,2)"`
	PurchaseDate   time.Time        `gorm:"not null"`
	BestBeforeDate *time.Time
	UseByDate      *time.Time
	Quantity       decimal.Decimal  `gorm:"type:numeric(12,3);not null"`
	UnitID         string           `gorm:"type:varchar(40);not null;index"`
	StorageType    string           `gorm:"type:varchar(20);not null;index"`
	StorageDetail  string           `gorm:"type:varchar(50);not null;default:''"`
	Threshold      *decimal.Decimal `gorm:"type:numeric(12,3)"`
	StockActive    bool             `gorm:"not null;default:true"`
	StockDeletedAt *time.Time
	StockCreatedBy string     `gorm:"type:varchar(40);not null"`
	StockUpdatedBy string     `gorm:"type:varchar(40);not null"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
	DeletedAt      *time.Time `gorm:"index"`
	CreatedBy      string     `gorm:"type:varchar(40);not null"`
	UpdatedBy      string     `gorm:"type:varchar(40);not null"`
}

func (ingredientRecord) TableName() string { return "ingredients" }

type IngredientGormRepository struct {
	db *gorm.DB
}

func NewIngredientGormRepository(db *gorm.DB) *IngredientGormRepository {
	return &IngredientGormRepository{db: db}
}

// 本人の・削除済みでない行だけを見る基本スコープ。
func (r *IngredientGormRepository) scoped(ctx context.Context, userID model.UserID) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Where("deleted_at IS NULL")
}

func (r *IngredientGormRepository) FindByID(ctx context.Context, userID model.UserID, id model.IngredientID) (*model.Ingredient, error) {
	var rec ingredientRecord
	err := r.scoped(ctx, userID).Where("id = ?", id.String()).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toIngredient(rec)
}

func (r *IngredientGormRepository) FindByName(ctx context.Context, userID model.UserID, name model.IngredientName) ([]*model.Ingredient, error) {
	var recs []ingredientRecord
	err := r.scoped(ctx, userID).Where("name = ?", name.Value()).Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toIngredients(recs)
}

func (r *IngredientGormRepository) FindAll(ctx context.Context, userID model.UserID) ([]*model.Ingredient, error) {
	var recs []ingredientRecord
	err := r.scoped(ctx, userID).Order("created_at DESC").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toIngredients(recs)
}

func (r *IngredientGormRepository) FindByUserID(ctx context.Context, userID model.UserID) ([]*model.Ingredient, error) {
	return r.FindAll(ctx, userID)
}

func (r *IngredientGormRepository) Save(ctx context.Context, ingredient *model.Ingredient) error {
	rec := toRecord(ingredient)
	return r.db.WithContext(ctx).Create(&rec).Error
}

func (r *IngredientGormRepository) Update(ctx context.Context, ingredient *model.Ingredient) error {
	rec := toRecord(ingredient)
	// 論理削除の書き込みもここを通るので、deleted_atでは絞らない
	res := r.db.WithContext(ctx).
		Model(&ingredientRecord{}).
		Where("id = ? AND user_id = ?", rec.ID, rec.UserID).
		Select("*").
		Omit("id", "user_id", "created_at", "created_by").
		Updates(&rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *IngredientGormRepository) duplicateScope(ctx context.Context, c repo.DuplicateCriteria) *gorm.DB {
	q := r.scoped(ctx, c.UserID).
		Where("name = ?", c.Name.Value()).
		Where("storage_type = ?", string(c.StorageLocation.Type())).
		Where("storage_detail = ?", c.StorageLocation.Detail())

	var bestBefore, useBy *time.Time
	if c.ExpiryInfo != nil {
		bestBefore = c.ExpiryInfo.BestBeforeDate()
		useBy = c.ExpiryInfo.UseByDate()
	}
	q = whereNullableDate(q, "best_before_date", bestBefore)
	q = whereNullableDate(q, "use_by_date", useBy)
	return q
}

func (r *IngredientGormRepository) FindDuplicates(ctx context.Context, c repo.DuplicateCriteria) ([]*model.Ingredient, error) {
	var recs []ingredientRecord
	if err := r.duplicateScope(ctx, c).Find(&recs).Error; err != nil {
		return nil, err
	}
	return toIngredients(recs)
}

func (r *IngredientGormRepository) ExistsByUserAndNameAndExpiryAndLocation(ctx context.Context, c repo.DuplicateCriteria) (bool, error) {
	var count int64
	if err := r.duplicateScope(ctx, c).Model(&ingredientRecord{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// 実効期限 = COALESCE(賞味期限, 消費期限)。
// 期限の比較は暦日ベース（specificationの述語と一致させること）。
const effectiveExpiry = "COALESCE(best_before_date, use_by_date)"

func (r *IngredientGormRepository) FindExpiringSoon(ctx context.Context, userID model.UserID, days int) ([]*model.Ingredient, error) {
	cutoff := startOfDay(time.Now()).AddDate(0, 0, days+1)
	var recs []ingredientRecord
	err := r.scoped(ctx, userID).
		Where(effectiveExpiry+" IS NOT NULL").
		Where(effectiveExpiry+" < ?", cutoff).
		Order(effectiveExpiry + " ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toIngredients(recs)
}

func (r *IngredientGormRepository) FindExpired(ctx context.Context, userID model.UserID) ([]*model.Ingredient, error) {
	today := startOfDay(time.Now())
	var recs []ingredientRecord
	err := r.scoped(ctx, userID).
		Where(effectiveExpiry+" IS NOT NULL").
		Where(effectiveExpiry+" < ?", today).
		Order(effectiveExpiry + " ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toIngredients(recs)
}

func (r *IngredientGormRepository) FindByCategory(ctx context.Context, userID model.UserID, categoryID model.CategoryID) ([]*model.Ingredient, error) {
	var recs []ingredientRecord
	err := r.scoped(ctx, userID).Where("category_id = ?", categoryID.String()).Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toIngredients(recs)
}

func (r *IngredientGormRepository) FindByStorageLocation(ctx context.Context, userID model.UserID, storageType model.StorageType) ([]*model.Ingredient, error) {
	var recs []ingredientRecord
	err := r.scoped(ctx, userID).Where("storage_type = ?", string(storageType)).Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toIngredients(recs)
}

func (r *IngredientGormRepository) FindOutOfStock(ctx context.Context, userID model.UserID) ([]*model.Ingredient, error) {
	var recs []ingredientRecord
	err := r.scoped(ctx, userID).Where("quantity = 0").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toIngredients(recs)
}

func (r *IngredientGormRepository) FindLowStock(ctx context.Context, userID model.UserID, threshold *decimal.Decimal) ([]*model.Ingredient, error) {
	q := r.scoped(ctx, userID)
	if threshold != nil {
		q = q.Where("quantity <= ?", *threshold)
	} else {
		// 引数なしのときは在庫ごとの閾値。閾値未設定は対象外。
		q = q.Where("threshold IS NOT NULL AND quantity <= threshold")
	}
	var recs []ingredientRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return toIngredients(recs)
}

func whereNullableDate(q *gorm.DB, column string, value *time.Time) *gorm.DB {
	if value == nil {
		return q.Where(column + " IS NULL")
	}
	day := startOfDay(*value)
	return q.Where(column+" >= ? AND "+column+" < ?", day, day.AddDate(0, 0, 1))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ===== 集約 ⇔ レコードの変換 =====

func toRecord(ing *model.Ingredient) ingredientRecord {
	stock := ing.Stock()

	var memo *string
	if ing.Memo() != nil {
		v := ing.Memo().Value()
		memo = &v
	}
	var price *decimal.Decimal
	if ing.Price() != nil {
		v := ing.Price().Value()
		price = &v
	}
	var bestBefore, useBy *time.Time
	if info := stock.ExpiryInfo(); info != nil {
		bestBefore = info.BestBeforeDate()
		useBy = info.UseByDate()
	}
	var threshold *decimal.Decimal
	if stock.Threshold() != nil {
		v := stock.Threshold().Value()
		threshold = &v
	}

	return ingredientRecord{
		ID:             ing.ID().String(),
		UserID:         ing.UserID().String(),
		Name:           ing.Name().Value(),
		CategoryID:     ing.CategoryID().String(),
		Memo:           memo,
		Price:          price,
		PurchaseDate:   ing.PurchaseDate(),
		BestBeforeDate: bestBefore,
		UseByDate:      useBy,
		Quantity:       stock.Quantity().Value(),
		UnitID:         stock.UnitID().String(),
		StorageType:    string(stock.StorageLocation().Type()),
		StorageDetail:  stock.StorageLocation().Detail(),
		Threshold:      threshold,
		StockActive:    stock.IsActive(),
		StockDeletedAt: stock.DeletedAt(),
		StockCreatedBy: stock.CreatedBy().String(),
		StockUpdatedBy: stock.UpdatedBy().String(),
		CreatedAt:      ing.CreatedAt(),
		UpdatedAt:      ing.UpdatedAt(),
		DeletedAt:      ing.DeletedAt(),
		CreatedBy:      ing.CreatedBy().String(),
		UpdatedBy:      ing.UpdatedBy().String(),
	}
}

func toIngredient(rec ingredientRecord) (*model.Ingredient, error) {
	name, err := model.NewIngredientName(rec.Name)
	if err != nil {
		return nil, err
	}
	location, err := model.NewStorageLocation(model.StorageType(rec.StorageType), rec.StorageDetail)
	if err != nil {
		return nil, err
	}
	quantity, err := model.NewQuantity(rec.Quantity)
	if err != nil {
		return nil, err
	}

	var memo *model.Memo
	if rec.Memo != nil {
		m, err := model.NewMemo(*rec.Memo)
		if err != nil {
			return nil, err
		}
		memo = &m
	}
	var price *model.Price
	if rec.Price != nil {
		p, err := model.NewPrice(*rec.Price)
		if err != nil {
			return nil, err
		}
		price = &p
	}
	var expiry *model.ExpiryInfo
	if rec.BestBeforeDate != nil || rec.UseByDate != nil {
		e, err := model.NewExpiryInfo(rec.BestBeforeDate, rec.UseByDate)
		if err != nil {
			return nil, err
		}
		expiry = &e
	}
	var threshold *model.Quantity
	if rec.Threshold != nil {
		t, err := model.NewQuantity(*rec.Threshold)
		if err != nil {
			return nil, err
		}
		threshold = &t
	}

	stock := model.ReconstructIngredientStock(
		quantity,
		model.UnitID(rec.UnitID),
		location,
		threshold,
		expiry,
		rec.StockActive,
		rec.StockDeletedAt,
		model.UserID(rec.StockCreatedBy),
		model.UserID(rec.StockUpdatedBy),
	)

	return model.ReconstructIngredient(
		model.IngredientID(rec.ID),
		model.UserID(rec.UserID),
		name,
		model.CategoryID(rec.CategoryID),
		memo,
		price,
		rec.PurchaseDate,
		stock,
		rec.CreatedAt,
		rec.UpdatedAt,
		rec.DeletedAt,
		model.UserID(rec.CreatedBy),
		model.UserID(rec.UpdatedBy),
	), nil
}

func toIngredients(recs []ingredientRecord) ([]*model.Ingredient, error) {
	ingredients := make([]*model.Ingredient, 0, len(recs))
	for _, rec := range recs {
		ing, err := toIngredient(rec)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, nil
}
