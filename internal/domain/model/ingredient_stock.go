package model

import "time"

// IngredientStockは1ロット分の在庫。食材集約に1つだけ属する。
// 親の削除フラグとは独立に、在庫単体の削除・無効化を持つ。
type IngredientStock struct {
	quantity        Quantity
	unitID          UnitID
	storageLocation StorageLocation
	threshold       *Quantity
	expiryInfo      *ExpiryInfo
	isActive        bool
	deletedAt       *time.Time
	createdBy       UserID
	updatedBy       UserID
}

type NewIngredientStockParams struct {
	Quantity        Quantity
	UnitID          UnitID
	StorageLocation StorageLocation
	Threshold       *Quantity
	ExpiryInfo      *ExpiryInfo
	CreatedBy       UserID
}

func NewIngredientStock(p NewIngredientStockParams) IngredientStock {
	return IngredientStock{
		quantity:        p.Quantity,
		unitID:          p.UnitID,
		storageLocation: p.StorageLocation,
		threshold:       p.Threshold,
		expiryInfo:      p.ExpiryInfo,
		isActive:        true,
		createdBy:       p.CreatedBy,
		updatedBy:       p.CreatedBy,
	}
}

// ReconstructIngredientStockは永続化層からの復元用。バリデーションしない。
func ReconstructIngredientStock(
	quantity Quantity,
	unitID UnitID,
	storageLocation StorageLocation,
	threshold *Quantity,
	expiryInfo *ExpiryInfo,
	isActive bool,
	deletedAt *time.Time,
	createdBy, updatedBy UserID,
) IngredientStock {
	return IngredientStock{
		quantity:        quantity,
		unitID:          unitID,
		storageLocation: storageLocation,
		threshold:       threshold,
		expiryInfo:      expiryInfo,
		isActive:        isActive,
		deletedAt:       deletedAt,
		createdBy:       createdBy,
		updatedBy:       updatedBy,
	}
}

func (s *IngredientStock) Quantity() Quantity { return s.quantity }

func (s *IngredientStock) UnitID() UnitID { return s.unitID }

func (s *IngredientStock) StorageLocation() StorageLocation { return s.storageLocation }

func (s *IngredientStock) Threshold() *Quantity { return s.threshold }

func (s *IngredientStock) ExpiryInfo() *ExpiryInfo { return s.expiryInfo }

func (s *IngredientStock) IsActive() bool { return s.isActive }

func (s *IngredientStock) DeletedAt() *time.Time { return s.deletedAt }

func (s *IngredientStock) IsDeleted() bool { return s.deletedAt != nil }

func (s *IngredientStock) CreatedBy() UserID { return s.createdBy }

func (s *IngredientStock) UpdatedBy() UserID { return s.updatedBy }

// 削除済み・無効化済みの在庫は一切変更できない。
func (s *IngredientStock) ensureOperational() error {
	if s.deletedAt != nil || !s.isActive {
		return NewStateError("無効な在庫です")
	}
	return nil
}

func (s *IngredientStock) touch(actor UserID) {
	if actor != "" {
		s.updatedBy = actor
	}
}

// Consumeは在庫を減らす。不足時はInsufficientStockError。
func (s *IngredientStock) Consume(amount Quantity, actor UserID) error {
	if err := s.ensureOperational(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return NewValidationError("数量は正の値でなければなりません")
	}
	remaining, err := s.quantity.Subtract(amount)
	if err != nil {
		return err
	}
	s.quantity = remaining
	s.touch(actor)
	return nil
}

// Addは在庫を増やす。
func (s *IngredientStock) Add(amount Quantity, actor UserID) error {
	if err := s.ensureOperational(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return NewValidationError("数量は正の値でなければなりません")
	}
	s.quantity = s.quantity.Add(amount)
	s.touch(actor)
	return nil
}

func (s *IngredientStock) UpdateStorageLocation(location StorageLocation, actor UserID) error {
	if err := s.ensureOperational(); err != nil {
		return err
	}
	s.storageLocation = location
	s.touch(actor)
	return nil
}

func (s *IngredientStock) UpdateThreshold(threshold *Quantity, actor UserID) error {
	if err := s.ensureOperational(); err != nil {
		return err
	}
	s.threshold = threshold
	s.touch(actor)
	return nil
}

// Deleteは在庫の論理削除。二重削除は不可。
func (s *IngredientStock) Delete(actor UserID) error {
	if s.deletedAt != nil {
		return NewStateError("すでに削除されています")
	}
	now := time.Now()
	s.deletedAt = &now
	s.isActive = false
	s.touch(actor)
	return nil
}

// Deactivateは削除せず無効化だけする。削除済み在庫には使えない。
func (s *IngredientStock) Deactivate(actor UserID) error {
	if s.deletedAt != nil {
		return NewStateError("削除済みの在庫です")
	}
	s.isActive = false
	s.touch(actor)
	return nil
}

func (s *IngredientStock) IsExpired() bool {
	if s.expiryInfo == nil {
		return false
	}
	return s.expiryInfo.IsExpired()
}

func (s *IngredientStock) DaysUntilExpiry() *int {
	if s.expiryInfo == nil {
		return nil
	}
	return s.expiryInfo.DaysUntilExpiry()
}
