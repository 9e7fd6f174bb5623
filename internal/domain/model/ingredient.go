package model

import "time"

// Ingredientは食材集約のルート。
// すべての変更は名前つきの操作を通り、1操作ごとにドメインイベントを積む。
type Ingredient struct {
	id           IngredientID
	userID       UserID
	name         IngredientName
	categoryID   CategoryID
	memo         *Memo
	price        *Price
	purchaseDate time.Time
	stock        IngredientStock
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
	createdBy    UserID
	updatedBy    UserID

	// commit待ちのイベントバッファ（挿入順）
	events []DomainEvent
}

type NewIngredientParams struct {
	UserID          UserID
	Name            IngredientName
	CategoryID      CategoryID
	Memo            *Memo
	Price           *Price
	PurchaseDate    time.Time
	Quantity        Quantity
	UnitID          UnitID
	StorageLocation StorageLocation
	Threshold       *Quantity
	ExpiryInfo      *ExpiryInfo
}

// NewIngredientは新規作成のファクトリ。IngredientCreatedを積む。
func NewIngredient(p NewIngredientParams) (*Ingredient, error) {
	if p.UserID == "" {
		return nil, NewValidationError("ユーザーIDは必須です")
	}
	if p.CategoryID == "" {
		return nil, NewValidationError("カテゴリIDは必須です")
	}
	if p.UnitID == "" {
		return nil, NewValidationError("単位IDは必須です")
	}

	now := time.Now()
	ing := &Ingredient{
		id:           NewIngredientID(),
		userID:       p.UserID,
		name:         p.Name,
		categoryID:   p.CategoryID,
		memo:         p.Memo,
		price:        p.Price,
		purchaseDate: p.PurchaseDate,
		stock: NewIngredientStock(NewIngredientStockParams{
			Quantity:        p.Quantity,
			UnitID:          p.UnitID,
			StorageLocation: p.StorageLocation,
			Threshold:       p.Threshold,
			ExpiryInfo:      p.ExpiryInfo,
			CreatedBy:       p.UserID,
		}),
		createdAt: now,
		updatedAt: now,
		createdBy: p.UserID,
		updatedBy: p.UserID,
	}

	ing.record(IngredientCreated{
		IngredientID:    ing.id,
		UserID:          ing.userID,
		IngredientName:  ing.name.Value(),
		CategoryID:      ing.categoryID,
		InitialQuantity: p.Quantity,
		UnitID:          p.UnitID,
	})
	return ing, nil
}

// ReconstructIngredientは永続化層からの復元用。イベントは積まない。
func ReconstructIngredient(
	id IngredientID,
	userID UserID,
	name IngredientName,
	categoryID CategoryID,
	memo *Memo,
	price *Price,
	purchaseDate time.Time,
	stock IngredientStock,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
	createdBy, updatedBy UserID,
) *Ingredient {
	return &Ingredient{
		id:           id,
		userID:       userID,
		name:         name,
		categoryID:   categoryID,
		memo:         memo,
		price:        price,
		purchaseDate: purchaseDate,
		stock:        stock,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		deletedAt:    deletedAt,
		createdBy:    createdBy,
		updatedBy:    updatedBy,
	}
}

func (i *Ingredient) ID() IngredientID { return i.id }

func (i *Ingredient) UserID() UserID { return i.userID }

func (i *Ingredient) Name() IngredientName { return i.name }

func (i *Ingredient) CategoryID() CategoryID { return i.categoryID }

func (i *Ingredient) Memo() *Memo { return i.memo }

func (i *Ingredient) Price() *Price { return i.price }

func (i *Ingredient) PurchaseDate() time.Time { return i.purchaseDate }

func (i *Ingredient) Stock() *IngredientStock { return &i.stock }

func (i *Ingredient) ExpiryInfo() *ExpiryInfo { return i.stock.expiryInfo }

func (i *Ingredient) CreatedAt() time.Time { return i.createdAt }

func (i *Ingredient) UpdatedAt() time.Time { return i.updatedAt }

func (i *Ingredient) DeletedAt() *time.Time { return i.deletedAt }

func (i *Ingredient) IsDeleted() bool { return i.deletedAt != nil }

func (i *Ingredient) CreatedBy() UserID { return i.createdBy }

func (i *Ingredient) UpdatedBy() UserID { return i.updatedBy }

// 削除済みチェックと所有者チェック。actorが空のときは所有者チェックを省略する
// （システム起動のバッチ経路など、呼び出し元が認可済みの場合）。
func (i *Ingredient) ensureMutable(actor UserID) error {
	if i.deletedAt != nil {
		return NewStateError("削除済みの食材です")
	}
	return i.ensureOwnedBy(actor)
}

func (i *Ingredient) ensureOwnedBy(actor UserID) error {
	if actor != "" && actor != i.userID {
		return NewAuthorizationError("この食材を操作する権限がありません")
	}
	return nil
}

func (i *Ingredient) record(e DomainEvent) {
	i.events = append(i.events, e)
}

func (i *Ingredient) touch(actor UserID) {
	i.updatedAt = time.Now()
	if actor != "" {
		i.updatedBy = actor
	}
}

// Consumeは在庫を消費する。在庫の状態に触れる前に不足を検査する。
func (i *Ingredient) Consume(amount Quantity, actor UserID) error {
	if err := i.ensureMutable(actor); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return NewValidationError("数量は正の値でなければなりません")
	}
	remaining, err := i.stock.quantity.Subtract(amount)
	if err != nil {
		return err
	}
	i.stock.quantity = remaining
	i.stock.touch(actor)
	i.touch(actor)

	i.record(StockConsumed{
		IngredientID:    i.id,
		UserID:          i.userID,
		ConsumedAmount:  amount,
		RemainingAmount: remaining,
		UnitID:          i.stock.unitID,
	})
	return nil
}

// Replenishは在庫を補充する。
func (i *Ingredient) Replenish(amount Quantity, actor UserID) error {
	if err := i.ensureMutable(actor); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return NewValidationError("数量は正の値でなければなりません")
	}
	previous := i.stock.quantity
	i.stock.quantity = previous.Add(amount)
	i.stock.touch(actor)
	i.touch(actor)

	i.record(StockReplenished{
		IngredientID:      i.id,
		UserID:            i.userID,
		ReplenishedAmount: amount,
		PreviousAmount:    previous,
		NewTotalAmount:    i.stock.quantity,
		UnitID:            i.stock.unitID,
	})
	return nil
}

func (i *Ingredient) UpdateName(name IngredientName, actor UserID) error {
	if err := i.ensureMutable(actor); err != nil {
		return err
	}
	changes := map[string]FieldChange{}
	i.applyName(name, changes)
	i.finishUpdate(actor, changes)
	return nil
}

func (i *Ingredient) UpdateCategory(categoryID CategoryID, actor UserID) error {
	if err := i.ensureMutable(actor); err != nil {
		return err
	}
	changes := map[string]FieldChange{}
	i.applyCategory(categoryID, changes)
	i.finishUpdate(actor, changes)
	return nil
}

func (i *Ingredient) UpdateMemo(memo *Memo, actor UserID) error {
	if err := i.ensureMutable(actor); err != nil {
		return err
	}
	changes := map[string]FieldChange{}
	i.applyMemo(memo, changes)
	i.finishUpdate(actor, changes)
	return nil
}

func (i *Ingredient) UpdatePrice(price *Price, actor UserID) error {
	if err := i.ensureMutable(actor); err != nil {
		return err
	}
	changes := map[string]FieldChange{}
	i.applyPrice(price, changes)
	i.finishUpdate(actor, changes)
	return nil
}

func (i *Ingredient) UpdateExpiryInfo(info *ExpiryInfo, actor UserID) error {
	if err := i.ensureMutable(actor); err != nil {
		return err
	}
	changes := map[string]FieldChange{}
	i.applyExpiryInfo(info, changes)
	i.finishUpdate(actor, changes)
	return nil
}

// UpdateIngredientParamsは複合更新の入力。nilのフィールドは変更しない。
// Clear系はnilへの明示的な変更。
type UpdateIngredientParams struct {
	Name        *IngredientName
	CategoryID  *CategoryID
	Memo        *Memo
	ClearMemo   bool
	Price       *Price
	ClearPrice  bool
	ExpiryInfo  *ExpiryInfo
	ClearExpiry bool
}

// Updateは複数フィールドをまとめて変更する。
// 何フィールド変わってもIngredientUpdatedは1回だけ、渡されたフィールドだけを報告する。
func (i *Ingredient) Update(p UpdateIngredientParams, actor UserID) error {
	if err := i.ensureMutable(actor); err != nil {
		return err
	}
	changes := map[string]FieldChange{}
	if p.Name != nil {
		i.applyName(*p.Name, changes)
	}
	if p.CategoryID != nil {
		i.applyCategory(*p.CategoryID, changes)
	}
	if p.Memo != nil || p.ClearMemo {
		i.applyMemo(p.Memo, changes)
	}
	if p.Price != nil || p.ClearPrice {
		i.applyPrice(p.Price, changes)
	}
	if p.ExpiryInfo != nil || p.ClearExpiry {
		i.applyExpiryInfo(p.ExpiryInfo, changes)
	}
	i.finishUpdate(actor, changes)
	return nil
}

func (i *Ingredient) applyName(name IngredientName, changes map[string]FieldChange) {
	changes["name"] = FieldChange{From: i.name.Value(), To: name.Value()}
	i.name = name
}

func (i *Ingredient) applyCategory(categoryID CategoryID, changes map[string]FieldChange) {
	changes["categoryId"] = FieldChange{From: i.categoryID.String(), To: categoryID.String()}
	i.categoryID = categoryID
}

func (i *Ingredient) applyMemo(memo *Memo, changes map[string]FieldChange) {
	from := ""
	if i.memo != nil {
		from = i.memo.Value()
	}
	to := ""
	if memo != nil {
		to = memo.Value()
	}
	changes["memo"] = FieldChange{From: from, To: to}
	i.memo = memo
}

func (i *Ingredient) applyPrice(price *Price, changes map[string]FieldChange) {
	from := ""
	if i.price != nil {
		from = i.price.String()
	}
	to := ""
	if price != nil {
		to = price.String()
	}
	changes["price"] = FieldChange{From: from, To: to}
	i.price = price
}

func (i *Ingredient) applyExpiryInfo(info *ExpiryInfo, changes map[string]FieldChange) {
	changes["expiryInfo"] = FieldChange{From: formatExpiry(i.stock.expiryInfo), To: formatExpiry(info)}
	i.stock.expiryInfo = info
}

func formatExpiry(info *ExpiryInfo) string {
	if info == nil {
		return ""
	}
	d := info.EffectiveExpiryDate()
	if d == nil {
		return ""
	}
	return d.Format("2006-01-02")
}

func (i *Ingredient) finishUpdate(actor UserID, changes map[string]FieldChange) {
	i.touch(actor)
	i.record(IngredientUpdated{
		IngredientID: i.id,
		UserID:       i.userID,
		Changes:      changes,
	})
}

// Deleteは論理削除。所有者チェックの後に二重削除を検査する。
func (i *Ingredient) Delete(actor UserID) error {
	if err := i.ensureOwnedBy(actor); err != nil {
		return err
	}
	if i.deletedAt != nil {
		return NewStateError("すでに削除されています")
	}
	now := time.Now()
	i.deletedAt = &now
	i.touch(actor)

	i.record(IngredientDeleted{
		IngredientID:   i.id,
		UserID:         i.userID,
		IngredientName: i.name.Value(),
		CategoryID:     i.categoryID,
		LastQuantity:   i.stock.quantity,
		UnitID:         i.stock.unitID,
		Reason:         "user-action",
	})
	return nil
}

func (i *Ingredient) IsExpired() bool {
	return i.stock.IsExpired()
}

// CheckAndNotifyExpiryは呼び出し時点で期限切れならIngredientExpiredを積む。
// それ自体は冪等ではない。commit前に繰り返し呼べば繰り返し積まれる。
func (i *Ingredient) CheckAndNotifyExpiry() bool {
	if !i.IsExpired() {
		return false
	}
	expired := i.stock.expiryInfo.EffectiveExpiryDate()
	i.record(IngredientExpired{
		IngredientID:    i.id,
		IngredientName:  i.name.Value(),
		CategoryID:      i.categoryID,
		ExpiredDate:     *expired,
		RemainingAmount: i.stock.quantity,
		UnitID:          i.stock.unitID,
	})
	return true
}

// UncommittedEventsは前回commit以降のイベントを挿入順で返す。
func (i *Ingredient) UncommittedEvents() []DomainEvent {
	events := make([]DomainEvent, len(i.events))
	copy(events, i.events)
	return events
}

// MarkEventsCommittedはイベントバッファを空にする。
func (i *Ingredient) MarkEventsCommitted() {
	i.events = nil
}
