package model

import "time"

// DomainEventは集約の変更通知。
// 集約内部のバッファに積まれ、トランザクションcommit後にusecase層が
// 取り出してイベントバスへ渡す。永続化されるイベントログではない。
type DomainEvent interface {
	Type() string
}

type IngredientCreated struct {
	IngredientID    IngredientID
	UserID          UserID
	IngredientName  string
	CategoryID      CategoryID
	InitialQuantity Quantity
	UnitID          UnitID
}

func (e IngredientCreated) Type() string { return "IngredientCreated" }

type StockConsumed struct {
	IngredientID    IngredientID
	UserID          UserID
	ConsumedAmount  Quantity
	RemainingAmount Quantity
	UnitID          UnitID
}

func (e StockConsumed) Type() string { return "StockConsumed" }

type StockReplenished struct {
	IngredientID      IngredientID
	UserID            UserID
	ReplenishedAmount Quantity
	PreviousAmount    Quantity
	NewTotalAmount    Quantity
	UnitID            UnitID
}

func (e StockReplenished) Type() string { return "StockReplenished" }

// FieldChangeは更新イベントの変更前後。
type FieldChange struct {
	From string
	To   string
}

type IngredientUpdated struct {
	IngredientID IngredientID
	UserID       UserID
	Changes      map[string]FieldChange
}

func (e IngredientUpdated) Type() string { return "IngredientUpdated" }

type IngredientDeleted struct {
	IngredientID   IngredientID
	UserID         UserID
	IngredientName string
	CategoryID     CategoryID
	LastQuantity   Quantity
	UnitID         UnitID
	Reason         string
}

func (e IngredientDeleted) Type() string { return "IngredientDeleted" }

type IngredientExpired struct {
	IngredientID    IngredientID
	IngredientName  string
	CategoryID      CategoryID
	ExpiredDate     time.Time
	RemainingAmount Quantity
	UnitID          UnitID
}

func (e IngredientExpired) Type() string { return "IngredientExpired" }
