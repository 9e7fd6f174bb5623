package model

// Unitは数量の単位（個・g・mlなど）。コアの外で管理される参照データ。
// 単位換算はしない。合計などは同一単位の在庫だけを対象にする。
type Unit struct {
	ID           UnitID `json:"id"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}
