package model

// Categoryは食材カテゴリ。コアの外で管理される参照データ。
type Category struct {
	ID           CategoryID `json:"id"`
	Name         string     `json:"name"`
	DisplayOrder int        `json:"display_order"`
	IsActive     bool       `json:"is_active"`
}
