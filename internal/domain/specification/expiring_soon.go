package specification

import "app/internal/domain/model"

// ExpiringSoonSpecificationは「あとn日以内に期限が切れる」。
// 期限切れ済み（負の日数）も満たす。期限情報が無ければ満たさない。
type ExpiringSoonSpecification struct {
	days int
}

func NewExpiringSoonSpecification(days int) (*ExpiringSoonSpecification, error) {
	if days < 0 {
		return nil, model.NewValidationError("日数は0以上でなければなりません")
	}
	return &ExpiringSoonSpecification{days: days}, nil
}

func (s *ExpiringSoonSpecification) IsSatisfiedBy(ingredient *model.Ingredient) bool {
	days := ingredient.Stock().DaysUntilExpiry()
	if days == nil {
		return false
	}
	return *days <= s.days
}
