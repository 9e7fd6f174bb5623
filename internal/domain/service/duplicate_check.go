package service

import "app/internal/domain/model"

// DuplicateCheckServiceは重複食材の判定。ステートレス。
// 同一ユーザー・同名・同期限・同保管場所のロットを「同じ在庫」とみなす。
// 永続化には触れず、呼び出し元が渡したスナップショットだけを見る。
type DuplicateCheckService struct{}

func NewDuplicateCheckService() *DuplicateCheckService {
	return &DuplicateCheckService{}
}

func (s *DuplicateCheckService) IsDuplicate(candidate *model.Ingredient, existing []*model.Ingredient) bool {
	return len(s.FindDuplicates(candidate, existing)) > 0
}

func (s *DuplicateCheckService) FindDuplicates(candidate *model.Ingredient, existing []*model.Ingredient) []*model.Ingredient {
	var matches []*model.Ingredient
	for _, ing := range existing {
		if ing.IsDeleted() {
			continue
		}
		if s.matches(candidate, ing) {
			matches = append(matches, ing)
		}
	}
	return matches
}

func (s *DuplicateCheckService) matches(a, b *model.Ingredient) bool {
	if a.UserID() != b.UserID() {
		return false
	}
	if !a.Name().Equals(b.Name()) {
		return false
	}
	if !expiryEquals(a.ExpiryInfo(), b.ExpiryInfo()) {
		return false
	}
	return a.Stock().StorageLocation().Equals(b.Stock().StorageLocation())
}

// 期限はnil同士も等しい（どちらも期限なし）。
func expiryEquals(a, b *model.ExpiryInfo) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(*b)
}
