package specification

import "app/internal/domain/model"

// Specificationは食材に対する再利用可能な業務条件。
// 永続化層のクエリはこの述語と一致するように実装・検証する。
type Specification interface {
	IsSatisfiedBy(ingredient *model.Ingredient) bool
}

type andSpecification struct {
	specs []Specification
}

// Andはすべて満たすときに満たされる合成仕様。
func And(specs ...Specification) Specification {
	return &andSpecification{specs: specs}
}

func (s *andSpecification) IsSatisfiedBy(ingredient *model.Ingredient) bool {
	for _, spec := range s.specs {
		if !spec.IsSatisfiedBy(ingredient) {
			return false
		}
	}
	return true
}

type orSpecification struct {
	specs []Specification
}

// Orはいずれかを満たすときに満たされる合成仕様。
func Or(specs ...Specification) Specification {
	return &orSpecification{specs: specs}
}

func (s *orSpecification) IsSatisfiedBy(ingredient *model.Ingredient) bool {
	for _, spec := range s.specs {
		if spec.IsSatisfiedBy(ingredient) {
			return true
		}
	}
	return false
}
