package model

import (
	"strings"
	"unicode/utf8"
)

const memoMaxLength = 500

// Memoは任意の備考。
type Memo struct {
	value string
}

func NewMemo(value string) (Memo, error) {
	v := strings.TrimSpace(value)
	if utf8.RuneCountInString(v) > memoMaxLength {
		return Memo{}, NewValidationError("メモは500文字以内で入力してください")
	}
	return Memo{value: v}, nil
}

func (m Memo) Value() string { return m.value }

func (m Memo) Equals(other Memo) bool {
	return m.value == other.value
}

func (m Memo) String() string { return m.value }
