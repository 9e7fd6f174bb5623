package model

import (
	"errors"
	"fmt"
)

// ドメインエラーの種別。
// usecase層はこの種別だけを見てHTTPステータスへ変換する。
type ErrorKind int

const (
	ErrKindUnknown ErrorKind = iota
	ErrKindValidation
	ErrKindInvariant
	ErrKindAuthorization
	ErrKindState
	ErrKindBusinessRule
)

// DomainErrorはドメイン層で発生する型付きエラー。
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &DomainError{Kind: ErrKindValidation, Message: message}
}

func NewInvariantError(message string) error {
	return &DomainError{Kind: ErrKindInvariant, Message: message}
}

func NewAuthorizationError(message string) error {
	return &DomainError{Kind: ErrKindAuthorization, Message: message}
}

func NewStateError(message string) error {
	return &DomainError{Kind: ErrKindState, Message: message}
}

func NewBusinessRuleError(message string) error {
	return &DomainError{Kind: ErrKindBusinessRule, Message: message}
}

// KindOfはエラーからドメインエラー種別を取り出す。ドメインエラー以外はUnknown。
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	var ie *InsufficientStockError
	if errors.As(err, &ie) {
		return ErrKindBusinessRule
	}
	return ErrKindUnknown
}

// InsufficientStockErrorは在庫不足。
// 集約・在庫エンティティ共通の減算処理から送出される。
type InsufficientStockError struct {
	Requested Quantity
	Available Quantity
}

func (e *InsufficientStockError) Error() string {
	return "在庫が不足しています"
}

// Detailは残量つきの説明（ログ用）。
func (e *InsufficientStockError) Detail() string {
	return fmt.Sprintf("在庫が不足しています（要求: %s, 在庫: %s）", e.Requested, e.Available)
}
