package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// ドメインエラーの種別をHTTPステータスへ写す。
// バリデーション・不変条件→400 / 認可→403 / 状態・業務ルール→409
func toHTTPError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	switch model.KindOf(err) {
	case model.ErrKindValidation, model.ErrKindInvariant:
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case model.ErrKindAuthorization:
		return NewHTTPError(http.StatusForbidden, err.Error())
	case model.ErrKindState, model.ErrKindBusinessRule:
		return NewHTTPError(http.StatusConflict, err.Error())
	}

	return NewHTTPError(http.StatusInternalServerError, "db error")
}
