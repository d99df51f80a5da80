package todo

import (
	"errors"
	"strings"

	domain "github.com/example/daily-todos/domain/todo"
)

// ErrInvalidFilter is returned for list filters other than active or completed.
var ErrInvalidFilter = errors.New("invalid filter")

// mapServiceError restores sentinel errors from a service call. Errors
// crossing request-reply arrive as plain text.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, domain.ErrTodoNotFound.Error()) {
		return domain.ErrTodoNotFound
	}
	if strings.Contains(errMsg, domain.ErrEmptyTitle.Error()) {
		return domain.ErrEmptyTitle
	}
	if strings.Contains(errMsg, ErrInvalidFilter.Error()) {
		return ErrInvalidFilter
	}

	return err
}
