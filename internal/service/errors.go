package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/repo"
)

var (
	ErrValidation   = errors.New("validation")          // 400
	ErrUnauthorized = errors.New("invalid credentials") // 401
	ErrAccessDenied = errors.New("access denied")       // 403
	ErrNotFound     = errors.New("not found")           // 404
	ErrIntegrity    = errors.New("integrity violation") // 409
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func fieldError(field, message string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func notFound(entity string, id any) error {
	return fmt.Errorf("%w: Resource not found: %s id %v", ErrNotFound, entity, id)
}

// mapRepoErr turns storage errors into service sentinels for entity/id.
func mapRepoErr(err error, entity string, id any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound(entity, id)
	case errors.Is(err, repo.ErrInUse), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %s id %v is still referenced", ErrIntegrity, entity, id)
	case errors.Is(err, repo.ErrInvalidSort):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return err
}
