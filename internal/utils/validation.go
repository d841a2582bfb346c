package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError describes a configuration value that was rejected
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, fmt.Sprint(e.Value), e.Message)
	}
	return fmt.Sprintf("invalid value: %s", e.Message)
}

// Validator checks a single value
type Validator[T any] func(T) error

// ValidatorChain runs validators in order and stops at the first failure
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add appends a validator to the chain
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs all validators in the chain
func (vc *ValidatorChain[T]) Validate(value T) error {
	for _, validator := range vc.validators {
		if err := validator(value); err != nil {
			return err
		}
	}
	return nil
}

// NotEmpty rejects the empty string
func NotEmpty(field string) Validator[string] {
	return Custom(field, "cannot be empty", func(value string) bool {
		return value != ""
	})
}

// RelativePath rejects absolute paths and paths that climb out of the
// project root
func RelativePath(field string) Validator[string] {
	return func(value string) error {
		if filepath.IsAbs(value) {
			return ValidationError{Field: field, Value: value, Message: "must be relative to the project root"}
		}
		clean := filepath.Clean(value)
		if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return ValidationError{Field: field, Value: value, Message: "must stay inside the project root"}
		}
		return nil
	}
}

// DirectoryName accepts a single path element, the form the tree scanner
// matches excluded directories by
func DirectoryName(field string) Validator[string] {
	return Custom(field, "must be a directory name without separators", func(value string) bool {
		return value != "" && value != "." && value != ".." && !strings.ContainsAny(value, `/\`)
	})
}

// ValidateEach applies itemValidator to every element of a slice
func ValidateEach[T any](field string, itemValidator Validator[T]) Validator[[]T] {
	return func(values []T) error {
		for i, item := range values {
			if err := itemValidator(item); err != nil {
				message := err.Error()
				if verr, ok := err.(ValidationError); ok {
					message = verr.Message
				}
				return ValidationError{
					Field:   fmt.Sprintf("%s[%d]", field, i),
					Value:   item,
					Message: message,
				}
			}
		}
		return nil
	}
}

// Custom builds a validator from a predicate
func Custom[T any](field string, message string, validatorFunc func(T) bool) Validator[T] {
	return func(value T) error {
		if !validatorFunc(value) {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: message,
			}
		}
		return nil
	}
}
