package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s tidak ditemukan", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError carries the offending field so handlers can build
// field-scoped error payloads.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("%s tidak valid", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// ValidationErrors aggregates several field violations from one request,
// e.g. the schedule conflict checker reporting multiple overlaps.
type ValidationErrors struct {
	Msg    string
	Fields map[string][]string
}

func (e ValidationErrors) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "validation error"
}

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var single ValidationError
	if errors.As(err, &single) {
		return true
	}
	var multi ValidationErrors
	return errors.As(err, &multi)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// FieldErrors flattens a validation error into the errors:{field:[...]}
// response shape. Nil when err is not a validation error.
func FieldErrors(err error) map[string][]string {
	var multi ValidationErrors
	if errors.As(err, &multi) {
		return multi.Fields
	}
	var single ValidationError
	if errors.As(err, &single) {
		field := single.Field
		if field == "" {
			field = "general"
		}
		msg := single.Msg
		if msg == "" {
			msg = single.Error()
		}
		return map[string][]string{field: {msg}}
	}
	return nil
}
