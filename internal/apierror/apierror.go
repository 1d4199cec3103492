// Package apierror defines the typed errors the service layer returns and
// the response envelopes the handler layer serializes. Every client-facing
// error goes through this package so no DB error or stack trace ever leaks.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a service error so handlers can pick the HTTP status
// without string matching.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindInsufficientStock
)

// Error is the canonical service-layer error. Campo is set for field-level
// validation failures; Disponible/Solicitado only for stock errors.
type Error struct {
	Kind    Kind
	Message string
	Campo   string
	// Stock detail — only meaningful when Kind == KindInsufficientStock.
	Solicitado int
	Disponible int
	// Err is the wrapped cause, logged but never serialized.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error kind to the status the controller layer returns.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindInsufficientStock:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func ValidationField(campo, msg string) *Error {
	return &Error{Kind: KindValidation, Campo: campo, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// InsufficientStock carries both sides of the failed comparison so the
// client can tell the user how many units remain.
func InsufficientStock(solicitado, disponible int) *Error {
	return &Error{
		Kind:       KindInsufficientStock,
		Message:    fmt.Sprintf("Stock insuficiente, solo hay %d unidades disponibles", disponible),
		Solicitado: solicitado,
		Disponible: disponible,
	}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// As extracts an *Error from an error chain; ok is false for untyped errors.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// ── Response envelopes ───────────────────────────────────────────────────────

// APIError is the JSON envelope for all 4xx/5xx responses.
type APIError struct {
	Detail     string  `json:"detail"`
	Campo      *string `json:"campo,omitempty"`
	Solicitado *int    `json:"solicitado,omitempty"`
	Disponible *int    `json:"disponible,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Envelope builds the response body for a typed error.
func Envelope(e *Error) *APIError {
	out := &APIError{Detail: e.Message}
	if e.Campo != "" {
		out.Campo = &e.Campo
	}
	if e.Kind == KindInsufficientStock {
		out.Solicitado = &e.Solicitado
		out.Disponible = &e.Disponible
	}
	return out
}

// ValidationError wraps multiple field errors from request binding.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
