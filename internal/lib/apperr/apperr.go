// Package apperr classifica erros da aplicação em um conjunto fechado de tipos
// e os traduz para status HTTP. Detalhes internos só vão para o log.
package apperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(message string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

func Validation(message string, details map[string]interface{}) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func Conflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "erro interno do servidor", Err: err}
}

// KindOf devolve KindInternal para qualquer erro que não seja *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

type Response struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Respond escreve o erro no formato padrão da API.
func Respond(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}

	attrs := []any{
		slog.String("kind", appErr.Kind.String()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("error", err.Error()),
	}
	if appErr.Kind == KindInternal {
		log.Error("request failed", attrs...)
	} else {
		log.Warn("request rejected", attrs...)
	}

	resp := Response{
		Error:   appErr.Kind.String(),
		Message: appErr.Message,
		Details: appErr.Details,
	}

	render.Status(r, appErr.Kind.HTTPStatus())
	render.JSON(w, r, resp)
}
