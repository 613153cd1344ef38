package apperr

import (
	"errors"
	"net/http"
	"strings"
)

// Kind classifica um erro de negócio
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindUnprocessable
	KindConflict
)

// Error é o erro de negócio devolvido pelos use cases
type Error struct {
	Kind     Kind
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NotFound indica que a entidade buscada não existe
func NotFound(messages ...string) *Error {
	return &Error{Kind: KindNotFound, Messages: messages}
}

// Validation indica que a entrada viola uma regra de negócio ou de formato
func Validation(messages ...string) *Error {
	return &Error{Kind: KindValidation, Messages: messages}
}

// Unprocessable indica uma entrada bem formada mas inválida no estado atual (ex: cupom expirado)
func Unprocessable(messages ...string) *Error {
	return &Error{Kind: KindUnprocessable, Messages: messages}
}

// Conflict indica uma violação de unicidade detectada pelo banco
func Conflict(messages ...string) *Error {
	return &Error{Kind: KindConflict, Messages: messages}
}

func kindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}

func IsNotFound(err error) bool      { return kindOf(err) == KindNotFound }
func IsValidation(err error) bool    { return kindOf(err) == KindValidation }
func IsUnprocessable(err error) bool { return kindOf(err) == KindUnprocessable }
func IsConflict(err error) bool      { return kindOf(err) == KindConflict }

// HTTPStatus mapeia o erro para o status HTTP correspondente.
// Erros que não são *Error viram 500.
func HTTPStatus(err error) int {
	switch kindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Messages retorna as mensagens do erro de negócio, ou nil para erros de infraestrutura
func Messages(err error) []string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Messages
	}
	return nil
}
