package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas). Comparar sempre com errors.Is,
// pois os casos de uso anexam a mensagem específica via %w.
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("email já cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")
	ErrInsufficientStock  = errors.New("quantidade insuficiente")
	ErrStorageFailure     = errors.New("falha de armazenamento")
)

// InsufficientStockError carrega a quantidade disponível no momento da recusa.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Quantidade insuficiente. Disponível: %d", e.Available)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Invalid devolve um ErrInvalidInput com mensagem específica.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound devolve um ErrNotFound com mensagem específica.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Conflict devolve um ErrConflict com mensagem específica.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Message devolve apenas a parte específica de um erro criado por Invalid/NotFound/Conflict,
// sem o prefixo do sentinel. Para outros erros devolve err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, sentinel := range []error{ErrInvalidInput, ErrNotFound, ErrConflict} {
		prefix := sentinel.Error() + ": "
		if msg := err.Error(); errors.Is(err, sentinel) && len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return err.Error()
}

// IsDomainError indica se err pertence à taxonomia de erros de domínio.
func IsDomainError(err error) bool {
	for _, sentinel := range []error{
		ErrInvalidInput, ErrNotFound, ErrConflict, ErrInsufficientStock, ErrDuplicate,
		ErrEmailAlreadyExists, ErrUserNotFound, ErrUnauthorized, ErrForbidden, ErrStorageFailure,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// StorageFailure classifica um erro de infraestrutura como ErrStorageFailure.
// Erros de domínio passam sem alteração.
func StorageFailure(op string, err error) error {
	if err == nil || IsDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrStorageFailure, op, err)
}
