package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/pkg/logger"
)

// Códigos do corpo de erro.
const (
	CodeValidation        = "VALIDATION"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInternal          = "INTERNAL"
)

// errorStatus traduz a taxonomia de erros de domínio em status HTTP e código do corpo.
func errorStatus(err error) (int, string, string) {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return fiber.StatusConflict, CodeInsufficientStock, insufficient.Error()
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, CodeInsufficientStock, "Quantidade insuficiente"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, CodeValidation, domain.Message(err)
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, CodeNotFound, "Usuário não encontrado"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, CodeNotFound, domain.Message(err)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, CodeConflict, "Email já cadastrado"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, CodeConflict, domain.Message(err)
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, CodeConflict, "Registro duplicado"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, CodeUnauthorized, "Credenciais inválidas"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, CodeForbidden, "Acesso negado"
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fiberCode(fe.Code), fe.Message
	}
	return fiber.StatusInternalServerError, CodeInternal, "Erro interno do servidor"
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusUnprocessableEntity:
		return CodeValidation
	case fiber.StatusUnauthorized:
		return CodeUnauthorized
	case fiber.StatusForbidden:
		return CodeForbidden
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	}
	return CodeInternal
}

// NewErrorHandler é o ErrorHandler do Fiber: os handlers devolvem erros de domínio e a resposta
// é montada aqui. Falhas de armazenamento e erros inesperados são logados e respondidos sem detalhes.
func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, code, msg := errorStatus(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("erro interno")
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}
}
