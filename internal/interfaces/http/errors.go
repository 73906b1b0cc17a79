package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-almacenes/internal/application/dto"
	"github.com/jhoicas/stock-almacenes/internal/domain"
	"github.com/jhoicas/stock-almacenes/pkg/logger"
)

// errorStatus traduce un error de dominio a status HTTP y código de error.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnknownWarehouse):
		return fiber.StatusBadRequest, "UNKNOWN_WAREHOUSE"
	case errors.Is(err, domain.ErrEmptyFile):
		return fiber.StatusBadRequest, "EMPTY_FILE"
	case errors.Is(err, domain.ErrUnparsableFormat):
		return fiber.StatusBadRequest, "UNPARSABLE_FORMAT"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// respondError escribe dto.ErrorResponse. Los 5xx se registran con detalle y el cliente
// sólo recibe un mensaje genérico.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", requestID(c)).
			Str("path", c.Path()).
			Msg("error interno")
		msg = "Error al procesar la solicitud"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg, Code: code})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg, Code: "VALIDATION"})
}

// ErrorHandler para fiber.Config: errores no manejados por los handlers (rutas inexistentes,
// cuerpo demasiado grande, panics recuperados).
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := "HTTP_ERROR"
			switch fe.Code {
			case fiber.StatusNotFound:
				code = "NOT_FOUND"
			case fiber.StatusRequestEntityTooLarge:
				code = "FILE_TOO_LARGE"
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: fe.Message, Code: code})
		}
		return respondError(c, log, err)
	}
}
