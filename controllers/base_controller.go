package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"erm-backend/lib/apperr"
	apimodels "erm-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("не указан параметр (%s)", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// SendError сопоставляет вид ошибки с HTTP статусом ответа.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error) error {
	msg := apperr.UserMessage(err, "внутренняя ошибка сервера")
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(msg))
	case apperr.KindAuthorization:
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(msg))
	case apperr.KindNotFound:
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(msg))
	case apperr.KindConflict:
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(msg))
	case apperr.KindDependency:
		return ctx.Status(fiber.StatusBadGateway).JSON(apimodels.NewError(msg))
	default:
		c.GetLogger(ctx).WithError(err).Error("внутренняя ошибка")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
	}
}
