package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"erm-backend/controllers"
	settingshandler "erm-backend/lib/settings"
	"erm-backend/middleware"
	apimodels "erm-backend/models/api"
)

type settingsApiController struct {
	controllers.BaseAPIController
}

func InitSettingsApiRouters(app *fiber.App) {
	controller := settingsApiController{}
	app.Route("settings", func(router fiber.Router) {
		router.Get("", middleware.AdminRequired(), controller.list)
		router.Get(":key", middleware.AdminRequired(), controller.get)
	})
}

// @Summary Список настроек
// @Tags Настройки
// @Description Список настроек системы
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]settingsapimodels.SettingView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings [get]
func (c *settingsApiController) list(ctx *fiber.Ctx) error {
	resp, err := settingshandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получить настройку
// @Tags Настройки
// @Description Получить настройку по ключу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   key         		path    	string  true	"setting key"
// @Success 200 {object} apimodels.Response{data=settingsapimodels.SettingView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings/{key} [get]
func (c *settingsApiController) get(ctx *fiber.Ctx) error {
	key, err := c.GetIDByKey(ctx, "key")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := settingshandler.Instance.GetByKey(key)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
