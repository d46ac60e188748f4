package dict

import (
	"github.com/gofiber/fiber/v2"

	"erm-backend/controllers"
	categoryhandler "erm-backend/lib/dicts/category"
	apimodels "erm-backend/models/api"
)

type categoryDictApiController struct {
	controllers.BaseAPIController
}

func InitCategoryDictApiRouters(app *fiber.App) {
	controller := categoryDictApiController{}
	app.Route("category", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get(":id", controller.get)
	})
}

// @Summary Список категорий рисков
// @Tags Справочник. Категории рисков
// @Description Категории с вложенными подкатегориями
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.CategoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/category [get]
func (c *categoryDictApiController) list(ctx *fiber.Ctx) error {
	resp, err := categoryhandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получить категорию
// @Tags Справочник. Категории рисков
// @Description Получить категорию с подкатегориями
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.CategoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/category/{id} [get]
func (c *categoryDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := categoryhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
