package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"erm-backend/controllers"
	audithandler "erm-backend/lib/audit"
	"erm-backend/middleware"
	"erm-backend/models"
	apimodels "erm-backend/models/api"
)

type auditApiController struct {
	controllers.BaseAPIController
}

func InitAuditApiRouters(app *fiber.App) {
	controller := auditApiController{}
	app.Route("audit", func(router fiber.Router) {
		router.Get(":entity_type/:id", middleware.AdminRequired(), controller.list)
	})
}

// @Summary Журнал аудита по сущности
// @Tags Аудит
// @Description Журнал применённых изменений сущности, только для администратора
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   entity_type 		path    	string  true	"entity type"
// @Param   id          		path    	string  true	"entity ID"
// @Success 200 {object} apimodels.Response{data=[]auditapimodels.AuditView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/audit/{entity_type}/{id} [get]
func (c *auditApiController) list(ctx *fiber.Ctx) error {
	entityType := models.EntityType(ctx.Params("entity_type"))
	if !entityType.IsValid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("неизвестный тип сущности"))
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := audithandler.Instance.List(entityType, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
