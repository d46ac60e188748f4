package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"erm-backend/controllers"
	pdfexport "erm-backend/lib/export/pdf"
	inboxhandler "erm-backend/lib/inbox"
	workflowhandler "erm-backend/lib/workflow"
	"erm-backend/middleware"
	"erm-backend/models"
	apimodels "erm-backend/models/api"
	workflowapimodels "erm-backend/models/api/workflow"
)

type workflowApiController struct {
	controllers.BaseAPIController
}

func InitWorkflowApiRouters(app *fiber.App) {
	controller := workflowApiController{}
	app.Route("workflow", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("inbox", controller.inbox)
		router.Get("originated", controller.originated)
		router.Get("counts", controller.counts)
		router.Get("queue", middleware.AdminRequired(), controller.queue)
		router.Get(":id", controller.get)
		router.Get(":id/history", controller.history)
		router.Get(":id/protocol", controller.protocol)
		router.Post(":id/approve", controller.approve)
		router.Post(":id/reject", controller.reject)
		router.Post(":id/comment", controller.comment)
		router.Post(":id/reassign", middleware.AdminRequired(), controller.reassign)
	})
}

// @Summary Подать заявку на изменение
// @Tags Согласование
// @Description Подать заявку на изменение
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		workflowapimodels.WorkflowItemCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.WorkflowItemCreatedView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow [post]
func (c *workflowApiController) create(ctx *fiber.Ctx) error {
	var payload workflowapimodels.WorkflowItemCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	resp, err := workflowhandler.Instance.Create(userID, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Заявки, назначенные на пользователя
// @Tags Согласование
// @Description Заявки, назначенные на пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]workflowapimodels.WorkflowItemView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/inbox [get]
func (c *workflowApiController) inbox(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	resp, err := inboxhandler.Instance.Inbox(userID)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Незакрытые заявки, поданные пользователем
// @Tags Согласование
// @Description Незакрытые заявки, поданные пользователем
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]workflowapimodels.WorkflowItemView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/originated [get]
func (c *workflowApiController) originated(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	resp, err := inboxhandler.Instance.Originated(userID)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Счётчики заявок пользователя
// @Tags Согласование
// @Description Счётчики заявок пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.CountsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/counts [get]
func (c *workflowApiController) counts(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	resp, err := inboxhandler.Instance.Counts(userID)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Общая очередь незакрытых заявок
// @Tags Согласование
// @Description Общая очередь незакрытых заявок, только для администратора
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]workflowapimodels.WorkflowItemView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/queue [get]
func (c *workflowApiController) queue(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	resp, err := inboxhandler.Instance.GlobalQueue(userID)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получить заявку
// @Tags Согласование
// @Description Получить заявку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.WorkflowItemView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/{id} [get]
func (c *workflowApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	resp, err := workflowhandler.Instance.GetByID(userID, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary История переходов заявки
// @Tags Согласование
// @Description История переходов заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=[]workflowapimodels.WorkflowHistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/{id}/history [get]
func (c *workflowApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	resp, err := workflowhandler.Instance.History(userID, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Протокол согласования в pdf
// @Tags Согласование
// @Description Протокол согласования в pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true	"rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/{id}/protocol [get]
func (c *workflowApiController) protocol(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	item, err := workflowhandler.Instance.GetByID(userID, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	history, err := workflowhandler.Instance.History(userID, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	body, err := pdfexport.GenerateApprovalProtocol(item, history)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="protocol.pdf"`)
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary Согласовать текущий этап заявки
// @Tags Согласование
// @Description Согласовать текущий этап заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true	"rec ID"
// @Param	body				body		workflowapimodels.TransitionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.TransitionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/{id}/approve [post]
func (c *workflowApiController) approve(ctx *fiber.Ctx) error {
	return c.transition(ctx, models.WfActionApprove)
}

// @Summary Отклонить заявку
// @Tags Согласование
// @Description Отклонить заявку, комментарий обязателен
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true	"rec ID"
// @Param	body				body		workflowapimodels.TransitionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.TransitionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/{id}/reject [post]
func (c *workflowApiController) reject(ctx *fiber.Ctx) error {
	return c.transition(ctx, models.WfActionReject)
}

// @Summary Прокомментировать заявку
// @Tags Согласование
// @Description Прокомментировать заявку без смены состояния
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true	"rec ID"
// @Param	body				body		workflowapimodels.TransitionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.TransitionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/{id}/comment [post]
func (c *workflowApiController) comment(ctx *fiber.Ctx) error {
	return c.transition(ctx, models.WfActionComment)
}

func (c *workflowApiController) transition(ctx *fiber.Ctx, action models.WorkflowAction) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workflowapimodels.TransitionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	resp, err := workflowhandler.Instance.Transition(userID, id, action, payload.Comment)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Переназначить согласующего
// @Tags Согласование
// @Description Переназначить согласующего, только для администратора
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true	"rec ID"
// @Param	body				body		workflowapimodels.ReassignData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/{id}/reassign [post]
func (c *workflowApiController) reassign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workflowapimodels.ReassignData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	if err := workflowhandler.Instance.Reassign(userID, id, payload.AssigneeUserID); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
