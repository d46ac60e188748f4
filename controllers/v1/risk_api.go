package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"erm-backend/controllers"
	riskhandler "erm-backend/lib/risk"
	apimodels "erm-backend/models/api"
	riskapimodels "erm-backend/models/api/risk"
)

type riskApiController struct {
	controllers.BaseAPIController
}

func InitRiskApiRouters(app *fiber.App) {
	controller := riskApiController{}
	app.Route("risk", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("export", controller.export)
		router.Get("file/:id", controller.downloadFile)
		router.Get(":id", controller.get)
		router.Get(":id/actions", controller.actions)
		router.Get(":id/file", controller.listFiles)
		router.Post(":id/file", controller.uploadFile)
	})
}

// @Summary Список рисков
// @Tags Риски
// @Description Список рисков с фильтром и постраничным выводом
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		riskapimodels.RiskFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]riskapimodels.RiskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/risk/list [post]
func (c *riskApiController) list(ctx *fiber.Ctx) error {
	var payload riskapimodels.RiskFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := riskhandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Выгрузка реестра рисков в xlsx
// @Tags Риски
// @Description Выгрузка реестра рисков в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/risk/export [get]
func (c *riskApiController) export(ctx *fiber.Ctx) error {
	buf, err := riskhandler.Instance.ExportRegister()
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="risk_register.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Получить риск
// @Tags Риски
// @Description Получить риск
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=riskapimodels.RiskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/risk/{id} [get]
func (c *riskApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := riskhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Мероприятия по риску
// @Tags Риски
// @Description Мероприятия по снижению риска
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=[]riskapimodels.ActionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/risk/{id}/actions [get]
func (c *riskApiController) actions(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := riskhandler.Instance.ListActions(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список вложений риска
// @Tags Риски
// @Description Список вложений риска
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=[]riskapimodels.AttachmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/risk/{id}/file [get]
func (c *riskApiController) listFiles(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := riskhandler.Instance.ListAttachments(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Загрузить вложение риска
// @Tags Риски
// @Description Загрузить вложение риска
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true	"rec ID"
// @Param   file				formData	file	true	"file"
// @Success 200 {object} apimodels.Response{data=riskapimodels.AttachmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/risk/{id}/file [post]
func (c *riskApiController) uploadFile(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось получить файл из запроса"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл из запроса"))
	}
	defer file.Close()
	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	resp, err := riskhandler.Instance.UploadAttachment(ctx.Context(), id, fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Скачать вложение риска
// @Tags Риски
// @Description Скачать вложение риска
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true	"file ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/risk/file/{id} [get]
func (c *riskApiController) downloadFile(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, body, err := riskhandler.Instance.GetAttachment(ctx.Context(), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, rec.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+rec.Name+`"`)
	return ctx.Status(fiber.StatusOK).Send(body)
}
