package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"shop-tasks-backend/controllers"
	labelhandler "shop-tasks-backend/lib/dicts/label"
	"shop-tasks-backend/middleware"
	apimodels "shop-tasks-backend/models/api"
	employeeapimodels "shop-tasks-backend/models/api/employee"
)

type labelApiController struct {
	controllers.BaseAPIController
}

func InitLabelApiRouters(app *fiber.App) {
	controller := labelApiController{}
	app.Route("dict/label", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())

		router.Get("list", controller.list)
		router.Use(middleware.ManagerRequired()).Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Создание метки
// @Tags Справочник меток
// @Description Создание метки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employeeapimodels.LabelData	true	"request body"
// @Success 200 {object} apimodels.Response{data=employeeapimodels.LabelView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/label [post]
func (c *labelApiController) create(ctx *fiber.Ctx) error {
	var payload employeeapimodels.LabelData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, hMsg, err := labelhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания метки")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Список меток
// @Tags Справочник меток
// @Description Список меток
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]employeeapimodels.LabelView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/label/list [get]
func (c *labelApiController) list(ctx *fiber.Ctx) error {
	list, err := labelhandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка меток")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Изменение метки
// @Tags Справочник меток
// @Description Изменение метки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path		string	true	"ид метки"
// @Param	body body	 employeeapimodels.LabelData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/label/{id} [put]
func (c *labelApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload employeeapimodels.LabelData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := labelhandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения метки")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление метки
// @Tags Справочник меток
// @Description Удаление метки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path		string	true	"ид метки"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/label/{id} [delete]
func (c *labelApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := labelhandler.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления метки")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
