package apiv1

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"shop-tasks-backend/controllers"
	notificationhandler "shop-tasks-backend/lib/notification"
	"shop-tasks-backend/middleware"
	apimodels "shop-tasks-backend/models/api"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app *fiber.App) {
	controller := notificationApiController{}
	app.Route("notification", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())

		router.Get("employee/:id/list", controller.listForEmployee)
		router.Put(":id/read", controller.markRead)
	})
}

// @Summary Уведомления сотрудника
// @Tags Уведомления
// @Description Журнал уведомлений сотрудника, свежие первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path		string	true	"ид сотрудника"
// @Param	limit	query		int		false	"максимум записей"
// @Success 200 {object} apimodels.Response{data=[]notificationapimodels.NotificationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/employee/{id}/list [get]
func (c *notificationApiController) listForEmployee(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	limit := 0
	if value := ctx.Query("limit"); value != "" {
		limit, err = strconv.Atoi(value)
		if err != nil || limit < 0 {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("limit должен быть неотрицательным числом"))
		}
	}
	list, err := notificationhandler.Instance.ListForEmployee(id, limit)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Отметка о прочтении
// @Tags Уведомления
// @Description Отметка уведомления прочитанным, повторная отметка не является ошибкой
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path		string	true	"ид уведомления"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/{id}/read [put]
func (c *notificationApiController) markRead(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := notificationhandler.Instance.MarkRead(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки уведомления")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
