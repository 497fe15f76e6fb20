package apiv1

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"shop-tasks-backend/controllers"
	routinehandler "shop-tasks-backend/lib/routine"
	generationhandler "shop-tasks-backend/lib/routine/generation"
	"shop-tasks-backend/middleware"
	apimodels "shop-tasks-backend/models/api"
	routineapimodels "shop-tasks-backend/models/api/routine"
)

type routineApiController struct {
	controllers.BaseAPIController
}

func InitRoutineApiRouters(app *fiber.App) {
	controller := routineApiController{}
	app.Route("routine", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.ManagerRequired())

		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Post("generate", controller.generateAll)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.deactivate)
			idRoute.Post("generate", controller.generate)
		})
	})
}

// @Summary Создание рутины
// @Tags Рутины
// @Description Создание правила регулярной задачи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 routineapimodels.RoutineData	true	"request body"
// @Success 200 {object} apimodels.Response{data=routineapimodels.RoutineView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/routine [post]
func (c *routineApiController) create(ctx *fiber.Ctx) error {
	var payload routineapimodels.RoutineData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, hMsg, err := routinehandler.Instance.Create(payload, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания рутины")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Список рутин
// @Tags Рутины
// @Description Список правил регулярных задач
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 routineapimodels.RoutineFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]routineapimodels.RoutineView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/routine/list [post]
func (c *routineApiController) list(ctx *fiber.Ctx) error {
	var payload routineapimodels.RoutineFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := routinehandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка рутин")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение рутины
// @Tags Рутины
// @Description Получение рутины
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path		string	true	"ид рутины"
// @Success 200 {object} apimodels.Response{data=routineapimodels.RoutineView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/routine/{id} [get]
func (c *routineApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := routinehandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения рутины")
	}
	if view == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("Рутина не найдена"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Изменение рутины
// @Tags Рутины
// @Description Изменение рутины, уже сгенерированные задачи не меняются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path		string	true	"ид рутины"
// @Param	body body	 routineapimodels.RoutineUpdateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/routine/{id} [put]
func (c *routineApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload routineapimodels.RoutineUpdateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := routinehandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения рутины")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отключение рутины
// @Tags Рутины
// @Description Отключение рутины, уже сгенерированные задачи остаются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path		string	true	"ид рутины"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/routine/{id} [delete]
func (c *routineApiController) deactivate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := routinehandler.Instance.Deactivate(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отключения рутины")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Генерация задачи по рутине
// @Tags Рутины
// @Description Ручной запуск генерации на сегодня, повторный запуск задачу не дублирует
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path		string	true	"ид рутины"
// @Success 200 {object} apimodels.Response{data=bool}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/routine/{id}/generate [post]
func (c *routineApiController) generate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	created, hMsg, err := generationhandler.Instance.Generate(id, time.Now())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка генерации задачи по рутине")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(created))
}

// @Summary Генерация задач по всем рутинам
// @Tags Рутины
// @Description Ручной запуск генерации по всем активным рутинам на сегодня
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/routine/generate [post]
func (c *routineApiController) generateAll(ctx *fiber.Ctx) error {
	createdCount, err := generationhandler.Instance.GenerateAll(ctx.Context(), time.Now())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка генерации задач по рутинам")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(createdCount))
}
