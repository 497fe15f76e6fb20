package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"shop-tasks-backend/controllers"
	dashboardhandler "shop-tasks-backend/lib/dashboard"
	"shop-tasks-backend/middleware"
	apimodels "shop-tasks-backend/models/api"
)

type dashboardApiController struct {
	controllers.BaseAPIController
}

func InitDashboardApiRouters(app *fiber.App) {
	controller := dashboardApiController{}
	app.Route("dashboard", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.ManagerRequired())

		router.Get("stats", controller.stats)
	})
}

// @Summary Сводка по магазину
// @Tags Дашборд
// @Description Посещаемость за сегодня, статистика задач и последние задачи
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=dashboardapimodels.StatsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dashboard/stats [get]
func (c *dashboardApiController) stats(ctx *fiber.Ctx) error {
	view, err := dashboardhandler.Instance.Stats()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сводки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
