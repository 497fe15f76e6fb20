package apiv1

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"shop-tasks-backend/controllers"
	attendancehandler "shop-tasks-backend/lib/attendance"
	"shop-tasks-backend/middleware"
	apimodels "shop-tasks-backend/models/api"
	attendanceapimodels "shop-tasks-backend/models/api/attendance"
)

type attendanceApiController struct {
	controllers.BaseAPIController
}

func InitAttendanceApiRouters(app *fiber.App) {
	controller := attendanceApiController{}
	app.Route("attendance", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())

		router.Post("mark", controller.mark)
		router.Get("summary", controller.summary)
		router.Post("history", controller.history)
		router.Use(middleware.ManagerRequired())
		router.Get("report", controller.report)
		router.Post("report/export", controller.exportReport)
		router.Put(":id", controller.update)
	})
}

// @Summary Отметка посещаемости
// @Tags Посещаемость
// @Description Отметка за день, повторная отметка перезаписывает статус
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 attendanceapimodels.MarkRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=attendanceapimodels.AttendanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/mark [post]
func (c *attendanceApiController) mark(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.MarkRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, hMsg, err := attendancehandler.Instance.Mark(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки посещаемости")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Сводка за день
// @Tags Посещаемость
// @Description Сводка за день, без параметра date берется сегодня
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	date	query		string	false	"дата, формат 2006-01-02"
// @Success 200 {object} apimodels.Response{data=attendanceapimodels.Summary}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/summary [get]
func (c *attendanceApiController) summary(ctx *fiber.Ctx) error {
	date := time.Now()
	if value := ctx.Query("date"); value != "" {
		parsed, err := time.Parse(apimodels.DateFormat, value)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("дата должна быть в формате 2006-01-02"))
		}
		date = parsed
	}
	summary, err := attendancehandler.Instance.Summary(date)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сводки посещаемости")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(summary))
}

// @Summary История отметок
// @Tags Посещаемость
// @Description История отметок за период, по умолчанию последние 30 дней
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 attendanceapimodels.HistoryFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]attendanceapimodels.AttendanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/history [post]
func (c *attendanceApiController) history(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.HistoryFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := attendancehandler.Instance.History(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории посещаемости")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Изменение отметки
// @Tags Посещаемость
// @Description Исправление отметки менеджером
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id		path		string	true	"ид отметки"
// @Param	body body	 attendanceapimodels.UpdateRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/{id} [put]
func (c *attendanceApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload attendanceapimodels.UpdateRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := attendancehandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения отметки посещаемости")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отчет за период
// @Tags Посещаемость
// @Description Сводный отчет за период с детализацией по отметкам
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	start_date	query		string	true	"начало периода, формат 2006-01-02"
// @Param	end_date	query		string	true	"конец периода, формат 2006-01-02"
// @Param	employee_id	query		string	false	"фильтр по сотруднику"
// @Success 200 {object} apimodels.Response{data=attendanceapimodels.RangeReport}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/report [get]
func (c *attendanceApiController) report(ctx *fiber.Ctx) error {
	startDate, endDate, err := c.getPeriod(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var employeeID *string
	if value := ctx.Query("employee_id"); value != "" {
		employeeID = &value
	}
	report, err := attendancehandler.Instance.RangeReport(startDate, endDate, employeeID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования отчета посещаемости")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(report))
}

// @Summary Выгрузка отчета за период
// @Tags Посещаемость
// @Description Выгрузка отчета в xlsx в хранилище отчетов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	start_date	query		string	true	"начало периода, формат 2006-01-02"
// @Param	end_date	query		string	true	"конец периода, формат 2006-01-02"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/report/export [post]
func (c *attendanceApiController) exportReport(ctx *fiber.Ctx) error {
	startDate, endDate, err := c.getPeriod(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	objectName, err := attendancehandler.Instance.ExportRangeReport(ctx.Context(), startDate, endDate)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки отчета посещаемости")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(objectName))
}

func (c *attendanceApiController) getPeriod(ctx *fiber.Ctx) (startDate, endDate time.Time, err error) {
	startDate, err = time.Parse(apimodels.DateFormat, ctx.Query("start_date"))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "начальная дата должна быть в формате 2006-01-02")
	}
	endDate, err = time.Parse(apimodels.DateFormat, ctx.Query("end_date"))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "конечная дата должна быть в формате 2006-01-02")
	}
	return startDate, endDate, nil
}
