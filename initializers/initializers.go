package initializers

import (
	"context"
	"time"

	"shop-tasks-backend/config"
	"shop-tasks-backend/fiberlog"
	attendancehandler "shop-tasks-backend/lib/attendance"
	automarkworker "shop-tasks-backend/lib/attendance/auto-mark-worker"
	authhandler "shop-tasks-backend/lib/auth"
	dashboardhandler "shop-tasks-backend/lib/dashboard"
	labelhandler "shop-tasks-backend/lib/dicts/label"
	employeehandler "shop-tasks-backend/lib/employee"
	xlsexport "shop-tasks-backend/lib/export/xls"
	notificationhandler "shop-tasks-backend/lib/notification"
	reporthandler "shop-tasks-backend/lib/report"
	dailyreportworker "shop-tasks-backend/lib/report/daily-report-worker"
	routinehandler "shop-tasks-backend/lib/routine"
	generationhandler "shop-tasks-backend/lib/routine/generation"
	generationworker "shop-tasks-backend/lib/routine/generation/worker"
	taskhandler "shop-tasks-backend/lib/task"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger()
	InitDBConnection()
	InitS3()
	InitSmtp()
	InitTelegram()
	xlsexport.NewHandler()
	notificationhandler.NewHandler()
	authhandler.NewHandler()
	labelhandler.NewHandler()
	employeehandler.NewHandler()
	taskhandler.NewHandler()
	routinehandler.NewHandler()
	generationhandler.NewHandler()
	attendancehandler.NewHandler()
	dashboardhandler.NewHandler()
	reporthandler.NewHandler()
	go initWorkers(ctx)
}

// запускаем с промежутком чтоб размыть нагрузку
func initWorkers(ctx context.Context) {
	// Задача генерации задач по активным рутинам
	generationworker.StartWorker(ctx)

	if makeTimeGap(ctx) {
		// Задача автоотметки отсутствия после контрольного часа
		automarkworker.StartWorker(ctx)
	}

	if makeTimeGap(ctx) {
		// Задача отправки ежедневного отчета владельцу
		dailyreportworker.StartWorker(ctx)
	}
}

func makeTimeGap(ctx context.Context) (canRun bool) {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Second * 10):
		return true
	}
}
