package dailyreportworker

import (
	"context"
	"time"

	"shop-tasks-backend/config"
	reporthandler "shop-tasks-backend/lib/report"
	baseworker "shop-tasks-backend/lib/utils/base-worker"
)

func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("DailyReportWorker",
			time.Duration(config.Conf.Scheduler.DailyReportFirstDelayInSec)*time.Second,
			time.Duration(config.Conf.Scheduler.DailyReportIntervalInSec)*time.Second),
		afterHour: config.Conf.Scheduler.DailyReportAfterHour,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	afterHour int
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	now := time.Now()
	if now.Hour() < i.afterHour {
		return
	}
	sent, err := reporthandler.Instance.SendDailyReport(ctx, now)
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки ежедневного отчета")
		return
	}
	if sent {
		logger.Info("Ежедневный отчет отправлен владельцу")
	}
}
