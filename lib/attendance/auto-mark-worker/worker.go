package automarkworker

import (
	"context"
	"time"

	"shop-tasks-backend/config"
	attendancehandler "shop-tasks-backend/lib/attendance"
	baseworker "shop-tasks-backend/lib/utils/base-worker"
)

func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("AttendanceAutoMarkWorker",
			time.Duration(config.Conf.Scheduler.AutoMarkFirstDelayInSec)*time.Second,
			time.Duration(config.Conf.Scheduler.AutoMarkIntervalInSec)*time.Second),
		afterHour: config.Conf.Scheduler.AutoMarkAfterHour,
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
	// до контрольного часа сотрудники еще могут отметиться сами
	if now.Hour() < i.afterHour {
		return
	}
	markedCount, err := attendancehandler.Instance.AutoMarkAbsent(ctx, now)
	if err != nil {
		logger.WithError(err).Error("Ошибка автоотметки отсутствия")
		return
	}
	if markedCount > 0 {
		logger.Infof("Автоматически отмечено отсутствие: %v", markedCount)
	}
}
