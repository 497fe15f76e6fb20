package generationworker

import (
	"context"
	"time"

	"shop-tasks-backend/config"
	generationhandler "shop-tasks-backend/lib/routine/generation"
	baseworker "shop-tasks-backend/lib/utils/base-worker"
)

func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("RoutineGenerationWorker",
			time.Duration(config.Conf.Scheduler.GenerationFirstDelayInSec)*time.Second,
			time.Duration(config.Conf.Scheduler.GenerationIntervalInSec)*time.Second),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	createdCount, err := generationhandler.Instance.GenerateAll(ctx, time.Now())
	if err != nil {
		logger.WithError(err).Error("Ошибка генерации задач по рутинам")
		return
	}
	if createdCount > 0 {
		logger.Infof("Сгенерировано задач по рутинам: %v", createdCount)
	}
}
