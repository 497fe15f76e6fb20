package generationhandler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shop-tasks-backend/db"
	"shop-tasks-backend/lib/routine/recurrence"
	routinestore "shop-tasks-backend/lib/routine/store"
	taskstore "shop-tasks-backend/lib/task/store"
	tasknumberhandler "shop-tasks-backend/lib/task-number"
	"shop-tasks-backend/lib/utils/helpers"
	"shop-tasks-backend/models"
	dbmodels "shop-tasks-backend/models/db"
)

const allocLockKey = "task-number-alloc"

type Provider interface {
	Generate(routineID string, runDate time.Time) (created bool, hMsg string, err error)
	GenerateAll(ctx context.Context, runDate time.Time) (createdCount int, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		routineStore: routinestore.NewInstance(db.DB),
		taskStore:    taskstore.NewInstance(db.DB),
		createFn:     createNumbered,
	}
}

type impl struct {
	routineStore routinestore.Provider
	taskStore    taskstore.Provider
	// выдача номера и вставка задачи в одной транзакции
	createFn func(rec dbmodels.Task) (id string, err error)
}

func (i impl) getLogger(routineID string) *log.Entry {
	return log.WithField("routine_id", routineID)
}

// Generate создает задачу по рутине на указанную дату.
// Повторный запуск за ту же дату задачу не дублирует
func (i impl) Generate(routineID string, runDate time.Time) (bool, string, error) {
	routine, err := i.routineStore.GetByID(routineID)
	if err != nil {
		return false, "", err
	}
	if routine == nil {
		return false, "Рутина не найдена", nil
	}
	if !routine.IsActive {
		return false, "Рутина неактивна, генерация недоступна", nil
	}
	return i.generate(*routine, runDate)
}

// GenerateAll проходит по всем активным рутинам, ошибка по одной рутине
// не прерывает обработку остальных
func (i impl) GenerateAll(ctx context.Context, runDate time.Time) (int, error) {
	list, err := i.routineStore.ListActive()
	if err != nil {
		return 0, err
	}
	createdCount := 0
	for _, routine := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		created, hMsg, err := i.generate(routine, runDate)
		logger := i.getLogger(routine.ID)
		if err != nil {
			logger.WithError(err).Error("Ошибка генерации задачи по рутине")
			continue
		}
		if hMsg != "" {
			logger.Warn(hMsg)
			continue
		}
		if created {
			createdCount++
		}
	}
	return createdCount, nil
}

func (i impl) generate(routine dbmodels.Routine, runDate time.Time) (bool, string, error) {
	due, err := recurrence.IsDue(routine.RecurrenceType, routine.RecurrenceDay, runDate)
	if err != nil {
		return false, err.Error(), nil
	}
	if !due {
		return false, "", nil
	}
	dueDate := helpers.ToDate(runDate)
	existing, err := i.taskStore.FindByRoutineAndDate(routine.ID, dueDate)
	if err != nil {
		return false, "", err
	}
	if existing != nil {
		return false, "", nil
	}
	dueTime := routine.RecurrenceTime
	rec := dbmodels.Task{
		Title:       routine.Title,
		Description: routine.Description,
		TaskType:    models.TaskTypeRoutine,
		Priority:    models.TaskPriorityMedium,
		Status:      models.TaskStatusPending,
		DueDate:     dueDate,
		DueTime:     &dueTime,
		CreatedBy:   routine.CreatedBy,
		RoutineID:   &routine.ID,
	}
	recID, err := i.createFn(rec)
	if err != nil {
		// уникальность (routine_id, due_date) защищает от гонки
		// параллельных запусков: проверяем, не создана ли задача рядом
		concurrent, findErr := i.taskStore.FindByRoutineAndDate(routine.ID, dueDate)
		if findErr == nil && concurrent != nil {
			return false, "", nil
		}
		return false, "", err
	}
	if len(routine.Labels) != 0 {
		if err = i.taskStore.ReplaceLabels(recID, routine.Labels); err != nil {
			return true, "", err
		}
	}
	return true, "", nil
}

func createNumbered(rec dbmodels.Task) (recID string, err error) {
	attempt := func() error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			number, txErr := tasknumberhandler.NewInstanceWithTx(tx).AllocateMain(rec.DueDate)
			if txErr != nil {
				return txErr
			}
			rec.TaskNumber = number
			recID, txErr = taskstore.NewInstance(tx).Create(rec)
			return txErr
		})
	}
	// при гонке за номер попытка повторяется один раз со свежим счетчиком
	if err = tasknumberhandler.WithAllocLock(context.Background(), allocLockKey, attempt); err != nil {
		return "", err
	}
	return recID, nil
}
