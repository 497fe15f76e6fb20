package tasknumberhandler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	taskstore "shop-tasks-backend/lib/task/store"
	tasksequencestore "shop-tasks-backend/lib/task-number/store"
	"shop-tasks-backend/lib/utils/lock"
	dbmodels "shop-tasks-backend/models/db"
)

// Provider выдает уникальные человекочитаемые номера задач.
// Оба метода должны вызываться внутри транзакции, в которой создается задача:
// счетчик года блокируется FOR UPDATE, а уникальный индекс по task_number
// отсекает гонку при параллельной выдаче.
type Provider interface {
	AllocateMain(now time.Time) (taskNumber string, err error)
	AllocateSub(parent dbmodels.Task) (taskNumber string, err error)
}

func NewInstanceWithTx(tx *gorm.DB) Provider {
	return impl{
		sequenceStore: tasksequencestore.NewInstance(tx),
		taskStore:     taskstore.NewInstance(tx),
	}
}

type impl struct {
	sequenceStore tasksequencestore.Provider
	taskStore     taskstore.Provider
}

// FormatMain основная задача: T<год>-<номер>, номер с ведущими нулями до 3 знаков
func FormatMain(year, seq int) string {
	return fmt.Sprintf("T%d-%03d", year, seq)
}

// FormatSub подзадача: <номер родителя>-S<номер>, нумерация с 1 в рамках родителя
func FormatSub(parentNumber string, seq int) string {
	return fmt.Sprintf("%s-S%d", parentNumber, seq)
}

func (i impl) AllocateMain(now time.Time) (string, error) {
	seq, err := i.sequenceStore.NextNumber(now.Year())
	if err != nil {
		return "", err
	}
	return FormatMain(now.Year(), seq), nil
}

func (i impl) AllocateSub(parent dbmodels.Task) (string, error) {
	count, err := i.taskStore.CountSubtasks(parent.ID)
	if err != nil {
		return "", err
	}
	return FormatSub(parent.TaskNumber, int(count)+1), nil
}

// IsDuplicateErr распознает нарушение уникального индекса постгреса
func IsDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value")
}

// WithAllocLock сериализует выдачу номера в рамках процесса.
// При конфликте уникального номера attempt вызывается повторно один раз:
// повторная транзакция перечитывает счетчик и получает свежий номер
func WithAllocLock(ctx context.Context, key string, attempt func() error) error {
	success, err := lock.WithDelay(ctx, key, 5*time.Second, func() error {
		attemptErr := attempt()
		if attemptErr != nil && IsDuplicateErr(attemptErr) {
			log.WithError(attemptErr).Warn("Конфликт номера задачи, повторная попытка")
			attemptErr = attempt()
		}
		return attemptErr
	})
	if err != nil {
		return err
	}
	if !success {
		return errors.New("не удалось получить блокировку выдачи номера задачи")
	}
	return nil
}
