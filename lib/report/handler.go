package reporthandler

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"shop-tasks-backend/db"
	attendancehandler "shop-tasks-backend/lib/attendance"
	notificationhandler "shop-tasks-backend/lib/notification"
	notificationstore "shop-tasks-backend/lib/notification/store"
	taskstore "shop-tasks-backend/lib/task/store"
	"shop-tasks-backend/lib/utils/helpers"
	"shop-tasks-backend/models"
)

type Provider interface {
	SendDailyReport(ctx context.Context, now time.Time) (sent bool, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		notificationStore: notificationstore.NewInstance(db.DB),
		taskStore:         taskstore.NewInstance(db.DB),
	}
}

type impl struct {
	notificationStore notificationstore.Provider
	taskStore         taskstore.Provider
}

// SendDailyReport отправляет владельцу сводку дня по посещаемости и
// просроченным задачам, исполнители просроченных задач получают напоминание.
// Отчет уходит не чаще одного раза в календарный день
func (i impl) SendDailyReport(ctx context.Context, now time.Time) (bool, error) {
	sentAlready, err := i.notificationStore.ExistsKindOnDate(models.NotificationDailyReport, now)
	if err != nil {
		return false, err
	}
	if sentAlready {
		return false, nil
	}
	summary, err := attendancehandler.Instance.Summary(now)
	if err != nil {
		return false, err
	}
	overdue, err := i.taskStore.ListOverdue(now)
	if err != nil {
		return false, err
	}

	for _, task := range overdue {
		if helpers.IsContextDone(ctx) {
			return false, nil
		}
		if task.AssignedEmployee == nil {
			continue
		}
		notificationhandler.Instance.NotifyEmployee(models.NotificationTaskOverdue, *task.AssignedEmployee,
			fmt.Sprintf("Задача %s '%s' просрочена, срок был %s",
				task.TaskNumber, task.Title, task.DueDate.Format("02.01.2006")))
	}

	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("Отчет за %s\n", now.Format("02.01.2006")))
	message.WriteString(fmt.Sprintf("Посещаемость: на месте %d, отсутствуют %d, полдня %d, отпуск %d, не отмечены %d из %d\n",
		summary.Present, summary.Absent, summary.HalfDay, summary.Leave, summary.NotMarked, summary.TotalEmployees))
	message.WriteString(fmt.Sprintf("Просроченных задач: %d\n", len(overdue)))
	for _, task := range overdue {
		message.WriteString(fmt.Sprintf("- %s %s (срок %s)\n",
			task.TaskNumber, task.Title, task.DueDate.Format("02.01.2006")))
	}

	notificationhandler.Instance.NotifyOwner(models.NotificationDailyReport,
		"Ежедневный отчет", message.String())
	log.WithField("overdue_count", len(overdue)).Info("Ежедневный отчет отправлен")
	return true, nil
}
