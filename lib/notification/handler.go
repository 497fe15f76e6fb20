package notificationhandler

import (
	"time"

	log "github.com/sirupsen/logrus"

	"shop-tasks-backend/config"
	"shop-tasks-backend/db"
	notificationstore "shop-tasks-backend/lib/notification/store"
	"shop-tasks-backend/lib/smtp"
	"shop-tasks-backend/lib/telegram"
	"shop-tasks-backend/models"
	notificationapimodels "shop-tasks-backend/models/api/notification"
	dbmodels "shop-tasks-backend/models/db"
)

type Provider interface {
	NotifyEmployee(kind models.NotificationKind, employee dbmodels.Employee, message string) (messageID *int64)
	NotifyOwner(kind models.NotificationKind, subject, message string)
	ListForEmployee(employeeID string, limit int) (list []notificationapimodels.NotificationView, err error)
	MarkRead(id string) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: notificationstore.NewInstance(db.DB),
		nowFn: time.Now,
	}
}

type impl struct {
	store notificationstore.Provider
	nowFn func() time.Time
}

func (i impl) getLogger(kind models.NotificationKind) *log.Entry {
	return log.WithField("notification_kind", kind)
}

// NotifyEmployee пишет уведомление в журнал и отправляет сотруднику в телеграм.
// Отказ канала доставки не прерывает основную операцию
func (i impl) NotifyEmployee(kind models.NotificationKind, employee dbmodels.Employee, message string) (messageID *int64) {
	logger := i.getLogger(kind).WithField("employee_id", employee.ID)
	rec := dbmodels.Notification{
		Kind:                kind,
		RecipientEmployeeID: &employee.ID,
		Message:             message,
		SentAt:              i.nowFn(),
	}
	_, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("Ошибка сохранения уведомления")
	}
	if employee.TelegramUserID == nil {
		return nil
	}
	msgID, err := telegram.Instance.SendMessage(*employee.TelegramUserID, message)
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки уведомления в телеграм")
		return nil
	}
	if msgID == 0 {
		return nil
	}
	return &msgID
}

// NotifyOwner пишет уведомление в журнал и отправляет владельцу на почту
func (i impl) NotifyOwner(kind models.NotificationKind, subject, message string) {
	logger := i.getLogger(kind)
	rec := dbmodels.Notification{
		Kind:    kind,
		Message: message,
		SentAt:  i.nowFn(),
	}
	_, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("Ошибка сохранения уведомления")
	}
	ownerEmail := config.Conf.Smtp.OwnerEmail
	if ownerEmail == "" {
		return
	}
	err = smtp.Instance.SendEMail(config.Conf.Smtp.SenderEmail, ownerEmail, message, subject)
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки уведомления на почту")
	}
}

func (i impl) ListForEmployee(employeeID string, limit int) ([]notificationapimodels.NotificationView, error) {
	list, err := i.store.ListByRecipientEmployee(employeeID, limit)
	if err != nil {
		return nil, err
	}
	result := make([]notificationapimodels.NotificationView, 0, len(list))
	for _, rec := range list {
		result = append(result, notificationapimodels.NotificationConvert(rec))
	}
	return result, nil
}

func (i impl) MarkRead(id string) (string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Уведомление не найдено", nil
	}
	if rec.ReadAt != nil {
		return "", nil
	}
	return "", i.store.MarkRead(id, i.nowFn())
}
