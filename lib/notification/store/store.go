package notificationstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"shop-tasks-backend/lib/utils/helpers"
	"shop-tasks-backend/models"
	dbmodels "shop-tasks-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Notification) (id string, err error)
	GetByID(id string) (rec *dbmodels.Notification, err error)
	ListByRecipientEmployee(employeeID string, limit int) (list []dbmodels.Notification, err error)
	ExistsKindOnDate(kind models.NotificationKind, date time.Time) (exists bool, err error)
	MarkRead(id string, readAt time.Time) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Notification, error) {
	rec := dbmodels.Notification{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByRecipientEmployee(employeeID string, limit int) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	tx := i.db.
		Where("recipient_employee_id = ?", employeeID).
		Order("sent_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ExistsKindOnDate проверка, отправлялось ли уведомление данного вида
// в указанную календарную дату
func (i impl) ExistsKindOnDate(kind models.NotificationKind, date time.Time) (bool, error) {
	day := helpers.ToDate(date)
	var count int64
	err := i.db.
		Model(&dbmodels.Notification{}).
		Where("kind = ?", kind).
		Where("sent_at >= ?", day).
		Where("sent_at < ?", day.AddDate(0, 0, 1)).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) MarkRead(id string, readAt time.Time) error {
	err := i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Update("read_at", readAt).
		Error
	if err != nil {
		return err
	}
	return nil
}
