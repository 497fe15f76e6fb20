package dbmodels

import (
	"time"

	"shop-tasks-backend/models"
)

// Notification журнал отправленных уведомлений сотрудникам и владельцу
type Notification struct {
	BaseModel
	Kind                models.NotificationKind `gorm:"type:varchar(30);index"`
	RecipientEmployeeID *string                 `gorm:"type:varchar(36);index"`
	RecipientUserID     *string                 `gorm:"type:varchar(36);index"`
	Message             string
	SentAt              time.Time `gorm:"index"`
	ReadAt              *time.Time
}
