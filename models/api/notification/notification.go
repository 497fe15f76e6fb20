package notificationapimodels

import (
	"time"

	"shop-tasks-backend/models"
	dbmodels "shop-tasks-backend/models/db"
)

type NotificationView struct {
	ID       string                  `json:"id"`
	Kind     models.NotificationKind `json:"kind"`
	KindName string                  `json:"kind_name"`
	Message  string                  `json:"message"`
	SentAt   time.Time               `json:"sent_at"`
	ReadAt   *time.Time              `json:"read_at,omitempty"`
}

func NotificationConvert(rec dbmodels.Notification) NotificationView {
	return NotificationView{
		ID:       rec.ID,
		Kind:     rec.Kind,
		KindName: rec.Kind.ToHuman(),
		Message:  rec.Message,
		SentAt:   rec.SentAt,
		ReadAt:   rec.ReadAt,
	}
}
