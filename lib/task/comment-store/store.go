package taskcommentstore

import (
	"gorm.io/gorm"

	dbmodels "shop-tasks-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.TaskComment) (id string, err error)
	List(taskID string) (list []dbmodels.TaskComment, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.TaskComment) (id string, err error) {
	err = i.db.
		Omit("Employee", "User").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(taskID string) (list []dbmodels.TaskComment, err error) {
	list = []dbmodels.TaskComment{}
	err = i.db.
		Where("task_id = ?", taskID).
		Preload("Employee").
		Preload("User").
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
