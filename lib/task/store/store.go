package taskstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"shop-tasks-backend/lib/utils/helpers"
	"shop-tasks-backend/models"
	taskapimodels "shop-tasks-backend/models/api/task"
	dbmodels "shop-tasks-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Task) (id string, err error)
	GetByID(id string) (rec *dbmodels.Task, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	List(filter taskapimodels.TaskFilter) (list []dbmodels.Task, rowCount int64, err error)
	ListOverdue(onDate time.Time) (list []dbmodels.Task, err error)
	ListSubtasks(parentID string) (list []dbmodels.Task, err error)
	CountSubtasks(parentID string) (count int64, err error)
	CountOpenSubtasks(parentID string) (count int64, err error)
	FindByRoutineAndDate(routineID string, dueDate time.Time) (rec *dbmodels.Task, err error)
	ListRecent(limit int) (list []dbmodels.Task, err error)
	CountMainByStatus(status models.TaskStatus) (count int64, err error)
	CountMainOverdue(onDate time.Time) (count int64, err error)
	ReplaceLabels(id string, labels []dbmodels.EmployeeLabel) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Task) (id string, err error) {
	err = i.db.
		Omit("AssignedEmployee", "Labels.*", "Comments").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Task, error) {
	rec := dbmodels.Task{}
	err := i.db.
		Where("id = ?", id).
		Preload("AssignedEmployee").
		Preload("Labels").
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Task{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(id string) error {
	// комментарии удаляются вместе с задачей
	err := i.db.
		Where("task_id = ?", id).
		Delete(&dbmodels.TaskComment{}).
		Error
	if err != nil {
		return err
	}
	rec := dbmodels.Task{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	err = i.db.
		Select("Labels").
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(filter taskapimodels.TaskFilter) (list []dbmodels.Task, rowCount int64, err error) {
	list = []dbmodels.Task{}
	tx := i.db.
		Model(&dbmodels.Task{}).
		Where("is_subtask = ?", false)
	if filter.Status != nil {
		tx = tx.Where("status = ?", *filter.Status)
	}
	if filter.EmployeeID != nil {
		tx = tx.Where("assigned_to = ?", *filter.EmployeeID)
	}
	if filter.Priority != nil {
		tx = tx.Where("priority = ?", *filter.Priority)
	}
	if dueDate := filter.GetDueDate(); dueDate != nil {
		tx = tx.Where("due_date = ?", *dueDate)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Preload("AssignedEmployee").
		Preload("Labels").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

// ListOverdue задачи со сроком строго раньше календарной даты onDate,
// задача со сроком сегодня просроченной не считается
func (i impl) ListOverdue(onDate time.Time) (list []dbmodels.Task, err error) {
	list = []dbmodels.Task{}
	err = i.db.
		Where("due_date < ?", helpers.ToDate(onDate)).
		Where("status <> ?", models.TaskStatusCompleted).
		Preload("AssignedEmployee").
		Preload("Labels").
		Order("due_date ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListSubtasks(parentID string) (list []dbmodels.Task, err error) {
	list = []dbmodels.Task{}
	err = i.db.
		Where("parent_task_id = ?", parentID).
		Preload("AssignedEmployee").
		Order("task_number ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountSubtasks(parentID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Task{}).
		Where("parent_task_id = ?", parentID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) CountOpenSubtasks(parentID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Task{}).
		Where("parent_task_id = ?", parentID).
		Where("status <> ?", models.TaskStatusCompleted).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) FindByRoutineAndDate(routineID string, dueDate time.Time) (*dbmodels.Task, error) {
	rec := dbmodels.Task{}
	err := i.db.
		Where("routine_id = ?", routineID).
		Where("due_date = ?", dueDate).
		Preload("Labels").
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

func (i impl) ListRecent(limit int) (list []dbmodels.Task, err error) {
	list = []dbmodels.Task{}
	err = i.db.
		Where("is_subtask = ?", false).
		Preload("AssignedEmployee").
		Order("created_at DESC").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountMainByStatus(status models.TaskStatus) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Task{}).
		Where("is_subtask = ?", false).
		Where("status = ?", status).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) CountMainOverdue(onDate time.Time) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Task{}).
		Where("is_subtask = ?", false).
		Where("due_date < ?", helpers.ToDate(onDate)).
		Where("status <> ?", models.TaskStatusCompleted).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ReplaceLabels(id string, labels []dbmodels.EmployeeLabel) error {
	rec := dbmodels.Task{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Model(&rec).
		Association("Labels").
		Replace(labels)
}
