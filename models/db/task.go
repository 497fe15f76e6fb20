package dbmodels

import (
	"time"

	"shop-tasks-backend/models"
)

// Task задача (разовая или порожденная регулярной), может иметь подзадачи
type Task struct {
	BaseModel
	TaskNumber  string `gorm:"type:varchar(20);uniqueIndex"`
	Title       string `gorm:"type:varchar(200)"`
	Description string
	TaskType    models.TaskType     `gorm:"type:varchar(20)"`
	Priority    models.TaskPriority `gorm:"type:varchar(20)"`
	Status      models.TaskStatus   `gorm:"type:varchar(20);index"`
	DueDate     time.Time           `gorm:"type:date;index;uniqueIndex:idx_tasks_routine_due_date"`
	DueTime     *string             `gorm:"type:varchar(5)"` // время в формате 15:04

	AssignedTo       *string   `gorm:"type:varchar(36);index"`
	AssignedEmployee *Employee `gorm:"foreignKey:AssignedTo"`
	AssignedBy       *string   `gorm:"type:varchar(36)"`
	CreatedBy        *string   `gorm:"type:varchar(36)"`

	ParentTaskID *string `gorm:"type:varchar(36);index"`
	IsSubtask    bool

	// происхождение сгенерированной задачи, уникальность (routine_id, due_date)
	// гарантирует не более одной задачи по рутине на дату
	RoutineID *string `gorm:"type:varchar(36);uniqueIndex:idx_tasks_routine_due_date"`

	TelegramMessageID *int64

	CompletedAt *time.Time

	Labels   []EmployeeLabel `gorm:"many2many:task_labels;"`
	Comments []TaskComment   `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// IsOverdue задача просрочена если дата выполнения строго раньше указанной даты
// и задача не завершена; статус в БД при этом не меняется
func (t Task) IsOverdue(onDate time.Time) bool {
	due := time.Date(t.DueDate.Year(), t.DueDate.Month(), t.DueDate.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(onDate.Year(), onDate.Month(), onDate.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(day) && t.Status != models.TaskStatusCompleted
}

// EffectiveStatus статус для отображения с учетом просрочки
func (t Task) EffectiveStatus(onDate time.Time) models.TaskStatus {
	if t.IsOverdue(onDate) {
		return models.TaskStatusOverdue
	}
	return t.Status
}

// TaskComment комментарий к задаче от сотрудника или пользователя,
// удаляется вместе с задачей
type TaskComment struct {
	BaseModel
	TaskID              string  `gorm:"type:varchar(36);index"`
	CommentByEmployeeID *string `gorm:"type:varchar(36)"`
	CommentByUserID     *string `gorm:"type:varchar(36)"`
	Employee            *Employee `gorm:"foreignKey:CommentByEmployeeID"`
	User                *User     `gorm:"foreignKey:CommentByUserID"`
	CommentText         string
	CommentType         models.CommentType `gorm:"type:varchar(20)"`
}
