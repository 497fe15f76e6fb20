package models

import "github.com/pkg/errors"

type TaskType string

const (
	TaskTypeRoutine TaskType = "routine"
	TaskTypeOneTime TaskType = "one_time"
)

var taskTypeHumanName = map[TaskType]string{
	TaskTypeRoutine: "Регулярная",
	TaskTypeOneTime: "Разовая",
}

func (t TaskType) ToHuman() string {
	if human, exist := taskTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t TaskType) Validate() error {
	switch t {
	case TaskTypeRoutine, TaskTypeOneTime:
		return nil
	}
	return errors.Errorf("неизвестный тип задачи (%v)", string(t))
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

var taskPriorityHumanName = map[TaskPriority]string{
	TaskPriorityLow:    "Низкий",
	TaskPriorityMedium: "Средний",
	TaskPriorityHigh:   "Высокий",
	TaskPriorityUrgent: "Срочный",
}

func (p TaskPriority) ToHuman() string {
	if human, exist := taskPriorityHumanName[p]; exist {
		return human
	}
	return string(p)
}

func (p TaskPriority) Validate() error {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return nil
	}
	return errors.Errorf("неизвестный приоритет задачи (%v)", string(p))
}

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusAssigned   TaskStatus = "assigned"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusBlocked    TaskStatus = "blocked"
	TaskStatusCompleted  TaskStatus = "completed"
	// TaskStatusOverdue - вычисляемый статус для отображения, в БД не сохраняется
	TaskStatusOverdue TaskStatus = "overdue"
)

var taskStatusHumanName = map[TaskStatus]string{
	TaskStatusPending:    "Новая",
	TaskStatusAssigned:   "Назначена",
	TaskStatusInProgress: "В работе",
	TaskStatusBlocked:    "Заблокирована",
	TaskStatusCompleted:  "Завершена",
	TaskStatusOverdue:    "Просрочена",
}

func (s TaskStatus) ToHuman() string {
	if human, exist := taskStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s TaskStatus) Validate() error {
	switch s {
	case TaskStatusPending, TaskStatusAssigned, TaskStatusInProgress,
		TaskStatusBlocked, TaskStatusCompleted:
		return nil
	case TaskStatusOverdue:
		return errors.New("статус 'просрочена' вычисляемый, задачу нельзя перевести в него вручную")
	}
	return errors.Errorf("неизвестный статус задачи (%v)", string(s))
}

// допустимые ручные переходы, назначение и завершение идут отдельными операциями
var taskStatusTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusAssigned:   {TaskStatusInProgress},
	TaskStatusInProgress: {TaskStatusAssigned},
}

// CanTransitTo проверяет допустимость ручного перевода статуса
func (s TaskStatus) CanTransitTo(next TaskStatus) bool {
	for _, allowed := range taskStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StatusOnCreate задача с исполнителем сразу назначена, без исполнителя - новая
func StatusOnCreate(hasAssignee bool) TaskStatus {
	if hasAssignee {
		return TaskStatusAssigned
	}
	return TaskStatusPending
}

type CommentType string

const (
	CommentTypeGeneral       CommentType = "general"
	CommentTypeIssueReport   CommentType = "issue_report"
	CommentTypeClarification CommentType = "clarification"
)

func (c CommentType) Validate() error {
	switch c {
	case CommentTypeGeneral, CommentTypeIssueReport, CommentTypeClarification:
		return nil
	}
	return errors.Errorf("неизвестный тип комментария (%v)", string(c))
}
