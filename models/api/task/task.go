package taskapimodels

import (
	"time"

	"github.com/pkg/errors"

	"shop-tasks-backend/models"
	apimodels "shop-tasks-backend/models/api"
	employeeapimodels "shop-tasks-backend/models/api/employee"
	dbmodels "shop-tasks-backend/models/db"
)

type TaskCreateData struct {
	Title       string              `json:"title"`       // название задачи
	Description string              `json:"description"` // описание
	TaskType    models.TaskType     `json:"task_type"`   // тип routine/one_time
	Priority    models.TaskPriority `json:"priority"`    // приоритет
	DueDate     string              `json:"due_date"`    // срок, формат 2006-01-02
	DueTime     *string             `json:"due_time"`    // время, формат 15:04
	AssignedTo  *string             `json:"assigned_to"` // ид сотрудника исполнителя
	LabelIDs    []string            `json:"label_ids"`   // метки задачи
}

func (t TaskCreateData) Validate() error {
	if t.Title == "" {
		return errors.New("не указано название задачи")
	}
	if t.TaskType == "" {
		return errors.New("не указан тип задачи")
	}
	if err := t.TaskType.Validate(); err != nil {
		return err
	}
	if t.Priority == "" {
		return errors.New("не указан приоритет задачи")
	}
	if err := t.Priority.Validate(); err != nil {
		return err
	}
	if _, err := t.GetDueDate(); err != nil {
		return err
	}
	if _, err := t.GetDueTime(); err != nil {
		return err
	}
	return nil
}

func (t TaskCreateData) GetDueDate() (time.Time, error) {
	if t.DueDate == "" {
		return time.Time{}, errors.New("не указан срок выполнения задачи")
	}
	dueDate, err := time.Parse(apimodels.DateFormat, t.DueDate)
	if err != nil {
		return time.Time{}, errors.New("срок выполнения должен быть в формате 2006-01-02")
	}
	return dueDate, nil
}

func (t TaskCreateData) GetDueTime() (*string, error) {
	if t.DueTime == nil || *t.DueTime == "" {
		return nil, nil
	}
	if _, err := time.Parse(apimodels.TimeFormat, *t.DueTime); err != nil {
		return nil, errors.New("время выполнения должно быть в формате 15:04")
	}
	return t.DueTime, nil
}

type TaskUpdateData struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Priority    *models.TaskPriority `json:"priority"`
	Status      *models.TaskStatus   `json:"status"`
	DueDate     *string              `json:"due_date"`
	DueTime     *string              `json:"due_time"`
	AssignedTo  *string              `json:"assigned_to"`
	LabelIDs    []string             `json:"label_ids"`
}

func (t TaskUpdateData) Validate() error {
	if t.Title != nil && *t.Title == "" {
		return errors.New("название задачи не может быть пустым")
	}
	if t.Priority != nil {
		if err := t.Priority.Validate(); err != nil {
			return err
		}
	}
	if t.Status != nil {
		if err := t.Status.Validate(); err != nil {
			return err
		}
	}
	if t.DueDate != nil {
		if _, err := time.Parse(apimodels.DateFormat, *t.DueDate); err != nil {
			return errors.New("срок выполнения должен быть в формате 2006-01-02")
		}
	}
	if t.DueTime != nil && *t.DueTime != "" {
		if _, err := time.Parse(apimodels.TimeFormat, *t.DueTime); err != nil {
			return errors.New("время выполнения должно быть в формате 15:04")
		}
	}
	return nil
}

type TaskFilter struct {
	apimodels.Pagination
	Status     *models.TaskStatus   `json:"status"`      // фильтр по статусу
	EmployeeID *string              `json:"employee_id"` // фильтр по исполнителю
	Priority   *models.TaskPriority `json:"priority"`    // фильтр по приоритету
	DueDate    *string              `json:"due_date"`    // фильтр по сроку, формат 2006-01-02
}

func (f TaskFilter) Validate() error {
	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return err
		}
	}
	if f.Priority != nil {
		if err := f.Priority.Validate(); err != nil {
			return err
		}
	}
	if f.DueDate != nil {
		if _, err := time.Parse(apimodels.DateFormat, *f.DueDate); err != nil {
			return errors.New("дата фильтра должна быть в формате 2006-01-02")
		}
	}
	return nil
}

func (f TaskFilter) GetDueDate() *time.Time {
	if f.DueDate == nil {
		return nil
	}
	dueDate, err := time.Parse(apimodels.DateFormat, *f.DueDate)
	if err != nil {
		return nil
	}
	return &dueDate
}

type AssignRequest struct {
	EmployeeID string `json:"employee_id"` // ид сотрудника исполнителя
}

func (r AssignRequest) Validate() error {
	if r.EmployeeID == "" {
		return errors.New("не указан сотрудник")
	}
	return nil
}

type TaskView struct {
	ID          string                         `json:"id"`
	TaskNumber  string                         `json:"task_number"`
	Title       string                         `json:"title"`
	Description string                         `json:"description,omitempty"`
	TaskType    models.TaskType                `json:"task_type"`
	Priority    models.TaskPriority            `json:"priority"`
	Status      models.TaskStatus              `json:"status"`
	StatusName  string                         `json:"status_name"`
	IsOverdue   bool                           `json:"is_overdue"`
	DueDate     string                         `json:"due_date"`
	DueTime     string                         `json:"due_time,omitempty"`
	AssignedTo  string                         `json:"assigned_to,omitempty"`
	Assignee    string                         `json:"assignee,omitempty"`
	ParentID    string                         `json:"parent_task_id,omitempty"`
	IsSubtask   bool                           `json:"is_subtask"`
	RoutineID   string                         `json:"routine_id,omitempty"`
	CompletedAt *time.Time                     `json:"completed_at,omitempty"`
	CreatedAt   time.Time                      `json:"created_at"`
	Labels      []employeeapimodels.LabelView  `json:"labels"`
	Subtasks    []TaskView                     `json:"subtasks,omitempty"`
}

// TaskConvert собирает представление задачи, просрочка вычисляется
// относительно переданной даты
func TaskConvert(rec dbmodels.Task, onDate time.Time) TaskView {
	status := rec.EffectiveStatus(onDate)
	result := TaskView{
		ID:          rec.ID,
		TaskNumber:  rec.TaskNumber,
		Title:       rec.Title,
		Description: rec.Description,
		TaskType:    rec.TaskType,
		Priority:    rec.Priority,
		Status:      status,
		StatusName:  status.ToHuman(),
		IsOverdue:   rec.IsOverdue(onDate),
		DueDate:     rec.DueDate.Format(apimodels.DateFormat),
		IsSubtask:   rec.IsSubtask,
		CompletedAt: rec.CompletedAt,
		CreatedAt:   rec.CreatedAt,
	}
	if rec.DueTime != nil {
		result.DueTime = *rec.DueTime
	}
	if rec.AssignedTo != nil {
		result.AssignedTo = *rec.AssignedTo
	}
	if rec.AssignedEmployee != nil {
		result.Assignee = rec.AssignedEmployee.Name
	}
	if rec.ParentTaskID != nil {
		result.ParentID = *rec.ParentTaskID
	}
	if rec.RoutineID != nil {
		result.RoutineID = *rec.RoutineID
	}
	result.Labels = make([]employeeapimodels.LabelView, 0, len(rec.Labels))
	for _, label := range rec.Labels {
		result.Labels = append(result.Labels, employeeapimodels.LabelConvert(label))
	}
	return result
}
