package taskhandler

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shop-tasks-backend/db"
	employeestore "shop-tasks-backend/lib/employee/store"
	labelstore "shop-tasks-backend/lib/dicts/label/store"
	notificationhandler "shop-tasks-backend/lib/notification"
	commentstore "shop-tasks-backend/lib/task/comment-store"
	taskstore "shop-tasks-backend/lib/task/store"
	tasknumberhandler "shop-tasks-backend/lib/task-number"
	"shop-tasks-backend/models"
	taskapimodels "shop-tasks-backend/models/api/task"
	dbmodels "shop-tasks-backend/models/db"
)

const allocLockKey = "task-number-alloc"

func subAllocLockKey(parentID string) string {
	return fmt.Sprintf("%s-%s", allocLockKey, parentID)
}

type Provider interface {
	Create(data taskapimodels.TaskCreateData, createdBy string) (view *taskapimodels.TaskView, hMsg string, err error)
	GetByID(id string) (view *taskapimodels.TaskView, err error)
	List(filter taskapimodels.TaskFilter) (list []taskapimodels.TaskView, rowCount int64, err error)
	ListOverdue() (list []taskapimodels.TaskView, err error)
	Update(id string, data taskapimodels.TaskUpdateData) (hMsg string, err error)
	Delete(id string) (hMsg string, err error)
	Assign(id, employeeID string, assignedBy string) (hMsg string, err error)
	Complete(id string, byEmployeeID *string) (hMsg string, err error)
	CreateSubtask(parentID string, data taskapimodels.TaskCreateData, createdBy string) (view *taskapimodels.TaskView, hMsg string, err error)
	Unblock(id string) (hMsg string, err error)
	AddComment(taskID string, data taskapimodels.CommentCreateData, employeeID, userID *string) (view *taskapimodels.CommentView, hMsg string, err error)
	ListComments(taskID string) (list []taskapimodels.CommentView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         taskstore.NewInstance(db.DB),
		commentStore:  commentstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		labelStore:    labelstore.NewInstance(db.DB),
		nowFn:         time.Now,
	}
}

type impl struct {
	store         taskstore.Provider
	commentStore  commentstore.Provider
	employeeStore employeestore.Provider
	labelStore    labelstore.Provider
	nowFn         func() time.Time
}

func (i impl) getLogger(taskID string) *log.Entry {
	return log.WithField("task_id", taskID)
}

func (i impl) Create(data taskapimodels.TaskCreateData, createdBy string) (*taskapimodels.TaskView, string, error) {
	if err := data.Validate(); err != nil {
		return nil, err.Error(), nil
	}
	dueDate, err := data.GetDueDate()
	if err != nil {
		return nil, err.Error(), nil
	}
	dueTime, err := data.GetDueTime()
	if err != nil {
		return nil, err.Error(), nil
	}
	if data.AssignedTo != nil {
		employee, err := i.employeeStore.GetByID(*data.AssignedTo)
		if err != nil {
			return nil, "", err
		}
		if employee == nil {
			return nil, "Сотрудник не найден", nil
		}
		if !employee.IsActive {
			return nil, "Нельзя назначить задачу уволенному сотруднику", nil
		}
	}
	labels, hMsg, err := i.resolveLabels(data.LabelIDs)
	if err != nil || hMsg != "" {
		return nil, hMsg, err
	}

	rec := dbmodels.Task{
		Title:       data.Title,
		Description: data.Description,
		TaskType:    data.TaskType,
		Priority:    data.Priority,
		Status:      models.StatusOnCreate(data.AssignedTo != nil),
		DueDate:     dueDate,
		DueTime:     dueTime,
		AssignedTo:  data.AssignedTo,
		CreatedBy:   &createdBy,
	}
	if data.AssignedTo != nil {
		rec.AssignedBy = &createdBy
	}
	recID, err := i.createNumbered(&rec)
	if err != nil {
		return nil, "", err
	}
	if len(labels) != 0 {
		if err = i.store.ReplaceLabels(recID, labels); err != nil {
			return nil, "", err
		}
	}
	if rec.AssignedTo != nil {
		i.notifyAssigned(recID)
	}
	view, err := i.GetByID(recID)
	return view, "", err
}

func (i impl) GetByID(id string) (*taskapimodels.TaskView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	view := taskapimodels.TaskConvert(*rec, i.nowFn())
	subtasks, err := i.store.ListSubtasks(id)
	if err != nil {
		return nil, err
	}
	view.Subtasks = make([]taskapimodels.TaskView, 0, len(subtasks))
	for _, subtask := range subtasks {
		view.Subtasks = append(view.Subtasks, taskapimodels.TaskConvert(subtask, i.nowFn()))
	}
	return &view, nil
}

func (i impl) List(filter taskapimodels.TaskFilter) ([]taskapimodels.TaskView, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	list, rowCount, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]taskapimodels.TaskView, 0, len(list))
	for _, rec := range list {
		result = append(result, taskapimodels.TaskConvert(rec, i.nowFn()))
	}
	return result, rowCount, nil
}

func (i impl) ListOverdue() ([]taskapimodels.TaskView, error) {
	list, err := i.store.ListOverdue(i.nowFn())
	if err != nil {
		return nil, err
	}
	result := make([]taskapimodels.TaskView, 0, len(list))
	for _, rec := range list {
		result = append(result, taskapimodels.TaskConvert(rec, i.nowFn()))
	}
	return result, nil
}

func (i impl) Update(id string, data taskapimodels.TaskUpdateData) (string, error) {
	if err := data.Validate(); err != nil {
		return err.Error(), nil
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Задача не найдена", nil
	}
	updMap := map[string]interface{}{}
	if data.Title != nil {
		updMap["title"] = *data.Title
	}
	if data.Description != nil {
		updMap["description"] = *data.Description
	}
	if data.Priority != nil {
		updMap["priority"] = *data.Priority
	}
	if data.Status != nil && *data.Status != rec.Status {
		if !rec.Status.CanTransitTo(*data.Status) {
			return fmt.Sprintf("Переход из статуса '%s' в статус '%s' недопустим", rec.Status.ToHuman(), data.Status.ToHuman()), nil
		}
		updMap["status"] = *data.Status
	}
	if data.DueDate != nil {
		dueDate, _ := time.Parse("2006-01-02", *data.DueDate)
		updMap["due_date"] = dueDate
	}
	if data.DueTime != nil {
		if *data.DueTime == "" {
			updMap["due_time"] = nil
		} else {
			updMap["due_time"] = *data.DueTime
		}
	}
	if data.AssignedTo != nil {
		return "Смена исполнителя выполняется операцией назначения", nil
	}
	if err = i.store.Update(id, updMap); err != nil {
		return "", err
	}
	if data.LabelIDs != nil {
		labels, hMsg, err := i.resolveLabels(data.LabelIDs)
		if err != nil || hMsg != "" {
			return hMsg, err
		}
		if err = i.store.ReplaceLabels(id, labels); err != nil {
			return "", err
		}
	}
	return "", nil
}

// Delete удаляет задачу вместе с подзадачами, номера удаленных задач
// повторно не используются
func (i impl) Delete(id string) (string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Задача не найдена", nil
	}
	subtasks, err := i.store.ListSubtasks(id)
	if err != nil {
		return "", err
	}
	for _, subtask := range subtasks {
		if err = i.store.Delete(subtask.ID); err != nil {
			return "", err
		}
	}
	if err = i.store.Delete(id); err != nil {
		return "", err
	}
	return "", nil
}

func (i impl) Assign(id, employeeID string, assignedBy string) (string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Задача не найдена", nil
	}
	employee, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return "", err
	}
	if employee == nil {
		return "Сотрудник не найден", nil
	}
	if !employee.IsActive {
		return "Нельзя назначить задачу уволенному сотруднику", nil
	}
	updMap := map[string]interface{}{
		"assigned_to": employeeID,
		"assigned_by": assignedBy,
	}
	// переназначение допустимо в любом статусе, статус меняется только у новой задачи
	if rec.Status == models.TaskStatusPending {
		updMap["status"] = models.TaskStatusAssigned
	}
	if err = i.store.Update(id, updMap); err != nil {
		return "", err
	}
	i.notifyAssigned(id)
	return "", nil
}

// Complete завершает задачу, повторное завершение не является ошибкой
func (i impl) Complete(id string, byEmployeeID *string) (string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Задача не найдена", nil
	}
	if rec.Status == models.TaskStatusCompleted {
		return "", nil
	}
	now := i.nowFn()
	updMap := map[string]interface{}{
		"status":       models.TaskStatusCompleted,
		"completed_at": now,
	}
	if err = i.store.Update(id, updMap); err != nil {
		return "", err
	}
	notificationhandler.Instance.NotifyOwner(models.NotificationTaskCompleted,
		"Задача завершена",
		fmt.Sprintf("Задача %s '%s' завершена", rec.TaskNumber, rec.Title))
	return "", nil
}

// CreateSubtask создает подзадачу и блокирует родительскую задачу
// до завершения всех подзадач
func (i impl) CreateSubtask(parentID string, data taskapimodels.TaskCreateData, createdBy string) (*taskapimodels.TaskView, string, error) {
	if err := data.Validate(); err != nil {
		return nil, err.Error(), nil
	}
	parent, err := i.store.GetByID(parentID)
	if err != nil {
		return nil, "", err
	}
	if parent == nil {
		return nil, "Родительская задача не найдена", nil
	}
	if parent.IsSubtask {
		return nil, "Подзадача не может иметь собственных подзадач", nil
	}
	if parent.Status == models.TaskStatusCompleted {
		return nil, "Нельзя добавить подзадачу к завершенной задаче", nil
	}
	dueDate, err := data.GetDueDate()
	if err != nil {
		return nil, err.Error(), nil
	}
	dueTime, err := data.GetDueTime()
	if err != nil {
		return nil, err.Error(), nil
	}
	if data.AssignedTo != nil {
		employee, err := i.employeeStore.GetByID(*data.AssignedTo)
		if err != nil {
			return nil, "", err
		}
		if employee == nil {
			return nil, "Сотрудник не найден", nil
		}
	}

	rec := dbmodels.Task{
		Title:        data.Title,
		Description:  data.Description,
		TaskType:     models.TaskTypeOneTime,
		Priority:     data.Priority,
		Status:       models.StatusOnCreate(data.AssignedTo != nil),
		DueDate:      dueDate,
		DueTime:      dueTime,
		AssignedTo:   data.AssignedTo,
		CreatedBy:    &createdBy,
		ParentTaskID: &parentID,
		IsSubtask:    true,
	}
	var recID string
	attempt := func() error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			txStore := taskstore.NewInstance(tx)
			numberProvider := tasknumberhandler.NewInstanceWithTx(tx)
			number, txErr := numberProvider.AllocateSub(*parent)
			if txErr != nil {
				return txErr
			}
			rec.TaskNumber = number
			recID, txErr = txStore.Create(rec)
			if txErr != nil {
				return txErr
			}
			// создание подзадачи блокирует родителя
			if parent.Status != models.TaskStatusBlocked {
				return txStore.Update(parentID, map[string]interface{}{
					"status": models.TaskStatusBlocked,
				})
			}
			return nil
		})
	}
	// гонка параллельных подзадач одного родителя дает одинаковый суффикс -S<n>,
	// уникальный индекс по номеру отсекает вторую вставку
	if err = tasknumberhandler.WithAllocLock(context.Background(), subAllocLockKey(parentID), attempt); err != nil {
		return nil, "", errors.Wrap(err, "ошибка создания подзадачи")
	}
	if rec.AssignedTo != nil {
		i.notifyAssigned(recID)
	}
	notificationhandler.Instance.NotifyOwner(models.NotificationSubtaskCreated,
		"Создана подзадача",
		fmt.Sprintf("К задаче %s добавлена подзадача '%s'", parent.TaskNumber, rec.Title))
	view, err := i.GetByID(recID)
	return view, "", err
}

// Unblock снимает блокировку, допускается только когда все подзадачи завершены
func (i impl) Unblock(id string) (string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Задача не найдена", nil
	}
	if rec.Status != models.TaskStatusBlocked {
		return "Задача не заблокирована", nil
	}
	openCount, err := i.store.CountOpenSubtasks(id)
	if err != nil {
		return "", err
	}
	if openCount > 0 {
		return fmt.Sprintf("Остались незавершенные подзадачи (%d)", openCount), nil
	}
	nextStatus := models.StatusOnCreate(rec.AssignedTo != nil)
	if err = i.store.Update(id, map[string]interface{}{"status": nextStatus}); err != nil {
		return "", err
	}
	if rec.AssignedTo != nil && rec.AssignedEmployee != nil {
		notificationhandler.Instance.NotifyEmployee(models.NotificationBlockerResolved, *rec.AssignedEmployee,
			fmt.Sprintf("Блокировка снята: задача %s '%s' снова в работе", rec.TaskNumber, rec.Title))
	}
	return "", nil
}

func (i impl) AddComment(taskID string, data taskapimodels.CommentCreateData, employeeID, userID *string) (*taskapimodels.CommentView, string, error) {
	if err := data.Validate(); err != nil {
		return nil, err.Error(), nil
	}
	rec, err := i.store.GetByID(taskID)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "Задача не найдена", nil
	}
	comment := dbmodels.TaskComment{
		TaskID:              taskID,
		CommentByEmployeeID: employeeID,
		CommentByUserID:     userID,
		CommentText:         data.CommentText,
		CommentType:         data.CommentType,
	}
	commentID, err := i.commentStore.Create(comment)
	if err != nil {
		return nil, "", err
	}
	comment.ID = commentID
	view := taskapimodels.CommentConvert(comment)
	return &view, "", nil
}

func (i impl) ListComments(taskID string) ([]taskapimodels.CommentView, error) {
	list, err := i.commentStore.List(taskID)
	if err != nil {
		return nil, err
	}
	result := make([]taskapimodels.CommentView, 0, len(list))
	for _, rec := range list {
		result = append(result, taskapimodels.CommentConvert(rec))
	}
	return result, nil
}

// createNumbered выдает номер и сохраняет задачу в одной транзакции.
// Выдача сериализуется блокировкой, при гонке за номер попытка повторяется один раз
func (i impl) createNumbered(rec *dbmodels.Task) (recID string, err error) {
	attempt := func() error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			numberProvider := tasknumberhandler.NewInstanceWithTx(tx)
			number, txErr := numberProvider.AllocateMain(i.nowFn())
			if txErr != nil {
				return txErr
			}
			rec.TaskNumber = number
			recID, txErr = taskstore.NewInstance(tx).Create(*rec)
			return txErr
		})
	}
	if err = tasknumberhandler.WithAllocLock(context.Background(), allocLockKey, attempt); err != nil {
		return "", errors.Wrap(err, "ошибка создания задачи")
	}
	return recID, nil
}

func (i impl) notifyAssigned(taskID string) {
	rec, err := i.store.GetByID(taskID)
	if err != nil || rec == nil || rec.AssignedEmployee == nil {
		return
	}
	message := fmt.Sprintf("Вам назначена задача %s: %s (срок %s)",
		rec.TaskNumber, rec.Title, rec.DueDate.Format("02.01.2006"))
	if rec.DueTime != nil {
		message = fmt.Sprintf("%s до %s", message, *rec.DueTime)
	}
	messageID := notificationhandler.Instance.NotifyEmployee(models.NotificationTaskAssigned, *rec.AssignedEmployee, message)
	if messageID != nil {
		err = i.store.Update(taskID, map[string]interface{}{"telegram_message_id": *messageID})
		if err != nil {
			i.getLogger(taskID).WithError(err).Error("Ошибка сохранения идентификатора сообщения телеграм")
		}
	}
}

func (i impl) resolveLabels(labelIDs []string) (labels []dbmodels.EmployeeLabel, hMsg string, err error) {
	if len(labelIDs) == 0 {
		return []dbmodels.EmployeeLabel{}, "", nil
	}
	labels, err = i.labelStore.ListByIDs(labelIDs)
	if err != nil {
		return nil, "", err
	}
	if len(labels) != len(labelIDs) {
		return nil, "Часть указанных меток не найдена", nil
	}
	return labels, "", nil
}

