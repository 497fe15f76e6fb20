package taskhandler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	notificationhandler "shop-tasks-backend/lib/notification"
	"shop-tasks-backend/models"
	employeeapimodels "shop-tasks-backend/models/api/employee"
	notificationapimodels "shop-tasks-backend/models/api/notification"
	taskapimodels "shop-tasks-backend/models/api/task"
	dbmodels "shop-tasks-backend/models/db"
)

type fakeTaskStore struct {
	tasks []dbmodels.Task
}

func (s *fakeTaskStore) Create(rec dbmodels.Task) (string, error) {
	rec.ID = fmt.Sprintf("task-%d", len(s.tasks)+1)
	s.tasks = append(s.tasks, rec)
	return rec.ID, nil
}

func (s *fakeTaskStore) GetByID(id string) (*dbmodels.Task, error) {
	for idx := range s.tasks {
		if s.tasks[idx].ID == id {
			rec := s.tasks[idx]
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *fakeTaskStore) Update(id string, updMap map[string]interface{}) error {
	for idx := range s.tasks {
		if s.tasks[idx].ID != id {
			continue
		}
		if status, ok := updMap["status"]; ok {
			s.tasks[idx].Status = status.(models.TaskStatus)
		}
		if assignedTo, ok := updMap["assigned_to"]; ok {
			value := assignedTo.(string)
			s.tasks[idx].AssignedTo = &value
		}
		if assignedBy, ok := updMap["assigned_by"]; ok {
			value := assignedBy.(string)
			s.tasks[idx].AssignedBy = &value
		}
		if completedAt, ok := updMap["completed_at"]; ok {
			value := completedAt.(time.Time)
			s.tasks[idx].CompletedAt = &value
		}
		if messageID, ok := updMap["telegram_message_id"]; ok {
			value := messageID.(int64)
			s.tasks[idx].TelegramMessageID = &value
		}
		return nil
	}
	return nil
}

func (s *fakeTaskStore) Delete(id string) error {
	for idx := range s.tasks {
		if s.tasks[idx].ID == id {
			s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeTaskStore) List(filter taskapimodels.TaskFilter) ([]dbmodels.Task, int64, error) {
	return s.tasks, int64(len(s.tasks)), nil
}

func (s *fakeTaskStore) ListOverdue(onDate time.Time) ([]dbmodels.Task, error) {
	list := []dbmodels.Task{}
	for _, rec := range s.tasks {
		if rec.IsOverdue(onDate) {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (s *fakeTaskStore) ListSubtasks(parentID string) ([]dbmodels.Task, error) {
	list := []dbmodels.Task{}
	for _, rec := range s.tasks {
		if rec.ParentTaskID != nil && *rec.ParentTaskID == parentID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (s *fakeTaskStore) CountSubtasks(parentID string) (int64, error) {
	list, _ := s.ListSubtasks(parentID)
	return int64(len(list)), nil
}

func (s *fakeTaskStore) CountOpenSubtasks(parentID string) (int64, error) {
	list, _ := s.ListSubtasks(parentID)
	count := int64(0)
	for _, rec := range list {
		if rec.Status != models.TaskStatusCompleted {
			count++
		}
	}
	return count, nil
}

func (s *fakeTaskStore) FindByRoutineAndDate(routineID string, dueDate time.Time) (*dbmodels.Task, error) {
	return nil, nil
}

func (s *fakeTaskStore) ListRecent(limit int) ([]dbmodels.Task, error) {
	return s.tasks, nil
}

func (s *fakeTaskStore) CountMainByStatus(status models.TaskStatus) (int64, error) {
	return 0, nil
}

func (s *fakeTaskStore) CountMainOverdue(onDate time.Time) (int64, error) {
	return 0, nil
}

func (s *fakeTaskStore) ReplaceLabels(id string, labels []dbmodels.EmployeeLabel) error {
	return nil
}

type fakeEmployeeStore struct {
	employees []dbmodels.Employee
}

func (s *fakeEmployeeStore) Create(rec dbmodels.Employee) (string, error) { return rec.ID, nil }

func (s *fakeEmployeeStore) GetByID(id string) (*dbmodels.Employee, error) {
	for idx := range s.employees {
		if s.employees[idx].ID == id {
			return &s.employees[idx], nil
		}
	}
	return nil, nil
}

func (s *fakeEmployeeStore) GetByTelegramUserID(tgUserID int64) (*dbmodels.Employee, error) {
	return nil, nil
}

func (s *fakeEmployeeStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (s *fakeEmployeeStore) List(filter employeeapimodels.EmployeeFilter) ([]dbmodels.Employee, error) {
	return s.employees, nil
}

func (s *fakeEmployeeStore) ListActive() ([]dbmodels.Employee, error) {
	return s.employees, nil
}

func (s *fakeEmployeeStore) CountActive() (int64, error) {
	return int64(len(s.employees)), nil
}

func (s *fakeEmployeeStore) ReplaceLabels(id string, labels []dbmodels.EmployeeLabel) error {
	return nil
}

type fakeNotifier struct {
	employeeKinds []models.NotificationKind
	ownerKinds    []models.NotificationKind
}

func (n *fakeNotifier) NotifyEmployee(kind models.NotificationKind, employee dbmodels.Employee, message string) *int64 {
	n.employeeKinds = append(n.employeeKinds, kind)
	return nil
}

func (n *fakeNotifier) NotifyOwner(kind models.NotificationKind, subject, message string) {
	n.ownerKinds = append(n.ownerKinds, kind)
}

func (n *fakeNotifier) ListForEmployee(employeeID string, limit int) ([]notificationapimodels.NotificationView, error) {
	return nil, nil
}

func (n *fakeNotifier) MarkRead(id string) (string, error) { return "", nil }

func statusPtr(s models.TaskStatus) *models.TaskStatus { return &s }

func TestAssign(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	employeeID := "emp-1"

	newHandler := func(status models.TaskStatus) (impl, *fakeTaskStore, *fakeNotifier) {
		store := &fakeTaskStore{tasks: []dbmodels.Task{{
			BaseModel:  dbmodels.BaseModel{ID: "task-1"},
			TaskNumber: "T2024-001",
			Title:      "Проверить витрину",
			Status:     status,
			DueDate:    time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		}}}
		notifier := &fakeNotifier{}
		notificationhandler.Instance = notifier
		handler := impl{
			store: store,
			employeeStore: &fakeEmployeeStore{employees: []dbmodels.Employee{{
				BaseModel: dbmodels.BaseModel{ID: employeeID},
				Name:      "Иванов",
				IsActive:  true,
			}}},
			nowFn: func() time.Time { return now },
		}
		return handler, store, notifier
	}

	t.Run("новая задача переходит в назначена", func(t *testing.T) {
		handler, store, _ := newHandler(models.TaskStatusPending)
		hMsg, err := handler.Assign("task-1", employeeID, "user-1")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.TaskStatusAssigned, store.tasks[0].Status)
		require.Equal(t, employeeID, *store.tasks[0].AssignedTo)
		require.Equal(t, "user-1", *store.tasks[0].AssignedBy)
	})

	t.Run("переназначение в работе не меняет статус", func(t *testing.T) {
		handler, store, _ := newHandler(models.TaskStatusInProgress)
		hMsg, err := handler.Assign("task-1", employeeID, "user-1")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.TaskStatusInProgress, store.tasks[0].Status)
		require.Equal(t, employeeID, *store.tasks[0].AssignedTo)
	})

	t.Run("заблокированная остается заблокированной", func(t *testing.T) {
		handler, store, _ := newHandler(models.TaskStatusBlocked)
		hMsg, err := handler.Assign("task-1", employeeID, "user-1")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.TaskStatusBlocked, store.tasks[0].Status)
	})

	t.Run("уволенному назначить нельзя", func(t *testing.T) {
		handler, store, _ := newHandler(models.TaskStatusPending)
		handler.employeeStore = &fakeEmployeeStore{employees: []dbmodels.Employee{{
			BaseModel: dbmodels.BaseModel{ID: employeeID},
			IsActive:  false,
		}}}
		hMsg, err := handler.Assign("task-1", employeeID, "user-1")
		require.NoError(t, err)
		require.Equal(t, "Нельзя назначить задачу уволенному сотруднику", hMsg)
		require.Equal(t, models.TaskStatusPending, store.tasks[0].Status)
	})
}

func TestComplete(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	newHandler := func(status models.TaskStatus) (impl, *fakeTaskStore, *fakeNotifier) {
		store := &fakeTaskStore{tasks: []dbmodels.Task{{
			BaseModel:  dbmodels.BaseModel{ID: "task-1"},
			TaskNumber: "T2024-001",
			Title:      "Проверить витрину",
			Status:     status,
			DueDate:    time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		}}}
		notifier := &fakeNotifier{}
		notificationhandler.Instance = notifier
		handler := impl{
			store: store,
			nowFn: func() time.Time { return now },
		}
		return handler, store, notifier
	}

	t.Run("задача завершается с отметкой времени", func(t *testing.T) {
		handler, store, notifier := newHandler(models.TaskStatusInProgress)
		hMsg, err := handler.Complete("task-1", nil)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.TaskStatusCompleted, store.tasks[0].Status)
		require.NotNil(t, store.tasks[0].CompletedAt)
		require.Equal(t, now, *store.tasks[0].CompletedAt)
		require.Equal(t, []models.NotificationKind{models.NotificationTaskCompleted}, notifier.ownerKinds)
	})

	t.Run("повторное завершение не является ошибкой", func(t *testing.T) {
		handler, store, notifier := newHandler(models.TaskStatusCompleted)
		hMsg, err := handler.Complete("task-1", nil)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.TaskStatusCompleted, store.tasks[0].Status)
		require.Empty(t, notifier.ownerKinds)
	})

	t.Run("заблокированная завершается напрямую", func(t *testing.T) {
		handler, store, notifier := newHandler(models.TaskStatusBlocked)
		hMsg, err := handler.Complete("task-1", nil)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.TaskStatusCompleted, store.tasks[0].Status)
		require.NotNil(t, store.tasks[0].CompletedAt)
		require.Equal(t, []models.NotificationKind{models.NotificationTaskCompleted}, notifier.ownerKinds)
	})
}

func TestUnblock(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	employeeID := "emp-1"

	newHandler := func(assignedTo *string, subtaskStatuses ...models.TaskStatus) (impl, *fakeTaskStore) {
		parentID := "task-1"
		tasks := []dbmodels.Task{{
			BaseModel:  dbmodels.BaseModel{ID: parentID},
			TaskNumber: "T2024-001",
			Status:     models.TaskStatusBlocked,
			AssignedTo: assignedTo,
			DueDate:    time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		}}
		for n, status := range subtaskStatuses {
			tasks = append(tasks, dbmodels.Task{
				BaseModel:    dbmodels.BaseModel{ID: fmt.Sprintf("sub-%d", n+1)},
				Status:       status,
				ParentTaskID: &parentID,
				IsSubtask:    true,
			})
		}
		store := &fakeTaskStore{tasks: tasks}
		notificationhandler.Instance = &fakeNotifier{}
		return impl{
			store: store,
			nowFn: func() time.Time { return now },
		}, store
	}

	t.Run("блокировка не снимается при открытых подзадачах", func(t *testing.T) {
		handler, store := newHandler(nil, models.TaskStatusCompleted, models.TaskStatusAssigned)
		hMsg, err := handler.Unblock("task-1")
		require.NoError(t, err)
		require.Equal(t, "Остались незавершенные подзадачи (1)", hMsg)
		require.Equal(t, models.TaskStatusBlocked, store.tasks[0].Status)
	})

	t.Run("с исполнителем возвращается в назначена", func(t *testing.T) {
		handler, store := newHandler(&employeeID, models.TaskStatusCompleted)
		hMsg, err := handler.Unblock("task-1")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.TaskStatusAssigned, store.tasks[0].Status)
	})

	t.Run("без исполнителя возвращается в новую", func(t *testing.T) {
		handler, store := newHandler(nil, models.TaskStatusCompleted)
		hMsg, err := handler.Unblock("task-1")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.TaskStatusPending, store.tasks[0].Status)
	})

	t.Run("незаблокированную снять нельзя", func(t *testing.T) {
		handler, store := newHandler(nil)
		store.tasks[0].Status = models.TaskStatusAssigned
		hMsg, err := handler.Unblock("task-1")
		require.NoError(t, err)
		require.Equal(t, "Задача не заблокирована", hMsg)
	})
}

func TestUpdateStatusTransitions(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	newHandler := func(status models.TaskStatus) (impl, *fakeTaskStore) {
		store := &fakeTaskStore{tasks: []dbmodels.Task{{
			BaseModel: dbmodels.BaseModel{ID: "task-1"},
			Status:    status,
			DueDate:   time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		}}}
		return impl{
			store: store,
			nowFn: func() time.Time { return now },
		}, store
	}

	t.Run("назначена переходит в работу", func(t *testing.T) {
		handler, store := newHandler(models.TaskStatusAssigned)
		hMsg, err := handler.Update("task-1", taskapimodels.TaskUpdateData{
			Status: statusPtr(models.TaskStatusInProgress),
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.TaskStatusInProgress, store.tasks[0].Status)
	})

	t.Run("новая не переходит в работу напрямую", func(t *testing.T) {
		handler, store := newHandler(models.TaskStatusPending)
		hMsg, err := handler.Update("task-1", taskapimodels.TaskUpdateData{
			Status: statusPtr(models.TaskStatusInProgress),
		})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Equal(t, models.TaskStatusPending, store.tasks[0].Status)
	})

	t.Run("в просрочено перевести нельзя", func(t *testing.T) {
		handler, _ := newHandler(models.TaskStatusAssigned)
		hMsg, err := handler.Update("task-1", taskapimodels.TaskUpdateData{
			Status: statusPtr(models.TaskStatusOverdue),
		})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run("исполнитель меняется только назначением", func(t *testing.T) {
		handler, _ := newHandler(models.TaskStatusAssigned)
		employeeID := "emp-2"
		hMsg, err := handler.Update("task-1", taskapimodels.TaskUpdateData{
			AssignedTo: &employeeID,
		})
		require.NoError(t, err)
		require.Equal(t, "Смена исполнителя выполняется операцией назначения", hMsg)
	})
}
