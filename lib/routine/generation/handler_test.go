package generationhandler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	tasknumberhandler "shop-tasks-backend/lib/task-number"
	"shop-tasks-backend/models"
	routineapimodels "shop-tasks-backend/models/api/routine"
	taskapimodels "shop-tasks-backend/models/api/task"
	dbmodels "shop-tasks-backend/models/db"
)

type fakeRoutineStore struct {
	routines map[string]dbmodels.Routine
}

func (f *fakeRoutineStore) Create(rec dbmodels.Routine) (string, error) {
	f.routines[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeRoutineStore) GetByID(id string) (*dbmodels.Routine, error) {
	rec, ok := f.routines[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeRoutineStore) Update(id string, updMap map[string]interface{}) error {
	return nil
}

func (f *fakeRoutineStore) List(filter routineapimodels.RoutineFilter) ([]dbmodels.Routine, error) {
	return f.ListActive()
}

func (f *fakeRoutineStore) ListActive() ([]dbmodels.Routine, error) {
	list := []dbmodels.Routine{}
	for _, rec := range f.routines {
		if rec.IsActive {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeRoutineStore) ReplaceLabels(id string, labels []dbmodels.EmployeeLabel) error {
	return nil
}

type fakeTaskStore struct {
	tasks   map[string]dbmodels.Task
	nextSeq int
}

func (f *fakeTaskStore) Create(rec dbmodels.Task) (string, error) {
	if rec.RoutineID != nil {
		for _, existing := range f.tasks {
			if existing.RoutineID != nil && *existing.RoutineID == *rec.RoutineID && existing.DueDate.Equal(rec.DueDate) {
				return "", fmt.Errorf("duplicate key value violates unique constraint \"idx_tasks_routine_due_date\"")
			}
		}
	}
	rec.ID = fmt.Sprintf("task-%d", len(f.tasks)+1)
	f.tasks[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeTaskStore) GetByID(id string) (*dbmodels.Task, error) {
	rec, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeTaskStore) Update(id string, updMap map[string]interface{}) error { return nil }
func (f *fakeTaskStore) Delete(id string) error                               { return nil }

func (f *fakeTaskStore) List(filter taskapimodels.TaskFilter) ([]dbmodels.Task, int64, error) {
	return nil, 0, nil
}

func (f *fakeTaskStore) ListOverdue(onDate time.Time) ([]dbmodels.Task, error) { return nil, nil }
func (f *fakeTaskStore) ListSubtasks(parentID string) ([]dbmodels.Task, error) { return nil, nil }
func (f *fakeTaskStore) CountSubtasks(parentID string) (int64, error)          { return 0, nil }
func (f *fakeTaskStore) CountOpenSubtasks(parentID string) (int64, error)      { return 0, nil }

func (f *fakeTaskStore) FindByRoutineAndDate(routineID string, dueDate time.Time) (*dbmodels.Task, error) {
	for _, rec := range f.tasks {
		if rec.RoutineID != nil && *rec.RoutineID == routineID && rec.DueDate.Equal(dueDate) {
			result := rec
			return &result, nil
		}
	}
	return nil, nil
}

func (f *fakeTaskStore) ListRecent(limit int) ([]dbmodels.Task, error)                { return nil, nil }
func (f *fakeTaskStore) CountMainByStatus(status models.TaskStatus) (int64, error)    { return 0, nil }
func (f *fakeTaskStore) CountMainOverdue(onDate time.Time) (int64, error)             { return 0, nil }
func (f *fakeTaskStore) ReplaceLabels(id string, labels []dbmodels.EmployeeLabel) error { return nil }

func newTestHandler() (impl, *fakeRoutineStore, *fakeTaskStore) {
	routineStore := &fakeRoutineStore{routines: map[string]dbmodels.Routine{}}
	taskStore := &fakeTaskStore{tasks: map[string]dbmodels.Task{}}
	handler := impl{
		routineStore: routineStore,
		taskStore:    taskStore,
		createFn: func(rec dbmodels.Task) (string, error) {
			taskStore.nextSeq++
			rec.TaskNumber = tasknumberhandler.FormatMain(rec.DueDate.Year(), taskStore.nextSeq)
			return taskStore.Create(rec)
		},
	}
	return handler, routineStore, taskStore
}

func dailyRoutine(id string, active bool) dbmodels.Routine {
	return dbmodels.Routine{
		BaseModel:      dbmodels.BaseModel{ID: id},
		Title:          "Проверка кассы",
		RecurrenceType: models.RecurrenceTypeDaily,
		RecurrenceTime: "09:00",
		IsActive:       active,
	}
}

func TestGenerateIdempotent(t *testing.T) {
	handler, routineStore, taskStore := newTestHandler()
	routineStore.routines["r1"] = dailyRoutine("r1", true)
	runDate := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	created, hMsg, err := handler.Generate("r1", runDate)
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.True(t, created)
	require.Len(t, taskStore.tasks, 1)

	// повторный запуск за ту же дату не создает дубликат
	for n := 0; n < 3; n++ {
		created, hMsg, err = handler.Generate("r1", runDate)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.False(t, created)
	}
	require.Len(t, taskStore.tasks, 1)

	// следующий день дает новую задачу
	created, hMsg, err = handler.Generate("r1", runDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.True(t, created)
	require.Len(t, taskStore.tasks, 2)
}

func TestGenerateTaskFields(t *testing.T) {
	handler, routineStore, taskStore := newTestHandler()
	routineStore.routines["r1"] = dailyRoutine("r1", true)
	runDate := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

	created, hMsg, err := handler.Generate("r1", runDate)
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.True(t, created)

	var task dbmodels.Task
	for _, rec := range taskStore.tasks {
		task = rec
	}
	require.Equal(t, "Проверка кассы", task.Title)
	require.Equal(t, models.TaskTypeRoutine, task.TaskType)
	require.Equal(t, models.TaskStatusPending, task.Status)
	require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), task.DueDate)
	require.NotNil(t, task.DueTime)
	require.Equal(t, "09:00", *task.DueTime)
	require.NotNil(t, task.RoutineID)
	require.Equal(t, "r1", *task.RoutineID)
	require.Equal(t, "T2024-001", task.TaskNumber)
}

func TestGenerateInactiveRoutine(t *testing.T) {
	handler, routineStore, taskStore := newTestHandler()
	routineStore.routines["r1"] = dailyRoutine("r1", false)

	created, hMsg, err := handler.Generate("r1", time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, "Рутина неактивна, генерация недоступна", hMsg)
	require.Empty(t, taskStore.tasks)
}

func TestGenerateNotDue(t *testing.T) {
	handler, routineStore, taskStore := newTestHandler()
	day := 6 // суббота
	routine := dailyRoutine("r1", true)
	routine.RecurrenceType = models.RecurrenceTypeWeekly
	routine.RecurrenceDay = &day
	routineStore.routines["r1"] = routine

	// 3 июня 2024 - понедельник
	created, hMsg, err := handler.Generate("r1", time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.False(t, created)
	require.Empty(t, taskStore.tasks)
}

func TestGenerateAll(t *testing.T) {
	handler, routineStore, taskStore := newTestHandler()
	routineStore.routines["r1"] = dailyRoutine("r1", true)
	routineStore.routines["r2"] = dailyRoutine("r2", true)
	routineStore.routines["r3"] = dailyRoutine("r3", false)

	createdCount, err := handler.GenerateAll(context.Background(), time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 2, createdCount)
	require.Len(t, taskStore.tasks, 2)

	createdCount, err = handler.GenerateAll(context.Background(), time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 0, createdCount)
	require.Len(t, taskStore.tasks, 2)
}
