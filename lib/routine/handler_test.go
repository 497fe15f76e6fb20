package routinehandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shop-tasks-backend/models"
	routineapimodels "shop-tasks-backend/models/api/routine"
	dbmodels "shop-tasks-backend/models/db"
)

type fakeRoutineStore struct {
	routines []dbmodels.Routine
	labels   map[string][]dbmodels.EmployeeLabel
}

func (f *fakeRoutineStore) Create(rec dbmodels.Routine) (string, error) {
	rec.ID = "routine-1"
	f.routines = append(f.routines, rec)
	return rec.ID, nil
}

func (f *fakeRoutineStore) GetByID(id string) (*dbmodels.Routine, error) {
	for idx := range f.routines {
		if f.routines[idx].ID == id {
			rec := f.routines[idx]
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeRoutineStore) Update(id string, updMap map[string]interface{}) error {
	for idx := range f.routines {
		if f.routines[idx].ID != id {
			continue
		}
		if v, ok := updMap["recurrence_type"]; ok {
			f.routines[idx].RecurrenceType = v.(models.RecurrenceType)
		}
		if v, ok := updMap["recurrence_day"]; ok {
			if v == nil {
				f.routines[idx].RecurrenceDay = nil
			} else {
				day := v.(int)
				f.routines[idx].RecurrenceDay = &day
			}
		}
		if v, ok := updMap["is_active"]; ok {
			f.routines[idx].IsActive = v.(bool)
		}
	}
	return nil
}

func (f *fakeRoutineStore) List(filter routineapimodels.RoutineFilter) ([]dbmodels.Routine, error) {
	return f.routines, nil
}

func (f *fakeRoutineStore) ListActive() ([]dbmodels.Routine, error) {
	result := make([]dbmodels.Routine, 0)
	for _, rec := range f.routines {
		if rec.IsActive {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (f *fakeRoutineStore) ReplaceLabels(id string, labels []dbmodels.EmployeeLabel) error {
	if f.labels == nil {
		f.labels = map[string][]dbmodels.EmployeeLabel{}
	}
	f.labels[id] = labels
	return nil
}

type fakeLabelStore struct {
	known []dbmodels.EmployeeLabel
}

func (f *fakeLabelStore) Create(rec dbmodels.EmployeeLabel) (string, error) { return rec.ID, nil }
func (f *fakeLabelStore) GetByID(id string) (*dbmodels.EmployeeLabel, error) {
	return nil, nil
}
func (f *fakeLabelStore) Update(id string, updMap map[string]interface{}) error { return nil }
func (f *fakeLabelStore) Delete(id string) error                                { return nil }
func (f *fakeLabelStore) List() ([]dbmodels.EmployeeLabel, error)               { return f.known, nil }
func (f *fakeLabelStore) ListByIDs(ids []string) ([]dbmodels.EmployeeLabel, error) {
	result := make([]dbmodels.EmployeeLabel, 0)
	for _, id := range ids {
		for _, rec := range f.known {
			if rec.ID == id {
				result = append(result, rec)
			}
		}
	}
	return result, nil
}

func intPtr(v int) *int { return &v }

func TestRoutineCreate(t *testing.T) {
	newHandler := func() (impl, *fakeRoutineStore) {
		store := &fakeRoutineStore{}
		return impl{
			store:      store,
			labelStore: &fakeLabelStore{known: []dbmodels.EmployeeLabel{{BaseModel: dbmodels.BaseModel{ID: "label-1"}, Name: "зал"}}},
		}, store
	}

	t.Run("создание возвращает представление", func(t *testing.T) {
		handler, store := newHandler()
		view, hMsg, err := handler.Create(routineapimodels.RoutineData{
			Title:          "Проверка витрин",
			RecurrenceType: models.RecurrenceTypeWeekly,
			RecurrenceTime: "09:00",
			RecurrenceDay:  intPtr(6),
		}, "user-1")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.NotNil(t, view)
		require.Equal(t, "routine-1", view.ID)
		require.Equal(t, "Проверка витрин", view.Title)
		require.Equal(t, 6, *view.RecurrenceDay)
		require.True(t, view.IsActive)
		require.Len(t, store.routines, 1)
	})

	t.Run("несогласованный день отклоняется", func(t *testing.T) {
		handler, store := newHandler()
		view, hMsg, err := handler.Create(routineapimodels.RoutineData{
			Title:          "Проверка витрин",
			RecurrenceType: models.RecurrenceTypeWeekly,
			RecurrenceTime: "09:00",
			RecurrenceDay:  intPtr(8),
		}, "user-1")
		require.NoError(t, err)
		require.Equal(t, "день недели должен быть в диапазоне от 1 до 7", hMsg)
		require.Nil(t, view)
		require.Empty(t, store.routines)
	})

	t.Run("неизвестная метка отклоняется", func(t *testing.T) {
		handler, store := newHandler()
		view, hMsg, err := handler.Create(routineapimodels.RoutineData{
			Title:          "Проверка витрин",
			RecurrenceType: models.RecurrenceTypeDaily,
			RecurrenceTime: "09:00",
			LabelIDs:       []string{"label-1", "label-2"},
		}, "user-1")
		require.NoError(t, err)
		require.Equal(t, "Часть указанных меток не найдена", hMsg)
		require.Nil(t, view)
		require.Empty(t, store.routines)
	})
}

func TestRoutineDeactivate(t *testing.T) {
	store := &fakeRoutineStore{routines: []dbmodels.Routine{{
		BaseModel:      dbmodels.BaseModel{ID: "routine-1"},
		Title:          "Инвентаризация",
		RecurrenceType: models.RecurrenceTypeDaily,
		IsActive:       true,
	}}}
	handler := impl{store: store, labelStore: &fakeLabelStore{}}

	hMsg, err := handler.Deactivate("routine-1")
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.False(t, store.routines[0].IsActive)

	// повторная деактивация не является ошибкой
	hMsg, err = handler.Deactivate("routine-1")
	require.NoError(t, err)
	require.Empty(t, hMsg)

	hMsg, err = handler.Deactivate("routine-2")
	require.NoError(t, err)
	require.Equal(t, "Рутина не найдена", hMsg)
}
