package employeehandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	employeeapimodels "shop-tasks-backend/models/api/employee"
	dbmodels "shop-tasks-backend/models/db"
)

type fakeEmployeeStore struct {
	employees []dbmodels.Employee
}

func (f *fakeEmployeeStore) Create(rec dbmodels.Employee) (string, error) {
	rec.ID = "emp-1"
	f.employees = append(f.employees, rec)
	return rec.ID, nil
}

func (f *fakeEmployeeStore) GetByID(id string) (*dbmodels.Employee, error) {
	for idx := range f.employees {
		if f.employees[idx].ID == id {
			rec := f.employees[idx]
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeEmployeeStore) GetByTelegramUserID(tgUserID int64) (*dbmodels.Employee, error) {
	for idx := range f.employees {
		if f.employees[idx].TelegramUserID != nil && *f.employees[idx].TelegramUserID == tgUserID {
			rec := f.employees[idx]
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeEmployeeStore) Update(id string, updMap map[string]interface{}) error {
	for idx := range f.employees {
		if f.employees[idx].ID != id {
			continue
		}
		if v, ok := updMap["is_active"]; ok {
			f.employees[idx].IsActive = v.(bool)
		}
	}
	return nil
}

func (f *fakeEmployeeStore) List(filter employeeapimodels.EmployeeFilter) ([]dbmodels.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeStore) ListActive() ([]dbmodels.Employee, error) {
	result := make([]dbmodels.Employee, 0)
	for _, rec := range f.employees {
		if rec.IsActive {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (f *fakeEmployeeStore) CountActive() (int64, error) {
	list, _ := f.ListActive()
	return int64(len(list)), nil
}

func (f *fakeEmployeeStore) ReplaceLabels(id string, labels []dbmodels.EmployeeLabel) error {
	return nil
}

type fakeLabelStore struct {
	known []dbmodels.EmployeeLabel
}

func (f *fakeLabelStore) Create(rec dbmodels.EmployeeLabel) (string, error)     { return rec.ID, nil }
func (f *fakeLabelStore) GetByID(id string) (*dbmodels.EmployeeLabel, error)    { return nil, nil }
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

func int64Ptr(v int64) *int64 { return &v }

func TestEmployeeCreate(t *testing.T) {
	newHandler := func(existing ...dbmodels.Employee) (impl, *fakeEmployeeStore) {
		store := &fakeEmployeeStore{employees: existing}
		return impl{store: store, labelStore: &fakeLabelStore{}}, store
	}

	t.Run("создание возвращает представление", func(t *testing.T) {
		handler, store := newHandler()
		view, hMsg, err := handler.Create(employeeapimodels.EmployeeData{
			Name:             "Иванов Иван",
			Phone:            "+79990001122",
			TelegramUserID:   int64Ptr(100500),
			TelegramUserName: "ivanov",
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.NotNil(t, view)
		require.Equal(t, "emp-1", view.ID)
		require.Equal(t, "Иванов Иван", view.Name)
		require.True(t, view.IsActive)
		require.Len(t, store.employees, 1)
	})

	t.Run("без имени отклоняется", func(t *testing.T) {
		handler, store := newHandler()
		view, hMsg, err := handler.Create(employeeapimodels.EmployeeData{})
		require.NoError(t, err)
		require.Equal(t, "не указано имя сотрудника", hMsg)
		require.Nil(t, view)
		require.Empty(t, store.employees)
	})

	t.Run("дубль телеграм аккаунта отклоняется", func(t *testing.T) {
		handler, _ := newHandler(dbmodels.Employee{
			BaseModel:      dbmodels.BaseModel{ID: "emp-0"},
			Name:           "Петров Петр",
			TelegramUserID: int64Ptr(100500),
			IsActive:       true,
		})
		view, hMsg, err := handler.Create(employeeapimodels.EmployeeData{
			Name:           "Иванов Иван",
			TelegramUserID: int64Ptr(100500),
		})
		require.NoError(t, err)
		require.Equal(t, "Сотрудник с таким телеграм аккаунтом уже существует", hMsg)
		require.Nil(t, view)
	})
}

func TestEmployeeActivate(t *testing.T) {
	store := &fakeEmployeeStore{employees: []dbmodels.Employee{{
		BaseModel: dbmodels.BaseModel{ID: "emp-1"},
		Name:      "Иванов Иван",
		IsActive:  true,
	}}}
	handler := impl{store: store, labelStore: &fakeLabelStore{}}

	hMsg, err := handler.Deactivate("emp-1")
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.False(t, store.employees[0].IsActive)

	hMsg, err = handler.Activate("emp-1")
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.True(t, store.employees[0].IsActive)

	hMsg, err = handler.Activate("emp-2")
	require.NoError(t, err)
	require.Equal(t, "Сотрудник не найден", hMsg)
}
