package attendancehandler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	notificationhandler "shop-tasks-backend/lib/notification"
	"shop-tasks-backend/lib/utils/helpers"
	"shop-tasks-backend/models"
	attendanceapimodels "shop-tasks-backend/models/api/attendance"
	employeeapimodels "shop-tasks-backend/models/api/employee"
	notificationapimodels "shop-tasks-backend/models/api/notification"
	dbmodels "shop-tasks-backend/models/db"
)

type fakeAttendanceStore struct {
	recs   []dbmodels.Attendance
	nextID int
}

func (s *fakeAttendanceStore) key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (s *fakeAttendanceStore) find(employeeID string, date time.Time) *dbmodels.Attendance {
	for idx := range s.recs {
		if s.key(s.recs[idx].EmployeeID, s.recs[idx].Date) == s.key(employeeID, date) {
			return &s.recs[idx]
		}
	}
	return nil
}

func (s *fakeAttendanceStore) Upsert(rec dbmodels.Attendance) (string, error) {
	if existing := s.find(rec.EmployeeID, rec.Date); existing != nil {
		existing.Status = rec.Status
		existing.MarkedAt = rec.MarkedAt
		existing.AutoMarked = rec.AutoMarked
		return existing.ID, nil
	}
	s.nextID++
	rec.ID = fmt.Sprintf("att-%d", s.nextID)
	s.recs = append(s.recs, rec)
	return rec.ID, nil
}

func (s *fakeAttendanceStore) InsertIfAbsent(rec dbmodels.Attendance) (bool, error) {
	if s.find(rec.EmployeeID, rec.Date) != nil {
		return false, nil
	}
	s.nextID++
	rec.ID = fmt.Sprintf("att-%d", s.nextID)
	s.recs = append(s.recs, rec)
	return true, nil
}

func (s *fakeAttendanceStore) GetByID(id string) (*dbmodels.Attendance, error) {
	for idx := range s.recs {
		if s.recs[idx].ID == id {
			return &s.recs[idx], nil
		}
	}
	return nil, nil
}

func (s *fakeAttendanceStore) GetByEmployeeAndDate(employeeID string, date time.Time) (*dbmodels.Attendance, error) {
	return s.find(employeeID, date), nil
}

func (s *fakeAttendanceStore) Update(id string, updMap map[string]interface{}) error {
	for idx := range s.recs {
		if s.recs[idx].ID == id {
			if status, ok := updMap["status"]; ok {
				s.recs[idx].Status = status.(models.AttendanceStatus)
			}
			if autoMarked, ok := updMap["auto_marked"]; ok {
				s.recs[idx].AutoMarked = autoMarked.(bool)
			}
			return nil
		}
	}
	return nil
}

func (s *fakeAttendanceStore) ListByDate(date time.Time) ([]dbmodels.Attendance, error) {
	list := []dbmodels.Attendance{}
	for _, rec := range s.recs {
		if rec.Date.Equal(date) {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (s *fakeAttendanceStore) ListRange(startDate, endDate time.Time, employeeID *string) ([]dbmodels.Attendance, error) {
	list := []dbmodels.Attendance{}
	for _, rec := range s.recs {
		if rec.Date.Before(startDate) || rec.Date.After(endDate) {
			continue
		}
		if employeeID != nil && rec.EmployeeID != *employeeID {
			continue
		}
		list = append(list, rec)
	}
	return list, nil
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
	list := []dbmodels.Employee{}
	for _, employee := range s.employees {
		if employee.IsActive {
			list = append(list, employee)
		}
	}
	return list, nil
}

func (s *fakeEmployeeStore) CountActive() (int64, error) {
	list, _ := s.ListActive()
	return int64(len(list)), nil
}

func (s *fakeEmployeeStore) ReplaceLabels(id string, labels []dbmodels.EmployeeLabel) error {
	return nil
}

type fakeNotifier struct {
	employeeKinds []models.NotificationKind
}

func (n *fakeNotifier) NotifyEmployee(kind models.NotificationKind, employee dbmodels.Employee, message string) *int64 {
	n.employeeKinds = append(n.employeeKinds, kind)
	return nil
}

func (n *fakeNotifier) NotifyOwner(kind models.NotificationKind, subject, message string) {}

func (n *fakeNotifier) ListForEmployee(employeeID string, limit int) ([]notificationapimodels.NotificationView, error) {
	return nil, nil
}

func (n *fakeNotifier) MarkRead(id string) (string, error) { return "", nil }

func newTestHandler(employees []dbmodels.Employee) (impl, *fakeAttendanceStore) {
	notificationhandler.Instance = &fakeNotifier{}
	store := &fakeAttendanceStore{}
	return impl{
		store:         store,
		employeeStore: &fakeEmployeeStore{employees: employees},
		nowFn: func() time.Time {
			return time.Date(2024, 6, 10, 21, 15, 0, 0, time.UTC)
		},
	}, store
}

func makeEmployees(activeCount, firedCount int) []dbmodels.Employee {
	employees := []dbmodels.Employee{}
	for n := 0; n < activeCount; n++ {
		employees = append(employees, dbmodels.Employee{
			BaseModel: dbmodels.BaseModel{ID: fmt.Sprintf("emp-%d", n+1)},
			Name:      fmt.Sprintf("Сотрудник %d", n+1),
			IsActive:  true,
		})
	}
	for n := 0; n < firedCount; n++ {
		employees = append(employees, dbmodels.Employee{
			BaseModel: dbmodels.BaseModel{ID: fmt.Sprintf("fired-%d", n+1)},
			Name:      fmt.Sprintf("Уволенный %d", n+1),
			IsActive:  false,
		})
	}
	return employees
}

func TestMark(t *testing.T) {
	handler, store := newTestHandler(makeEmployees(2, 1))

	t.Run("отметка сохраняется", func(t *testing.T) {
		view, hMsg, err := handler.Mark(attendanceapimodels.MarkRequest{
			EmployeeID: "emp-1",
			Status:     models.AttendanceStatusPresent,
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.NotNil(t, view)
		require.Equal(t, "2024-06-10", view.Date)
		require.Equal(t, models.AttendanceStatusPresent, view.Status)
		require.False(t, view.AutoMarked)
	})

	t.Run("повторная отметка перезаписывает статус", func(t *testing.T) {
		view, hMsg, err := handler.Mark(attendanceapimodels.MarkRequest{
			EmployeeID: "emp-1",
			Status:     models.AttendanceStatusHalfDay,
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.AttendanceStatusHalfDay, view.Status)
		require.Len(t, store.recs, 1)
	})

	t.Run("уволенного отметить нельзя", func(t *testing.T) {
		view, hMsg, err := handler.Mark(attendanceapimodels.MarkRequest{
			EmployeeID: "fired-1",
			Status:     models.AttendanceStatusPresent,
		})
		require.NoError(t, err)
		require.Equal(t, "Нельзя отметить уволенного сотрудника", hMsg)
		require.Nil(t, view)
	})

	t.Run("неизвестный сотрудник", func(t *testing.T) {
		_, hMsg, err := handler.Mark(attendanceapimodels.MarkRequest{
			EmployeeID: "emp-404",
			Status:     models.AttendanceStatusPresent,
		})
		require.NoError(t, err)
		require.Equal(t, "Сотрудник не найден", hMsg)
	})
}

func TestSummary(t *testing.T) {
	handler, _ := newTestHandler(makeEmployees(10, 2))
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	marks := []models.AttendanceStatus{
		models.AttendanceStatusPresent,
		models.AttendanceStatusPresent,
		models.AttendanceStatusPresent,
		models.AttendanceStatusAbsent,
		models.AttendanceStatusHalfDay,
		models.AttendanceStatusLeave,
	}
	for n, status := range marks {
		_, hMsg, err := handler.Mark(attendanceapimodels.MarkRequest{
			EmployeeID: fmt.Sprintf("emp-%d", n+1),
			Status:     status,
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
	}

	summary, err := handler.Summary(day)
	require.NoError(t, err)
	require.Equal(t, 10, summary.TotalEmployees)
	require.Equal(t, 3, summary.Present)
	require.Equal(t, 1, summary.Absent)
	require.Equal(t, 1, summary.HalfDay)
	require.Equal(t, 1, summary.Leave)
	require.Equal(t, 4, summary.NotMarked)
}

func TestAutoMarkAbsent(t *testing.T) {
	handler, store := newTestHandler(makeEmployees(5, 2))
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	// две ручные отметки до автоотметки
	for _, employeeID := range []string{"emp-1", "emp-2"} {
		_, hMsg, err := handler.Mark(attendanceapimodels.MarkRequest{
			EmployeeID: employeeID,
			Status:     models.AttendanceStatusPresent,
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
	}

	markedCount, err := handler.AutoMarkAbsent(context.Background(), day)
	require.NoError(t, err)
	require.Equal(t, 3, markedCount)

	// ручные отметки не перезаписаны
	rec := store.find("emp-1", helpers.ToDate(day))
	require.NotNil(t, rec)
	require.Equal(t, models.AttendanceStatusPresent, rec.Status)
	require.False(t, rec.AutoMarked)

	rec = store.find("emp-3", helpers.ToDate(day))
	require.NotNil(t, rec)
	require.Equal(t, models.AttendanceStatusAbsent, rec.Status)
	require.True(t, rec.AutoMarked)

	// повторный запуск ничего не добавляет
	markedCount, err = handler.AutoMarkAbsent(context.Background(), day)
	require.NoError(t, err)
	require.Equal(t, 0, markedCount)
}
