package attendanceapimodels

import (
	"time"

	"github.com/pkg/errors"

	"shop-tasks-backend/models"
	apimodels "shop-tasks-backend/models/api"
	dbmodels "shop-tasks-backend/models/db"
)

type MarkRequest struct {
	EmployeeID string                  `json:"employee_id"` // ид сотрудника
	Date       string                  `json:"date"`        // дата отметки, формат 2006-01-02, по умолчанию сегодня
	Status     models.AttendanceStatus `json:"status"`      // статус посещаемости
}

func (r MarkRequest) Validate() error {
	if r.EmployeeID == "" {
		return errors.New("не указан сотрудник")
	}
	if err := r.Status.Validate(); err != nil {
		return err
	}
	if r.Date != "" {
		if _, err := time.Parse(apimodels.DateFormat, r.Date); err != nil {
			return errors.New("дата должна быть в формате 2006-01-02")
		}
	}
	return nil
}

// GetDate дата отметки, при отсутствии берется переданное "сегодня"
func (r MarkRequest) GetDate(today time.Time) time.Time {
	if r.Date == "" {
		return time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	}
	date, _ := time.Parse(apimodels.DateFormat, r.Date)
	return date
}

type UpdateRequest struct {
	Status models.AttendanceStatus `json:"status"` // новый статус посещаемости
}

func (r UpdateRequest) Validate() error {
	return r.Status.Validate()
}

type HistoryFilter struct {
	StartDate  *string `json:"start_date"`  // формат 2006-01-02
	EndDate    *string `json:"end_date"`    // формат 2006-01-02
	EmployeeID *string `json:"employee_id"` // фильтр по сотруднику
}

func (f HistoryFilter) Validate() error {
	if f.StartDate != nil {
		if _, err := time.Parse(apimodels.DateFormat, *f.StartDate); err != nil {
			return errors.New("начальная дата должна быть в формате 2006-01-02")
		}
	}
	if f.EndDate != nil {
		if _, err := time.Parse(apimodels.DateFormat, *f.EndDate); err != nil {
			return errors.New("конечная дата должна быть в формате 2006-01-02")
		}
	}
	return nil
}

type AttendanceView struct {
	ID           string                  `json:"id"`
	EmployeeID   string                  `json:"employee_id"`
	EmployeeName string                  `json:"employee_name,omitempty"`
	Date         string                  `json:"date"`
	Status       models.AttendanceStatus `json:"status"`
	StatusName   string                  `json:"status_name"`
	MarkedAt     *time.Time              `json:"marked_at,omitempty"`
	AutoMarked   bool                    `json:"auto_marked"`
}

func AttendanceConvert(rec dbmodels.Attendance) AttendanceView {
	result := AttendanceView{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date.Format(apimodels.DateFormat),
		Status:     rec.Status,
		StatusName: rec.Status.ToHuman(),
		MarkedAt:   rec.MarkedAt,
		AutoMarked: rec.AutoMarked,
	}
	if rec.Employee != nil {
		result.EmployeeName = rec.Employee.Name
	}
	return result
}

// Summary сводка посещаемости за день. Сотрудники без отметки
// считаются только в not_marked и ни в одном статусе.
type Summary struct {
	Date           string `json:"date"`
	TotalEmployees int    `json:"total_employees"`
	Present        int    `json:"present"`
	Absent         int    `json:"absent"`
	HalfDay        int    `json:"half_day"`
	Leave          int    `json:"leave"`
	NotMarked      int    `json:"not_marked"`
}

type RangeReport struct {
	StartDate       string           `json:"start_date"`
	EndDate         string           `json:"end_date"`
	TotalDays       int              `json:"total_days"`
	TotalRecords    int              `json:"total_records"`
	Present         int              `json:"present"`
	Absent          int              `json:"absent"`
	HalfDay         int              `json:"half_day"`
	Leave           int              `json:"leave"`
	AutoMarkedCount int              `json:"auto_marked_count"`
	Records         []AttendanceView `json:"records"`
}
