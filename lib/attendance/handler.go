package attendancehandler

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"shop-tasks-backend/db"
	attendancestore "shop-tasks-backend/lib/attendance/store"
	employeestore "shop-tasks-backend/lib/employee/store"
	xlsexport "shop-tasks-backend/lib/export/xls"
	filestorage "shop-tasks-backend/lib/file-storage"
	notificationhandler "shop-tasks-backend/lib/notification"
	"shop-tasks-backend/lib/utils/helpers"
	"shop-tasks-backend/models"
	apimodels "shop-tasks-backend/models/api"
	attendanceapimodels "shop-tasks-backend/models/api/attendance"
	dbmodels "shop-tasks-backend/models/db"
)

type Provider interface {
	Mark(req attendanceapimodels.MarkRequest) (view *attendanceapimodels.AttendanceView, hMsg string, err error)
	Update(id string, req attendanceapimodels.UpdateRequest) (hMsg string, err error)
	Summary(date time.Time) (summary *attendanceapimodels.Summary, err error)
	History(filter attendanceapimodels.HistoryFilter) (list []attendanceapimodels.AttendanceView, err error)
	RangeReport(startDate, endDate time.Time, employeeID *string) (report *attendanceapimodels.RangeReport, err error)
	ExportRangeReport(ctx context.Context, startDate, endDate time.Time) (objectName string, err error)
	AutoMarkAbsent(ctx context.Context, onDate time.Time) (markedCount int, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         attendancestore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		nowFn:         time.Now,
	}
}

type impl struct {
	store         attendancestore.Provider
	employeeStore employeestore.Provider
	nowFn         func() time.Time
}

func (i impl) getLogger(employeeID string) *log.Entry {
	return log.WithField("employee_id", employeeID)
}

// Mark отметка за день, повторная отметка перезаписывает статус
func (i impl) Mark(req attendanceapimodels.MarkRequest) (*attendanceapimodels.AttendanceView, string, error) {
	if err := req.Validate(); err != nil {
		return nil, err.Error(), nil
	}
	employee, err := i.employeeStore.GetByID(req.EmployeeID)
	if err != nil {
		return nil, "", err
	}
	if employee == nil {
		return nil, "Сотрудник не найден", nil
	}
	if !employee.IsActive {
		return nil, "Нельзя отметить уволенного сотрудника", nil
	}
	now := i.nowFn()
	date := req.GetDate(now)
	rec := dbmodels.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     req.Status,
		MarkedAt:   &now,
		AutoMarked: false,
	}
	recID, err := i.store.Upsert(rec)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка сохранения отметки посещаемости")
	}
	saved, err := i.store.GetByID(recID)
	if err != nil {
		return nil, "", err
	}
	if saved == nil {
		// при перезаписи существующей отметки ид возвращается от старой записи
		saved, err = i.store.GetByEmployeeAndDate(req.EmployeeID, date)
		if err != nil || saved == nil {
			return nil, "", err
		}
	}
	view := attendanceapimodels.AttendanceConvert(*saved)
	return &view, "", nil
}

func (i impl) Update(id string, req attendanceapimodels.UpdateRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return err.Error(), nil
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Отметка не найдена", nil
	}
	now := i.nowFn()
	updMap := map[string]interface{}{
		"status":      req.Status,
		"marked_at":   now,
		"auto_marked": false,
	}
	return "", i.store.Update(id, updMap)
}

// Summary сводка за день, not_marked считается как разница между
// активными сотрудниками и отмеченными
func (i impl) Summary(date time.Time) (*attendanceapimodels.Summary, error) {
	day := helpers.ToDate(date)
	totalActive, err := i.employeeStore.CountActive()
	if err != nil {
		return nil, err
	}
	list, err := i.store.ListByDate(day)
	if err != nil {
		return nil, err
	}
	summary := attendanceapimodels.Summary{
		Date:           day.Format(apimodels.DateFormat),
		TotalEmployees: int(totalActive),
	}
	marked := 0
	for _, rec := range list {
		marked++
		switch rec.Status {
		case models.AttendanceStatusPresent:
			summary.Present++
		case models.AttendanceStatusAbsent:
			summary.Absent++
		case models.AttendanceStatusHalfDay:
			summary.HalfDay++
		case models.AttendanceStatusLeave:
			summary.Leave++
		}
	}
	summary.NotMarked = int(totalActive) - marked
	if summary.NotMarked < 0 {
		// отметки уволенных сотрудников остаются в истории
		summary.NotMarked = 0
	}
	return &summary, nil
}

func (i impl) History(filter attendanceapimodels.HistoryFilter) ([]attendanceapimodels.AttendanceView, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	now := i.nowFn()
	startDate := helpers.ToDate(now.AddDate(0, 0, -30))
	endDate := helpers.ToDate(now)
	if filter.StartDate != nil {
		startDate, _ = time.Parse(apimodels.DateFormat, *filter.StartDate)
	}
	if filter.EndDate != nil {
		endDate, _ = time.Parse(apimodels.DateFormat, *filter.EndDate)
	}
	list, err := i.store.ListRange(startDate, endDate, filter.EmployeeID)
	if err != nil {
		return nil, err
	}
	result := make([]attendanceapimodels.AttendanceView, 0, len(list))
	for _, rec := range list {
		result = append(result, attendanceapimodels.AttendanceConvert(rec))
	}
	return result, nil
}

func (i impl) RangeReport(startDate, endDate time.Time, employeeID *string) (*attendanceapimodels.RangeReport, error) {
	if endDate.Before(startDate) {
		return nil, errors.New("конечная дата раньше начальной")
	}
	list, err := i.store.ListRange(startDate, endDate, employeeID)
	if err != nil {
		return nil, err
	}
	report := attendanceapimodels.RangeReport{
		StartDate:    startDate.Format(apimodels.DateFormat),
		EndDate:      endDate.Format(apimodels.DateFormat),
		TotalDays:    int(endDate.Sub(startDate).Hours()/24) + 1,
		TotalRecords: len(list),
		Records:      make([]attendanceapimodels.AttendanceView, 0, len(list)),
	}
	for _, rec := range list {
		switch rec.Status {
		case models.AttendanceStatusPresent:
			report.Present++
		case models.AttendanceStatusAbsent:
			report.Absent++
		case models.AttendanceStatusHalfDay:
			report.HalfDay++
		case models.AttendanceStatusLeave:
			report.Leave++
		}
		if rec.AutoMarked {
			report.AutoMarkedCount++
		}
		report.Records = append(report.Records, attendanceapimodels.AttendanceConvert(rec))
	}
	return &report, nil
}

// ExportRangeReport выгружает отчет в xlsx и кладет в хранилище отчетов
func (i impl) ExportRangeReport(ctx context.Context, startDate, endDate time.Time) (string, error) {
	report, err := i.RangeReport(startDate, endDate, nil)
	if err != nil {
		return "", err
	}
	buf, err := xlsexport.Instance.ExportAttendanceReport(*report)
	if err != nil {
		return "", err
	}
	objectName := fmt.Sprintf("attendance/%s_%s_%s.xlsx",
		startDate.Format(apimodels.DateFormat), endDate.Format(apimodels.DateFormat), uuid.New().String())
	err = filestorage.Instance.UploadReport(ctx, objectName, bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return "", errors.Wrap(err, "ошибка выгрузки отчета в хранилище")
	}
	return objectName, nil
}

// AutoMarkAbsent проставляет 'отсутствует' всем активным сотрудникам
// без отметки за день, ручные отметки не перезаписываются
func (i impl) AutoMarkAbsent(ctx context.Context, onDate time.Time) (int, error) {
	day := helpers.ToDate(onDate)
	employees, err := i.employeeStore.ListActive()
	if err != nil {
		return 0, err
	}
	now := i.nowFn()
	markedCount := 0
	for _, employee := range employees {
		if helpers.IsContextDone(ctx) {
			break
		}
		rec := dbmodels.Attendance{
			EmployeeID: employee.ID,
			Date:       day,
			Status:     models.AttendanceStatusAbsent,
			MarkedAt:   &now,
			AutoMarked: true,
		}
		inserted, err := i.store.InsertIfAbsent(rec)
		if err != nil {
			i.getLogger(employee.ID).WithError(err).Error("Ошибка автоотметки отсутствия")
			continue
		}
		if inserted {
			markedCount++
			notificationhandler.Instance.NotifyEmployee(models.NotificationAttendanceReminder, employee,
				"Вы не отметили посещаемость, проставлена отметка 'отсутствует'")
		}
	}
	return markedCount, nil
}
