package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	attendanceapimodels "shop-tasks-backend/models/api/attendance"
)

type Provider interface {
	ExportAttendanceReport(report attendanceapimodels.RangeReport) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var attendanceHeaders = []string{"Сотрудник", "Дата", "Статус", "Время отметки", "Автоотметка"}

func (i impl) ExportAttendanceReport(report attendanceapimodels.RangeReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, attendanceHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(report.Records) != 0 {
		row, err = writeAttendanceData(f, sheet, report.Records, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Посещаемость")
	return f.WriteToBuffer()
}

func writeAttendanceData(f *excelize.File, sheet string, list []attendanceapimodels.AttendanceView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(attendanceHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Сотрудник"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.EmployeeName); err != nil {
			return row, err
		}

		// "Дата"
		col++
		if err := writeColumn(f, sheet, col, row, item.Date); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, item.StatusName); err != nil {
			return row, err
		}

		// "Время отметки"
		col++
		if item.MarkedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.MarkedAt.Format("02.01.2006 15:04")); err != nil {
				return row, err
			}
		}

		// "Автоотметка"
		col++
		value := ""
		if item.AutoMarked {
			value = "Да"
		}
		if err := writeColumn(f, sheet, col, row, value); err != nil {
			return row, err
		}
	}
	return row, nil
}
