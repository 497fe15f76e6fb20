package attendancestore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "shop-tasks-backend/models/db"
)

type Provider interface {
	Upsert(rec dbmodels.Attendance) (id string, err error)
	InsertIfAbsent(rec dbmodels.Attendance) (inserted bool, err error)
	GetByID(id string) (rec *dbmodels.Attendance, err error)
	GetByEmployeeAndDate(employeeID string, date time.Time) (rec *dbmodels.Attendance, err error)
	Update(id string, updMap map[string]interface{}) error
	ListByDate(date time.Time) (list []dbmodels.Attendance, err error)
	ListRange(startDate, endDate time.Time, employeeID *string) (list []dbmodels.Attendance, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Upsert атомарная отметка по ключу (employee_id, date): повторная отметка
// за тот же день перезаписывает статус, а не создает дубликат
func (i impl) Upsert(rec dbmodels.Attendance) (id string, err error) {
	err = i.db.
		Omit("Employee").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "marked_at", "auto_marked", "updated_at"}),
		}).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// InsertIfAbsent вставка без перезаписи, для автоотметки:
// ручная отметка всегда сохраняется
func (i impl) InsertIfAbsent(rec dbmodels.Attendance) (inserted bool, err error) {
	result := i.db.
		Omit("Employee").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(&rec)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (i impl) GetByID(id string) (*dbmodels.Attendance, error) {
	rec := dbmodels.Attendance{}
	err := i.db.
		Where("id = ?", id).
		Preload("Employee").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByEmployeeAndDate(employeeID string, date time.Time) (*dbmodels.Attendance, error) {
	rec := dbmodels.Attendance{}
	err := i.db.
		Where("employee_id = ?", employeeID).
		Where("date = ?", date).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Attendance{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListByDate(date time.Time) (list []dbmodels.Attendance, err error) {
	list = []dbmodels.Attendance{}
	err = i.db.
		Where("date = ?", date).
		Preload("Employee").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListRange(startDate, endDate time.Time, employeeID *string) (list []dbmodels.Attendance, err error) {
	list = []dbmodels.Attendance{}
	tx := i.db.
		Where("date >= ?", startDate).
		Where("date <= ?", endDate).
		Preload("Employee").
		Order("date DESC")
	if employeeID != nil {
		tx = tx.Where("employee_id = ?", *employeeID)
	}
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
