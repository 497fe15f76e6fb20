package employeestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	employeeapimodels "shop-tasks-backend/models/api/employee"
	dbmodels "shop-tasks-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Employee) (id string, err error)
	GetByID(id string) (rec *dbmodels.Employee, err error)
	GetByTelegramUserID(tgUserID int64) (rec *dbmodels.Employee, err error)
	Update(id string, updMap map[string]interface{}) error
	List(filter employeeapimodels.EmployeeFilter) (list []dbmodels.Employee, err error)
	ListActive() (list []dbmodels.Employee, err error)
	CountActive() (count int64, err error)
	ReplaceLabels(id string, labels []dbmodels.EmployeeLabel) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Employee) (id string, err error) {
	err = i.db.
		Omit("Labels.*").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.
		Where("id = ?", id).
		Preload("Labels").
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

func (i impl) GetByTelegramUserID(tgUserID int64) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.
		Where("telegram_user_id = ?", tgUserID).
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
		Model(&dbmodels.Employee{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(filter employeeapimodels.EmployeeFilter) (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	tx := i.db.
		Preload("Labels").
		Order("name ASC")
	if filter.IsActive != nil {
		tx = tx.Where("is_active = ?", *filter.IsActive)
	}
	if filter.LabelID != nil {
		tx = tx.
			Joins("JOIN employee_label_assignments ela ON ela.employee_id = employees.id").
			Where("ela.employee_label_id = ?", *filter.LabelID)
	}
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListActive() (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	err = i.db.
		Where("is_active = ?", true).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountActive() (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Employee{}).
		Where("is_active = ?", true).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ReplaceLabels(id string, labels []dbmodels.EmployeeLabel) error {
	rec := dbmodels.Employee{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Model(&rec).
		Association("Labels").
		Replace(labels)
}
