package routinestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	routineapimodels "shop-tasks-backend/models/api/routine"
	dbmodels "shop-tasks-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Routine) (id string, err error)
	GetByID(id string) (rec *dbmodels.Routine, err error)
	Update(id string, updMap map[string]interface{}) error
	List(filter routineapimodels.RoutineFilter) (list []dbmodels.Routine, err error)
	ListActive() (list []dbmodels.Routine, err error)
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

func (i impl) Create(rec dbmodels.Routine) (id string, err error) {
	err = i.db.
		Omit("Labels.*").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Routine, error) {
	rec := dbmodels.Routine{}
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Routine{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(filter routineapimodels.RoutineFilter) (list []dbmodels.Routine, err error) {
	list = []dbmodels.Routine{}
	tx := i.db.
		Preload("Labels").
		Order("created_at DESC")
	if filter.IsActive != nil {
		tx = tx.Where("is_active = ?", *filter.IsActive)
	}
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListActive() (list []dbmodels.Routine, err error) {
	list = []dbmodels.Routine{}
	err = i.db.
		Where("is_active = ?", true).
		Preload("Labels").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ReplaceLabels(id string, labels []dbmodels.EmployeeLabel) error {
	rec := dbmodels.Routine{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Model(&rec).
		Association("Labels").
		Replace(labels)
}
