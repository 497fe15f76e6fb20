package labelhandler

import (
	"shop-tasks-backend/db"
	labelstore "shop-tasks-backend/lib/dicts/label/store"
	employeeapimodels "shop-tasks-backend/models/api/employee"
	dbmodels "shop-tasks-backend/models/db"
)

type Provider interface {
	Create(data employeeapimodels.LabelData) (view *employeeapimodels.LabelView, hMsg string, err error)
	List() (list []employeeapimodels.LabelView, err error)
	Update(id string, data employeeapimodels.LabelData) (hMsg string, err error)
	Delete(id string) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: labelstore.NewInstance(db.DB),
	}
}

type impl struct {
	store labelstore.Provider
}

func (i impl) Create(data employeeapimodels.LabelData) (*employeeapimodels.LabelView, string, error) {
	if err := data.Validate(); err != nil {
		return nil, err.Error(), nil
	}
	rec := dbmodels.EmployeeLabel{
		Name:  data.Name,
		Color: data.Color,
	}
	recID, err := i.store.Create(rec)
	if err != nil {
		return nil, "", err
	}
	saved, err := i.store.GetByID(recID)
	if err != nil || saved == nil {
		return nil, "", err
	}
	view := employeeapimodels.LabelConvert(*saved)
	return &view, "", nil
}

func (i impl) List() ([]employeeapimodels.LabelView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]employeeapimodels.LabelView, 0, len(list))
	for _, rec := range list {
		result = append(result, employeeapimodels.LabelConvert(rec))
	}
	return result, nil
}

func (i impl) Update(id string, data employeeapimodels.LabelData) (string, error) {
	if err := data.Validate(); err != nil {
		return err.Error(), nil
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Метка не найдена", nil
	}
	updMap := map[string]interface{}{
		"name":  data.Name,
		"color": data.Color,
	}
	return "", i.store.Update(id, updMap)
}

func (i impl) Delete(id string) (string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Метка не найдена", nil
	}
	return "", i.store.Delete(id)
}
