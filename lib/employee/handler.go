package employeehandler

import (
	"shop-tasks-backend/db"
	labelstore "shop-tasks-backend/lib/dicts/label/store"
	employeestore "shop-tasks-backend/lib/employee/store"
	employeeapimodels "shop-tasks-backend/models/api/employee"
	dbmodels "shop-tasks-backend/models/db"
)

type Provider interface {
	Create(data employeeapimodels.EmployeeData) (view *employeeapimodels.EmployeeView, hMsg string, err error)
	GetByID(id string) (view *employeeapimodels.EmployeeView, err error)
	List(filter employeeapimodels.EmployeeFilter) (list []employeeapimodels.EmployeeView, err error)
	Update(id string, data employeeapimodels.EmployeeData) (hMsg string, err error)
	Deactivate(id string) (hMsg string, err error)
	Activate(id string) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:      employeestore.NewInstance(db.DB),
		labelStore: labelstore.NewInstance(db.DB),
	}
}

type impl struct {
	store      employeestore.Provider
	labelStore labelstore.Provider
}

func (i impl) Create(data employeeapimodels.EmployeeData) (*employeeapimodels.EmployeeView, string, error) {
	if err := data.Validate(); err != nil {
		return nil, err.Error(), nil
	}
	if data.TelegramUserID != nil {
		existing, err := i.store.GetByTelegramUserID(*data.TelegramUserID)
		if err != nil {
			return nil, "", err
		}
		if existing != nil {
			return nil, "Сотрудник с таким телеграм аккаунтом уже существует", nil
		}
	}
	labels, hMsg, err := i.resolveLabels(data.LabelIDs)
	if err != nil || hMsg != "" {
		return nil, hMsg, err
	}
	rec := dbmodels.Employee{
		Name:             data.Name,
		Phone:            data.Phone,
		TelegramUserID:   data.TelegramUserID,
		TelegramUserName: data.TelegramUserName,
		IsActive:         true,
	}
	recID, err := i.store.Create(rec)
	if err != nil {
		return nil, "", err
	}
	if len(labels) != 0 {
		if err = i.store.ReplaceLabels(recID, labels); err != nil {
			return nil, "", err
		}
	}
	view, err := i.GetByID(recID)
	return view, "", err
}

func (i impl) GetByID(id string) (*employeeapimodels.EmployeeView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	view := employeeapimodels.EmployeeConvert(*rec)
	return &view, nil
}

func (i impl) List(filter employeeapimodels.EmployeeFilter) ([]employeeapimodels.EmployeeView, error) {
	list, err := i.store.List(filter)
	if err != nil {
		return nil, err
	}
	result := make([]employeeapimodels.EmployeeView, 0, len(list))
	for _, rec := range list {
		result = append(result, employeeapimodels.EmployeeConvert(rec))
	}
	return result, nil
}

func (i impl) Update(id string, data employeeapimodels.EmployeeData) (string, error) {
	if err := data.Validate(); err != nil {
		return err.Error(), nil
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Сотрудник не найден", nil
	}
	if data.TelegramUserID != nil {
		existing, err := i.store.GetByTelegramUserID(*data.TelegramUserID)
		if err != nil {
			return "", err
		}
		if existing != nil && existing.ID != id {
			return "Сотрудник с таким телеграм аккаунтом уже существует", nil
		}
	}
	updMap := map[string]interface{}{
		"name":               data.Name,
		"phone":              data.Phone,
		"telegram_user_name": data.TelegramUserName,
	}
	if data.TelegramUserID != nil {
		updMap["telegram_user_id"] = *data.TelegramUserID
	}
	if err = i.store.Update(id, updMap); err != nil {
		return "", err
	}
	if data.LabelIDs != nil {
		labels, hMsg, err := i.resolveLabels(data.LabelIDs)
		if err != nil || hMsg != "" {
			return hMsg, err
		}
		if err = i.store.ReplaceLabels(id, labels); err != nil {
			return "", err
		}
	}
	return "", nil
}

// Deactivate мягкое удаление, история задач и посещаемости сохраняется
func (i impl) Deactivate(id string) (string, error) {
	return i.setActive(id, false)
}

func (i impl) Activate(id string) (string, error) {
	return i.setActive(id, true)
}

func (i impl) setActive(id string, isActive bool) (string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Сотрудник не найден", nil
	}
	if rec.IsActive == isActive {
		return "", nil
	}
	return "", i.store.Update(id, map[string]interface{}{"is_active": isActive})
}

func (i impl) resolveLabels(labelIDs []string) (labels []dbmodels.EmployeeLabel, hMsg string, err error) {
	if len(labelIDs) == 0 {
		return []dbmodels.EmployeeLabel{}, "", nil
	}
	labels, err = i.labelStore.ListByIDs(labelIDs)
	if err != nil {
		return nil, "", err
	}
	if len(labels) != len(labelIDs) {
		return nil, "Часть указанных меток не найдена", nil
	}
	return labels, "", nil
}
