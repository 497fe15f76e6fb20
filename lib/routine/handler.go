package routinehandler

import (
	"shop-tasks-backend/db"
	labelstore "shop-tasks-backend/lib/dicts/label/store"
	"shop-tasks-backend/lib/routine/recurrence"
	routinestore "shop-tasks-backend/lib/routine/store"
	routineapimodels "shop-tasks-backend/models/api/routine"
	dbmodels "shop-tasks-backend/models/db"
)

type Provider interface {
	Create(data routineapimodels.RoutineData, createdBy string) (view *routineapimodels.RoutineView, hMsg string, err error)
	GetByID(id string) (view *routineapimodels.RoutineView, err error)
	List(filter routineapimodels.RoutineFilter) (list []routineapimodels.RoutineView, err error)
	Update(id string, data routineapimodels.RoutineUpdateData) (hMsg string, err error)
	Deactivate(id string) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:      routinestore.NewInstance(db.DB),
		labelStore: labelstore.NewInstance(db.DB),
	}
}

type impl struct {
	store      routinestore.Provider
	labelStore labelstore.Provider
}

func (i impl) Create(data routineapimodels.RoutineData, createdBy string) (*routineapimodels.RoutineView, string, error) {
	if err := data.Validate(); err != nil {
		return nil, err.Error(), nil
	}
	if err := recurrence.ValidateDay(data.RecurrenceType, data.RecurrenceDay); err != nil {
		return nil, err.Error(), nil
	}
	labels, hMsg, err := i.resolveLabels(data.LabelIDs)
	if err != nil || hMsg != "" {
		return nil, hMsg, err
	}
	rec := dbmodels.Routine{
		Title:          data.Title,
		Description:    data.Description,
		RecurrenceType: data.RecurrenceType,
		RecurrenceTime: data.RecurrenceTime,
		RecurrenceDay:  data.RecurrenceDay,
		IsActive:       true,
		CreatedBy:      &createdBy,
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

func (i impl) GetByID(id string) (*routineapimodels.RoutineView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	view := routineapimodels.RoutineConvert(*rec)
	return &view, nil
}

func (i impl) List(filter routineapimodels.RoutineFilter) ([]routineapimodels.RoutineView, error) {
	list, err := i.store.List(filter)
	if err != nil {
		return nil, err
	}
	result := make([]routineapimodels.RoutineView, 0, len(list))
	for _, rec := range list {
		result = append(result, routineapimodels.RoutineConvert(rec))
	}
	return result, nil
}

func (i impl) Update(id string, data routineapimodels.RoutineUpdateData) (string, error) {
	if err := data.Validate(); err != nil {
		return err.Error(), nil
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Рутина не найдена", nil
	}
	// согласованность типа и дня проверяется по итоговым значениям
	recType := rec.RecurrenceType
	if data.RecurrenceType != nil {
		recType = *data.RecurrenceType
	}
	recDay := rec.RecurrenceDay
	if data.RecurrenceDay != nil {
		recDay = data.RecurrenceDay
	} else if data.RecurrenceType != nil && *data.RecurrenceType != rec.RecurrenceType {
		// при смене типа старый день не переносится
		recDay = nil
	}
	if data.RecurrenceType != nil || data.RecurrenceDay != nil {
		if err = recurrence.ValidateDay(recType, recDay); err != nil {
			return err.Error(), nil
		}
	}
	updMap := map[string]interface{}{}
	if data.Title != nil {
		updMap["title"] = *data.Title
	}
	if data.Description != nil {
		updMap["description"] = *data.Description
	}
	if data.RecurrenceType != nil {
		updMap["recurrence_type"] = *data.RecurrenceType
		// при смене типа без указания дня старый день сбрасывается
		if *data.RecurrenceType != rec.RecurrenceType && data.RecurrenceDay == nil {
			updMap["recurrence_day"] = nil
		}
	}
	if data.RecurrenceDay != nil {
		updMap["recurrence_day"] = *data.RecurrenceDay
	}
	if data.RecurrenceTime != nil {
		updMap["recurrence_time"] = *data.RecurrenceTime
	}
	if data.IsActive != nil {
		updMap["is_active"] = *data.IsActive
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

// Deactivate мягкое удаление, уже сгенерированные задачи остаются
func (i impl) Deactivate(id string) (string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Рутина не найдена", nil
	}
	if !rec.IsActive {
		return "", nil
	}
	return "", i.store.Update(id, map[string]interface{}{"is_active": false})
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
