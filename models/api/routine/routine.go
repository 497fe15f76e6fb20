package routineapimodels

import (
	"time"

	"github.com/pkg/errors"

	"shop-tasks-backend/models"
	apimodels "shop-tasks-backend/models/api"
	employeeapimodels "shop-tasks-backend/models/api/employee"
	dbmodels "shop-tasks-backend/models/db"
)

type RoutineData struct {
	Title          string                `json:"title"`           // название рутины
	Description    string                `json:"description"`     // описание
	RecurrenceType models.RecurrenceType `json:"recurrence_type"` // daily/weekly/monthly
	RecurrenceTime string                `json:"recurrence_time"` // время срока сгенерированной задачи, формат 15:04
	RecurrenceDay  *int                  `json:"recurrence_day"`  // для weekly 1-7 (пн-вс), для monthly 1-31
	LabelIDs       []string              `json:"label_ids"`       // метки для сгенерированных задач
}

func (r RoutineData) Validate() error {
	if r.Title == "" {
		return errors.New("не указано название рутины")
	}
	if err := r.RecurrenceType.Validate(); err != nil {
		return err
	}
	if r.RecurrenceTime == "" {
		return errors.New("не указано время выполнения")
	}
	if _, err := time.Parse(apimodels.TimeFormat, r.RecurrenceTime); err != nil {
		return errors.New("время выполнения должно быть в формате 15:04")
	}
	return nil
}

type RoutineUpdateData struct {
	Title          *string                `json:"title"`
	Description    *string                `json:"description"`
	RecurrenceType *models.RecurrenceType `json:"recurrence_type"`
	RecurrenceTime *string                `json:"recurrence_time"`
	RecurrenceDay  *int                   `json:"recurrence_day"`
	IsActive       *bool                  `json:"is_active"`
	LabelIDs       []string               `json:"label_ids"`
}

func (r RoutineUpdateData) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return errors.New("название рутины не может быть пустым")
	}
	if r.RecurrenceType != nil {
		if err := r.RecurrenceType.Validate(); err != nil {
			return err
		}
	}
	if r.RecurrenceTime != nil {
		if _, err := time.Parse(apimodels.TimeFormat, *r.RecurrenceTime); err != nil {
			return errors.New("время выполнения должно быть в формате 15:04")
		}
	}
	return nil
}

type RoutineFilter struct {
	IsActive *bool `json:"is_active"` // фильтр по активности
}

type RoutineView struct {
	RoutineData
	ID                 string                        `json:"id"`
	RecurrenceTypeName string                        `json:"recurrence_type_name"`
	IsActive           bool                          `json:"is_active"`
	CreatedAt          time.Time                     `json:"created_at"`
	Labels             []employeeapimodels.LabelView `json:"labels"`
}

func RoutineConvert(rec dbmodels.Routine) RoutineView {
	result := RoutineView{
		RoutineData: RoutineData{
			Title:          rec.Title,
			Description:    rec.Description,
			RecurrenceType: rec.RecurrenceType,
			RecurrenceTime: rec.RecurrenceTime,
			RecurrenceDay:  rec.RecurrenceDay,
		},
		ID:                 rec.ID,
		RecurrenceTypeName: rec.RecurrenceType.ToHuman(),
		IsActive:           rec.IsActive,
		CreatedAt:          rec.CreatedAt,
	}
	result.Labels = make([]employeeapimodels.LabelView, 0, len(rec.Labels))
	for _, label := range rec.Labels {
		result.RoutineData.LabelIDs = append(result.RoutineData.LabelIDs, label.ID)
		result.Labels = append(result.Labels, employeeapimodels.LabelConvert(label))
	}
	return result
}
