package employeeapimodels

import (
	"github.com/pkg/errors"

	dbmodels "shop-tasks-backend/models/db"
)

type EmployeeData struct {
	Name             string   `json:"name"`              // имя сотрудника
	Phone            string   `json:"phone"`             // телефон
	TelegramUserID   *int64   `json:"telegram_user_id"`  // ид пользователя в телеграм
	TelegramUserName string   `json:"telegram_username"` // имя пользователя в телеграм
	LabelIDs         []string `json:"label_ids"`         // метки сотрудника
}

func (e EmployeeData) Validate() error {
	if e.Name == "" {
		return errors.New("не указано имя сотрудника")
	}
	return nil
}

type EmployeeView struct {
	EmployeeData
	ID       string      `json:"id"`
	IsActive bool        `json:"is_active"`
	Labels   []LabelView `json:"labels"`
}

func EmployeeConvert(rec dbmodels.Employee) EmployeeView {
	result := EmployeeView{
		EmployeeData: EmployeeData{
			Name:             rec.Name,
			Phone:            rec.Phone,
			TelegramUserID:   rec.TelegramUserID,
			TelegramUserName: rec.TelegramUserName,
		},
		ID:       rec.ID,
		IsActive: rec.IsActive,
	}
	result.Labels = make([]LabelView, 0, len(rec.Labels))
	for _, label := range rec.Labels {
		result.EmployeeData.LabelIDs = append(result.EmployeeData.LabelIDs, label.ID)
		result.Labels = append(result.Labels, LabelConvert(label))
	}
	return result
}

type EmployeeFilter struct {
	IsActive *bool   `json:"is_active"` // фильтр по активности
	LabelID  *string `json:"label_id"`  // фильтр по метке
}
