package employeeapimodels

import (
	"regexp"

	"github.com/pkg/errors"

	dbmodels "shop-tasks-backend/models/db"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type LabelData struct {
	Name  string `json:"name"`  // название метки
	Color string `json:"color"` // hex цвет, например #FF5733
}

func (l LabelData) Validate() error {
	if l.Name == "" {
		return errors.New("не указано название метки")
	}
	if l.Color != "" && !hexColorRe.MatchString(l.Color) {
		return errors.New("цвет метки должен быть в формате #RRGGBB")
	}
	return nil
}

type LabelView struct {
	LabelData
	ID string `json:"id"`
}

func LabelConvert(rec dbmodels.EmployeeLabel) LabelView {
	return LabelView{
		LabelData: LabelData{
			Name:  rec.Name,
			Color: rec.Color,
		},
		ID: rec.ID,
	}
}
