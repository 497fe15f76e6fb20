package dbmodels

import (
	"shop-tasks-backend/models"
)

// Routine шаблон регулярной задачи, по нему генерируются задачи на дату
type Routine struct {
	BaseModel
	Title       string `gorm:"type:varchar(200)"`
	Description string

	RecurrenceType models.RecurrenceType `gorm:"type:varchar(20)"`
	// время, на которое ставится срок сгенерированной задачи, формат 15:04
	RecurrenceTime string `gorm:"type:varchar(5)"`
	// для еженедельных 1-7 (пн-вс), для ежемесячных 1-31, для ежедневных не заполняется
	RecurrenceDay *int

	IsActive bool `gorm:"default:true"`

	CreatedBy *string `gorm:"type:varchar(36)"`

	Labels []EmployeeLabel `gorm:"many2many:routine_labels;"`
}
