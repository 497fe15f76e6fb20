package dbmodels

// EmployeeLabel метка для группировки сотрудников (уборщик, охрана, касса и тд)
type EmployeeLabel struct {
	BaseModel
	Name  string `gorm:"type:varchar(50);uniqueIndex"`
	Color string `gorm:"type:varchar(7)"` // hex цвет для интерфейса, например #FF5733
}

// Employee сотрудник магазина, общается с системой через телеграм бота
type Employee struct {
	BaseModel
	UserID           *string `gorm:"type:varchar(36)"`
	Name             string  `gorm:"type:varchar(100)"`
	Phone            string  `gorm:"type:varchar(20)"`
	TelegramUserID   *int64  `gorm:"uniqueIndex"`
	TelegramUserName string  `gorm:"type:varchar(50)"`
	IsActive         bool    `gorm:"default:true"`

	Labels []EmployeeLabel `gorm:"many2many:employee_label_assignments;"`
}
