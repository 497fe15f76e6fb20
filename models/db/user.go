package dbmodels

import (
	"shop-tasks-backend/models"
)

// User пользователь панели управления (владелец/администратор магазина)
type User struct {
	BaseModel
	UserName string  `gorm:"type:varchar(50);uniqueIndex"`
	Email    *string `gorm:"type:varchar(255);uniqueIndex"`
	Password string  `gorm:"type:varchar(255)"`
	Role     models.UserRole
}

func (u User) GetDisplayName() string {
	if u.UserName != "" {
		return u.UserName
	}
	if u.Email != nil {
		return *u.Email
	}
	return u.ID
}
