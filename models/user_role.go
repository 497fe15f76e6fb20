package models

type UserRole string

const (
	UserRoleOwner    UserRole = "owner"
	UserRoleAdmin    UserRole = "admin"
	UserRoleEmployee UserRole = "employee"
)

var roleHumanName = map[UserRole]string{
	UserRoleOwner:    "Владелец",
	UserRoleAdmin:    "Администратор",
	UserRoleEmployee: "Сотрудник",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsManager() bool {
	return r == UserRoleOwner || r == UserRoleAdmin
}

const SystemUser = "Система"
