package dbmodels

import (
	"time"

	"shop-tasks-backend/models"
)

// Attendance отметка посещаемости, не более одной записи на сотрудника в день
type Attendance struct {
	BaseModel
	EmployeeID string    `gorm:"type:varchar(36);uniqueIndex:idx_attendance_employee_date"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID"`
	Date       time.Time `gorm:"type:date;index;uniqueIndex:idx_attendance_employee_date"`
	Status     models.AttendanceStatus `gorm:"type:varchar(20)"`
	MarkedAt   *time.Time
	AutoMarked bool
}
