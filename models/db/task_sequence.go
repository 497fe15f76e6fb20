package dbmodels

// TaskSequence счетчик номеров основных задач в рамках года.
// Хранится отдельно от задач, чтобы удаление задачи не приводило
// к повторной выдаче номера.
type TaskSequence struct {
	Year       int `gorm:"primaryKey"`
	LastNumber int
}
