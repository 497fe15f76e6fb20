package dashboardapimodels

import (
	attendanceapimodels "shop-tasks-backend/models/api/attendance"
	taskapimodels "shop-tasks-backend/models/api/task"
)

type TaskStats struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Overdue    int `json:"overdue"` // вычисляется по сроку, не по сохраненному статусу
}

type StatsView struct {
	Attendance  attendanceapimodels.Summary  `json:"attendance"`
	Tasks       TaskStats                    `json:"tasks"`
	RecentTasks []taskapimodels.TaskView     `json:"recent_tasks"`
}
