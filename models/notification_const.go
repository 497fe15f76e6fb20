package models

type NotificationKind string

const (
	NotificationTaskAssigned       NotificationKind = "task_assigned"
	NotificationTaskCompleted      NotificationKind = "task_completed"
	NotificationAttendanceReminder NotificationKind = "attendance_reminder"
	NotificationTaskOverdue        NotificationKind = "task_overdue"
	NotificationDailyReport        NotificationKind = "daily_report"
	NotificationSubtaskCreated     NotificationKind = "subtask_created"
	NotificationBlockerResolved    NotificationKind = "blocker_resolved"
)

var notificationKindHumanName = map[NotificationKind]string{
	NotificationTaskAssigned:       "Задача назначена",
	NotificationTaskCompleted:      "Задача завершена",
	NotificationAttendanceReminder: "Напоминание отметиться",
	NotificationTaskOverdue:        "Задача просрочена",
	NotificationDailyReport:        "Ежедневный отчет",
	NotificationSubtaskCreated:     "Создана подзадача",
	NotificationBlockerResolved:    "Блокировка снята",
}

func (k NotificationKind) ToHuman() string {
	if human, exist := notificationKindHumanName[k]; exist {
		return human
	}
	return string(k)
}
