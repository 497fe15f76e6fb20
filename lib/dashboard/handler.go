package dashboardhandler

import (
	"time"

	attendancehandler "shop-tasks-backend/lib/attendance"
	"shop-tasks-backend/db"
	taskstore "shop-tasks-backend/lib/task/store"
	"shop-tasks-backend/models"
	dashboardapimodels "shop-tasks-backend/models/api/dashboard"
	taskapimodels "shop-tasks-backend/models/api/task"
)

const recentTasksLimit = 10

type Provider interface {
	Stats() (view *dashboardapimodels.StatsView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		taskStore: taskstore.NewInstance(db.DB),
		nowFn:     time.Now,
	}
}

type impl struct {
	taskStore taskstore.Provider
	nowFn     func() time.Time
}

func (i impl) Stats() (*dashboardapimodels.StatsView, error) {
	now := i.nowFn()
	summary, err := attendancehandler.Instance.Summary(now)
	if err != nil {
		return nil, err
	}
	view := dashboardapimodels.StatsView{
		Attendance: *summary,
	}
	pending, err := i.taskStore.CountMainByStatus(models.TaskStatusPending)
	if err != nil {
		return nil, err
	}
	inProgress, err := i.taskStore.CountMainByStatus(models.TaskStatusInProgress)
	if err != nil {
		return nil, err
	}
	completed, err := i.taskStore.CountMainByStatus(models.TaskStatusCompleted)
	if err != nil {
		return nil, err
	}
	overdue, err := i.taskStore.CountMainOverdue(now)
	if err != nil {
		return nil, err
	}
	view.Tasks = dashboardapimodels.TaskStats{
		Pending:    int(pending),
		InProgress: int(inProgress),
		Completed:  int(completed),
		Overdue:    int(overdue),
	}
	recent, err := i.taskStore.ListRecent(recentTasksLimit)
	if err != nil {
		return nil, err
	}
	view.RecentTasks = make([]taskapimodels.TaskView, 0, len(recent))
	for _, rec := range recent {
		view.RecentTasks = append(view.RecentTasks, taskapimodels.TaskConvert(rec, now))
	}
	return &view, nil
}
