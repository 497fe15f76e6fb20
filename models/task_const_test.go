package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusOnCreate(t *testing.T) {
	require.Equal(t, TaskStatusAssigned, StatusOnCreate(true))
	require.Equal(t, TaskStatusPending, StatusOnCreate(false))
}

func TestTaskStatusCanTransitTo(t *testing.T) {
	cases := []struct {
		name    string
		from    TaskStatus
		to      TaskStatus
		allowed bool
	}{
		{"назначена - в работу", TaskStatusAssigned, TaskStatusInProgress, true},
		{"в работе - назад в назначена", TaskStatusInProgress, TaskStatusAssigned, true},
		{"новая - в работу", TaskStatusPending, TaskStatusInProgress, false},
		{"новая - назначена", TaskStatusPending, TaskStatusAssigned, false},
		{"заблокирована - в работу", TaskStatusBlocked, TaskStatusInProgress, false},
		{"завершена - в работу", TaskStatusCompleted, TaskStatusInProgress, false},
		{"назначена - завершена", TaskStatusAssigned, TaskStatusCompleted, false},
		{"в работе - заблокирована", TaskStatusInProgress, TaskStatusBlocked, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.allowed, tc.from.CanTransitTo(tc.to))
		})
	}
}

func TestTaskStatusValidate(t *testing.T) {
	for _, s := range []TaskStatus{TaskStatusPending, TaskStatusAssigned,
		TaskStatusInProgress, TaskStatusBlocked, TaskStatusCompleted} {
		require.NoError(t, s.Validate())
	}

	require.Error(t, TaskStatusOverdue.Validate())
	require.Error(t, TaskStatus("done").Validate())
}

func TestTaskTypeValidate(t *testing.T) {
	require.NoError(t, TaskTypeRoutine.Validate())
	require.NoError(t, TaskTypeOneTime.Validate())
	require.Error(t, TaskType("weekly").Validate())
}

func TestTaskPriorityValidate(t *testing.T) {
	require.NoError(t, TaskPriorityUrgent.Validate())
	require.Error(t, TaskPriority("critical").Validate())
}
