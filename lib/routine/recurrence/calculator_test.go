package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shop-tasks-backend/models"
)

func intPtr(v int) *int {
	return &v
}

func TestIsDue(t *testing.T) {
	t.Run("daily", func(t *testing.T) {
		for day := 1; day <= 7; day++ {
			due, err := IsDue(models.RecurrenceTypeDaily, nil, time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)
			require.True(t, due)
		}
	})

	t.Run("weekly", func(t *testing.T) {
		// 1 июня 2024 - суббота, день недели 6
		saturday := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		due, err := IsDue(models.RecurrenceTypeWeekly, intPtr(6), saturday)
		require.NoError(t, err)
		require.True(t, due)

		due, err = IsDue(models.RecurrenceTypeWeekly, intPtr(1), saturday)
		require.NoError(t, err)
		require.False(t, due)

		// воскресенье - день 7
		due, err = IsDue(models.RecurrenceTypeWeekly, intPtr(7), saturday.AddDate(0, 0, 1))
		require.NoError(t, err)
		require.True(t, due)
	})

	t.Run("weekly без дня", func(t *testing.T) {
		_, err := IsDue(models.RecurrenceTypeWeekly, nil, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
		require.Error(t, err)
	})

	t.Run("monthly точный день", func(t *testing.T) {
		due, err := IsDue(models.RecurrenceTypeMonthly, intPtr(31), time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.True(t, due)

		due, err = IsDue(models.RecurrenceTypeMonthly, intPtr(15), time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.False(t, due)
	})

	t.Run("monthly перенос на последний день месяца", func(t *testing.T) {
		// в апреле 30 дней: правило на 31-е срабатывает 30 апреля
		due, err := IsDue(models.RecurrenceTypeMonthly, intPtr(31), time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.True(t, due)

		due, err = IsDue(models.RecurrenceTypeMonthly, intPtr(31), time.Date(2024, 4, 29, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.False(t, due)

		// февраль невисокосного года
		due, err = IsDue(models.RecurrenceTypeMonthly, intPtr(30), time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.True(t, due)
	})
}

func TestNextOccurrence(t *testing.T) {
	t.Run("daily строго следующий день", func(t *testing.T) {
		from := time.Date(2024, 6, 3, 15, 30, 0, 0, time.UTC)
		next, err := NextOccurrence(models.RecurrenceTypeDaily, nil, from)
		require.NoError(t, err)
		require.Equal(t, time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), next)
	})

	t.Run("weekly до ближайшей субботы", func(t *testing.T) {
		// 3 июня 2024 - понедельник
		from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
		next, err := NextOccurrence(models.RecurrenceTypeWeekly, intPtr(6), from)
		require.NoError(t, err)
		require.Equal(t, time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC), next)
	})

	t.Run("weekly с самого дня срабатывания уходит на следующую неделю", func(t *testing.T) {
		// 8 июня 2024 - суббота
		from := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
		next, err := NextOccurrence(models.RecurrenceTypeWeekly, intPtr(6), from)
		require.NoError(t, err)
		require.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), next)
	})

	t.Run("monthly с переносом", func(t *testing.T) {
		from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
		next, err := NextOccurrence(models.RecurrenceTypeMonthly, intPtr(31), from)
		require.NoError(t, err)
		require.Equal(t, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), next)
	})
}

func TestValidateDay(t *testing.T) {
	require.NoError(t, ValidateDay(models.RecurrenceTypeDaily, nil))
	require.Error(t, ValidateDay(models.RecurrenceTypeDaily, intPtr(1)))

	require.NoError(t, ValidateDay(models.RecurrenceTypeWeekly, intPtr(1)))
	require.NoError(t, ValidateDay(models.RecurrenceTypeWeekly, intPtr(7)))
	require.Error(t, ValidateDay(models.RecurrenceTypeWeekly, intPtr(0)))
	require.Error(t, ValidateDay(models.RecurrenceTypeWeekly, intPtr(8)))
	require.Error(t, ValidateDay(models.RecurrenceTypeWeekly, nil))

	require.NoError(t, ValidateDay(models.RecurrenceTypeMonthly, intPtr(31)))
	require.Error(t, ValidateDay(models.RecurrenceTypeMonthly, intPtr(0)))
	require.Error(t, ValidateDay(models.RecurrenceTypeMonthly, intPtr(32)))
	require.Error(t, ValidateDay(models.RecurrenceTypeMonthly, nil))
}
