package tasknumberhandler

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFormatMain(t *testing.T) {
	require.Equal(t, "T2024-001", FormatMain(2024, 1))
	require.Equal(t, "T2024-042", FormatMain(2024, 42))
	require.Equal(t, "T2025-100", FormatMain(2025, 100))
	// после 999 номер просто растет в ширину
	require.Equal(t, "T2025-1000", FormatMain(2025, 1000))
}

func TestFormatSub(t *testing.T) {
	require.Equal(t, "T2024-001-S1", FormatSub("T2024-001", 1))
	require.Equal(t, "T2024-001-S2", FormatSub("T2024-001", 2))
	require.Equal(t, "T2025-017-S10", FormatSub("T2025-017", 10))
}

func TestIsDuplicateErr(t *testing.T) {
	require.True(t, IsDuplicateErr(gorm.ErrDuplicatedKey))
	require.True(t, IsDuplicateErr(errors.Wrap(gorm.ErrDuplicatedKey, "создание задачи")))
	require.True(t, IsDuplicateErr(errors.New(`ERROR: duplicate key value violates unique constraint "idx_tasks_task_number"`)))
	require.False(t, IsDuplicateErr(errors.New("соединение с базой потеряно")))
}

func TestWithAllocLock(t *testing.T) {
	ctx := context.Background()

	t.Run("конфликт номера повторяется один раз", func(t *testing.T) {
		calls := 0
		err := WithAllocLock(ctx, "alloc-retry-once", func() error {
			calls++
			if calls == 1 {
				return errors.New("duplicate key value violates unique constraint")
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 2, calls)
	})

	t.Run("повторный конфликт возвращается как ошибка", func(t *testing.T) {
		calls := 0
		err := WithAllocLock(ctx, "alloc-retry-exhausted", func() error {
			calls++
			return gorm.ErrDuplicatedKey
		})
		require.Error(t, err)
		require.Equal(t, 2, calls)
	})

	t.Run("прочие ошибки не повторяются", func(t *testing.T) {
		calls := 0
		err := WithAllocLock(ctx, "alloc-no-retry", func() error {
			calls++
			return errors.New("нет соединения с базой")
		})
		require.Error(t, err)
		require.Equal(t, 1, calls)
	})
}
