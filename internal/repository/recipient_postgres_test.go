package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/mailloop/sendonce/internal/domain"
	"github.com/mailloop/sendonce/internal/repository/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipientRepository_CountPending(t *testing.T) {
	ctx := context.Background()

	t.Run("counts distinct pending recipients for a group", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewRecipientRepository(db)

		mock.ExpectQuery("SELECT COUNT\\(DISTINCT sc.contact_id\\)").
			WithArgs(
				pq.Array([]int64{20, 21}),
				domain.ChannelEmail,
				pq.Array(domain.NonTerminalQueueStatuses),
			).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

		count, err := repo.CountPending(ctx, []int64{20, 21})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero pending", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewRecipientRepository(db)

		mock.ExpectQuery("SELECT COUNT\\(DISTINCT sc.contact_id\\)").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

		count, err := repo.CountPending(ctx, []int64{10})
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("rejects empty id set", func(t *testing.T) {
		db, _, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewRecipientRepository(db)

		_, err := repo.CountPending(ctx, nil)
		require.Error(t, err)
	})

	t.Run("statement composes all five exclusions", func(t *testing.T) {
		for _, table := range []string{
			"channel_opt_outs",
			"message_outcomes",
			"message_queue",
			"xcs.excluded = TRUE",
			"category_opt_outs",
		} {
			assert.Contains(t, pendingCountQuery, table)
		}
	})

	t.Run("surfaces query errors so callers fail closed", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewRecipientRepository(db)

		mock.ExpectQuery("SELECT COUNT\\(DISTINCT sc.contact_id\\)").
			WillReturnError(errors.New("statement timeout"))

		_, err := repo.CountPending(ctx, []int64{10})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to count pending recipients")
	})
}
