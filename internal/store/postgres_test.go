package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorpulse/earnings-cli/internal/rates"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_SaveEstimate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO estimates`).
		WithArgs(pgxmock.AnyArg(), "tiktok", "tech", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	rec, err := s.SaveEstimate(context.Background(), rates.TikTok, testInput("tech"), testCalcResult())
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetEstimate_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, platform, input, result, created_at FROM estimates WHERE id = \$1`).
		WithArgs("nonexistent-id").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetEstimate(context.Background(), "nonexistent-id")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetEstimate_Found(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "platform", "input", "result", "created_at"}).
		AddRow("abc-123", "youtube",
			[]byte(`{"followers":50000,"engagementRate":4.2,"niche":"tech","location":"us","postFrequency":4,"averageViews":18000}`),
			[]byte(`{"platform":"youtube","monthlyEarnings":999.5,"yearlyEarnings":11994,"breakdown":{"adRevenue":999.5}}`),
			now)
	mock.ExpectQuery(`SELECT id, platform, input, result, created_at FROM estimates WHERE id = \$1`).
		WithArgs("abc-123").
		WillReturnRows(rows)

	rec, err := s.GetEstimate(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, rates.YouTube, rec.Platform)
	assert.InDelta(t, 999.5, rec.Result.MonthlyEarnings, 1e-9)
	assert.Equal(t, "tech", rec.Input.Niche)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListEstimates_Filtered(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	rows := pgxmock.NewRows([]string{"id", "platform", "input", "result", "created_at"})
	mock.ExpectQuery(`SELECT id, platform, input, result, created_at FROM estimates WHERE true AND platform = \$1`).
		WithArgs("tiktok", 50).
		WillReturnRows(rows)

	records, err := s.ListEstimates(context.Background(), Filter{Platform: "tiktok", Limit: 50})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteOlderThan(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM estimates WHERE created_at < \$1`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	n, err := s.DeleteOlderThan(context.Background(), time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
