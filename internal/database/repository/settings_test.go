package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSettingsSingleton(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	db := newTestDB(t)
	repo := NewSettingsRepo(db)

	// migration seeds the row; Ensure on every startup must not add another
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Ensure(ctx))
	}
	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM settings").Scan(&count))
	require.Equal(t, 1, count)

	s, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Zero(t, s.SavedCents)
	require.Zero(t, s.SalaryCents)
}

func TestSavedAmountRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	repo := NewSettingsRepo(newTestDB(t))

	require.NoError(t, repo.SetSavedAmount(ctx, 150050))
	got, err := repo.SavedAmount(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(150050), got)

	// last write wins
	require.NoError(t, repo.SetSavedAmount(ctx, 200000))
	got, err = repo.SavedAmount(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(200000), got)
}

func TestSalaryRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	repo := NewSettingsRepo(newTestDB(t))

	require.NoError(t, repo.SetSalary(ctx, 520000))
	got, err := repo.Salary(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(520000), got)
}
