package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dfalcao/metacompra/internal/database/repository"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)
}

func TestForecastThreeInstallments(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	_, items := newTestRepo(t)
	fc := &ForecastService{Items: items, Now: fixedNow}

	_, err := items.Insert(ctx, repository.Item{
		Kind: repository.KindBill, Name: "TV", PriceCents: 60000,
		Installments: ptr(3), InstallmentDay: ptr(5),
	})
	require.NoError(t, err)

	got, err := fc.Monthly(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)

	require.Equal(t, "March 2026", got[0].Label)
	require.Equal(t, "April 2026", got[1].Label)
	require.Equal(t, "May 2026", got[2].Label)
	require.Equal(t, "June 2026", got[3].Label)
	for i := 0; i < 3; i++ {
		require.Equal(t, int64(60000), got[i].TotalCents)
	}
	require.Zero(t, got[3].TotalCents)
}

func TestForecastNilInstallmentsIsOneMonth(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	_, items := newTestRepo(t)
	fc := &ForecastService{Items: items, Now: fixedNow}

	_, err := items.Insert(ctx, repository.Item{
		Kind: repository.KindBill, Name: "One-off", PriceCents: 4200,
	})
	require.NoError(t, err)

	got, err := fc.Monthly(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), got[0].Month)
	require.Equal(t, int64(4200), got[0].TotalCents)
	require.Zero(t, got[1].TotalCents)
}

func TestForecastAccumulatesAcrossBills(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	_, items := newTestRepo(t)
	fc := &ForecastService{Items: items, Now: fixedNow}

	_, err := items.Insert(ctx, repository.Item{
		Kind: repository.KindBill, Name: "a", PriceCents: 10000, Installments: ptr(3),
	})
	require.NoError(t, err)
	_, err = items.Insert(ctx, repository.Item{
		Kind: repository.KindBill, Name: "b", PriceCents: 5000, Installments: ptr(1),
	})
	require.NoError(t, err)

	got, err := fc.Monthly(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	require.Equal(t, int64(15000), got[0].TotalCents)
	require.Equal(t, int64(10000), got[1].TotalCents)
	require.Equal(t, int64(10000), got[2].TotalCents)
	require.Zero(t, got[3].TotalCents)
}

func TestForecastExcludesPaidAndGoals(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	_, items := newTestRepo(t)
	fc := &ForecastService{Items: items, Now: fixedNow}

	_, err := items.Insert(ctx, repository.Item{
		Kind: repository.KindBill, Name: "paid off", PriceCents: 9000,
		Installments: ptr(6), Purchased: true,
	})
	require.NoError(t, err)
	_, err = items.Insert(ctx, repository.Item{
		Kind: repository.KindGoal, Name: "console", PriceCents: 350000,
	})
	require.NoError(t, err)

	got, err := fc.Monthly(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestForecastEmptyWithoutBills(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	_, items := newTestRepo(t)
	fc := &ForecastService{Items: items, Now: fixedNow}

	got, err := fc.Monthly(ctx)
	require.NoError(t, err)
	require.Empty(t, got) // no trailing entry fabricated from nothing
}

func TestForecastCrossesYearBoundary(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	_, items := newTestRepo(t)
	fc := &ForecastService{
		Items: items,
		Now:   func() time.Time { return time.Date(2026, time.November, 20, 0, 0, 0, 0, time.UTC) },
	}

	_, err := items.Insert(ctx, repository.Item{
		Kind: repository.KindBill, Name: "phone", PriceCents: 12500, Installments: ptr(3),
	})
	require.NoError(t, err)

	got, err := fc.Monthly(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	require.Equal(t, "November 2026", got[0].Label)
	require.Equal(t, "December 2026", got[1].Label)
	require.Equal(t, "January 2027", got[2].Label)
	require.Equal(t, "February 2027", got[3].Label)
	require.Zero(t, got[3].TotalCents)
}
