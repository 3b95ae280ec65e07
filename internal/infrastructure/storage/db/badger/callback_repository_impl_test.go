package dbbadger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/btcbank/bankd/internal/core/domain"
)

func TestCallbackRepository(t *testing.T) {
	t.Parallel()

	repo := newTestRepoManager(t).CallbackRepository()

	cb, err := domain.NewCallbackURL(1, "https://example.com/notify", 3)
	require.NoError(t, err)
	require.NoError(t, repo.AddCallback(ctx, cb))

	other, err := domain.NewCallbackURL(2, "http://localhost:9000/hook", 1)
	require.NoError(t, err)
	require.NoError(t, repo.AddCallback(ctx, other))

	mine, err := repo.GetCallbacksForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, cb.ID, mine[0].ID)

	all, err := repo.GetAllCallbacks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, repo.RemoveCallback(ctx, cb.ID))
	mine, err = repo.GetCallbacksForUser(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, mine)

	// removing twice is a no-op
	require.NoError(t, repo.RemoveCallback(ctx, cb.ID))
}

func TestAlertRepository(t *testing.T) {
	t.Parallel()

	repo := newTestRepoManager(t).AlertRepository()
	amount := decimal.RequireFromString("0.5")

	alert := domain.NewAlert("cb-1", "cafebabe", "maddr1", amount, "confirmed")
	added, err := repo.AddAlert(ctx, alert)
	require.NoError(t, err)
	require.True(t, added)

	// the same (callback, txid) pair never alerts twice
	dup := domain.NewAlert("cb-1", "cafebabe", "maddr1", amount, "confirmed")
	added, err = repo.AddAlert(ctx, dup)
	require.NoError(t, err)
	require.False(t, added)

	// a different callback for the same txid does
	added, err = repo.AddAlert(
		ctx, domain.NewAlert("cb-2", "cafebabe", "maddr1", amount, "confirmed"),
	)
	require.NoError(t, err)
	require.True(t, added)

	unsent, err := repo.GetUnsentAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, unsent, 2)

	require.NoError(t, repo.MarkAlertSent(ctx, alert.Key()))
	unsent, err = repo.GetUnsentAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, unsent, 1)
	require.Equal(t, "cb-2", unsent[0].CallbackID)
}
