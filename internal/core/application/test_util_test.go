package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btcbank/bankd/internal/core/domain"
	"github.com/btcbank/bankd/internal/core/ports"
	dbbadger "github.com/btcbank/bankd/internal/infrastructure/storage/db/badger"
)

var ctx = context.Background()

// newTestRepoManager opens a throwaway in-memory store.
func newTestRepoManager(t *testing.T) ports.RepoManager {
	t.Helper()

	repoManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)

	return repoManager
}

func newTestUser(
	t *testing.T, repoManager ports.RepoManager, username string,
) *domain.User {
	t.Helper()

	user, err := domain.NewUser(username, "test-password")
	require.NoError(t, err)
	require.NoError(t, repoManager.UserRepository().AddUser(ctx, user))

	return user
}

func newTestAddress(
	t *testing.T, repoManager ports.RepoManager,
	user *domain.User, label, address string, primary bool,
) *domain.Address {
	t.Helper()

	addr, err := domain.NewAddress(user.ID, label, address, primary)
	require.NoError(t, err)
	require.NoError(t, repoManager.AddressRepository().AddAddress(ctx, addr))

	return addr
}
