package dbbadger_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btcbank/bankd/internal/core/domain"
)

func TestAddressRepository(t *testing.T) {
	t.Parallel()

	repo := newTestRepoManager(t).AddressRepository()

	addr, err := domain.NewAddress(1, "Savings", "maddr1", true)
	require.NoError(t, err)
	require.NoError(t, repo.AddAddress(ctx, addr))

	// labels resolve regardless of casing, the stored casing is kept
	found, err := repo.GetAddressByLabel(ctx, 1, "savings")
	require.NoError(t, err)
	require.Equal(t, "Savings", found.Label)
	require.Equal(t, "maddr1", found.Address)

	primary, err := repo.GetPrimaryAddress(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "maddr1", primary.Address)

	// reverse lookup from the address string
	byString, err := repo.GetAddressByString(ctx, "maddr1")
	require.NoError(t, err)
	require.NotNil(t, byString)
	require.Equal(t, uint64(1), byString.UserID)

	// an unknown address is not an error, just a miss
	miss, err := repo.GetAddressByString(ctx, "munknown")
	require.NoError(t, err)
	require.Nil(t, miss)
}

func TestAddressRepositoryLabelAlreadyBound(t *testing.T) {
	t.Parallel()

	repo := newTestRepoManager(t).AddressRepository()

	addr, err := domain.NewAddress(1, "savings", "maddr1", true)
	require.NoError(t, err)
	require.NoError(t, repo.AddAddress(ctx, addr))

	// same label with different casing collides for the same user
	dup, err := domain.NewAddress(1, "SAVINGS", "maddr2", false)
	require.NoError(t, err)
	require.ErrorIs(t, repo.AddAddress(ctx, dup), domain.ErrLabelAlreadyBound)

	// while another user can bind the very same label
	other, err := domain.NewAddress(2, "savings", "maddr3", true)
	require.NoError(t, err)
	require.NoError(t, repo.AddAddress(ctx, other))
}

func TestUpdateAddressLabel(t *testing.T) {
	t.Parallel()

	repo := newTestRepoManager(t).AddressRepository()

	addr, err := domain.NewAddress(1, "old", "maddr1", true)
	require.NoError(t, err)
	require.NoError(t, repo.AddAddress(ctx, addr))

	require.NoError(t, repo.UpdateAddressLabel(ctx, 1, "maddr1", "new"))

	_, err = repo.GetAddressByLabel(ctx, 1, "old")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	rebound, err := repo.GetAddressByLabel(ctx, 1, "new")
	require.NoError(t, err)
	require.Equal(t, "maddr1", rebound.Address)
	require.True(t, rebound.IsPrimary)
}

func TestUpdateAddressLabelConflict(t *testing.T) {
	t.Parallel()

	repo := newTestRepoManager(t).AddressRepository()

	first, err := domain.NewAddress(1, "checking", "maddr1", true)
	require.NoError(t, err)
	require.NoError(t, repo.AddAddress(ctx, first))

	second, err := domain.NewAddress(1, "savings", "maddr2", false)
	require.NoError(t, err)
	require.NoError(t, repo.AddAddress(ctx, second))

	err = repo.UpdateAddressLabel(ctx, 1, "maddr2", "checking")
	require.ErrorIs(t, err, domain.ErrLabelConflict)

	// nothing moved
	unchanged, err := repo.GetAddressByLabel(ctx, 1, "savings")
	require.NoError(t, err)
	require.Equal(t, "maddr2", unchanged.Address)
}

func TestUpdateAddressLabelWrongOwner(t *testing.T) {
	t.Parallel()

	repo := newTestRepoManager(t).AddressRepository()

	addr, err := domain.NewAddress(1, "checking", "maddr1", true)
	require.NoError(t, err)
	require.NoError(t, repo.AddAddress(ctx, addr))

	err = repo.UpdateAddressLabel(ctx, 2, "maddr1", "stolen")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
