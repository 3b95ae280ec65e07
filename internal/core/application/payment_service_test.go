package application_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/btcbank/bankd/internal/core/application"
	"github.com/btcbank/bankd/internal/core/domain"
)

const externalAddress = "mpE1RF5yvLWQDur3n2U6xchs4UtHkkeJCt"

func TestSendToExternalAddress(t *testing.T) {
	t.Parallel()

	repoManager := newTestRepoManager(t)
	user := newTestUser(t, repoManager, "alice")
	source := newTestAddress(t, repoManager, user, "", "msource", true)
	amount := decimal.RequireFromString("0.5")

	daemon := &mockDaemonGateway{}
	daemon.On(
		"SendFrom", mock.Anything, source.AccountName(), externalAddress,
		amount, 1, (*string)(nil), (*string)(nil),
	).Return("cafebabe", nil)

	svc := application.NewPaymentService(repoManager, daemon)

	res, err := svc.SendToAddress(ctx, user, externalAddress, amount, 1, application.SendOptions{})
	require.NoError(t, err)
	require.False(t, res.Internal)
	require.Equal(t, "cafebabe", res.TxID)
	daemon.AssertNotCalled(t, "Move")

	// one audit row for the broadcast
	records, err := repoManager.TransactionRepository().GetTransactionsByTxID(ctx, "cafebabe")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, domain.CategorySend, records[0].Category)
	require.Equal(t, source.AccountName(), records[0].AccountName)
}

func TestSendToKnownUserIsInternal(t *testing.T) {
	t.Parallel()

	repoManager := newTestRepoManager(t)
	sender := newTestUser(t, repoManager, "alice")
	receiver := newTestUser(t, repoManager, "bob")
	source := newTestAddress(t, repoManager, sender, "", "msource", true)
	amount := decimal.RequireFromString("0.25")
	toAccount := domain.EncodeAccountName(receiver.ID, "tips")

	daemon := &mockDaemonGateway{}
	daemon.On(
		"Move", mock.Anything, source.AccountName(), toAccount,
		amount, 1, (*string)(nil),
	).Return(true, nil)

	svc := application.NewPaymentService(repoManager, daemon)

	res, err := svc.SendToAddress(ctx, sender, "bob+tips", amount, 1, application.SendOptions{})
	require.NoError(t, err)
	require.True(t, res.Internal)
	require.True(t, res.Moved)
	require.Empty(t, res.TxID)
	daemon.AssertNotCalled(t, "SendFrom")

	// both legs of the move are on the audit trail
	sent, err := repoManager.TransactionRepository().GetTransactionsForAccount(
		ctx, source.AccountName(), domain.NewPage(1, 10),
	)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	require.Equal(t, domain.CategorySend, sent[0].Category)
	require.Equal(t, toAccount, sent[0].Counterparty)

	received, err := repoManager.TransactionRepository().GetTransactionsForAccount(
		ctx, toAccount, domain.NewPage(1, 10),
	)
	require.NoError(t, err)
	require.Len(t, received, 1)
	require.Equal(t, domain.CategoryReceive, received[0].Category)
}

func TestSendToOnFileAddressIsInternal(t *testing.T) {
	t.Parallel()

	repoManager := newTestRepoManager(t)
	sender := newTestUser(t, repoManager, "alice")
	receiver := newTestUser(t, repoManager, "bob")
	source := newTestAddress(t, repoManager, sender, "", "msource", true)
	dest := newTestAddress(t, repoManager, receiver, "donations", externalAddress, true)
	amount := decimal.RequireFromString("1")

	daemon := &mockDaemonGateway{}
	daemon.On(
		"Move", mock.Anything, source.AccountName(), dest.AccountName(),
		amount, 1, (*string)(nil),
	).Return(true, nil)

	svc := application.NewPaymentService(repoManager, daemon)

	res, err := svc.SendToAddress(ctx, sender, externalAddress, amount, 1, application.SendOptions{})
	require.NoError(t, err)
	require.True(t, res.Internal)
	daemon.AssertNotCalled(t, "SendFrom")
}

func TestOnFileAddressOverridesToken(t *testing.T) {
	t.Parallel()

	repoManager := newTestRepoManager(t)
	sender := newTestUser(t, repoManager, "alice")
	tokenUser := newTestUser(t, repoManager, "oscar")
	addressOwner := newTestUser(t, repoManager, "bob")
	source := newTestAddress(t, repoManager, sender, "", "msource", true)
	// an on-file address that reads like another user's addressing token
	dest := newTestAddress(t, repoManager, addressOwner, "weird", "oscar", true)
	amount := decimal.RequireFromString("0.1")

	daemon := &mockDaemonGateway{}
	daemon.On(
		"Move", mock.Anything, source.AccountName(), dest.AccountName(),
		amount, 1, (*string)(nil),
	).Return(true, nil)

	svc := application.NewPaymentService(repoManager, daemon)

	res, err := svc.SendToAddress(ctx, sender, "oscar", amount, 1, application.SendOptions{})
	require.NoError(t, err)
	require.True(t, res.Internal)

	// the money went to the address owner, not to the user the token names
	daemon.AssertCalled(
		t, "Move", mock.Anything, source.AccountName(), dest.AccountName(),
		amount, 1, (*string)(nil),
	)
	_ = tokenUser
}

func TestSendAmbiguousDestination(t *testing.T) {
	t.Parallel()

	repoManager := newTestRepoManager(t)
	user := newTestUser(t, repoManager, "alice")
	newTestAddress(t, repoManager, user, "", "msource", true)

	daemon := &mockDaemonGateway{}
	svc := application.NewPaymentService(repoManager, daemon)

	// contains the separator so it can never be a chain address, but the
	// named user does not exist
	_, err := svc.SendToAddress(
		ctx, user, "ghost+payment", decimal.New(1, 0), 1, application.SendOptions{},
	)
	require.ErrorIs(t, err, domain.ErrDestinationAmbiguous)
	daemon.AssertNotCalled(t, "Move")
	daemon.AssertNotCalled(t, "SendFrom")
}

func TestSendWithoutPrimaryAccount(t *testing.T) {
	t.Parallel()

	repoManager := newTestRepoManager(t)
	user := newTestUser(t, repoManager, "alice")

	daemon := &mockDaemonGateway{}
	svc := application.NewPaymentService(repoManager, daemon)

	_, err := svc.SendToAddress(
		ctx, user, externalAddress, decimal.New(1, 0), 1, application.SendOptions{},
	)
	require.ErrorIs(t, err, domain.ErrSourceAccountNotFound)
	daemon.AssertNotCalled(t, "SendFrom")
}

func TestSendFromUnknownLabel(t *testing.T) {
	t.Parallel()

	repoManager := newTestRepoManager(t)
	user := newTestUser(t, repoManager, "alice")
	newTestAddress(t, repoManager, user, "checking", "msource", true)

	daemon := &mockDaemonGateway{}
	svc := application.NewPaymentService(repoManager, daemon)

	_, err := svc.SendFrom(
		ctx, user, "nope", externalAddress, decimal.New(1, 0), 1, application.SendOptions{},
	)
	require.ErrorIs(t, err, domain.ErrSourceAccountNotFound)
	daemon.AssertNotCalled(t, "SendFrom")
}

func TestMove(t *testing.T) {
	t.Parallel()

	repoManager := newTestRepoManager(t)
	sender := newTestUser(t, repoManager, "alice")
	receiver := newTestUser(t, repoManager, "bob")
	source := newTestAddress(t, repoManager, sender, "checking", "msource", true)
	amount := decimal.RequireFromString("0.5")
	comment := "rent"

	daemon := &mockDaemonGateway{}
	daemon.On(
		"Move", mock.Anything, source.AccountName(),
		domain.EncodeAccountName(receiver.ID, ""), amount, 1, &comment,
	).Return(true, nil)

	svc := application.NewPaymentService(repoManager, daemon)

	res, err := svc.Move(ctx, sender, "checking", "bob", amount, 1, &comment)
	require.NoError(t, err)
	require.True(t, res.Internal)
	require.True(t, res.Moved)
}

func TestMoveToUnknownUser(t *testing.T) {
	t.Parallel()

	repoManager := newTestRepoManager(t)
	sender := newTestUser(t, repoManager, "alice")
	newTestAddress(t, repoManager, sender, "checking", "msource", true)

	daemon := &mockDaemonGateway{}
	svc := application.NewPaymentService(repoManager, daemon)

	_, err := svc.Move(ctx, sender, "checking", "ghost", decimal.New(1, 0), 1, nil)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	daemon.AssertNotCalled(t, "Move")
}

func TestFailedSendLeavesNoAuditTrail(t *testing.T) {
	t.Parallel()

	repoManager := newTestRepoManager(t)
	user := newTestUser(t, repoManager, "alice")
	source := newTestAddress(t, repoManager, user, "", "msource", true)
	amount := decimal.RequireFromString("0.5")

	daemon := &mockDaemonGateway{}
	daemon.On(
		"SendFrom", mock.Anything, source.AccountName(), externalAddress,
		amount, 1, (*string)(nil), (*string)(nil),
	).Return("", errors.New("daemon: connection reset"))

	svc := application.NewPaymentService(repoManager, daemon)

	_, err := svc.SendToAddress(ctx, user, externalAddress, amount, 1, application.SendOptions{})
	require.Error(t, err)

	// the broadcast did not settle, so nothing may be on the audit trail
	records, err := repoManager.TransactionRepository().GetTransactionsForAccount(
		ctx, source.AccountName(), domain.NewPage(1, 10),
	)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestFailedMoveLeavesNoAuditTrail(t *testing.T) {
	t.Parallel()

	repoManager := newTestRepoManager(t)
	sender := newTestUser(t, repoManager, "alice")
	receiver := newTestUser(t, repoManager, "bob")
	source := newTestAddress(t, repoManager, sender, "", "msource", true)
	amount := decimal.RequireFromString("0.25")
	toAccount := domain.EncodeAccountName(receiver.ID, "tips")

	daemon := &mockDaemonGateway{}
	daemon.On(
		"Move", mock.Anything, source.AccountName(), toAccount,
		amount, 1, (*string)(nil),
	).Return(false, errors.New("daemon: insufficient funds in account"))

	svc := application.NewPaymentService(repoManager, daemon)

	_, err := svc.SendToAddress(ctx, sender, "bob+tips", amount, 1, application.SendOptions{})
	require.Error(t, err)

	// neither leg of the rejected move was recorded
	for _, account := range []string{source.AccountName(), toAccount} {
		records, err := repoManager.TransactionRepository().GetTransactionsForAccount(
			ctx, account, domain.NewPage(1, 10),
		)
		require.NoError(t, err)
		require.Empty(t, records)
	}
}

func TestMoveRejectsRawAddress(t *testing.T) {
	t.Parallel()

	repoManager := newTestRepoManager(t)
	sender := newTestUser(t, repoManager, "alice")
	newTestAddress(t, repoManager, sender, "checking", "msource", true)

	daemon := &mockDaemonGateway{}
	svc := application.NewPaymentService(repoManager, daemon)

	_, err := svc.Move(ctx, sender, "checking", externalAddress, decimal.New(1, 0), 1, nil)
	require.ErrorIs(t, err, domain.ErrInvalidAddressingToken)
	daemon.AssertNotCalled(t, "Move")
}
