package application_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/btcbank/bankd/internal/core/ports"
)

// **** DaemonGateway ****

type mockDaemonGateway struct {
	mock.Mock
}

func (m *mockDaemonGateway) GetNewAddress(
	ctx context.Context, account string,
) (string, error) {
	args := m.Called(ctx, account)

	var res string
	if a := args.Get(0); a != nil {
		res = a.(string)
	}
	return res, args.Error(1)
}

func (m *mockDaemonGateway) GetAccountAddress(
	ctx context.Context, account string,
) (string, error) {
	args := m.Called(ctx, account)

	var res string
	if a := args.Get(0); a != nil {
		res = a.(string)
	}
	return res, args.Error(1)
}

func (m *mockDaemonGateway) SetAccount(
	ctx context.Context, address, account string,
) error {
	args := m.Called(ctx, address, account)
	return args.Error(0)
}

func (m *mockDaemonGateway) Move(
	ctx context.Context, fromAccount, toAccount string,
	amount decimal.Decimal, minConf int, comment *string,
) (bool, error) {
	args := m.Called(ctx, fromAccount, toAccount, amount, minConf, comment)

	var res bool
	if a := args.Get(0); a != nil {
		res = a.(bool)
	}
	return res, args.Error(1)
}

func (m *mockDaemonGateway) SendFrom(
	ctx context.Context, fromAccount, toAddress string,
	amount decimal.Decimal, minConf int, comment, commentTo *string,
) (string, error) {
	args := m.Called(ctx, fromAccount, toAddress, amount, minConf, comment, commentTo)

	var res string
	if a := args.Get(0); a != nil {
		res = a.(string)
	}
	return res, args.Error(1)
}

func (m *mockDaemonGateway) GetBalance(
	ctx context.Context, account string, minConf int,
) (decimal.Decimal, error) {
	args := m.Called(ctx, account, minConf)

	var res decimal.Decimal
	if a := args.Get(0); a != nil {
		res = a.(decimal.Decimal)
	}
	return res, args.Error(1)
}

func (m *mockDaemonGateway) GetReceivedByAddress(
	ctx context.Context, address string, minConf int,
) (decimal.Decimal, error) {
	args := m.Called(ctx, address, minConf)

	var res decimal.Decimal
	if a := args.Get(0); a != nil {
		res = a.(decimal.Decimal)
	}
	return res, args.Error(1)
}

func (m *mockDaemonGateway) GetReceivedByAccount(
	ctx context.Context, account string, minConf int,
) (decimal.Decimal, error) {
	args := m.Called(ctx, account, minConf)

	var res decimal.Decimal
	if a := args.Get(0); a != nil {
		res = a.(decimal.Decimal)
	}
	return res, args.Error(1)
}

func (m *mockDaemonGateway) ListTransactions(
	ctx context.Context, account string, count int,
) ([]ports.DaemonTransaction, error) {
	args := m.Called(ctx, account, count)

	var res []ports.DaemonTransaction
	if a := args.Get(0); a != nil {
		res = a.([]ports.DaemonTransaction)
	}
	return res, args.Error(1)
}

func (m *mockDaemonGateway) ValidateAddress(
	ctx context.Context, address string,
) (map[string]interface{}, error) {
	args := m.Called(ctx, address)

	var res map[string]interface{}
	if a := args.Get(0); a != nil {
		res = a.(map[string]interface{})
	}
	return res, args.Error(1)
}

func (m *mockDaemonGateway) GetBlockCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	var res int64
	if a := args.Get(0); a != nil {
		res = a.(int64)
	}
	return res, args.Error(1)
}

func (m *mockDaemonGateway) GetConnectionCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	var res int64
	if a := args.Get(0); a != nil {
		res = a.(int64)
	}
	return res, args.Error(1)
}

func (m *mockDaemonGateway) GetDifficulty(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)

	var res decimal.Decimal
	if a := args.Get(0); a != nil {
		res = a.(decimal.Decimal)
	}
	return res, args.Error(1)
}

func (m *mockDaemonGateway) GetInfo(ctx context.Context) (map[string]interface{}, error) {
	args := m.Called(ctx)

	var res map[string]interface{}
	if a := args.Get(0); a != nil {
		res = a.(map[string]interface{})
	}
	return res, args.Error(1)
}
