package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// DaemonTransaction is one movement as reported by the wallet daemon.
// Account fields carry raw daemon account names; translating them to
// user-facing display names is up to the caller.
type DaemonTransaction struct {
	Account       string
	Address       string
	Category      string
	Amount        decimal.Decimal
	Fee           decimal.Decimal
	Confirmations int64
	TxID          string
	Time          int64
	Comment       string
	OtherAccount  string
}

// DaemonGateway is the single outbound client to the wallet daemon's RPC
// interface. Implementations attempt each call exactly once: transport
// failures and timeouts surface as errors without retry, daemon-reported
// faults are returned untouched for the fault translator to classify.
type DaemonGateway interface {
	// GetNewAddress makes the daemon issue a new address accruing to the
	// given account.
	GetNewAddress(ctx context.Context, account string) (string, error)
	// GetAccountAddress returns the daemon's current receiving address of an
	// account.
	GetAccountAddress(ctx context.Context, account string) (string, error)
	// SetAccount reassigns a daemon address to the given account.
	SetAccount(ctx context.Context, address, account string) error
	// Move reassigns balance between two accounts inside the shared wallet,
	// with no network broadcast. The comment is omitted from the wire call
	// when nil.
	Move(
		ctx context.Context, fromAccount, toAccount string,
		amount decimal.Decimal, minConf int, comment *string,
	) (bool, error)
	// SendFrom broadcasts an on-chain transaction from an account's balance
	// to a raw address and returns the transaction id. Trailing comment
	// arguments are omitted from the wire call when nil.
	SendFrom(
		ctx context.Context, fromAccount, toAddress string,
		amount decimal.Decimal, minConf int, comment, commentTo *string,
	) (string, error)
	// GetBalance returns the spendable balance of an account.
	GetBalance(ctx context.Context, account string, minConf int) (decimal.Decimal, error)
	// GetReceivedByAddress returns the total received by a single address.
	GetReceivedByAddress(ctx context.Context, address string, minConf int) (decimal.Decimal, error)
	// GetReceivedByAccount returns the total received by an account.
	GetReceivedByAccount(ctx context.Context, account string, minConf int) (decimal.Decimal, error)
	// ListTransactions returns the last count movements of an account.
	ListTransactions(ctx context.Context, account string, count int) ([]DaemonTransaction, error)
	// ValidateAddress returns the daemon's verdict on an address, raw.
	ValidateAddress(ctx context.Context, address string) (map[string]interface{}, error)
	// GetBlockCount returns the number of blocks in the longest chain.
	GetBlockCount(ctx context.Context) (int64, error)
	// GetConnectionCount returns the daemon's peer count.
	GetConnectionCount(ctx context.Context) (int64, error)
	// GetDifficulty returns the current proof-of-work difficulty.
	GetDifficulty(ctx context.Context) (decimal.Decimal, error)
	// GetInfo returns the daemon's state info object, raw.
	GetInfo(ctx context.Context) (map[string]interface{}, error)
}
