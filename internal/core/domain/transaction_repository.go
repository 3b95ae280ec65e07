package domain

import "context"

// TransactionRepository is the abstraction for any kind of database intended
// to persist audit Transactions.
type TransactionRepository interface {
	// AddTransaction appends a new audit record, assigning its ID.
	AddTransaction(ctx context.Context, tx *Transaction) error
	// GetTransactionsForAccount returns the audit records of one account,
	// newest first.
	GetTransactionsForAccount(ctx context.Context, accountName string, page Page) ([]Transaction, error)
	// GetTransactionsByTxID returns the audit records correlated with a chain
	// transaction id.
	GetTransactionsByTxID(ctx context.Context, txID string) ([]Transaction, error)
	// UpdateConfirmations raises the confirmation count of all records
	// correlated with the given txid. Confirmations are monotonic: a lower
	// value than the stored one is ignored.
	UpdateConfirmations(ctx context.Context, txID string, confirmations int64) error
}
