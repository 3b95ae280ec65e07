package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// CategorySend marks an outgoing movement.
	CategorySend = "send"
	// CategoryReceive marks an incoming movement.
	CategoryReceive = "receive"
)

// Transaction is an append-only audit record of one balance movement,
// correlated with a daemon-reported transaction when one exists. Internal
// transfers have no chain transaction and carry an empty TxID.
type Transaction struct {
	ID            uint64 `badgerhold:"key"`
	AccountName   string
	Counterparty  string
	Category      string
	Amount        decimal.Decimal
	TxID          string
	Confirmations int64
	CreatedAt     time.Time
}

// NewTransaction returns an audit record for a just-executed movement.
func NewTransaction(
	accountName, counterparty, category string,
	amount decimal.Decimal, txID string,
) *Transaction {
	return &Transaction{
		AccountName:  accountName,
		Counterparty: counterparty,
		Category:     category,
		Amount:       amount,
		TxID:         txID,
		CreatedAt:    time.Now(),
	}
}
