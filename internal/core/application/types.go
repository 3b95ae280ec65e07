package application

import "github.com/shopspring/decimal"

// SendOptions carries the optional trailing arguments of a payment. A nil
// field means the argument is omitted from the daemon call entirely, which
// the daemon's positional protocol distinguishes from an empty string.
type SendOptions struct {
	Comment   *string
	CommentTo *string
}

// PaymentResult reports how a payment was executed. Internal transfers
// settle immediately and have no chain transaction; broadcasts carry the
// returned txid.
type PaymentResult struct {
	Internal bool
	Moved    bool
	TxID     string
}

// ReceivedByAddressInfo is one entry of listreceivedbyaddress.
type ReceivedByAddressInfo struct {
	Address string
	Label   string
	Amount  decimal.Decimal
}

// ReceivedByAccountInfo is one entry of listreceivedbyaccount.
type ReceivedByAccountInfo struct {
	Label  string
	Amount decimal.Decimal
}

// TransactionInfo is one entry of listtransactions, with daemon account
// names already translated to user-facing display names.
type TransactionInfo struct {
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
