package bitcoind

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/btcbank/bankd/internal/core/ports"
)

type daemonGateway struct {
	*client
}

// NewDaemonGateway returns the ports.DaemonGateway implementation speaking
// the bitcoind wallet RPC protocol. Optional trailing parameters are
// omitted from the positional argument list when absent; the daemon
// distinguishes omission from null.
func NewDaemonGateway(cfg Config) ports.DaemonGateway {
	return &daemonGateway{newClient(cfg)}
}

func (g *daemonGateway) GetNewAddress(ctx context.Context, account string) (string, error) {
	var address string
	err := g.call(ctx, "getnewaddress", []interface{}{account}, &address)
	return address, err
}

func (g *daemonGateway) GetAccountAddress(ctx context.Context, account string) (string, error) {
	var address string
	err := g.call(ctx, "getaccountaddress", []interface{}{account}, &address)
	return address, err
}

func (g *daemonGateway) SetAccount(ctx context.Context, address, account string) error {
	return g.call(ctx, "setaccount", []interface{}{address, account}, nil)
}

func (g *daemonGateway) Move(
	ctx context.Context, fromAccount, toAccount string,
	amount decimal.Decimal, minConf int, comment *string,
) (bool, error) {
	params := []interface{}{fromAccount, toAccount, amount.InexactFloat64(), minConf}
	if comment != nil {
		params = append(params, *comment)
	}

	var moved bool
	err := g.call(ctx, "move", params, &moved)
	return moved, err
}

func (g *daemonGateway) SendFrom(
	ctx context.Context, fromAccount, toAddress string,
	amount decimal.Decimal, minConf int, comment, commentTo *string,
) (string, error) {
	params := []interface{}{fromAccount, toAddress, amount.InexactFloat64(), minConf}
	// comment_to needs the comment slot filled, the protocol is positional
	if comment != nil || commentTo != nil {
		c := ""
		if comment != nil {
			c = *comment
		}
		params = append(params, c)
		if commentTo != nil {
			params = append(params, *commentTo)
		}
	}

	var txID string
	err := g.call(ctx, "sendfrom", params, &txID)
	return txID, err
}

func (g *daemonGateway) GetBalance(
	ctx context.Context, account string, minConf int,
) (decimal.Decimal, error) {
	var balance float64
	err := g.call(ctx, "getbalance", []interface{}{account, minConf}, &balance)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(balance), nil
}

func (g *daemonGateway) GetReceivedByAddress(
	ctx context.Context, address string, minConf int,
) (decimal.Decimal, error) {
	var amount float64
	err := g.call(ctx, "getreceivedbyaddress", []interface{}{address, minConf}, &amount)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(amount), nil
}

func (g *daemonGateway) GetReceivedByAccount(
	ctx context.Context, account string, minConf int,
) (decimal.Decimal, error) {
	var amount float64
	err := g.call(ctx, "getreceivedbyaccount", []interface{}{account, minConf}, &amount)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(amount), nil
}

type listTransactionsEntry struct {
	Account       string  `json:"account"`
	Address       string  `json:"address"`
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	Fee           float64 `json:"fee"`
	Confirmations int64   `json:"confirmations"`
	TxID          string  `json:"txid"`
	Time          int64   `json:"time"`
	Comment       string  `json:"comment"`
	OtherAccount  string  `json:"otheraccount"`
}

func (g *daemonGateway) ListTransactions(
	ctx context.Context, account string, count int,
) ([]ports.DaemonTransaction, error) {
	var entries []listTransactionsEntry
	err := g.call(ctx, "listtransactions", []interface{}{account, count}, &entries)
	if err != nil {
		return nil, err
	}

	txs := make([]ports.DaemonTransaction, 0, len(entries))
	for _, e := range entries {
		txs = append(txs, ports.DaemonTransaction{
			Account:       e.Account,
			Address:       e.Address,
			Category:      e.Category,
			Amount:        decimal.NewFromFloat(e.Amount),
			Fee:           decimal.NewFromFloat(e.Fee),
			Confirmations: e.Confirmations,
			TxID:          e.TxID,
			Time:          e.Time,
			Comment:       e.Comment,
			OtherAccount:  e.OtherAccount,
		})
	}
	return txs, nil
}

func (g *daemonGateway) ValidateAddress(
	ctx context.Context, address string,
) (map[string]interface{}, error) {
	var info map[string]interface{}
	err := g.call(ctx, "validateaddress", []interface{}{address}, &info)
	return info, err
}

func (g *daemonGateway) GetBlockCount(ctx context.Context) (int64, error) {
	var count int64
	err := g.call(ctx, "getblockcount", nil, &count)
	return count, err
}

func (g *daemonGateway) GetConnectionCount(ctx context.Context) (int64, error) {
	var count int64
	err := g.call(ctx, "getconnectioncount", nil, &count)
	return count, err
}

func (g *daemonGateway) GetDifficulty(ctx context.Context) (decimal.Decimal, error) {
	var difficulty float64
	if err := g.call(ctx, "getdifficulty", nil, &difficulty); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(difficulty), nil
}

func (g *daemonGateway) GetInfo(ctx context.Context) (map[string]interface{}, error) {
	var info map[string]interface{}
	err := g.call(ctx, "getinfo", nil, &info)
	return info, err
}
