package jsonrpcinterface

import (
	"context"

	"github.com/btcbank/bankd/internal/core/application"
	"github.com/btcbank/bankd/internal/core/domain"
)

// handlerFunc runs one JSON-RPC method. user is nil for methods that do not
// require authentication.
type handlerFunc func(ctx context.Context, user *domain.User, p params) (interface{}, error)

type method struct {
	handler   handlerFunc
	needsAuth bool
}

func (s *service) methodTable() map[string]method {
	return map[string]method{
		// identity-scoped wallet methods
		"getnewaddress":         {s.getNewAddress, true},
		"getaccountaddress":     {s.getAccountAddress, true},
		"setaccount":            {s.setAccount, true},
		"getaccount":            {s.getAccount, true},
		"getaddressesbyaccount": {s.getAddressesByAccount, true},
		"sendtoaddress":         {s.sendToAddress, true},
		"sendfrom":              {s.sendFrom, true},
		"move":                  {s.move, true},
		"getbalance":            {s.getBalance, true},
		"getreceivedbyaccount":  {s.getReceivedByAccount, true},
		"listreceivedbyaddress": {s.listReceivedByAddress, true},
		"listreceivedbyaccount": {s.listReceivedByAccount, true},
		"listaccounts":          {s.listAccounts, true},
		"listtransactions":      {s.listTransactions, true},

		// read-only info methods, no identity resolution
		"getreceivedbyaddress": {s.getReceivedByAddress, false},
		"validateaddress":      {s.validateAddress, false},
		"getblockcount":        {s.getBlockCount, false},
		"getblocknumber":       {s.getBlockCount, false},
		"getconnectioncount":   {s.getConnectionCount, false},
		"getdifficulty":        {s.getDifficulty, false},
		"getinfo":              {s.getInfo, false},
	}
}

func (s *service) getNewAddress(
	ctx context.Context, user *domain.User, p params,
) (interface{}, error) {
	label, err := p.stringOr(0, "")
	if err != nil {
		return nil, err
	}
	return s.accountSvc.GetNewAddress(ctx, user, label)
}

func (s *service) getAccountAddress(
	ctx context.Context, user *domain.User, p params,
) (interface{}, error) {
	label, err := p.stringAt(0)
	if err != nil {
		return nil, err
	}
	return s.accountSvc.GetAccountAddress(ctx, user, label)
}

func (s *service) setAccount(
	ctx context.Context, user *domain.User, p params,
) (interface{}, error) {
	address, err := p.stringAt(0)
	if err != nil {
		return nil, err
	}
	label, err := p.stringAt(1)
	if err != nil {
		return nil, err
	}

	if err := s.accountSvc.SetAccountLabel(ctx, user, address, label); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *service) getAccount(
	ctx context.Context, user *domain.User, p params,
) (interface{}, error) {
	address, err := p.stringAt(0)
	if err != nil {
		return nil, err
	}
	return s.accountSvc.GetAccountLabel(ctx, user, address)
}

func (s *service) getAddressesByAccount(
	ctx context.Context, user *domain.User, p params,
) (interface{}, error) {
	label, err := p.stringAt(0)
	if err != nil {
		return nil, err
	}
	return s.accountSvc.GetAddressesByLabel(ctx, user, label)
}

func (s *service) sendToAddress(
	ctx context.Context, user *domain.User, p params,
) (interface{}, error) {
	destination, err := p.stringAt(0)
	if err != nil {
		return nil, err
	}
	amount, err := p.amountAt(1)
	if err != nil {
		return nil, err
	}
	comment, err := p.optStringAt(2)
	if err != nil {
		return nil, err
	}
	commentTo, err := p.optStringAt(3)
	if err != nil {
		return nil, err
	}
	minConf, err := p.intOr(4, 0)
	if err != nil {
		return nil, err
	}

	result, err := s.paymentSvc.SendToAddress(
		ctx, user, destination, amount, minConf,
		application.SendOptions{Comment: comment, CommentTo: commentTo},
	)
	if err != nil {
		return nil, err
	}
	return shapePaymentResult(result), nil
}

func (s *service) sendFrom(
	ctx context.Context, user *domain.User, p params,
) (interface{}, error) {
	fromLabel, err := p.stringAt(0)
	if err != nil {
		return nil, err
	}
	destination, err := p.stringAt(1)
	if err != nil {
		return nil, err
	}
	amount, err := p.amountAt(2)
	if err != nil {
		return nil, err
	}
	minConf, err := p.intOr(3, 1)
	if err != nil {
		return nil, err
	}
	comment, err := p.optStringAt(4)
	if err != nil {
		return nil, err
	}
	commentTo, err := p.optStringAt(5)
	if err != nil {
		return nil, err
	}

	result, err := s.paymentSvc.SendFrom(
		ctx, user, fromLabel, destination, amount, minConf,
		application.SendOptions{Comment: comment, CommentTo: commentTo},
	)
	if err != nil {
		return nil, err
	}
	return shapePaymentResult(result), nil
}

func (s *service) move(
	ctx context.Context, user *domain.User, p params,
) (interface{}, error) {
	fromLabel, err := p.stringAt(0)
	if err != nil {
		return nil, err
	}
	toToken, err := p.stringAt(1)
	if err != nil {
		return nil, err
	}
	amount, err := p.amountAt(2)
	if err != nil {
		return nil, err
	}
	minConf, err := p.intOr(3, 1)
	if err != nil {
		return nil, err
	}
	comment, err := p.optStringAt(4)
	if err != nil {
		return nil, err
	}

	result, err := s.paymentSvc.Move(ctx, user, fromLabel, toToken, amount, minConf, comment)
	if err != nil {
		return nil, err
	}
	return result.Moved, nil
}

func (s *service) getBalance(
	ctx context.Context, user *domain.User, p params,
) (interface{}, error) {
	label, err := p.optStringAt(0)
	if err != nil {
		return nil, err
	}
	minConf, err := p.intOr(1, 0)
	if err != nil {
		return nil, err
	}

	balance, err := s.accountSvc.GetBalance(ctx, user, label, minConf)
	if err != nil {
		return nil, err
	}
	return balance.String(), nil
}

func (s *service) getReceivedByAccount(
	ctx context.Context, user *domain.User, p params,
) (interface{}, error) {
	label, err := p.stringAt(0)
	if err != nil {
		return nil, err
	}
	minConf, err := p.intOr(1, 1)
	if err != nil {
		return nil, err
	}

	info, err := s.accountSvc.GetReceivedByAccount(ctx, user, label, minConf)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"label":  info.Label,
		"amount": info.Amount.String(),
	}, nil
}

func (s *service) listReceivedByAddress(
	ctx context.Context, user *domain.User, p params,
) (interface{}, error) {
	minConf, err := p.intOr(0, 1)
	if err != nil {
		return nil, err
	}
	includeEmpty, err := p.boolOr(1, false)
	if err != nil {
		return nil, err
	}

	list, err := s.accountSvc.ListReceivedByAddress(ctx, user, minConf, includeEmpty)
	if err != nil {
		return nil, err
	}

	shaped := make([]map[string]interface{}, 0, len(list))
	for _, entry := range list {
		shaped = append(shaped, map[string]interface{}{
			"address": entry.Address,
			"label":   entry.Label,
			"amount":  entry.Amount.String(),
		})
	}
	return shaped, nil
}

func (s *service) listReceivedByAccount(
	ctx context.Context, user *domain.User, p params,
) (interface{}, error) {
	minConf, err := p.intOr(0, 1)
	if err != nil {
		return nil, err
	}
	includeEmpty, err := p.boolOr(1, false)
	if err != nil {
		return nil, err
	}

	list, err := s.accountSvc.ListReceivedByAccount(ctx, user, minConf, includeEmpty)
	if err != nil {
		return nil, err
	}

	shaped := make([]map[string]interface{}, 0, len(list))
	for _, entry := range list {
		shaped = append(shaped, map[string]interface{}{
			"label":  entry.Label,
			"amount": entry.Amount.String(),
		})
	}
	return shaped, nil
}

func (s *service) listAccounts(
	ctx context.Context, user *domain.User, p params,
) (interface{}, error) {
	accounts, err := s.accountSvc.ListAccounts(ctx, user)
	if err != nil {
		return nil, err
	}

	shaped := make(map[string]string, len(accounts))
	for label, balance := range accounts {
		shaped[label] = balance.String()
	}
	return shaped, nil
}

func (s *service) listTransactions(
	ctx context.Context, user *domain.User, p params,
) (interface{}, error) {
	label, err := p.stringAt(0)
	if err != nil {
		return nil, err
	}
	count, err := p.intOr(1, 10)
	if err != nil {
		return nil, err
	}

	txs, err := s.accountSvc.ListTransactions(ctx, user, label, count)
	if err != nil {
		return nil, err
	}

	shaped := make([]map[string]interface{}, 0, len(txs))
	for _, tx := range txs {
		shaped = append(shaped, shapeTransaction(tx))
	}
	return shaped, nil
}

func (s *service) getReceivedByAddress(
	ctx context.Context, _ *domain.User, p params,
) (interface{}, error) {
	address, err := p.stringAt(0)
	if err != nil {
		return nil, err
	}
	minConf, err := p.intOr(1, 1)
	if err != nil {
		return nil, err
	}

	amount, err := s.infoSvc.GetReceivedByAddress(ctx, address, minConf)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"address": address,
		"amount":  amount.String(),
	}, nil
}

func (s *service) validateAddress(
	ctx context.Context, _ *domain.User, p params,
) (interface{}, error) {
	address, err := p.stringAt(0)
	if err != nil {
		return nil, err
	}
	return s.infoSvc.ValidateAddress(ctx, address)
}

func (s *service) getBlockCount(
	ctx context.Context, _ *domain.User, p params,
) (interface{}, error) {
	return s.infoSvc.GetBlockCount(ctx)
}

func (s *service) getConnectionCount(
	ctx context.Context, _ *domain.User, p params,
) (interface{}, error) {
	return s.infoSvc.GetConnectionCount(ctx)
}

func (s *service) getDifficulty(
	ctx context.Context, _ *domain.User, p params,
) (interface{}, error) {
	difficulty, err := s.infoSvc.GetDifficulty(ctx)
	if err != nil {
		return nil, err
	}
	return difficulty.String(), nil
}

func (s *service) getInfo(
	ctx context.Context, _ *domain.User, p params,
) (interface{}, error) {
	return s.infoSvc.GetInfo(ctx)
}

// shapePaymentResult renders an executed payment for the wire: internal
// transfers yield the daemon's move result, broadcasts yield the txid.
func shapePaymentResult(result *application.PaymentResult) interface{} {
	if result.Internal {
		return result.Moved
	}
	return result.TxID
}

func shapeTransaction(tx application.TransactionInfo) map[string]interface{} {
	entry := map[string]interface{}{
		"account":       tx.Account,
		"address":       tx.Address,
		"category":      tx.Category,
		"amount":        tx.Amount.String(),
		"confirmations": tx.Confirmations,
		"txid":          tx.TxID,
		"time":          tx.Time,
	}
	if !tx.Fee.IsZero() {
		entry["fee"] = tx.Fee.String()
	}
	if tx.Comment != "" {
		entry["comment"] = tx.Comment
	}
	if tx.OtherAccount != "" {
		entry["otheraccount"] = tx.OtherAccount
	}
	return entry
}
