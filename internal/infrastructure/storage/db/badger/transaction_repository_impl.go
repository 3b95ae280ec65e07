package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/btcbank/bankd/internal/core/domain"
)

type transactionRepositoryImpl struct {
	store *badgerhold.Store
}

// NewTransactionRepositoryImpl initializes a badger implementation of the
// domain.TransactionRepository.
func NewTransactionRepositoryImpl(store *badgerhold.Store) domain.TransactionRepository {
	return transactionRepositoryImpl{store}
}

func (t transactionRepositoryImpl) AddTransaction(
	ctx context.Context, tx *domain.Transaction,
) error {
	return t.store.Insert(badgerhold.NextSequence(), tx)
}

func (t transactionRepositoryImpl) GetTransactionsForAccount(
	ctx context.Context, accountName string, page domain.Page,
) ([]domain.Transaction, error) {
	from := page.Number*page.Size - page.Size

	var txs []domain.Transaction
	err := t.store.Find(
		&txs,
		badgerhold.Where("AccountName").Eq(accountName).
			SortBy("ID").Reverse().
			Skip(from).Limit(page.Size),
	)
	if err != nil {
		return nil, err
	}
	return txs, nil
}

func (t transactionRepositoryImpl) GetTransactionsByTxID(
	ctx context.Context, txID string,
) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := t.store.Find(&txs, badgerhold.Where("TxID").Eq(txID)); err != nil {
		return nil, err
	}
	return txs, nil
}

func (t transactionRepositoryImpl) UpdateConfirmations(
	ctx context.Context, txID string, confirmations int64,
) error {
	return t.store.UpdateMatching(
		&domain.Transaction{},
		badgerhold.Where("TxID").Eq(txID),
		func(record interface{}) error {
			tx, ok := record.(*domain.Transaction)
			if !ok {
				return nil
			}
			// confirmations only ever grow, a lower daemon reading is stale
			if confirmations > tx.Confirmations {
				tx.Confirmations = confirmations
			}
			return nil
		},
	)
}
