package dbbadger

import (
	"context"
	"strings"

	"github.com/timshannon/badgerhold/v4"

	"github.com/btcbank/bankd/internal/core/domain"
)

type addressRepositoryImpl struct {
	store *badgerhold.Store
}

// NewAddressRepositoryImpl initializes a badger implementation of the
// domain.AddressRepository.
func NewAddressRepositoryImpl(store *badgerhold.Store) domain.AddressRepository {
	return addressRepositoryImpl{store}
}

func (a addressRepositoryImpl) AddAddress(
	ctx context.Context, address *domain.Address,
) error {
	// the key embeds the lowercased label, so ErrKeyExists is exactly the
	// case-insensitive label collision
	if err := a.store.Insert(address.Key(), address); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrLabelAlreadyBound
		}
		return err
	}
	return nil
}

func (a addressRepositoryImpl) GetAddressByLabel(
	ctx context.Context, userID uint64, label string,
) (*domain.Address, error) {
	var address domain.Address
	key := domain.AddressKey{UserID: userID, Label: strings.ToLower(label)}
	if err := a.store.Get(key, &address); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &address, nil
}

func (a addressRepositoryImpl) GetPrimaryAddress(
	ctx context.Context, userID uint64,
) (*domain.Address, error) {
	var address domain.Address
	err := a.store.FindOne(
		&address,
		badgerhold.Where("UserID").Eq(userID).Index("UserID").
			And("IsPrimary").Eq(true),
	)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &address, nil
}

func (a addressRepositoryImpl) GetAddressesForUser(
	ctx context.Context, userID uint64,
) ([]domain.Address, error) {
	var addresses []domain.Address
	err := a.store.Find(
		&addresses, badgerhold.Where("UserID").Eq(userID).Index("UserID"),
	)
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (a addressRepositoryImpl) GetAddressByString(
	ctx context.Context, address string,
) (*domain.Address, error) {
	var found domain.Address
	err := a.store.FindOne(
		&found, badgerhold.Where("Address").Eq(address).Index("Address"),
	)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &found, nil
}

func (a addressRepositoryImpl) UpdateAddressLabel(
	ctx context.Context, userID uint64, address, newLabel string,
) error {
	var record domain.Address
	err := a.store.FindOne(
		&record,
		badgerhold.Where("Address").Eq(address).Index("Address").
			And("UserID").Eq(userID),
	)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrAccountNotFound
		}
		return err
	}

	oldKey := record.Key()
	record.Label = newLabel
	newKey := record.Key()

	tx := a.store.Badger().NewTransaction(true)
	defer tx.Discard()

	if newKey != oldKey {
		var bound domain.Address
		switch err := a.store.TxGet(tx, newKey, &bound); err {
		case badgerhold.ErrNotFound:
		case nil:
			return domain.ErrLabelConflict
		default:
			return err
		}

		if err := a.store.TxDelete(tx, oldKey, domain.Address{}); err != nil {
			return err
		}
	}

	if err := a.store.TxUpsert(tx, newKey, &record); err != nil {
		return err
	}
	return tx.Commit()
}
