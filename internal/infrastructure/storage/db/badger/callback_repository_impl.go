package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/btcbank/bankd/internal/core/domain"
)

type callbackRepositoryImpl struct {
	store *badgerhold.Store
}

// NewCallbackRepositoryImpl initializes a badger implementation of the
// domain.CallbackRepository.
func NewCallbackRepositoryImpl(store *badgerhold.Store) domain.CallbackRepository {
	return callbackRepositoryImpl{store}
}

func (c callbackRepositoryImpl) AddCallback(
	ctx context.Context, callback *domain.CallbackURL,
) error {
	return c.store.Insert(callback.ID, callback)
}

func (c callbackRepositoryImpl) GetCallbacksForUser(
	ctx context.Context, userID uint64,
) ([]domain.CallbackURL, error) {
	var callbacks []domain.CallbackURL
	err := c.store.Find(&callbacks, badgerhold.Where("UserID").Eq(userID))
	if err != nil {
		return nil, err
	}
	return callbacks, nil
}

func (c callbackRepositoryImpl) GetAllCallbacks(
	ctx context.Context,
) ([]domain.CallbackURL, error) {
	var callbacks []domain.CallbackURL
	if err := c.store.Find(&callbacks, nil); err != nil {
		return nil, err
	}
	return callbacks, nil
}

func (c callbackRepositoryImpl) RemoveCallback(ctx context.Context, id string) error {
	if err := c.store.Delete(id, domain.CallbackURL{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return err
	}
	return nil
}

type alertRepositoryImpl struct {
	store *badgerhold.Store
}

// NewAlertRepositoryImpl initializes a badger implementation of the
// domain.AlertRepository.
func NewAlertRepositoryImpl(store *badgerhold.Store) domain.AlertRepository {
	return alertRepositoryImpl{store}
}

func (a alertRepositoryImpl) AddAlert(
	ctx context.Context, alert *domain.Alert,
) (bool, error) {
	if err := a.store.Insert(alert.Key(), alert); err != nil {
		if err == badgerhold.ErrKeyExists {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (a alertRepositoryImpl) GetUnsentAlerts(ctx context.Context) ([]domain.Alert, error) {
	var alerts []domain.Alert
	if err := a.store.Find(&alerts, badgerhold.Where("Sent").Eq(false)); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (a alertRepositoryImpl) MarkAlertSent(
	ctx context.Context, key domain.AlertKey,
) error {
	var alert domain.Alert
	if err := a.store.Get(key, &alert); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return err
	}

	alert.Sent = true
	return a.store.Update(key, &alert)
}
