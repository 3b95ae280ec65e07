package dbbadger

import (
	"context"
	"strings"

	"github.com/timshannon/badgerhold/v4"

	"github.com/btcbank/bankd/internal/core/domain"
)

type userRepositoryImpl struct {
	store *badgerhold.Store
}

// NewUserRepositoryImpl initializes a badger implementation of the
// domain.UserRepository.
func NewUserRepositoryImpl(store *badgerhold.Store) domain.UserRepository {
	return userRepositoryImpl{store}
}

func (u userRepositoryImpl) AddUser(ctx context.Context, user *domain.User) error {
	if _, err := u.GetUserByUsername(ctx, user.Username); err == nil {
		return domain.ErrUsernameTaken
	} else if err != domain.ErrUserNotFound {
		return err
	}

	return u.store.Insert(badgerhold.NextSequence(), user)
}

func (u userRepositoryImpl) GetUserByUsername(
	ctx context.Context, username string,
) (*domain.User, error) {
	var user domain.User
	err := u.store.FindOne(&user, badgerhold.Where("Username").MatchFunc(
		matchStringFold(username),
	))
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u userRepositoryImpl) GetUserByID(
	ctx context.Context, id uint64,
) (*domain.User, error) {
	var user domain.User
	if err := u.store.Get(id, &user); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u userRepositoryImpl) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := u.store.Find(&users, nil); err != nil {
		return nil, err
	}
	return users, nil
}

func matchStringFold(target string) func(*badgerhold.RecordAccess) (bool, error) {
	return func(ra *badgerhold.RecordAccess) (bool, error) {
		field, ok := ra.Field().(string)
		if !ok {
			return false, nil
		}
		return strings.EqualFold(field, target), nil
	}
}
