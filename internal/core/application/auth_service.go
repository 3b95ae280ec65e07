package application

import (
	"context"
	"errors"

	"github.com/btcbank/bankd/internal/core/domain"
)

// AuthService verifies caller credentials and resolves them to a User. The
// resolved user is passed explicitly into every subsequent call; no ambient
// per-request state exists below this point.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	RegisterUser(ctx context.Context, username, password string) (*domain.User, error)
}

type authService struct {
	userRepository domain.UserRepository
}

func NewAuthService(userRepository domain.UserRepository) AuthService {
	return &authService{userRepository}
}

func (a *authService) Authenticate(
	ctx context.Context, username, password string,
) (*domain.User, error) {
	user, err := a.userRepository.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// same fault as a bad password, unknown usernames are not revealed
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if !user.VerifyPassword(password) {
		return nil, ErrUnauthorized
	}
	return user, nil
}

func (a *authService) RegisterUser(
	ctx context.Context, username, password string,
) (*domain.User, error) {
	user, err := domain.NewUser(username, password)
	if err != nil {
		return nil, err
	}

	if err := a.userRepository.AddUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
