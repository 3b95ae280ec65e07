package ports

import "github.com/btcbank/bankd/internal/core/domain"

// RepoManager gives access to all the repositories of the daemon and owns
// the lifecycle of the underlying stores.
type RepoManager interface {
	UserRepository() domain.UserRepository
	AddressRepository() domain.AddressRepository
	TransactionRepository() domain.TransactionRepository
	CallbackRepository() domain.CallbackRepository
	AlertRepository() domain.AlertRepository

	Close()
}
