package application

import (
	"context"
	"errors"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/btcbank/bankd/internal/core/domain"
	"github.com/btcbank/bankd/internal/core/ports"
)

// AggregateLabel requests aggregation across all of the caller's labels in
// ListTransactions.
const AggregateLabel = "*"

// AccountService presents the per-user view of the shared wallet: address
// issuance, label management, balances and transaction history. All daemon
// traffic goes through accounts named by the codec, so one user can never
// observe another user's funds.
type AccountService interface {
	// GetNewAddress returns the address bound to the given label, asking the
	// daemon for a new one if the label is unbound. The first address ever
	// created for a user becomes its primary.
	GetNewAddress(ctx context.Context, user *domain.User, label string) (string, error)
	// GetAccountAddress returns the daemon's current receiving address for
	// an existing account.
	GetAccountAddress(ctx context.Context, user *domain.User, label string) (string, error)
	// SetAccountLabel rebinds one of the user's addresses to a new label.
	SetAccountLabel(ctx context.Context, user *domain.User, address, label string) error
	// GetAccountLabel returns the label of one of the user's addresses.
	GetAccountLabel(ctx context.Context, user *domain.User, address string) (string, error)
	// GetAddressesByLabel returns the user's addresses bound to a label.
	GetAddressesByLabel(ctx context.Context, user *domain.User, label string) ([]string, error)
	// GetBalance returns the balance of one account, or of all the user's
	// accounts summed when label is nil.
	GetBalance(ctx context.Context, user *domain.User, label *string, minConf int) (decimal.Decimal, error)
	// GetReceivedByAccount returns the total received by one account.
	GetReceivedByAccount(ctx context.Context, user *domain.User, label string, minConf int) (*ReceivedByAccountInfo, error)
	// ListReceivedByAddress reports totals received per address.
	ListReceivedByAddress(ctx context.Context, user *domain.User, minConf int, includeEmpty bool) ([]ReceivedByAddressInfo, error)
	// ListReceivedByAccount reports totals received per account.
	ListReceivedByAccount(ctx context.Context, user *domain.User, minConf int, includeEmpty bool) ([]ReceivedByAccountInfo, error)
	// ListAccounts maps each of the user's labels to its balance.
	ListAccounts(ctx context.Context, user *domain.User) (map[string]decimal.Decimal, error)
	// ListTransactions returns the last count movements of one account, or
	// of all the user's accounts flattened when label is AggregateLabel.
	// Account names in the records are translated to display names.
	ListTransactions(ctx context.Context, user *domain.User, label string, count int) ([]TransactionInfo, error)
}

type accountService struct {
	repoManager ports.RepoManager
	daemon      ports.DaemonGateway

	// serializes first-time address creation per user so concurrent calls
	// issue at most one daemon getnewaddress for the same label
	locksMtx  sync.Mutex
	userLocks map[uint64]*sync.Mutex
}

func NewAccountService(
	repoManager ports.RepoManager, daemon ports.DaemonGateway,
) AccountService {
	return &accountService{
		repoManager: repoManager,
		daemon:      daemon,
		userLocks:   map[uint64]*sync.Mutex{},
	}
}

func (s *accountService) lockForUser(userID uint64) *sync.Mutex {
	s.locksMtx.Lock()
	defer s.locksMtx.Unlock()

	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

func (s *accountService) GetNewAddress(
	ctx context.Context, user *domain.User, label string,
) (string, error) {
	if !domain.IsValidLabel(label) {
		return "", domain.ErrInvalidLabel
	}
	repo := s.repoManager.AddressRepository()

	if addr, err := repo.GetAddressByLabel(ctx, user.ID, label); err == nil {
		return addr.Address, nil
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return "", err
	}

	lock := s.lockForUser(user.ID)
	lock.Lock()
	defer lock.Unlock()

	// a concurrent call may have created the address while waiting
	if addr, err := repo.GetAddressByLabel(ctx, user.ID, label); err == nil {
		return addr.Address, nil
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return "", err
	}

	existing, err := repo.GetAddressesForUser(ctx, user.ID)
	if err != nil {
		return "", err
	}

	account := domain.EncodeAccountName(user.ID, label)
	addressString, err := s.daemon.GetNewAddress(ctx, account)
	if err != nil {
		return "", err
	}

	address, err := domain.NewAddress(user.ID, label, addressString, len(existing) == 0)
	if err != nil {
		return "", err
	}
	if err := repo.AddAddress(ctx, address); err != nil {
		return "", err
	}

	log.Debugf(
		"issued new address for user %s, label %q, primary %v",
		user.Username, label, address.IsPrimary,
	)
	return addressString, nil
}

func (s *accountService) GetAccountAddress(
	ctx context.Context, user *domain.User, label string,
) (string, error) {
	// unlike GetNewAddress, an unbound label is an error here
	addr, err := s.repoManager.AddressRepository().GetAddressByLabel(ctx, user.ID, label)
	if err != nil {
		return "", err
	}
	return s.daemon.GetAccountAddress(ctx, addr.AccountName())
}

func (s *accountService) SetAccountLabel(
	ctx context.Context, user *domain.User, address, label string,
) error {
	if !domain.IsValidLabel(label) {
		return domain.ErrInvalidLabel
	}
	repo := s.repoManager.AddressRepository()

	owned, err := repo.GetAddressByString(ctx, address)
	if err != nil {
		return err
	}
	if owned == nil || owned.UserID != user.ID {
		return domain.ErrAccountNotFound
	}

	if bound, err := repo.GetAddressByLabel(ctx, user.ID, label); err == nil {
		if bound.Address != owned.Address {
			return domain.ErrLabelConflict
		}
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}

	// the daemon goes first so a failure leaves the directory untouched
	if err := s.daemon.SetAccount(
		ctx, address, domain.EncodeAccountName(user.ID, label),
	); err != nil {
		return err
	}

	return repo.UpdateAddressLabel(ctx, user.ID, address, label)
}

func (s *accountService) GetAccountLabel(
	ctx context.Context, user *domain.User, address string,
) (string, error) {
	owned, err := s.repoManager.AddressRepository().GetAddressByString(ctx, address)
	if err != nil {
		return "", err
	}
	if owned == nil || owned.UserID != user.ID {
		return "", domain.ErrAccountNotFound
	}
	return owned.Label, nil
}

func (s *accountService) GetAddressesByLabel(
	ctx context.Context, user *domain.User, label string,
) ([]string, error) {
	addresses, err := s.repoManager.AddressRepository().GetAddressesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	matches := make([]string, 0, 1)
	for _, addr := range addresses {
		if strings.EqualFold(addr.Label, label) {
			matches = append(matches, addr.Address)
		}
	}
	return matches, nil
}

func (s *accountService) GetBalance(
	ctx context.Context, user *domain.User, label *string, minConf int,
) (decimal.Decimal, error) {
	if label != nil {
		if _, err := s.repoManager.AddressRepository().GetAddressByLabel(
			ctx, user.ID, *label,
		); err != nil {
			return decimal.Zero, err
		}
		return s.daemon.GetBalance(
			ctx, domain.EncodeAccountName(user.ID, *label), minConf,
		)
	}

	// no label: the user's total across all of its accounts
	addresses, err := s.repoManager.AddressRepository().GetAddressesForUser(ctx, user.ID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, addr := range addresses {
		balance, err := s.daemon.GetBalance(ctx, addr.AccountName(), minConf)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(balance)
	}
	return total, nil
}

func (s *accountService) GetReceivedByAccount(
	ctx context.Context, user *domain.User, label string, minConf int,
) (*ReceivedByAccountInfo, error) {
	addr, err := s.repoManager.AddressRepository().GetAddressByLabel(ctx, user.ID, label)
	if err != nil {
		return nil, err
	}

	amount, err := s.daemon.GetReceivedByAccount(ctx, addr.AccountName(), minConf)
	if err != nil {
		return nil, err
	}
	return &ReceivedByAccountInfo{Label: addr.Label, Amount: amount}, nil
}

func (s *accountService) ListReceivedByAddress(
	ctx context.Context, user *domain.User, minConf int, includeEmpty bool,
) ([]ReceivedByAddressInfo, error) {
	addresses, err := s.repoManager.AddressRepository().GetAddressesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	list := make([]ReceivedByAddressInfo, 0, len(addresses))
	for _, addr := range addresses {
		amount, err := s.daemon.GetReceivedByAddress(ctx, addr.Address, minConf)
		if err != nil {
			return nil, err
		}
		if includeEmpty || amount.IsPositive() {
			list = append(list, ReceivedByAddressInfo{
				Address: addr.Address,
				Label:   addr.Label,
				Amount:  amount,
			})
		}
	}
	return list, nil
}

func (s *accountService) ListReceivedByAccount(
	ctx context.Context, user *domain.User, minConf int, includeEmpty bool,
) ([]ReceivedByAccountInfo, error) {
	addresses, err := s.repoManager.AddressRepository().GetAddressesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	list := make([]ReceivedByAccountInfo, 0, len(addresses))
	for _, addr := range addresses {
		amount, err := s.daemon.GetReceivedByAccount(ctx, addr.AccountName(), minConf)
		if err != nil {
			return nil, err
		}
		if includeEmpty || amount.IsPositive() {
			list = append(list, ReceivedByAccountInfo{
				Label:  addr.Label,
				Amount: amount,
			})
		}
	}
	return list, nil
}

func (s *accountService) ListAccounts(
	ctx context.Context, user *domain.User,
) (map[string]decimal.Decimal, error) {
	addresses, err := s.repoManager.AddressRepository().GetAddressesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	accounts := make(map[string]decimal.Decimal, len(addresses))
	for _, addr := range addresses {
		balance, err := s.daemon.GetBalance(ctx, addr.AccountName(), 1)
		if err != nil {
			return nil, err
		}
		accounts[addr.Label] = balance
	}
	return accounts, nil
}

func (s *accountService) ListTransactions(
	ctx context.Context, user *domain.User, label string, count int,
) ([]TransactionInfo, error) {
	var raw []ports.DaemonTransaction

	if label == AggregateLabel {
		addresses, err := s.repoManager.AddressRepository().GetAddressesForUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}

		perLabel := make([][]ports.DaemonTransaction, len(addresses))
		eg, egCtx := errgroup.WithContext(ctx)
		for i, addr := range addresses {
			i, account := i, addr.AccountName()
			eg.Go(func() error {
				txs, err := s.daemon.ListTransactions(egCtx, account, count)
				if err != nil {
					return err
				}
				perLabel[i] = txs
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		for _, txs := range perLabel {
			raw = append(raw, txs...)
		}
	} else {
		addr, err := s.repoManager.AddressRepository().GetAddressByLabel(ctx, user.ID, label)
		if err != nil {
			return nil, err
		}
		if raw, err = s.daemon.ListTransactions(ctx, addr.AccountName(), count); err != nil {
			return nil, err
		}
	}

	list := make([]TransactionInfo, 0, len(raw))
	for _, tx := range raw {
		list = append(list, TransactionInfo{
			Account:       s.displayName(ctx, tx.Account),
			Address:       tx.Address,
			Category:      tx.Category,
			Amount:        tx.Amount,
			Fee:           tx.Fee,
			Confirmations: tx.Confirmations,
			TxID:          tx.TxID,
			Time:          tx.Time,
			Comment:       tx.Comment,
			OtherAccount:  s.displayName(ctx, tx.OtherAccount),
		})
	}
	return list, nil
}

// displayName translates a raw daemon account name into its user-facing
// form. Names not produced by the codec, or whose owner is unknown, are
// returned verbatim: this is presentation only and must never fail a
// listing.
func (s *accountService) displayName(ctx context.Context, accountName string) string {
	if accountName == "" {
		return ""
	}

	userID, label, err := domain.DecodeAccountName(accountName)
	if err != nil {
		return accountName
	}
	owner, err := s.repoManager.UserRepository().GetUserByID(ctx, userID)
	if err != nil {
		return accountName
	}
	return domain.FormatDisplayName(owner.Username, label)
}
