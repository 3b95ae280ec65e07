package application

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/shopspring/decimal"

	"github.com/btcbank/bankd/internal/core/domain"
	"github.com/btcbank/bankd/internal/core/ports"
)

// PaymentService routes transfer requests. For every payment it decides
// whether the destination is internal (another user of this system) or
// external, and accordingly whether the daemon executes an internal move or
// an on-chain broadcast.
type PaymentService interface {
	// SendToAddress pays from the caller's primary account to an address or
	// addressing token.
	SendToAddress(
		ctx context.Context, user *domain.User, destination string,
		amount decimal.Decimal, minConf int, opts SendOptions,
	) (*PaymentResult, error)
	// SendFrom pays from the caller's account named by fromLabel.
	SendFrom(
		ctx context.Context, user *domain.User, fromLabel, destination string,
		amount decimal.Decimal, minConf int, opts SendOptions,
	) (*PaymentResult, error)
	// Move transfers between the caller's account and another user's
	// account, named by a username+label token. Always internal.
	Move(
		ctx context.Context, user *domain.User, fromLabel, toToken string,
		amount decimal.Decimal, minConf int, comment *string,
	) (*PaymentResult, error)
}

type paymentService struct {
	repoManager ports.RepoManager
	daemon      ports.DaemonGateway
}

func NewPaymentService(
	repoManager ports.RepoManager, daemon ports.DaemonGateway,
) PaymentService {
	return &paymentService{repoManager, daemon}
}

func (s *paymentService) SendToAddress(
	ctx context.Context, user *domain.User, destination string,
	amount decimal.Decimal, minConf int, opts SendOptions,
) (*PaymentResult, error) {
	source, err := s.repoManager.AddressRepository().GetPrimaryAddress(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrSourceAccountNotFound
		}
		return nil, err
	}
	return s.send(ctx, user, source.Label, destination, amount, minConf, opts)
}

func (s *paymentService) SendFrom(
	ctx context.Context, user *domain.User, fromLabel, destination string,
	amount decimal.Decimal, minConf int, opts SendOptions,
) (*PaymentResult, error) {
	source, err := s.repoManager.AddressRepository().GetAddressByLabel(ctx, user.ID, fromLabel)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrSourceAccountNotFound
		}
		return nil, err
	}
	// the on-file label, so account names keep their original casing
	return s.send(ctx, user, source.Label, destination, amount, minConf, opts)
}

func (s *paymentService) Move(
	ctx context.Context, user *domain.User, fromLabel, toToken string,
	amount decimal.Decimal, minConf int, comment *string,
) (*PaymentResult, error) {
	source, err := s.repoManager.AddressRepository().GetAddressByLabel(ctx, user.ID, fromLabel)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrSourceAccountNotFound
		}
		return nil, err
	}

	username, label, err := domain.ParseAddressingToken(toToken)
	if err != nil {
		return nil, err
	}
	owner, err := s.repoManager.UserRepository().GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.move(
		ctx, source.AccountName(), domain.EncodeAccountName(owner.ID, label),
		amount, minConf, comment,
	)
}

func (s *paymentService) send(
	ctx context.Context, user *domain.User, sourceLabel, destination string,
	amount decimal.Decimal, minConf int, opts SendOptions,
) (*PaymentResult, error) {
	fromAccount := domain.EncodeAccountName(user.ID, sourceLabel)

	route, err := s.classifyDestination(ctx, destination)
	if err != nil {
		return nil, err
	}

	if route.internal {
		return s.move(ctx, fromAccount, route.account, amount, minConf, opts.Comment)
	}

	txID, err := s.daemon.SendFrom(
		ctx, fromAccount, destination, amount, minConf, opts.Comment, opts.CommentTo,
	)
	if err != nil {
		return nil, err
	}

	s.record(ctx, domain.NewTransaction(
		fromAccount, destination, domain.CategorySend, amount, txID,
	))
	return &PaymentResult{TxID: txID}, nil
}

func (s *paymentService) move(
	ctx context.Context, fromAccount, toAccount string,
	amount decimal.Decimal, minConf int, comment *string,
) (*PaymentResult, error) {
	moved, err := s.daemon.Move(ctx, fromAccount, toAccount, amount, minConf, comment)
	if err != nil {
		return nil, err
	}

	s.record(ctx, domain.NewTransaction(
		fromAccount, toAccount, domain.CategorySend, amount, "",
	))
	s.record(ctx, domain.NewTransaction(
		toAccount, fromAccount, domain.CategoryReceive, amount, "",
	))
	return &PaymentResult{Internal: true, Moved: moved}, nil
}

// record appends an audit entry for an already-executed movement. The
// payment has settled at this point, so a persistence failure is logged
// rather than surfaced.
func (s *paymentService) record(ctx context.Context, tx *domain.Transaction) {
	if err := s.repoManager.TransactionRepository().AddTransaction(ctx, tx); err != nil {
		log.WithError(err).Warnf(
			"failed to record %s audit entry for account %s",
			tx.Category, tx.AccountName,
		)
	}
}

type route struct {
	internal bool
	account  string
}

// classifyDestination resolves a payment destination in strict order: an
// addressing token naming a known user makes it internal-by-identity, an
// on-file address makes it internal-by-address and overrides the token (an
// address on file is unambiguous while a token might coincide with an
// external address), anything else is external. Note that a short external
// address can still collide with a username; ordering is preserved from the
// original system on purpose.
func (s *paymentService) classifyDestination(
	ctx context.Context, destination string,
) (*route, error) {
	var internalAccount string

	hasSeparator := strings.Contains(destination, domain.AccountSeparator)
	if len(destination) <= domain.MaxUsernameLength || hasSeparator {
		if username, label, err := domain.ParseAddressingToken(destination); err == nil {
			owner, err := s.repoManager.UserRepository().GetUserByUsername(ctx, username)
			if err == nil {
				internalAccount = domain.EncodeAccountName(owner.ID, label)
			} else if !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
		}
	}

	known, err := s.repoManager.AddressRepository().GetAddressByString(ctx, destination)
	if err != nil {
		return nil, err
	}
	if known != nil {
		internalAccount = known.AccountName()
	}

	if internalAccount != "" {
		return &route{internal: true, account: internalAccount}, nil
	}

	// the separator never appears in a chain address, so a token that did
	// not resolve cannot be sent externally either
	if hasSeparator {
		return nil, domain.ErrDestinationAmbiguous
	}

	// external; address syntax is the daemon's call, not ours
	return &route{}, nil
}
