package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/sony/gobreaker"

	"github.com/btcbank/bankd/internal/core/domain"
)

var (
	// ErrUnauthorized is thrown when the caller's credentials cannot be
	// verified.
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrDaemonUnavailable wraps transport-level failures talking to the
	// wallet daemon: connection refused, timeout, open circuit breaker.
	ErrDaemonUnavailable = errors.New("wallet daemon is unavailable")
)

// FaultKind is the stable, client-facing classification of a failure.
type FaultKind string

const (
	FaultAccountNotFound        FaultKind = "account-not-found"
	FaultLabelAlreadyBound      FaultKind = "label-already-bound"
	FaultLabelConflict          FaultKind = "label-conflict"
	FaultSourceAccountNotFound  FaultKind = "source-account-not-found"
	FaultDestinationAmbiguous   FaultKind = "destination-ambiguous"
	FaultMalformedAccountName   FaultKind = "malformed-account-name"
	FaultInvalidAddressingToken FaultKind = "invalid-addressing-token"
	FaultDaemonUnavailable      FaultKind = "daemon-unavailable"
	FaultDaemonRejected         FaultKind = "daemon-rejected"
	FaultUnauthorized           FaultKind = "unauthorized"
	FaultInvalidRequest         FaultKind = "invalid-request"
	FaultInternal               FaultKind = "internal"
)

// Fault is the uniform error every failure is translated into before it
// reaches a caller. DaemonCode carries the daemon's original error code when
// the daemon rejected the call, zero otherwise.
type Fault struct {
	Kind       FaultKind
	Message    string
	DaemonCode int
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// NewFault returns a fault with an explicit kind and message.
func NewFault(kind FaultKind, message string) *Fault {
	return &Fault{Kind: kind, Message: message}
}

var domainFaultKinds = map[error]FaultKind{
	domain.ErrAccountNotFound:        FaultAccountNotFound,
	domain.ErrUserNotFound:           FaultAccountNotFound,
	domain.ErrLabelAlreadyBound:      FaultLabelAlreadyBound,
	domain.ErrLabelConflict:          FaultLabelConflict,
	domain.ErrSourceAccountNotFound:  FaultSourceAccountNotFound,
	domain.ErrDestinationAmbiguous:   FaultDestinationAmbiguous,
	domain.ErrMalformedAccountName:   FaultMalformedAccountName,
	domain.ErrInvalidAddressingToken: FaultInvalidAddressingToken,
	domain.ErrInvalidLabel:           FaultInvalidRequest,
	domain.ErrInvalidUsername:        FaultInvalidRequest,
	domain.ErrInvalidAddress:         FaultInvalidRequest,
	domain.ErrInvalidCallbackURL:     FaultInvalidRequest,
	domain.ErrUsernameTaken:          FaultInvalidRequest,
}

// TranslateError maps any error raised by the directory, the router or the
// daemon gateway into a Fault. Callers never see the daemon's native fault
// shape, and translated messages never contain encoded account names.
func TranslateError(err error) *Fault {
	if err == nil {
		return nil
	}

	var fault *Fault
	if errors.As(err, &fault) {
		return fault
	}

	for sentinel, kind := range domainFaultKinds {
		if errors.Is(err, sentinel) {
			return &Fault{Kind: kind, Message: sentinel.Error()}
		}
	}

	if errors.Is(err, ErrUnauthorized) {
		return &Fault{Kind: FaultUnauthorized, Message: ErrUnauthorized.Error()}
	}

	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		return &Fault{
			Kind:       FaultDaemonRejected,
			Message:    fmt.Sprintf("daemon rejected the request: %s", rpcErr.Message),
			DaemonCode: int(rpcErr.Code),
		}
	}

	if errors.Is(err, ErrDaemonUnavailable) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests) ||
		errors.Is(err, context.DeadlineExceeded) {
		return &Fault{Kind: FaultDaemonUnavailable, Message: ErrDaemonUnavailable.Error()}
	}

	return &Fault{Kind: FaultInternal, Message: "internal error"}
}
