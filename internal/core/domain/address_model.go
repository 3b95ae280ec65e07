package domain

import (
	"strings"
	"time"
)

// Address binds a daemon-issued address string to one (user, label) pair.
// Daemon addresses are immutable once issued and never deleted; only the
// label binding can change.
type Address struct {
	UserID    uint64 `badgerhold:"index"`
	Label     string
	Address   string `badgerhold:"index"`
	IsPrimary bool
	CreatedAt time.Time
}

// AddressKey is the storage key of an Address. Labels are lowercased so that
// per-user label uniqueness is case-insensitive.
type AddressKey struct {
	UserID uint64
	Label  string
}

// NewAddress returns a validated Address record for a daemon-issued address
// string.
func NewAddress(userID uint64, label, address string, primary bool) (*Address, error) {
	if !IsValidLabel(label) {
		return nil, ErrInvalidLabel
	}
	if address == "" {
		return nil, ErrInvalidAddress
	}

	return &Address{
		UserID:    userID,
		Label:     label,
		Address:   address,
		IsPrimary: primary,
		CreatedAt: time.Now(),
	}, nil
}

// AccountName returns the daemon account name this address accrues to.
func (a *Address) AccountName() string {
	return EncodeAccountName(a.UserID, a.Label)
}

func (a *Address) Key() AddressKey {
	return AddressKey{
		UserID: a.UserID,
		Label:  strings.ToLower(a.Label),
	}
}
