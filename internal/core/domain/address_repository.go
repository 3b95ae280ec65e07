package domain

import "context"

// AddressRepository is the abstraction for any kind of database intended to
// persist Addresses. It is the single owner of the Address set; payment
// routing only ever reads from it.
type AddressRepository interface {
	// AddAddress persists a new address. Fails with ErrLabelAlreadyBound if
	// the user already owns an address under the same label, comparing
	// case-insensitively.
	AddAddress(ctx context.Context, address *Address) error
	// GetAddressByLabel returns the user's address bound to the given label,
	// matched case-insensitively. Fails with ErrAccountNotFound if absent.
	GetAddressByLabel(ctx context.Context, userID uint64, label string) (*Address, error)
	// GetPrimaryAddress returns the user's primary address. Fails with
	// ErrAccountNotFound if the user has no addresses yet.
	GetPrimaryAddress(ctx context.Context, userID uint64) (*Address, error)
	// GetAddressesForUser returns all addresses owned by the user.
	GetAddressesForUser(ctx context.Context, userID uint64) ([]Address, error)
	// GetAddressByString reverse-looks-up the owner of a raw daemon address
	// string. Returns nil without error when the address is not on file.
	GetAddressByString(ctx context.Context, address string) (*Address, error)
	// UpdateAddressLabel rebinds the given address string to a new label.
	// Fails with ErrAccountNotFound if the user does not own the address and
	// with ErrLabelConflict if another of the user's addresses already holds
	// the new label.
	UpdateAddressLabel(ctx context.Context, userID uint64, address, newLabel string) error
}
