package domain

import "errors"

var (
	// ErrAccountNotFound is thrown when a label does not map to any of the
	// caller's addresses.
	ErrAccountNotFound = errors.New("account not found")
	// ErrLabelAlreadyBound is thrown when creating an address for a label the
	// user already owns.
	ErrLabelAlreadyBound = errors.New("an address with this label already exists")
	// ErrLabelConflict is thrown when rebinding an address to a label held by
	// another of the user's addresses.
	ErrLabelConflict = errors.New("another address already uses this label")
	// ErrSourceAccountNotFound is thrown when a payment names a source label
	// with no address on file.
	ErrSourceAccountNotFound = errors.New("source account not found")
	// ErrDestinationAmbiguous is thrown when a payment destination neither
	// resolves internally nor can be an external address.
	ErrDestinationAmbiguous = errors.New("destination cannot be resolved")
	// ErrMalformedAccountName is thrown when decoding a daemon account name
	// that was not produced by the codec.
	ErrMalformedAccountName = errors.New("malformed account name")
	// ErrInvalidAddressingToken is thrown when parsing a username+label token
	// that violates the username or label bounds.
	ErrInvalidAddressingToken = errors.New("invalid addressing token")
	// ErrUserNotFound ...
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken ...
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrInvalidUsername ...
	ErrInvalidUsername = errors.New("username is not valid")
	// ErrInvalidLabel ...
	ErrInvalidLabel = errors.New("label is not valid")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address must not be empty")
	// ErrInvalidCallbackURL ...
	ErrInvalidCallbackURL = errors.New("callback url must be a valid http(s) url")
)
