package domain

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	// MaxUsernameLength bounds usernames. During payment routing any
	// destination at most this long is a candidate addressing token.
	MaxUsernameLength = 30
	// MaxLabelLength bounds user-chosen account labels.
	MaxLabelLength = 50

	// AccountSeparator splits the user part from the label part both in
	// daemon account names and in username+label addressing tokens. It is
	// never a legal username character, so the first occurrence always
	// delimits.
	AccountSeparator = "+"
)

// EncodeAccountName derives the opaque account name the daemon buckets
// balances under for a given (user, label) pair. The separator is always
// present, which keeps the mapping injective: the user id part contains only
// digits and the label is carried verbatim after the first separator.
func EncodeAccountName(userID uint64, label string) string {
	return strconv.FormatUint(userID, 10) + AccountSeparator + label
}

// DecodeAccountName is the inverse of EncodeAccountName. Account names are
// daemon-visible and must never be trusted as identity, so anything that
// could not have been produced by EncodeAccountName fails with
// ErrMalformedAccountName.
func DecodeAccountName(name string) (uint64, string, error) {
	idx := strings.Index(name, AccountSeparator)
	if idx < 1 {
		return 0, "", ErrMalformedAccountName
	}

	userID, err := strconv.ParseUint(name[:idx], 10, 64)
	if err != nil {
		return 0, "", ErrMalformedAccountName
	}

	label := name[idx+1:]
	if !IsValidLabel(label) {
		return 0, "", ErrMalformedAccountName
	}

	return userID, label, nil
}

// ParseAddressingToken splits a compound "username+label" token, or a bare
// username with the label defaulting to the empty string.
func ParseAddressingToken(token string) (string, string, error) {
	username, label := token, ""
	if idx := strings.Index(token, AccountSeparator); idx >= 0 {
		username, label = token[:idx], token[idx+1:]
	}

	if !IsValidUsername(username) || !IsValidLabel(label) {
		return "", "", ErrInvalidAddressingToken
	}
	return username, label, nil
}

// FormatDisplayName renders the user-facing name of an account given the
// owner's username. Used only for presentation.
func FormatDisplayName(username, label string) string {
	if label == "" {
		return username
	}
	return username + AccountSeparator + label
}

// IsValidUsername reports whether s can be a username: 1 to
// MaxUsernameLength characters among letters, digits, '.', '_' and '-'.
func IsValidUsername(s string) bool {
	if len(s) < 1 || len(s) > MaxUsernameLength {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}

// IsValidLabel reports whether s can be an account label: at most
// MaxLabelLength printable characters. The empty string names the user's
// default account and is valid.
func IsValidLabel(s string) bool {
	if len(s) > MaxLabelLength {
		return false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
