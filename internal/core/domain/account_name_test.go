package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btcbank/bankd/internal/core/domain"
)

func TestEncodeDecodeAccountName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID uint64
		label  string
	}{
		{"default_account", 1, ""},
		{"simple_label", 42, "savings"},
		{"label_with_spaces", 42, "rainy day fund"},
		{"label_with_separator", 42, "a+b"},
		{"numeric_label", 7, "123"},
		{"max_length_label", 9, strings.Repeat("x", domain.MaxLabelLength)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name := domain.EncodeAccountName(tt.userID, tt.label)
			require.Contains(t, name, domain.AccountSeparator)

			userID, label, err := domain.DecodeAccountName(name)
			require.NoError(t, err)
			require.Equal(t, tt.userID, userID)
			require.Equal(t, tt.label, label)

			// same input, same name
			require.Equal(t, name, domain.EncodeAccountName(tt.userID, tt.label))
		})
	}
}

func TestAccountNameInjective(t *testing.T) {
	t.Parallel()

	// pairs that could collide if the separator were ever omitted
	require.NotEqual(
		t,
		domain.EncodeAccountName(12, "3"),
		domain.EncodeAccountName(1, "23"),
	)
	require.NotEqual(
		t,
		domain.EncodeAccountName(1, ""),
		domain.EncodeAccountName(1, "1"),
	)
}

func TestFailingDecodeAccountName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		accountName string
	}{
		{"empty", ""},
		{"no_separator", "42savings"},
		{"missing_id", "+savings"},
		{"non_numeric_id", "bob+savings"},
		{"negative_id", "-1+savings"},
		{"label_too_long", "1+" + strings.Repeat("x", domain.MaxLabelLength+1)},
		{"unprintable_label", "1+a\x00b"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := domain.DecodeAccountName(tt.accountName)
			require.ErrorIs(t, err, domain.ErrMalformedAccountName)
		})
	}
}

func TestParseAddressingToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		token            string
		expectedUsername string
		expectedLabel    string
	}{
		{"bare_username", "alice", "alice", ""},
		{"username_and_label", "alice+savings", "alice", "savings"},
		{"empty_label", "alice+", "alice", ""},
		{"label_with_separator", "alice+a+b", "alice", "a+b"},
		{"username_with_dots", "a.b_c-d", "a.b_c-d", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			username, label, err := domain.ParseAddressingToken(tt.token)
			require.NoError(t, err)
			require.Equal(t, tt.expectedUsername, username)
			require.Equal(t, tt.expectedLabel, label)
		})
	}
}

func TestFailingParseAddressingToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"empty_username", "+savings"},
		{"username_with_space", "alice smith"},
		{"username_too_long", strings.Repeat("a", domain.MaxUsernameLength+1)},
		{"label_too_long", "alice+" + strings.Repeat("x", domain.MaxLabelLength+1)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := domain.ParseAddressingToken(tt.token)
			require.ErrorIs(t, err, domain.ErrInvalidAddressingToken)
		})
	}
}

func TestFormatDisplayName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "alice", domain.FormatDisplayName("alice", ""))
	require.Equal(t, "alice+savings", domain.FormatDisplayName("alice", "savings"))
}
