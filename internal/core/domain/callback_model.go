package domain

import (
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CallbackURL registers a per-user HTTP endpoint to be notified whenever an
// incoming payment reaches the requested number of confirmations.
type CallbackURL struct {
	ID               string
	UserID           uint64
	URL              string
	MinConfirmations int64
	CreatedAt        time.Time
}

// NewCallbackURL validates the endpoint and assigns a fresh id.
func NewCallbackURL(userID uint64, endpoint string, minConfirmations int64) (*CallbackURL, error) {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidCallbackURL
	}
	if minConfirmations < 1 {
		minConfirmations = 1
	}

	return &CallbackURL{
		ID:               uuid.NewString(),
		UserID:           userID,
		URL:              endpoint,
		MinConfirmations: minConfirmations,
		CreatedAt:        time.Now(),
	}, nil
}

// Alert records one notification owed to a callback for one chain
// transaction. At most one alert exists per (callback, txid); Sent flips
// after the endpoint acknowledged delivery.
type Alert struct {
	ID         string
	CallbackID string
	TxID       string
	Address    string
	Amount     decimal.Decimal
	Note       string
	Activated  bool
	Sent       bool
	CreatedAt  time.Time
}

// AlertKey is the storage key of an Alert.
type AlertKey struct {
	CallbackID string
	TxID       string
}

// NewAlert returns an activated, not yet delivered alert.
func NewAlert(callbackID, txID, address string, amount decimal.Decimal, note string) *Alert {
	return &Alert{
		ID:         uuid.NewString(),
		CallbackID: callbackID,
		TxID:       txID,
		Address:    address,
		Amount:     amount,
		Note:       note,
		Activated:  true,
		CreatedAt:  time.Now(),
	}
}

func (a *Alert) Key() AlertKey {
	return AlertKey{
		CallbackID: a.CallbackID,
		TxID:       a.TxID,
	}
}
