package domain

import "context"

// CallbackRepository is the abstraction for any kind of database intended to
// persist CallbackURLs.
type CallbackRepository interface {
	// AddCallback persists a new callback registration.
	AddCallback(ctx context.Context, callback *CallbackURL) error
	// GetCallbacksForUser returns the callbacks registered by one user.
	GetCallbacksForUser(ctx context.Context, userID uint64) ([]CallbackURL, error)
	// GetAllCallbacks returns every registered callback.
	GetAllCallbacks(ctx context.Context) ([]CallbackURL, error)
	// RemoveCallback deletes a callback registration by id.
	RemoveCallback(ctx context.Context, id string) error
}

// AlertRepository is the abstraction for any kind of database intended to
// persist Alerts.
type AlertRepository interface {
	// AddAlert persists a new alert. Returns false without error when an
	// alert for the same (callback, txid) already exists.
	AddAlert(ctx context.Context, alert *Alert) (bool, error)
	// GetUnsentAlerts returns alerts still owed to their endpoint.
	GetUnsentAlerts(ctx context.Context) ([]Alert, error)
	// MarkAlertSent flips the Sent flag of an alert after delivery.
	MarkAlertSent(ctx context.Context, key AlertKey) error
}
