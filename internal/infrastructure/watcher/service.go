package watcher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/btcbank/bankd/internal/core/domain"
	"github.com/btcbank/bankd/internal/core/ports"
)

const (
	// userScanConcurrency bounds the number of users polled in parallel
	// during one scan cycle.
	userScanConcurrency = 4
	// daemonPollRate caps the daemon list calls issued by the watcher so a
	// large address directory cannot starve interactive requests.
	daemonPollRate = 5
)

// Service polls the wallet daemon for incoming payments, keeps the stored
// confirmation counts of audit records up to date and delivers a notification
// to every registered callback whose confirmation threshold has been reached.
// Each (callback, txid) pair is notified at most once; deliveries that fail
// are retried on the following cycles until the endpoint acknowledges.
type Service interface {
	Start()
	Stop()
}

type Opts struct {
	RepoManager ports.RepoManager
	Daemon      ports.DaemonGateway
	// Interval is the pause between two scan cycles.
	Interval time.Duration
	// RequestTimeout bounds every single callback delivery.
	RequestTimeout time.Duration
	// TxWindow is how many recent daemon transactions are examined per
	// account on each cycle.
	TxWindow int
}

type watcherService struct {
	repoManager ports.RepoManager
	daemon      ports.DaemonGateway
	interval    time.Duration
	txWindow    int
	httpClient  *client
	cb          *gobreaker.CircuitBreaker
	limiter     *rate.Limiter

	quit chan struct{}
	done chan struct{}
	once sync.Once
}

func NewService(opts Opts) Service {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "callback delivery",
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Debugf("%s circuit breaker: %s -> %s", name, from, to)
		},
	})

	return &watcherService{
		repoManager: opts.RepoManager,
		daemon:      opts.Daemon,
		interval:    opts.Interval,
		txWindow:    opts.TxWindow,
		httpClient:  newHTTPClient(opts.RequestTimeout),
		cb:          cb,
		limiter:     rate.NewLimiter(rate.Limit(daemonPollRate), daemonPollRate),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

func (s *watcherService) Start() {
	log.Info("starting confirmation watcher")
	go s.loop()
}

func (s *watcherService) Stop() {
	s.once.Do(func() { close(s.quit) })
	<-s.done
	log.Info("stopped confirmation watcher")
}

func (s *watcherService) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), s.interval)
			if err := s.scan(ctx); err != nil {
				log.WithError(err).Warn("watcher: scan cycle failed")
			}
			s.flush(ctx)
			cancel()
		}
	}
}

// scan walks every user owning at least one callback, refreshes the stored
// confirmation counts of their incoming payments and activates an alert for
// each payment that crossed a callback's threshold.
func (s *watcherService) scan(ctx context.Context) error {
	callbacks, err := s.repoManager.CallbackRepository().GetAllCallbacks(ctx)
	if err != nil {
		return err
	}
	if len(callbacks) <= 0 {
		return nil
	}

	byUser := make(map[uint64][]domain.CallbackURL)
	for _, cb := range callbacks {
		byUser[cb.UserID] = append(byUser[cb.UserID], cb)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(userScanConcurrency)
	for userID, userCallbacks := range byUser {
		userID, userCallbacks := userID, userCallbacks
		eg.Go(func() error {
			if err := s.scanUser(ctx, userID, userCallbacks); err != nil {
				log.WithError(err).WithField(
					"user_id", userID,
				).Warn("watcher: failed to scan user accounts")
			}
			return nil
		})
	}
	return eg.Wait()
}

func (s *watcherService) scanUser(
	ctx context.Context, userID uint64, callbacks []domain.CallbackURL,
) error {
	addresses, err := s.repoManager.AddressRepository().GetAddressesForUser(ctx, userID)
	if err != nil {
		return err
	}

	for i := range addresses {
		addr := addresses[i]
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		txs, err := s.daemon.ListTransactions(ctx, addr.AccountName(), s.txWindow)
		if err != nil {
			return err
		}

		for _, tx := range txs {
			if tx.Category != domain.CategoryReceive || tx.TxID == "" {
				continue
			}

			if err := s.repoManager.TransactionRepository().UpdateConfirmations(
				ctx, tx.TxID, tx.Confirmations,
			); err != nil {
				log.WithError(err).WithField(
					"txid", tx.TxID,
				).Warn("watcher: failed to update stored confirmations")
			}

			for _, cb := range callbacks {
				if tx.Confirmations < cb.MinConfirmations {
					continue
				}

				note := fmt.Sprintf(
					"payment of %s to %s reached %d confirmations",
					tx.Amount, tx.Address, tx.Confirmations,
				)
				alert := domain.NewAlert(cb.ID, tx.TxID, tx.Address, tx.Amount, note)
				if _, err := s.repoManager.AlertRepository().AddAlert(ctx, alert); err != nil {
					log.WithError(err).WithField(
						"txid", tx.TxID,
					).Warn("watcher: failed to store alert")
				}
			}
		}
	}
	return nil
}

// flush attempts delivery of every alert not yet acknowledged by its
// endpoint, including those left over from previous cycles.
func (s *watcherService) flush(ctx context.Context) {
	alerts, err := s.repoManager.AlertRepository().GetUnsentAlerts(ctx)
	if err != nil {
		log.WithError(err).Warn("watcher: failed to load pending alerts")
		return
	}
	if len(alerts) <= 0 {
		return
	}

	callbacks, err := s.repoManager.CallbackRepository().GetAllCallbacks(ctx)
	if err != nil {
		log.WithError(err).Warn("watcher: failed to load callbacks")
		return
	}
	callbackByID := make(map[string]domain.CallbackURL)
	for _, cb := range callbacks {
		callbackByID[cb.ID] = cb
	}

	for i := range alerts {
		alert := alerts[i]
		cb, ok := callbackByID[alert.CallbackID]
		if !ok {
			// Callback was removed after the alert got stored; nobody is
			// listening anymore.
			if err := s.repoManager.AlertRepository().MarkAlertSent(
				ctx, alert.Key(),
			); err != nil {
				log.WithError(err).Warn("watcher: failed to retire orphan alert")
			}
			continue
		}

		if err := s.deliver(ctx, cb, &alert); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"url":  cb.URL,
				"txid": alert.TxID,
			}).Warn("watcher: failed to deliver notification")
			continue
		}

		if err := s.repoManager.AlertRepository().MarkAlertSent(
			ctx, alert.Key(),
		); err != nil {
			log.WithError(err).Warn("watcher: failed to mark alert as sent")
		}
	}
}

func (s *watcherService) deliver(
	ctx context.Context, cb domain.CallbackURL, alert *domain.Alert,
) error {
	payload := map[string]interface{}{
		"id":      alert.ID,
		"txid":    alert.TxID,
		"address": alert.Address,
		"amount":  alert.Amount.String(),
		"note":    alert.Note,
	}
	body, _ := json.Marshal(payload)

	_, err := s.cb.Execute(func() (interface{}, error) {
		status, resBody, err := s.httpClient.post(ctx, cb.URL, string(body))
		if err != nil {
			return nil, err
		}
		if status < 200 || status > 299 {
			return nil, fmt.Errorf(
				"endpoint answered with status %d: %s", status, resBody,
			)
		}
		return nil, nil
	})
	return err
}
