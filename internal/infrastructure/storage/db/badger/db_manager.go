package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/btcbank/bankd/internal/core/domain"
	"github.com/btcbank/bankd/internal/core/ports"
)

// repoManager holds all the badgerhold stores in a single data structure.
// The directory store keeps users, addresses and audit transactions; the
// watcher store keeps callback registrations and alerts so that the watcher
// churn never compacts against directory reads.
type repoManager struct {
	directoryStore *badgerhold.Store
	watcherStore   *badgerhold.Store

	userRepository        domain.UserRepository
	addressRepository     domain.AddressRepository
	transactionRepository domain.TransactionRepository
	callbackRepository    domain.CallbackRepository
	alertRepository       domain.AlertRepository
}

// NewRepoManager opens (or creates if missing) the badger stores under the
// given base dir. An empty baseDbDir yields in-memory stores, used by tests.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	directoryDir, watcherDir := "", ""
	if len(baseDbDir) > 0 {
		directoryDir = filepath.Join(baseDbDir, "directory")
		watcherDir = filepath.Join(baseDbDir, "watcher")
	}

	directoryStore, err := createDb(directoryDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening directory db: %w", err)
	}
	watcherStore, err := createDb(watcherDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening watcher db: %w", err)
	}

	return &repoManager{
		directoryStore:        directoryStore,
		watcherStore:          watcherStore,
		userRepository:        NewUserRepositoryImpl(directoryStore),
		addressRepository:     NewAddressRepositoryImpl(directoryStore),
		transactionRepository: NewTransactionRepositoryImpl(directoryStore),
		callbackRepository:    NewCallbackRepositoryImpl(watcherStore),
		alertRepository:       NewAlertRepositoryImpl(watcherStore),
	}, nil
}

func (d *repoManager) UserRepository() domain.UserRepository {
	return d.userRepository
}

func (d *repoManager) AddressRepository() domain.AddressRepository {
	return d.addressRepository
}

func (d *repoManager) TransactionRepository() domain.TransactionRepository {
	return d.transactionRepository
}

func (d *repoManager) CallbackRepository() domain.CallbackRepository {
	return d.callbackRepository
}

func (d *repoManager) AlertRepository() domain.AlertRepository {
	return d.alertRepository
}

func (d *repoManager) Close() {
	d.directoryStore.Close()
	d.watcherStore.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}
