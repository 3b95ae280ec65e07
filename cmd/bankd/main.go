package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/btcbank/bankd/internal/config"
	"github.com/btcbank/bankd/internal/core/application"
	"github.com/btcbank/bankd/internal/infrastructure/daemon/bitcoind"
	dbbadger "github.com/btcbank/bankd/internal/infrastructure/storage/db/badger"
	"github.com/btcbank/bankd/internal/infrastructure/watcher"
	jsonrpcinterface "github.com/btcbank/bankd/internal/interfaces/jsonrpc"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	repoManager, err := dbbadger.NewRepoManager(dbDir, nil)
	if err != nil {
		log.WithError(err).Fatal("error while opening database")
	}

	daemonGateway := bitcoind.NewDaemonGateway(bitcoind.Config{
		Host:    config.GetString(config.DaemonRPCHostKey),
		User:    config.GetString(config.DaemonRPCUserKey),
		Pass:    config.GetString(config.DaemonRPCPassKey),
		UseTLS:  config.GetBool(config.DaemonRPCTLSKey),
		Timeout: config.GetSeconds(config.DaemonRPCTimeoutKey),
	})

	authSvc := application.NewAuthService(repoManager.UserRepository())
	accountSvc := application.NewAccountService(repoManager, daemonGateway)
	paymentSvc := application.NewPaymentService(repoManager, daemonGateway)
	infoSvc := application.NewInfoService(daemonGateway)

	rpcAddress := fmt.Sprintf(":%d", config.GetInt(config.RPCListeningPortKey))
	rpcSvc := jsonrpcinterface.NewService(rpcAddress, authSvc, accountSvc, paymentSvc, infoSvc)

	var confirmationWatcher watcher.Service
	if config.GetBool(config.EnableWatcherKey) {
		confirmationWatcher = watcher.NewService(watcher.Opts{
			RepoManager:    repoManager,
			Daemon:         daemonGateway,
			Interval:       config.GetSeconds(config.WatcherIntervalKey),
			RequestTimeout: config.GetSeconds(config.CallbackTimeoutKey),
			TxWindow:       config.GetInt(config.WatcherTxWindowKey),
		})
		confirmationWatcher.Start()
	}

	log.Debug("starting daemon")
	go func() {
		if err := rpcSvc.Start(); err != nil {
			log.WithError(err).Fatal("error listening on json-rpc interface")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Info("shutting down daemon")
	rpcSvc.Stop()
	if confirmationWatcher != nil {
		confirmationWatcher.Stop()
	}
	repoManager.Close()
	log.Info("exiting")
}
