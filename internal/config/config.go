package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// RPCListeningPortKey is the port where the JSON-RPC interface will listen on
	RPCListeningPortKey = "RPC_LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of the daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DaemonRPCHostKey is the host:port of the wallet daemon's RPC interface
	DaemonRPCHostKey = "DAEMON_RPC_HOST"
	// DaemonRPCUserKey is the RPC username of the wallet daemon
	DaemonRPCUserKey = "DAEMON_RPC_USER"
	// DaemonRPCPassKey is the RPC password of the wallet daemon
	DaemonRPCPassKey = "DAEMON_RPC_PASS"
	// DaemonRPCTLSKey makes the daemon client connect over https
	DaemonRPCTLSKey = "DAEMON_RPC_TLS"
	// DaemonRPCTimeoutKey is the timeout in seconds of every wallet daemon call
	DaemonRPCTimeoutKey = "DAEMON_RPC_TIMEOUT"
	// EnableWatcherKey enables the background confirmation watcher
	EnableWatcherKey = "ENABLE_WATCHER"
	// WatcherIntervalKey is the pause in seconds between two watcher scan cycles
	WatcherIntervalKey = "WATCHER_INTERVAL"
	// WatcherTxWindowKey is how many recent transactions per account the watcher examines
	WatcherTxWindowKey = "WATCHER_TX_WINDOW"
	// CallbackTimeoutKey is the timeout in seconds of every callback notification delivery
	CallbackTimeoutKey = "CALLBACK_TIMEOUT"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("bankd", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("BANKD")
	vip.AutomaticEnv()

	vip.SetDefault(RPCListeningPortKey, 8335)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(DaemonRPCHostKey, "localhost:8332")
	vip.SetDefault(DaemonRPCTLSKey, false)
	vip.SetDefault(DaemonRPCTimeoutKey, 30)
	vip.SetDefault(EnableWatcherKey, true)
	vip.SetDefault(WatcherIntervalKey, 60)
	vip.SetDefault(WatcherTxWindowKey, 25)
	vip.SetDefault(CallbackTimeoutKey, 10)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

// GetSeconds reads an integer key holding an amount of seconds as a duration.
func GetSeconds(key string) time.Duration {
	return time.Duration(vip.GetInt(key)) * time.Second
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if !vip.IsSet(DaemonRPCUserKey) || !vip.IsSet(DaemonRPCPassKey) {
		return fmt.Errorf("missing wallet daemon RPC credentials")
	}

	logLevel := GetInt(LogLevelKey)
	if logLevel < 0 || logLevel > 6 {
		return fmt.Errorf("%s must be in range [0, 6]", LogLevelKey)
	}

	if GetInt(WatcherIntervalKey) <= 0 {
		return fmt.Errorf("%s must be a positive amount of seconds", WatcherIntervalKey)
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(filepath.Join(GetDatadir(), DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
