package main

import (
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"

	"github.com/btcbank/bankd/internal/core/ports"
	dbbadger "github.com/btcbank/bankd/internal/infrastructure/storage/db/badger"
)

var defaultDatadir = btcutil.AppDataDir("bankd", false)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "bankd admin CLI"
	app.Usage = "Command line interface for bankd administrators"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "datadir",
			Usage: "the data directory of the bankd daemon",
			Value: defaultDatadir,
		},
	}
	app.Commands = append(
		app.Commands,
		&adduser,
		&listusers,
		&addcallback,
		&listcallbacks,
		&removecallback,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

// openRepoManager opens the daemon's database directly. The daemon itself
// must not be running, badger takes an exclusive lock on the directory.
func openRepoManager(ctx *cli.Context) (ports.RepoManager, error) {
	dbDir := filepath.Join(ctx.String("datadir"), "db")
	return dbbadger.NewRepoManager(dbDir, nil)
}

func fatal(err error) {
	_, _ = os.Stderr.WriteString("[bankctl] " + err.Error() + "\n")
	os.Exit(1)
}
