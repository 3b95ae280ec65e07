package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/btcbank/bankd/internal/core/application"
)

var adduser = cli.Command{
	Name:  "adduser",
	Usage: "register a new user of the shared wallet",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "username",
			Usage:    "the username used to authenticate, max 30 chars of [A-Za-z0-9._-]",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "password",
			Usage:    "the password used to authenticate",
			Required: true,
		},
	},
	Action: addUserAction,
}

func addUserAction(ctx *cli.Context) error {
	repoManager, err := openRepoManager(ctx)
	if err != nil {
		return err
	}
	defer repoManager.Close()

	authSvc := application.NewAuthService(repoManager.UserRepository())
	user, err := authSvc.RegisterUser(
		context.Background(), ctx.String("username"), ctx.String("password"),
	)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("user id:", user.ID)
	return nil
}
