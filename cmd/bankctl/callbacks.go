package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/btcbank/bankd/internal/core/domain"
)

var addcallback = cli.Command{
	Name:  "addcallback",
	Usage: "register an HTTP endpoint notified of a user's confirmed payments",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "username",
			Usage:    "the user to notify for",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "url",
			Usage:    "the http(s) endpoint receiving the notifications",
			Required: true,
		},
		&cli.Int64Flag{
			Name:  "minconf",
			Usage: "the number of confirmations triggering a notification",
			Value: 1,
		},
	},
	Action: addCallbackAction,
}

var listcallbacks = cli.Command{
	Name:  "listcallbacks",
	Usage: "list the callbacks registered for a user",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "username",
			Usage:    "the user whose callbacks to list",
			Required: true,
		},
	},
	Action: listCallbacksAction,
}

var removecallback = cli.Command{
	Name:  "removecallback",
	Usage: "delete a callback registration",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Usage:    "the id of the callback to delete",
			Required: true,
		},
	},
	Action: removeCallbackAction,
}

func addCallbackAction(ctx *cli.Context) error {
	repoManager, err := openRepoManager(ctx)
	if err != nil {
		return err
	}
	defer repoManager.Close()

	user, err := repoManager.UserRepository().GetUserByUsername(
		context.Background(), ctx.String("username"),
	)
	if err != nil {
		return err
	}

	callback, err := domain.NewCallbackURL(
		user.ID, ctx.String("url"), ctx.Int64("minconf"),
	)
	if err != nil {
		return err
	}
	if err := repoManager.CallbackRepository().AddCallback(
		context.Background(), callback,
	); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("callback id:", callback.ID)
	return nil
}

func listCallbacksAction(ctx *cli.Context) error {
	repoManager, err := openRepoManager(ctx)
	if err != nil {
		return err
	}
	defer repoManager.Close()

	user, err := repoManager.UserRepository().GetUserByUsername(
		context.Background(), ctx.String("username"),
	)
	if err != nil {
		return err
	}

	callbacks, err := repoManager.CallbackRepository().GetCallbacksForUser(
		context.Background(), user.ID,
	)
	if err != nil {
		return err
	}

	fmt.Println()
	for _, callback := range callbacks {
		fmt.Printf(
			"%s\t%s\tminconf=%d\n",
			callback.ID, callback.URL, callback.MinConfirmations,
		)
	}
	return nil
}

func removeCallbackAction(ctx *cli.Context) error {
	repoManager, err := openRepoManager(ctx)
	if err != nil {
		return err
	}
	defer repoManager.Close()

	return repoManager.CallbackRepository().RemoveCallback(
		context.Background(), ctx.String("id"),
	)
}
