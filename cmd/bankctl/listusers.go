package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var listusers = cli.Command{
	Name:   "listusers",
	Usage:  "list all registered users",
	Action: listUsersAction,
}

func listUsersAction(ctx *cli.Context) error {
	repoManager, err := openRepoManager(ctx)
	if err != nil {
		return err
	}
	defer repoManager.Close()

	users, err := repoManager.UserRepository().GetAllUsers(context.Background())
	if err != nil {
		return err
	}

	fmt.Println()
	for _, user := range users {
		fmt.Printf(
			"%d\t%s\t%s\n",
			user.ID, user.Username, user.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return nil
}
