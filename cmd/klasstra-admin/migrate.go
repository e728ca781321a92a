package main

import (
	"context"

	"github.com/pressly/goose/v3"

	"github.com/klasstra/klasstra-api/pkg/database"
)

var gooseRunFunc = goose.RunContext // mockable

// migrate runs a goose command (up, down, status, ...) over the embedded migrations.
func (cli *commandLine) migrate(ctx context.Context, args []string) error {
	command := "up"
	if len(args) > 0 {
		command = args[0]
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(ctx, command, cli.db, database.MigrationsDir, arguments...)
}
