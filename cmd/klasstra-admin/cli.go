package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/klasstra/klasstra-api/pkg/config"
)

var errHelp = errors.New("help provided")

type adminSeeder interface {
	EnsureAdmin(ctx context.Context, username, email, plain string) (bool, error)
}

type commandLine struct {
	db     *sql.DB
	users  adminSeeder
	seed   config.SeedConfig
	logger *zap.Logger
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.writer(), "Usage:")
	fmt.Fprintln(cli.writer(), "  migrate [up|down|status|version|redo]    - run goose against the embedded migrations")
	fmt.Fprintln(cli.writer(), "  seed [-username U] [-email E] [-password P] - create the initial admin if absent")
}

func (cli *commandLine) writer() io.Writer {
	if cli.out != nil {
		return cli.out
	}
	return os.Stdout
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ContinueOnError)
	seedCmd.SetOutput(cli.writer())
	username := seedCmd.String("username", cli.seed.AdminUsername, "admin username")
	email := seedCmd.String("email", cli.seed.AdminEmail, "admin email")
	password := seedCmd.String("password", cli.seed.AdminPassword, "admin password")

	switch args[1] {
	case "migrate":
		return cli.migrate(ctx, args[2:])
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		created, err := cli.users.EnsureAdmin(ctx, *username, *email, *password)
		if err != nil {
			return err
		}
		if created {
			cli.logger.Info("admin user created", zap.String("username", *username))
			fmt.Fprintf(cli.writer(), "created admin %s\n", *username)
		} else {
			fmt.Fprintf(cli.writer(), "admin %s already exists\n", *username)
		}
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}
