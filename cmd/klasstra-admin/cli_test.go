package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/klasstra/klasstra-api/pkg/config"
)

type fakeSeeder struct {
	calls    [][3]string
	existing map[string]bool
}

func (s *fakeSeeder) EnsureAdmin(_ context.Context, username, email, plain string) (bool, error) {
	s.calls = append(s.calls, [3]string{username, email, plain})
	if s.existing[username] {
		return false, nil
	}
	if s.existing == nil {
		s.existing = map[string]bool{}
	}
	s.existing[username] = true
	return true, nil
}

func newCLI() (*commandLine, *fakeSeeder, *bytes.Buffer) {
	out := &bytes.Buffer{}
	seeder := &fakeSeeder{}
	return &commandLine{
		users:  seeder,
		seed:   config.SeedConfig{AdminUsername: "admin", AdminEmail: "admin@example.com", AdminPassword: "AdminSecurePass123!"},
		logger: zap.NewNop(),
		out:    out,
	}, seeder, out
}

func TestRunWithoutCommandPrintsUsage(t *testing.T) {
	cli, _, out := newCLI()
	assert.ErrorIs(t, cli.run(context.Background(), []string{"klasstra-admin"}), errHelp)
	assert.Contains(t, out.String(), "Usage:")

	assert.ErrorIs(t, cli.run(context.Background(), []string{"klasstra-admin", "bogus"}), errHelp)
}

func stubGoose(t *testing.T, err error) *[]string {
	t.Helper()
	var calls []string
	orig := gooseRunFunc
	gooseRunFunc = func(_ context.Context, command string, _ *sql.DB, dir string, args ...string) error {
		calls = append(calls, strings.Join(append([]string{command, dir}, args...), " "))
		return err
	}
	t.Cleanup(func() { gooseRunFunc = orig })
	return &calls
}

func TestRunMigrateDefaultsToUp(t *testing.T) {
	calls := stubGoose(t, nil)
	cli, _, _ := newCLI()

	require.NoError(t, cli.run(context.Background(), []string{"klasstra-admin", "migrate"}))
	assert.Equal(t, []string{"up migrations"}, *calls)
}

func TestRunMigratePassesCommandAndArgs(t *testing.T) {
	calls := stubGoose(t, nil)
	cli, _, _ := newCLI()

	require.NoError(t, cli.run(context.Background(), []string{"klasstra-admin", "migrate", "down-to", "0"}))
	assert.Equal(t, []string{"down-to migrations 0"}, *calls)
}

func TestRunMigrateReturnsGooseError(t *testing.T) {
	stubGoose(t, errors.New("boom"))
	cli, _, _ := newCLI()

	assert.EqualError(t, cli.run(context.Background(), []string{"klasstra-admin", "migrate"}), "boom")
}

func TestRunSeedIsIdempotent(t *testing.T) {
	cli, seeder, out := newCLI()
	require.NoError(t, cli.run(context.Background(), []string{"klasstra-admin", "seed"}))
	require.NoError(t, cli.run(context.Background(), []string{"klasstra-admin", "seed"}))

	require.Len(t, seeder.calls, 2)
	assert.Equal(t, [3]string{"admin", "admin@example.com", "AdminSecurePass123!"}, seeder.calls[0])
	assert.Contains(t, out.String(), "created admin admin")
	assert.Contains(t, out.String(), "admin admin already exists")
}

func TestRunSeedFlagsOverrideConfig(t *testing.T) {
	cli, seeder, _ := newCLI()
	require.NoError(t, cli.run(context.Background(), []string{"klasstra-admin", "seed", "-username", "root", "-email", "root@example.com"}))
	assert.Equal(t, [3]string{"root", "root@example.com", "AdminSecurePass123!"}, seeder.calls[0])
}
