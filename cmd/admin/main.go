// Command admin runs maintenance tasks against the configured store.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/yigit/schoolhub/internal/app/services"
	"github.com/yigit/schoolhub/internal/bootstrap"
	"github.com/yigit/schoolhub/internal/config"
	"github.com/yigit/schoolhub/internal/pkg/logger"
	"github.com/yigit/schoolhub/internal/seed"
)

var errPostgresOnly = errors.New("migrations only apply to the postgres driver")

var openStoreFunc = func(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*bootstrap.Store, error) {
	return bootstrap.SetupStore(ctx, cfg, false, lgr)
}

type commandLine struct {
	cfg    *config.Config
	logger zerolog.Logger
	store  *bootstrap.Store
	out    io.Writer
}

func main() {
	cmd := &commandLine{out: os.Stdout}
	if err := cmd.run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (cmd *commandLine) run(args []string) error {
	return cmd.app().Run(args)
}

func (cmd *commandLine) app() *cli.App {
	return &cli.App{
		Name:                 "admin",
		Usage:                "SchoolHub maintenance commands",
		Writer:               cmd.out,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML configuration",
				Value:   filepath.Join("configs", "config.yaml"),
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Before: cmd.setup,
		After:  cmd.teardown,
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "apply pending SQL migrations",
				Action: cmd.migrate,
			},
			{
				Name:   "seed",
				Usage:  "create the super admin and the current academic year when missing",
				Action: cmd.seed,
			},
			{
				Name:  "create-user",
				Usage: "create a login account, prompting for the password when not given",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "account email", Required: true},
					&cli.StringFlag{Name: "role", Usage: "account role", Value: "admin"},
					&cli.StringFlag{Name: "password", Usage: "account password"},
				},
				Action: cmd.createUser,
			},
			{
				Name:   "reconcile-sections",
				Usage:  "recompute section student counters from active enrollments",
				Action: cmd.reconcileSections,
			},
			{
				Name:   "cleanup-tokens",
				Usage:  "delete expired and revoked refresh tokens",
				Action: cmd.cleanupTokens,
			},
		},
	}
}

// setup loads configuration and opens the store unless a test already injected them
func (cmd *commandLine) setup(c *cli.Context) error {
	if cmd.cfg == nil {
		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
		if err != nil {
			return err
		}
		cmd.cfg, cmd.logger = cfg, lgr
	}
	if cmd.store == nil && c.Args().Present() {
		store, err := openStoreFunc(c.Context, cmd.cfg, cmd.logger)
		if err != nil {
			return err
		}
		cmd.store = store
	}
	return nil
}

func (cmd *commandLine) teardown(c *cli.Context) error {
	if cmd.store == nil {
		return nil
	}
	return cmd.store.Close(c.Context)
}

func (cmd *commandLine) services() *services.Services {
	return services.New(cmd.store.Repos, bootstrap.NewJWTService(cmd.cfg), nil)
}

func (cmd *commandLine) migrate(c *cli.Context) error {
	if cmd.store.Postgres == nil {
		return errPostgresOnly
	}
	applied, err := bootstrap.RunMigrations(c.Context, cmd.store.Postgres, cmd.cfg.Database.MigrationsDir, cmd.logger)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintln(cmd.out, "No pending migrations")
		return nil
	}
	for _, name := range applied {
		fmt.Fprintln(cmd.out, "applied", name)
	}
	return nil
}

func (cmd *commandLine) seed(c *cli.Context) error {
	result, err := seed.CreateDefaultData(c.Context, cmd.store.Repos, bootstrap.SeedOptions(cmd.cfg), logger.Component("seed"))
	if err != nil {
		return err
	}
	if result.AdminCreated {
		fmt.Fprintf(cmd.out, "Super admin %s created\n", cmd.cfg.Seed.AdminEmail)
	}
	if result.AcademicYear != nil {
		state := "already current"
		if result.YearCreated {
			state = "created"
		}
		fmt.Fprintf(cmd.out, "Academic year %s %s\n", result.AcademicYear.Year, state)
	}
	return nil
}

func (cmd *commandLine) reconcileSections(c *cli.Context) error {
	drifts, err := cmd.services().Classes.ReconcileSections(c.Context)
	if err != nil {
		return err
	}
	if len(drifts) == 0 {
		fmt.Fprintln(cmd.out, "All section counters are consistent")
		return nil
	}
	for _, d := range drifts {
		fmt.Fprintf(cmd.out, "section %d: stored %d, actual %d\n", d.SectionID, d.Stored, d.Actual)
	}
	fmt.Fprintf(cmd.out, "Corrected %d sections\n", len(drifts))
	return nil
}

func (cmd *commandLine) cleanupTokens(c *cli.Context) error {
	n, err := cmd.services().Auth.CleanupExpiredTokens(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.out, "Removed %d refresh tokens\n", n)
	return nil
}
