package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/depicts-backend/internal/config"
	"github.com/tbourn/depicts-backend/internal/repo"
	"github.com/tbourn/depicts-backend/internal/sysutil"
)

// app carries what every subcommand needs. A db set before the command runs
// is borrowed: it is neither reopened nor closed.
type app struct {
	cfg      config.Config
	db       *gorm.DB
	borrowed bool
	open     func(config.Config) (*gorm.DB, error)
}

func newApp() *app {
	return &app{open: openStore}
}

// openStore opens the configured database without migrating it.
func openStore(cfg config.Config) (*gorm.DB, error) {
	dsn := cfg.DBPath
	if cfg.DBDriver == repo.DriverPostgres {
		dsn = cfg.DBDSN
	}
	return repo.Open(cfg.DBDriver, dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "depictsctl",
		Short: "Administer the depicts store",
		Long: `depictsctl works directly against the database configured by the
DB_DRIVER, DB_PATH and DB_DSN environment variables (a .env file is read
when present).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.init()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	root.AddCommand(
		newVersionCmd(),
		newMigrateCmd(a),
		newLanguagesCmd(a),
		newUsersCmd(a),
		newQueriesCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	sysutil.SetLogLevel(cfg.LogLevel)
	a.cfg = cfg
	if a.db != nil {
		a.borrowed = true
		return nil
	}
	db, err := a.open(cfg)
	if err != nil {
		return err
	}
	a.db = db
	return nil
}

func (a *app) close() error {
	if a.db == nil || a.borrowed {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	a.db = nil
	return sqlDB.Close()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "depictsctl "+sysutil.Version())
		},
	}
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := repo.AutoMigrate(a.db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}
