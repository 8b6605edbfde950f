// Command migrate manages the TokenEstate database schema.
package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"github.com/tokenestate/backend/internal/infrastructure/logger"
	"github.com/tokenestate/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

var (
	migrationsPath string
	logLevel       string
	log            *zap.Logger
)

func main() {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "TokenEstate database migration tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log = logger.New(&logger.Config{
				Level:      logLevel,
				Format:     "console",
				Output:     "stdout",
				TimeFormat: "2006-01-02 15:04:05",
			})
			abs, err := filepath.Abs(resolvePath(migrationsPath))
			if err != nil {
				return fmt.Errorf("resolve migrations path: %w", err)
			}
			migrationsPath = abs
			return nil
		},
	}
	root.PersistentFlags().StringVar(&migrationsPath, "path", "", "path to migrations directory (default ./migrations)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		&cobra.Command{
			Use:   "create <name> [description]",
			Short: "Create the next sequential migration pair",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				description := ""
				if len(args) > 1 {
					description = args[1]
				}
				mf, err := migration.CreateMigration(migrationsPath, args[0], description)
				if err != nil {
					return err
				}
				log.Info("Migration created",
					zap.String("version", mf.Version),
					zap.String("up_file", mf.UpPath),
					zap.String("down_file", mf.DownPath))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List available migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				names, err := migration.ListMigrations(migrationsPath)
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), "  -", n)
				}
				return nil
			},
		},
		withMigrator("up", "Apply all pending migrations", cobra.NoArgs, func(m *migration.Migrator, _ []string) error {
			return m.Up()
		}),
		withMigrator("down", "Roll back all migrations", cobra.NoArgs, func(m *migration.Migrator, _ []string) error {
			return m.Down()
		}),
		withMigrator("step <n>", "Apply n migrations (negative rolls back)", cobra.ExactArgs(1), func(m *migration.Migrator, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid step count %q", args[0])
			}
			return m.Steps(n)
		}),
		withMigrator("goto <version>", "Migrate to a specific version", cobra.ExactArgs(1), func(m *migration.Migrator, args []string) error {
			v, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return m.GoTo(uint(v))
		}),
		withMigrator("version", "Show the current migration version", cobra.NoArgs, func(m *migration.Migrator, _ []string) error {
			v, dirty, err := m.Version()
			if err != nil {
				return err
			}
			log.Info("Current migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
			return nil
		}),
		withMigrator("force <version>", "Force the recorded version of a dirty database", cobra.ExactArgs(1), func(m *migration.Migrator, args []string) error {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return m.Force(v)
		}),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

// withMigrator builds a subcommand that needs a database connection
func withMigrator(use, short string, args cobra.PositionalArgs, run func(*migration.Migrator, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, argv []string) error {
			defer func() { _ = log.Sync() }()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			db, err := sql.Open("postgres", cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()
			if err := db.Ping(); err != nil {
				return fmt.Errorf("ping database: %w", err)
			}

			m, err := migration.New(db, migrationsPath, log)
			if err != nil {
				return err
			}
			defer m.Close()
			return run(m, argv)
		},
	}
}

// resolvePath finds the migrations directory next to the working directory
// or two levels above the executable.
func resolvePath(p string) string {
	if p != "" {
		return p
	}
	if _, err := os.Stat(defaultMigrationsPath); err == nil {
		return defaultMigrationsPath
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), "..", "..", defaultMigrationsPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return defaultMigrationsPath
}
