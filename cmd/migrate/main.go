package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/pageza/cookbook/backend/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dsn           string
		migrationsDir string
	)

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or roll back the SQL migrations of the cookbook database",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&dsn, "database-url", os.Getenv("DATABASE_URL"), "postgres connection string (defaults to $DATABASE_URL)")
	root.PersistentFlags().StringVar(&migrationsDir, "dir", "migrations", "directory holding the migration files")

	open := func() (*migrator, func(), error) {
		if dsn == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		m := &migrator{db: db, dir: migrationsDir, log: logging.NewLogger(false, os.Getenv("LOG_LEVEL"))}
		return m, func() { _ = db.Close() }, nil
	}

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeDB, err := open()
			if err != nil {
				return err
			}
			defer closeDB()
			return m.Up(cmd.Context())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "rollback",
		Short: "Roll back the last applied migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeDB, err := open()
			if err != nil {
				return err
			}
			defer closeDB()
			return m.Rollback(cmd.Context())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeDB, err := open()
			if err != nil {
				return err
			}
			defer closeDB()

			statuses, err := m.Status(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", state, s.File)
			}
			return nil
		},
	})

	return root
}
