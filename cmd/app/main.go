// Command etching serves the order and quote workflow API and runs its
// scheduled jobs.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"etching/cmd"
	"etching/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// envFile is set by the --env-file flag.
var envFile string

var rootCmd = &cobra.Command{
	Use:           "etching",
	Short:         "Order and quote workflow service for custom etching",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// migrateCmd runs the schema migration and exits.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(_ *cobra.Command, _ []string) error {
		configs, err := cmd.LoadConfig(envFile)
		if err != nil {
			return err
		}
		db, err := openDB(configs)
		if err != nil {
			return err
		}
		if err = postgres.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		newLogger().Info("schema migrated", "database", configs.DBName)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger logs JSON to stdout.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

// openDB opens the gorm connection. TranslateError maps duplicate keys to
// gorm.ErrDuplicatedKey.
func openDB(configs cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, errors.Join(errors.New("connect to database"), err)
	}
	return db, nil
}
