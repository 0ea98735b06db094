package cmd

import (
	"github.com/spf13/cobra"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db [db-path]",
	Short: "Initialize the database schema",
	Long: `Initialize an inventory database with the required schema.

It is safe to run multiple times - the table is only created if it doesn't
already exist, and databases created by earlier versions are left as they are.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := cfg.DatabasePath()
		if len(args) == 1 {
			dbPath = args[0]
		}
		logger.Info("initializing database", "path", dbPath)

		s, err := openStore(dbPath)
		if err != nil {
			return err
		}
		defer s.Close()

		logger.Info("database initialized successfully")
		return printStats(cmd, s)
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}
