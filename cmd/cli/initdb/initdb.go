package initdb

import (
	"fmt"

	"github.com/crucial707/bloglet/cmd/cli/root"
	"github.com/crucial707/bloglet/internal/config"
	"github.com/crucial707/bloglet/internal/db"
	"github.com/spf13/cobra"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	initDBCmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the database schema",
		Long:  "Apply all pending schema migrations to the configured database.",
		RunE:  runInitDB,
	}

	root.GetRoot().AddCommand(initDBCmd)
}

// ==========================
// Initialize the database
// ==========================
func runInitDB(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	url := db.URL(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)
	if err := db.Run(url); err != nil {
		return err
	}

	fmt.Println("Initialized the database.")
	return nil
}
