package main

import (
	"context"
	"os"

	"purchasing-bridge/internal/db"
	"purchasing-bridge/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "purchasectl",
	Short: "Operational CLI for the purchasing bridge",
	Long: `purchasectl manages the purchasing bridge document store:
applying schema migrations, loading demo data, and verifying that the
database is reachable and has the expected tables.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		logger.Setup()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// connect opens a pool using --database-url when set, DATABASE_URL otherwise.
func connect(cmd *cobra.Command) (*pgxpool.Pool, context.Context, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if url, _ := cmd.Flags().GetString("database-url"); url != "" {
		pool, err := db.NewPoolFromURL(ctx, url)
		return pool, ctx, err
	}
	pool, err := db.NewPool(ctx)
	return pool, ctx, err
}

func init() {
	rootCmd.PersistentFlags().String("database-url", "", "database URL (overrides DATABASE_URL)")
}
