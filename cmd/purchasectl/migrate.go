package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"purchasing-bridge/internal/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply SQL migrations in lexical order",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("migrate")

		dir, _ := cmd.Flags().GetString("dir")
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("read migrations dir %s: %w", dir, err)
		}

		var files []string
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
				files = append(files, e.Name())
			}
		}
		sort.Strings(files)
		if len(files) == 0 {
			return fmt.Errorf("no .sql files in %s", dir)
		}

		pool, ctx, err := connect(cmd)
		if err != nil {
			return err
		}
		defer pool.Close()

		for _, name := range files {
			sql, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
			if _, err := pool.Exec(ctx, string(sql)); err != nil {
				return fmt.Errorf("apply %s: %w", name, err)
			}
			log.Info().Str("migration", name).Msg("applied")
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().String("dir", "migrations", "directory containing .sql migrations")
	rootCmd.AddCommand(migrateCmd)
}
