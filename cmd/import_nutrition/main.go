package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"nutricalc/internal/config"
	"nutricalc/internal/db"
	"nutricalc/internal/importer"
	applog "nutricalc/internal/log"
)

var openDatabaseFunc = openDatabase

// errMockDatabase rejects DATABASE_USE_MOCK: the mock store lives in process
// memory, so anything imported into it is gone when the command exits.
var errMockDatabase = errors.New("DATABASE_USE_MOCK is not supported by the importer; imported facts would not be persisted")

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "import_nutrition",
		Short:         "Load per-100 g material nutrition facts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCSVCmd(), newPDFCmd())
	return root
}

func newCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "csv <file>",
		Short: "Upsert nutrition rows keyed by material code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open csv: %w", err)
			}
			defer file.Close()

			database, err := openDatabaseFunc(ctx)
			if err != nil {
				return err
			}

			summary, err := importer.New(database).ImportCSV(ctx, file, filepath.Base(args[0]))
			if err != nil {
				return err
			}
			for _, reason := range summary.Skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", reason)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported nutrition for %d new and %d existing materials from %s\n",
				summary.Created, summary.Updated, filepath.Base(args[0]))
			return nil
		},
	}
}

func newPDFCmd() *cobra.Command {
	var materialCode string
	cmd := &cobra.Command{
		Use:   "pdf <file>",
		Short: "Parse a supplier spec sheet and upsert its nutrition facts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if strings.TrimSpace(materialCode) == "" {
				return fmt.Errorf("--material must not be empty")
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read pdf: %w", err)
			}

			database, err := openDatabaseFunc(ctx)
			if err != nil {
				return err
			}

			found, err := importer.New(database).ImportSpecSheet(ctx, materialCode, data, filepath.Base(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d nutrients for %s from %s\n", found, materialCode, filepath.Base(args[0]))
			return nil
		},
	}
	cmd.Flags().StringVar(&materialCode, "material", "", "material code the spec sheet describes")
	_ = cmd.MarkFlagRequired("material")
	return cmd
}

func openDatabase(ctx context.Context) (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	if cfg.Database.UseMock {
		return nil, errMockDatabase
	}

	applog.Debug(ctx, "opening nutrition database")
	database, err := db.Configure(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return database, nil
}
