package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/escala-voluntarios/internal/config"
	dbpkg "github.com/BruksfildServices01/escala-voluntarios/internal/db"
	"github.com/BruksfildServices01/escala-voluntarios/internal/logging"
)

// App holds what every command shares.
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	ctx    context.Context
}

var app *App

func main() {
	rootCmd := &cobra.Command{
		Use:           "escala",
		Short:         "Escala de voluntários - agendamento de turnos de domingo",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(inactiveCmd())
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initApp() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app = &App{cfg: cfg, logger: logger, ctx: context.Background()}
	return nil
}

func (a *App) openDB() (*gorm.DB, error) {
	db, err := dbpkg.NewDB(a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	if err := dbpkg.Migrate(db, a.logger); err != nil {
		return nil, err
	}
	return db, nil
}
