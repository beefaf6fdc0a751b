package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kickstarter-campaigns/internal/config"
	"kickstarter-campaigns/internal/database"
	"kickstarter-campaigns/internal/logger"
	"kickstarter-campaigns/internal/routes"
	"kickstarter-campaigns/internal/store"
	"kickstarter-campaigns/models"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	cfg config.Config
	log *zap.Logger

	seedFile string
)

var rootCmd = &cobra.Command{
	Use:           "kickstarter",
	Short:         "Kickstarter Campaigns API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// a missing .env is normal outside development
		_ = godotenv.Load()
		cfg = config.New()
		log = logger.New(cfg.LogLevel)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the categories and campaigns tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("migration complete")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all rows with a seed dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		return seed(cmd.Context(), db, seedFile)
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "JSON dataset to load instead of the bundled development data")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func seed(ctx context.Context, db *gorm.DB, path string) error {
	var (
		cats []models.Category
		err  error
	)
	if path == "" {
		cats, err = database.DevSeed()
	} else {
		cats, err = database.LoadSeedFile(path)
	}
	if err != nil {
		return err
	}
	if err := database.Seed(ctx, db, cats); err != nil {
		return err
	}
	log.Info("seed complete", zap.Int("categories", len(cats)), zap.String("file", path))
	return nil
}

func serve(ctx context.Context) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	if cfg.SeedDev {
		if err := seed(ctx, db, ""); err != nil {
			return err
		}
	}

	engine := routes.Register(cfg, store.New(db), log)
	srv := &http.Server{Addr: cfg.Addr, Handler: engine, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.Info(fmt.Sprintf("%s is running on http://localhost%s.", cfg.Title, cfg.Addr),
			zap.String("env", cfg.Env),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
