package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hance08/weka/internal/config"
	"github.com/hance08/weka/internal/service"
	"github.com/hance08/weka/internal/store"
)

type App struct {
	Service *service.Service
	Store   store.Repository
	Config  *config.Config
	Log     *zap.Logger
}

// NewApp initialize config, database and core logic, then return App entity
func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	dbPathRaw := cfg.Database.Path

	if dbPathRaw == "" {
		appDir, _ := getAppDataDir()
		dbPathRaw = filepath.Join(appDir, "weka.db")
	}

	dbStore, err := store.NewStore(dbPathRaw, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		dbStore.Close()
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	svc := service.NewService(dbStore, service.Config{Precision: cfg.Output.Precision}, log)

	cleanup := func() {
		_ = log.Sync()
		if err := dbStore.Close(); err != nil {
			fmt.Printf("Error closing DB: %v\n", err)
		}
	}

	return &App{
		Service: svc,
		Store:   dbStore,
		Config:  cfg,
		Log:     log,
	}, cleanup, nil
}

// newLogger builds the diagnostic logger. Rejected records are reported at
// debug level, so the logger stays silent unless logging.debug is set.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if !cfg.Logging.Debug {
		return zap.NewNop(), nil
	}

	zc := zap.NewDevelopmentConfig()
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

func getAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".weka"), nil
	}

	return filepath.Join(configDir, "weka"), nil
}
