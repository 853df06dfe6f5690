package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fintrace/fintrace-backend/internal/db"
	"github.com/fintrace/fintrace-backend/internal/platform/logger"
	"github.com/fintrace/fintrace-backend/internal/provenance"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Ledger   *provenance.Ledger
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	// Journaling is optional: without it the ledger runs purely in memory
	// and no database connection is opened at all.
	var theDB *gorm.DB
	var reposet Repos
	if cfg.Journal {
		dbsvc, err := db.New(log)
		if err != nil {
			log.Sync()
			return nil, fmt.Errorf("init db: %w", err)
		}
		if err := dbsvc.AutoMigrateAll(); err != nil {
			log.Sync()
			return nil, fmt.Errorf("db automigrate: %w", err)
		}
		theDB = dbsvc.DB()
		reposet = wireRepos(theDB, log)
	} else {
		log.Info("Journaling disabled, ledger is in-memory only")
	}

	ledger := provenance.NewLedger()
	serviceset := wireServices(ledger, reposet, log)

	if cfg.Journal {
		applied, err := serviceset.Ledger.Replay(context.Background())
		if err != nil {
			log.Sync()
			return nil, fmt.Errorf("replay journal: %w", err)
		}
		log.Info("Journal replayed", "events", applied)
	}

	handlerset := wireHandlers(serviceset, log)
	router := wireRouter(handlerset, log)

	return &App{
		Log:      log,
		DB:       theDB,
		Ledger:   ledger,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
