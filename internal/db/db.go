package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fintrace/fintrace-backend/internal/platform/envutil"
	"github.com/fintrace/fintrace-backend/internal/platform/logger"
	"github.com/fintrace/fintrace-backend/internal/types"
)

// Service owns the gorm connection backing the creation journal. SQLite is
// the default so a single-node deployment needs no external database;
// Postgres is selected with LEDGER_DB_DRIVER=postgres.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	driver := envutil.String("LEDGER_DB_DRIVER", "sqlite")

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		host := envutil.String("POSTGRES_HOST", "localhost")
		port := envutil.String("POSTGRES_PORT", "5432")
		user := envutil.String("POSTGRES_USER", "postgres")
		password := envutil.String("POSTGRES_PASSWORD", "")
		name := envutil.String("POSTGRES_NAME", "fintrace")
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		dialector = postgres.Open(dsn)
	case "sqlite":
		path := envutil.String("LEDGER_DB_PATH", "fintrace.db")
		dialector = sqlite.Open(path)
	default:
		return nil, fmt.Errorf("unknown LEDGER_DB_DRIVER %q", driver)
	}

	serviceLog.Info("Connecting to journal database...", "driver", driver)
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		serviceLog.Error("Journal database connection failed", "error", err)
		return nil, fmt.Errorf("connect journal database: %w", err)
	}
	return &Service{db: gormDB, log: serviceLog}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

// AutoMigrateAll creates the journal schema. The journal has exactly one
// table; rows are append-only.
func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating journal tables...")
	if err := s.db.AutoMigrate(&types.LedgerEvent{}); err != nil {
		s.log.Error("Auto migration failed for journal tables", "error", err)
		return fmt.Errorf("automigrate journal: %w", err)
	}
	return nil
}
