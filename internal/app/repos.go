package app

import (
	"gorm.io/gorm"

	"github.com/fintrace/fintrace-backend/internal/platform/logger"
	"github.com/fintrace/fintrace-backend/internal/repos"
)

type Repos struct {
	LedgerEvent repos.LedgerEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		LedgerEvent: repos.NewLedgerEventRepo(db, log),
	}
}
