package repositories

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rohits-web03/chainvault/internal/models"
)

// Open connects to dsn and runs migrations for the local ledger tables.
// "sqlite:<path>" selects sqlite; anything else is treated as a postgres DSN.
func Open(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if path, ok := strings.CutPrefix(dsn, "sqlite:"); ok {
		dialector = sqlite.Open(path)
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	// Run migrations
	err = db.AutoMigrate(
		&models.File{},
		&models.Access{},
		&models.FileAccess{},
	)
	if err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	zap.L().Info("Successfully connected to database", zap.String("dialect", dialector.Name()))
	return db, nil
}
