package storage

import (
	"github.com/ericogr/energy-duel/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultDSN keeps the database in memory; sessions do not survive a restart.
const DefaultDSN = "file::memory:?cache=shared"

func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	if dataSourceName == "" {
		dataSourceName = DefaultDSN
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	// A shared-cache memory database disappears once its last connection
	// closes, so keep exactly one open.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.AutoMigrate(&game.Session{}); err != nil {
		return nil, err
	}
	return db, nil
}
