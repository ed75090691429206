package database

import (
	"fmt"

	"sessiond/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitDB opens the snapshot database and migrates its single table. Sqlite
// is the default; postgres serves multi-instance deployments.
func InitDB(config models.DatabaseConfiguration) *gorm.DB {
	var dialector gorm.Dialector
	switch config.Type {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			config.Postgres.Host,
			config.Postgres.User,
			config.Postgres.Password,
			config.Postgres.Name,
			config.Postgres.Port,
			sslMode(config.Postgres.SSLMode),
		)
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(config.Sqlite.Path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}

	if err = db.AutoMigrate(&models.SessionSnapshot{}); err != nil {
		zap.L().Fatal("Failed to migrate database", zap.Error(err))
	}
	return db
}

func sslMode(mode string) string {
	if mode == "" {
		return "disable"
	}
	return mode
}
