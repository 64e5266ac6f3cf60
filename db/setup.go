package db

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tasktrackr/tasktrackr/internal/config"
	"github.com/tasktrackr/tasktrackr/internal/models"
)

// Open connects to the backend selected by cfg. Both backends share the
// same models and migrations.
func Open(cfg config.DatabaseConfig, logger zerolog.Logger, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector

	driver := cfg.Driver()
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	default:
		dialector = sqlite.Open(cfg.SQLiteDSN())
	}

	level := gormlogger.Silent
	if debug {
		level = gormlogger.Warn
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         NewLogger(logger, level),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxAge)
	if driver == config.DriverSQLite {
		// one writer at a time; concurrent sqlite writers just hit SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	}

	logger.Info().
		Str("driver", driver).
		Dur("conn_max_age", cfg.ConnMaxAge).
		Msg("connected to database")
	return database, nil
}

func MigrateDatabase(database *gorm.DB) error {
	models := []interface{}{
		&models.User{},
		&models.Project{},
		&models.Task{},
	}

	for _, model := range models {
		if err := database.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	return nil
}

func Ping(ctx context.Context, database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
