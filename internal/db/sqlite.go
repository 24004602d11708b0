package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenSQLite opens (creating if needed) the database at dbPath and applies
// the embedded migrations. A nil log discards gorm output.
func OpenSQLite(dbPath string, log *zap.Logger) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			zapGormWriter{log: log.Named("gorm").Sugar()},
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyEmbeddedMigrations(database, log); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	log.Debug("database ready", zap.String("path", dbPath))
	return database, nil
}

type zapGormWriter struct {
	log *zap.SugaredLogger
}

func (writer zapGormWriter) Printf(format string, args ...interface{}) {
	writer.log.Warnf(format, args...)
}
