package db

import (
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/t3rryhuang/Sentiment-Insight/config"
	"github.com/t3rryhuang/Sentiment-Insight/logger"
	"github.com/t3rryhuang/Sentiment-Insight/models"
)

var (
	dbOnce sync.Once
	conn   *gorm.DB
)

// Init opens the global Postgres connection using DB_* env values and
// migrates the metric schema. Safe to call more than once.
func Init() error {
	var initErr error
	dbOnce.Do(func() {
		dsn, err := config.DatabaseDSN()
		if err != nil {
			initErr = err
			return
		}

		g, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			initErr = err
			return
		}

		if err := g.AutoMigrate(
			&models.TrackedEntity{},
			&models.Topic{},
			&models.Adjective{},
			&models.MetricLog{},
			&models.CondensedTopic{},
			&models.MetricLogCondensed{},
		); err != nil {
			initErr = err
			return
		}

		conn = g
		logger.Log.Info("Postgres connected and schema migrated")
	})
	return initErr
}

func Conn() *gorm.DB { return conn }

// Ping verifies the underlying connection, used by the API health check.
func Ping() error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
