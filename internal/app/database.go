package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/rashedalhajeri/quickstore-builder/config"
)

func getDatabase(cfg config.DBConfig) *gorm.DB {
	loglevel := logger.Error
	if cfg.Debug {
		loglevel = logger.Info
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=%s",
		cfg.Host, cfg.User, cfg.Passwd, cfg.Name, cfg.Port, time.Local.String())
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		Logger:         logger.Default.LogMode(loglevel),
	})
	if err != nil {
		zap.S().Panicf("database connection failed: %s", err.Error())
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Panicf("database pool setup failed: %s", err.Error())
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.IdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db
}
