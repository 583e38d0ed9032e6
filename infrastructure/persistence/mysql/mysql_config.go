package mysql

import (
	"fmt"
	"time"

	appConfig "foody/config"
	appLogger "foody/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Config MySQL connection configuration.
type Config struct {
	Host            string
	Port            string
	Username        string
	Password        string
	Database        string
	Charset         string
	ParseTime       bool
	Loc             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string // silent, error, warn, info
}

// FromAppConfig builds a MySQL Config from the application configuration.
func FromAppConfig(cfg *appConfig.Config) Config {
	logLevel := "warn"
	if cfg.IsDevelopment() {
		logLevel = "info"
	}

	return Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        logLevel,
	}
}

// DSN builds the MySQL data source name.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=%t&loc=%s",
		c.Username, c.Password, c.Host, c.Port, c.Database,
		c.Charset, c.ParseTime, c.Loc)
}

func (c *Config) applyDefaults() {
	if c.Charset == "" {
		c.Charset = "utf8mb4"
	}
	if c.Loc == "" {
		c.Loc = "Local"
	}
	c.ParseTime = true
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 25
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 5
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = 5 * time.Minute
	}
}

func (c *Config) parseLogLevel() gormLogger.LogLevel {
	switch c.LogLevel {
	case "silent":
		return gormLogger.Silent
	case "error":
		return gormLogger.Error
	case "info":
		return gormLogger.Info
	default:
		return gormLogger.Warn
	}
}

// Connect opens the database connection and configures the pool.
func Connect(config Config) (*gorm.DB, error) {
	config.applyDefaults()

	db, err := gorm.Open(mysql.Open(config.DSN()), &gorm.Config{
		Logger: appLogger.NewGormLoggerAdapter(config.parseLogLevel()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}

	return db, nil
}
