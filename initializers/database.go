package initializers

import (
	"fmt"
	"log"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func ConnectToDB(cfg *Config) error {
	db, err := OpenDatabase(cfg)
	if err != nil {
		return err
	}
	DB = db
	log.Printf("Connected to %s database.", cfg.DBDriver)
	return nil
}

// OpenDatabase opens the store named by the config. Duplicate-key errors
// are translated to gorm.ErrDuplicatedKey for every driver.
func OpenDatabase(cfg *Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := gormlogger.Warn
	if cfg.AppEnv == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite has no row locks; one connection serializes transactions.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	return db, nil
}

func dialectorFor(cfg *Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return sqlite.Open(cfg.DBSource), nil
	case "mysql":
		dsn, err := mysqldriver.ParseDSN(cfg.DBSource)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql DB_SOURCE: %w", err)
		}
		// DATE columns must come back as time.Time.
		dsn.ParseTime = true
		return mysql.New(mysql.Config{DSN: dsn.FormatDSN(), DSNConfig: dsn}), nil
	case "postgres":
		connCfg, err := pgx.ParseConfig(cfg.DBSource)
		if err != nil {
			return nil, fmt.Errorf("invalid postgres DB_SOURCE: %w", err)
		}
		connCfg.RuntimeParams["application_name"] = "littlelemon-api"
		return postgres.New(postgres.Config{Conn: stdlib.OpenDB(*connCfg)}), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
