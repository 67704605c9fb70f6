package db

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	auditadapters "catalog_backend/internal/feature/audit/adapters"
	authadapters "catalog_backend/internal/feature/auth/adapters"
	productentity "catalog_backend/internal/feature/products/domain/entity"
	userentity "catalog_backend/internal/feature/users/domain/entity"
)

// Supported values of Config.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// retryInterval is the pause between connection attempts.
const retryInterval = 3 * time.Second

// slowQueryThreshold is the duration above which GORM logs a query as slow.
const slowQueryThreshold = 200 * time.Millisecond

// ErrUnknownDriver is returned for a driver other than postgres or sqlite.
var ErrUnknownDriver = errors.New("unknown database driver")

// Config holds the database connection parameters.
type Config struct {
	Driver     string
	User       string
	Password   string
	Name       string
	Host       string
	Port       string
	SSLMode    string
	SQLitePath string
}

// Opener opens a GORM connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv reads the DB_* and SQLITE_PATH environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		Driver:     os.Getenv("DB_DRIVER"),
		User:       os.Getenv("DB_USER"),
		Password:   os.Getenv("DB_PASSWORD"),
		Name:       os.Getenv("DB_NAME"),
		Host:       os.Getenv("DB_HOST"),
		Port:       os.Getenv("DB_PORT"),
		SSLMode:    os.Getenv("DB_SSLMODE"),
		SQLitePath: os.Getenv("SQLITE_PATH"),
	}
}

// driver returns the configured driver, postgres by default.
func (c Config) driver() string {
	if c.Driver == "" {
		return DriverPostgres
	}
	return c.Driver
}

// BuildDSN builds the connection string for the configured driver.
// For sqlite it is the database file path.
func BuildDSN(cfg Config) string {
	if cfg.driver() == DriverSQLite {
		if cfg.SQLitePath == "" {
			return "catalog.db"
		}
		return cfg.SQLitePath
	}

	port := cfg.Port
	if port == "" {
		port = "5432"
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, port, sslmode)
}

// OpenerFor returns the Opener of a driver. Driver errors are translated so
// that unique violations surface as gorm.ErrDuplicatedKey.
func OpenerFor(driver string) (Opener, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log.Logger),
	}
	switch driver {
	case "", DriverPostgres:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gcfg)
		}, nil
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), gcfg)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// gormWriter routes GORM's log lines into zerolog.
type gormWriter struct {
	l zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.l.Warn().Str("component", "gorm").Msg(fmt.Sprintf(format, args...))
}

// newGormLogger logs failed and slow queries through l. A lookup that finds
// no row is an expected outcome and is not logged.
func newGormLogger(l zerolog.Logger) logger.Interface {
	return logger.New(gormWriter{l: l}, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// ConnectWithRetry opens the database, retrying every few seconds until timeout.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Warn().Err(err).Msg("DB connect failed, retrying...")
		time.Sleep(retryInterval)
	}
}

// Open connects to the configured database, retrying for up to 60 seconds.
func Open(cfg Config) (*gorm.DB, error) {
	opener, err := OpenerFor(cfg.driver())
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, opener)
	if err != nil {
		return nil, err
	}
	if cfg.driver() == DriverSQLite {
		// SQLite allows a single writer; one connection also keeps ":memory:" databases shared.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	log.Info().Str("driver", cfg.driver()).Msg("database connection successful")
	return db, nil
}

// Migrate creates or updates the users, products, logs and tokens tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userentity.User{},
		&productentity.Product{},
		&auditadapters.LogModel{},
		&authadapters.TokenModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
