package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"meridianit/inbox-project/pkgs/conf"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var (
	dbtx     DBTX
	poolOnce sync.Once
	poolErr  error
	dbConf   *DatabaseConfig
)

// DatabaseConfig holds the database connection configuration
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Database       string
	SSLMode        string
	ChannelBinding string
}

// NewDatabaseConfig creates a new database configuration from environment variables
func NewDatabaseConfig() *DatabaseConfig {
	cfg := conf.GetConfig()
	return &DatabaseConfig{
		Host:           cfg.PostgresConfig.Host,
		Port:           cfg.PostgresConfig.Port,
		User:           cfg.PostgresConfig.User,
		Password:       cfg.PostgresConfig.Password,
		Database:       cfg.PostgresConfig.Database,
		SSLMode:        cfg.PostgresConfig.SSLMode,
		ChannelBinding: cfg.PostgresConfig.ChannelBinding,
	}
}

func SetDatabaseConfig(cfg *DatabaseConfig) {
	dbConf = cfg
}

// ConnectionString returns the PostgreSQL connection string
func (cfg *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode)
}

// getConn returns the singleton database pool instance.
// The pool is only created once across the entire application.
func getConn(ctx context.Context) (DBTX, error) {
	if dbConf == nil {
		dbConf = NewDatabaseConfig()
	}

	poolOnce.Do(func() {
		log.Info().Str("host", dbConf.Host).Str("database", dbConf.Database).Msg("Creating connection pool")
		dbtx, poolErr = createConnectionPool(ctx, dbConf)
	})
	return dbtx, poolErr
}

func createConnectionPool(ctx context.Context, config *DatabaseConfig) (DBTX, error) {
	poolConfig, err := pgxpool.ParseConfig(config.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 30
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// NewQueries creates a new Queries instance with the singleton connection pool
func NewQueries(ctx context.Context) (*Queries, error) {
	pool, err := getConn(ctx)
	if err != nil {
		return nil, err
	}
	return New(pool), nil
}
