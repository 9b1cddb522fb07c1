package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/payreport/internal/dal/store/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/spf13/viper"
	_ "modernc.org/sqlite"
)

// Driver selects the relational store behind the client.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

var ErrUnknownDriver = errors.New("unknown store driver")

// dropOrder lists tables children first so foreign keys never block a drop.
var dropOrder = []string{"payments", "order_items", "orders", "products", "users"}

// PostgresConfig holds postgres connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DB       string
	SSLMode  string
}

// Config holds store settings.
type Config struct {
	Driver     Driver
	SQLitePath string
	Postgres   PostgresConfig
}

// ConfigFromViper reads the store section of the loaded configuration.
func ConfigFromViper() Config {
	return Config{
		Driver:     Driver(viper.GetString("store.driver")),
		SQLitePath: viper.GetString("store.sqlite.path"),
		Postgres: PostgresConfig{
			Host:     viper.GetString("store.postgres.host"),
			Port:     viper.GetInt("store.postgres.port"),
			User:     viper.GetString("store.postgres.user"),
			Password: viper.GetString("store.postgres.password"),
			DB:       viper.GetString("store.postgres.db"),
			SSLMode:  viper.GetString("store.postgres.sslmode"),
		},
	}
}

func (c Config) dataSource() (driverName, dsn string, err error) {
	switch c.Driver {
	case DriverSQLite:
		return "sqlite", c.SQLitePath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", nil
	case DriverPostgres:
		sslMode := c.Postgres.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}

		return "pgx", fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Postgres.Host,
			c.Postgres.Port,
			c.Postgres.User,
			c.Postgres.Password,
			c.Postgres.DB,
			sslMode,
		), nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
}

// Client represents a relational store client.
type Client struct {
	db     *sqlx.DB
	driver Driver
}

// DB returns the underlying database handle.
func (c *Client) DB() *sqlx.DB {
	return c.db
}

// Driver returns the dialect the client talks to.
func (c *Client) Driver() Driver {
	return c.driver
}

// Placeholder returns the bind parameter style of the dialect.
func (c *Client) Placeholder() sq.PlaceholderFormat {
	if c.driver == DriverPostgres {
		return sq.Dollar
	}

	return sq.Question
}

// Close closes the database connection for graceful shutdown.
func (c *Client) Close() error {
	return c.db.Close()
}

// NewClient opens the store and checks it is reachable.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	driverName, dsn, err := cfg.dataSource()
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to connect to %s store: %w", cfg.Driver, err)
	}

	return &Client{
		db:     db,
		driver: cfg.Driver,
	}, nil
}

// MustNewClient creates a client from the loaded configuration.
func MustNewClient(ctx context.Context) *Client {
	client, err := NewClient(ctx, ConfigFromViper())
	if err != nil {
		panic(err)
	}

	return client
}

// Migrate applies pending schema migrations.
func (c *Client) Migrate(ctx context.Context) error {
	dir, err := c.setupGoose()
	if err != nil {
		return err
	}

	if err := goose.UpContext(ctx, c.db.DB, dir); err != nil && !errors.Is(err, goose.ErrNoNextVersion) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// Reset drops the report tables and recreates them empty.
// Tables created outside of migrations and unversioned databases are handled too.
func (c *Client) Reset(ctx context.Context) error {
	if _, err := c.setupGoose(); err != nil {
		return err
	}

	for _, table := range append(slices.Clone(dropOrder), goose.TableName()) {
		if _, err := c.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return c.Migrate(ctx)
}

func (c *Client) setupGoose() (string, error) {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{})

	switch c.driver {
	case DriverSQLite:
		return "sqlite", goose.SetDialect("sqlite3")
	case DriverPostgres:
		return "postgres", goose.SetDialect("postgres")
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, c.driver)
	}
}

type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "goose")
}

func (gooseLogger) Fatalf(format string, v ...any) {
	panic(fmt.Sprintf(format, v...))
}
