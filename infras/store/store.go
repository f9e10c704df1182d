package store

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"frontdesk/config"
	"frontdesk/helper"
	"frontdesk/infras/otel"
	"frontdesk/infras/s3"
	"frontdesk/shared/constant"
	"io/fs"
	"net"
	"net/url"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	sqliteMaxOpenConnection   = 8
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10

	probeSQLite = "SELECT name FROM sqlite_master WHERE type='table'"
)

var (
	// ErrCorrupted marks a store whose file exists but cannot be read as a database.
	ErrCorrupted = errors.New("store is corrupted")
	// ErrUnavailable marks a store that could not be reached and was not recovered.
	ErrUnavailable = errors.New("store is unavailable")

	errStoreMissing  = errors.New("store file is missing")
	errStoreReplaced = errors.New("store file was replaced")
	errSchemaMissing = errors.New("store schema is missing")

	requiredTables = []string{"users", "rooms", "bookings", "activity_logs"}
)

func init() {
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// Store owns the connection pool and swaps it out when the backing file has to
// be recreated. Repositories must call DB for every query instead of keeping
// the pool.
type Store struct {
	cfg      *config.Config
	otel     otel.Otel
	recovery RecoveryPolicy

	mu   sync.RWMutex
	db   *sqlx.DB
	file os.FileInfo
}

type Option func(*Store)

// WithRecoveryPolicy replaces the default recreate policy.
func WithRecoveryPolicy(policy RecoveryPolicy) Option {
	return func(s *Store) {
		s.recovery = policy
	}
}

// New opens the configured store. A corrupted store found at boot goes through
// the same recovery policy as one found while serving.
func New(cfg *config.Config, otl otel.Otel, archiver s3.S3, opts ...Option) (*Store, func(), error) {
	ctx, scope := otl.NewScope(context.Background(), constant.OtelStoreScopeName, constant.OtelStoreScopeName+".New")
	defer scope.End()

	s := &Store{
		cfg:      cfg,
		otel:     otl,
		recovery: Recreate(archiver),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(ctx); err != nil {
		if !errors.Is(err, ErrCorrupted) {
			scope.TraceError(err)

			return nil, nil, err
		}

		if err = s.recover(ctx, err); err != nil {
			scope.TraceError(err)

			return nil, nil, err
		}
	}

	cleanup := func() {
		if err := s.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}

	return s, cleanup, nil
}

// Open connects to the configured dialect, verifies it is readable, applies
// migrations and seeds an empty store. A store that exists but is not a
// readable database yields an error wrapping ErrCorrupted.
func Open(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err = openSQLite(ctx, cfg)
	case config.DriverPostgres:
		db, err = openPostgres(ctx, cfg)
	default:
		err = fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}

	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		if err = helper.Up(cfg); err != nil {
			_ = db.Close()

			if isCorruption(err) {
				return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
			}

			return nil, fmt.Errorf("failed to migrate store: %w", err)
		}
	}

	if err = seed(ctx, db, cfg); err != nil {
		_ = db.Close()

		if isCorruption(err) {
			return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
		}

		return nil, fmt.Errorf("failed to seed store: %w", err)
	}

	return db, nil
}

func sqliteDSN(cfg *config.Config) string {
	query := url.Values{}
	query.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.DB.SQLite.BusyTimeoutMS))
	query.Add("_pragma", "foreign_keys(1)")
	query.Set("_txlock", "immediate")

	return cfg.DB.SQLite.Path + "?" + query.Encode()
}

func openSQLite(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open(config.DriverSQLite, sqliteDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}

	db.SetMaxOpenConns(sqliteMaxOpenConnection)

	if _, err = probe(ctx, db, cfg.DB.Driver); err != nil {
		_ = db.Close()

		return nil, err
	}

	log.Debug().Str("path", cfg.DB.SQLite.Path).Msg("Connected to sqlite store")

	return db, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	pg := cfg.DB.Postgres
	dbName := pg.Name

	if pg.Prefix != "" {
		dbName = pg.Prefix + dbName
	}

	descriptor := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(pg.Username),
		url.QueryEscape(pg.Password),
		net.JoinHostPort(pg.Host, pg.Port),
		dbName,
		pg.SSLMode,
	)

	var lastErr error

	for retry := range max(pg.MaxRetry, 1) {
		db, err := sqlx.ConnectContext(ctx, config.DriverPostgres, descriptor)
		if err == nil {
			log.
				Info().
				Str("host", pg.Host).
				Str("port", pg.Port).
				Str("dbName", dbName).
				Msg("Connected to database")
			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)

			return db, nil
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("host", pg.Host).
			Str("port", pg.Port).
			Str("dbName", dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	return nil, fmt.Errorf("%w: %w", ErrUnavailable, lastErr)
}

// probe returns the table names of a sqlite store.
func probe(ctx context.Context, db *sqlx.DB, driver string) ([]string, error) {
	if driver == config.DriverPostgres {
		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}

		return nil, nil
	}

	var tables []string
	if err := db.SelectContext(ctx, &tables, probeSQLite); err != nil {
		if isCorruption(err) {
			return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return tables, nil
}

func isCorruption(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_NOTADB:
			return true
		}
	}

	msg := err.Error()

	return strings.Contains(msg, "file is not a database") || strings.Contains(msg, "database disk image is malformed")
}

func (s *Store) isSQLite() bool {
	return s.cfg.DB.Driver == config.DriverSQLite
}

// open must be called with mu held.
func (s *Store) open(ctx context.Context) error {
	db, err := Open(ctx, s.cfg)
	if err != nil {
		return err
	}

	s.db = db
	s.file = nil

	if s.isSQLite() {
		info, statErr := os.Stat(s.cfg.DB.SQLite.Path)
		if statErr != nil {
			return fmt.Errorf("failed to stat sqlite store: %w", statErr)
		}

		s.file = info
	}

	return nil
}

// check must be called with mu held for reading.
func (s *Store) check(ctx context.Context) error {
	if s.db == nil {
		return errStoreMissing
	}

	if s.isSQLite() {
		info, err := os.Stat(s.cfg.DB.SQLite.Path)
		if errors.Is(err, fs.ErrNotExist) {
			return errStoreMissing
		}

		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}

		if s.file != nil && !os.SameFile(s.file, info) {
			return errStoreReplaced
		}
	}

	tables, err := probe(ctx, s.db, s.cfg.DB.Driver)
	if err != nil {
		return err
	}

	// a truncated file reads as an empty database
	if s.isSQLite() {
		for _, table := range requiredTables {
			if !slices.Contains(tables, table) {
				return fmt.Errorf("%w: %s", errSchemaMissing, table)
			}
		}
	}

	return nil
}

func recoverable(err error) bool {
	return errors.Is(err, ErrCorrupted) ||
		errors.Is(err, errStoreMissing) ||
		errors.Is(err, errStoreReplaced) ||
		errors.Is(err, errSchemaMissing)
}

// Acquire makes sure the store is readable before a request uses it, recreating
// it through the recovery policy when the file was deleted, replaced or corrupted.
func (s *Store) Acquire(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Acquire")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.RLock()
	err = s.check(ctx)
	s.mu.RUnlock()

	if err == nil {
		return nil
	}

	if !recoverable(err) || !s.isSQLite() {
		log.Error().Err(err).Msg("store is not reachable")

		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// another request may have recovered while we waited for the lock
	if err = s.check(ctx); err == nil {
		return nil
	}

	if !recoverable(err) {
		return err
	}

	return s.recover(ctx, err)
}

// recover must be called with mu held.
func (s *Store) recover(ctx context.Context, cause error) error {
	path := s.cfg.DB.SQLite.Path

	log.Error().Err(cause).Str("path", path).Msg("store corruption detected, recreating an empty store; existing data is lost")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close store before recovery")
		}

		s.db = nil
	}

	if !s.isSQLite() {
		return fmt.Errorf("%w: %w", ErrUnavailable, cause)
	}

	if err := s.recovery(ctx, path, cause); err != nil {
		return fmt.Errorf("%w: recovery failed: %w", ErrUnavailable, err)
	}

	if err := s.open(ctx); err != nil {
		return fmt.Errorf("%w: reopen failed: %w", ErrUnavailable, err)
	}

	recordRecovery(ctx, s.db, cause)

	log.Warn().Str("path", path).Msg("store recreated with seed data")

	return nil
}

// DB returns the current pool.
func (s *Store) DB() *sqlx.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.db
}

func (s *Store) Driver() string {
	return s.cfg.DB.Driver
}

// LockClause is appended to reads that must hold the row until commit.
// SQLite transactions already hold the database write lock from BEGIN.
func (s *Store) LockClause() string {
	if s.cfg.DB.Driver == config.DriverPostgres {
		return "FOR UPDATE"
	}

	return constant.Empty
}

// WithTx runs fn in a transaction, committing when fn returns nil. The error
// from fn is returned as is.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".WithTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return runTx(ctx, s.DB(), fn)
}

func runTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil

	if err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}

	return nil
}
