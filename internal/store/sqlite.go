package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/mattn/go-sqlite3"

	"github.com/drivemirror/drivemirror/internal/logger"
	"github.com/drivemirror/drivemirror/migrations"
)

// DB wraps the SQLite connection holding the mirror. All repositories share
// one DB value; SQLite's own file locking provides the single-writer /
// multi-reader discipline, surfaced to callers as [ErrStoreBusy].
type DB struct {
	*sql.DB
	errorClassifier *SQLiteErrorClassifier
	logger          *logger.Logger
}

// Migrate brings the mirror schema up to date using the embedded goose
// migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

const driverName = "sqlite3_mirror"

var registerDriverOnce sync.Once

// registerDriver installs a go-sqlite3 driver variant with a REGEXP
// function, so name searches run inside SQLite instead of pulling every row
// into Go.
func registerDriver() {
	registerDriverOnce.Do(func() {
		sql.Register(driverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("regexp", func(pattern, value string) (bool, error) {
					re, err := regexp.Compile(pattern)
					if err != nil {
						return false, err
					}
					return re.MatchString(value), nil
				}, true)
			},
		})
	})
}

// NewConnectSQLite opens (creating if necessary) the mirror database at
// dbPath and applies the connection settings the mirror relies on:
//
//   - WAL journaling, so readers never block each other and a reader
//     coexists with the single writer;
//   - a busy timeout, after which a losing lock contender fails with a
//     busy error instead of waiting forever.
func NewConnectSQLite(ctx context.Context, dbPath string, log *logger.Logger) (*DB, error) {
	registerDriver()

	if err := createLocalDBFileIfNotExists(dbPath); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open(driverName, dbPath)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// pragmas are per-connection; a single pooled connection keeps them
	// applied for the life of the DB
	conn.SetMaxOpenConns(1)

	if _, err = conn.ExecContext(ctx, "PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000; PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error applying connection pragmas")
		return nil, fmt.Errorf("error applying connection pragmas: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("path", dbPath).Msg("connected to database successfully")

	return &DB{
		DB:              conn,
		errorClassifier: NewSQLiteErrorClassifier(),
		logger:          log,
	}, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		if dir := filepath.Dir(dbFile); dir != "." {
			if err = os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("error creating DB directory: %w", err)
			}
		}
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
