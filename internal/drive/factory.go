package drive

import (
	"context"
	"fmt"

	"github.com/drivemirror/drivemirror/internal/chain"
	"github.com/drivemirror/drivemirror/internal/config"
	"github.com/drivemirror/drivemirror/internal/logger"
	"github.com/drivemirror/drivemirror/internal/remote"
	"github.com/drivemirror/drivemirror/internal/store"
)

// Factory assembles a [Drive] from its collaborators. Fields are set
// directly; New validates them.
type Factory struct {
	// DatabasePath locates the SQLite mirror file. The file and its
	// directory are created on first use.
	DatabasePath string

	// FileSystem is the remote backend.
	FileSystem remote.FileSystem

	// Middlewares are stacked onto the backend in order; the first entry
	// is outermost for mutating calls.
	Middlewares []chain.Middleware

	// Logger defaults to a no-op logger when nil.
	Logger *logger.Logger
}

// NewFactoryFromConfig builds a factory whose storage settings come from
// the resolved configuration.
func NewFactoryFromConfig(cfg *config.StructuredConfig, fs remote.FileSystem, log *logger.Logger) *Factory {
	return &Factory{
		DatabasePath: cfg.DatabaseFile(),
		FileSystem:   fs,
		Logger:       log,
	}
}

// New checks protocol versions, opens and migrates the mirror store,
// composes the middleware chain and returns a ready [Drive].
func (f *Factory) New(ctx context.Context) (*Drive, error) {
	if f.FileSystem == nil {
		return nil, fmt.Errorf("%w: missing remote backend", ErrInvalidArgument)
	}
	if f.DatabasePath == "" {
		return nil, fmt.Errorf("%w: missing database path", ErrInvalidArgument)
	}

	log := f.Logger
	if log == nil {
		log = logger.Nop()
	}

	if err := remote.ValidateVersion(f.FileSystem, remote.ErrInvalidDriverVersion); err != nil {
		return nil, err
	}
	for _, m := range f.Middlewares {
		if err := remote.ValidateVersion(m, remote.ErrInvalidMiddlewareVersion); err != nil {
			return nil, err
		}
	}

	db, err := store.NewConnectSQLite(ctx, f.DatabasePath, log)
	if err != nil {
		return nil, fmt.Errorf("opening mirror store: %w", err)
	}
	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating mirror store: %w", err)
	}

	return &Drive{
		fs:     f.FileSystem,
		store:  store.NewNodeRepository(db, log),
		db:     db,
		chain:  chain.New(f.FileSystem, f.Middlewares...),
		logger: log,
	}, nil
}
