// Package drive ties the mirror store, the remote backend and the
// middleware chain together into the main entry point of the module.
// Reads are answered from the local mirror; mutations go to the remote
// first and reach the mirror through the change feed on the next sync.
package drive

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/drivemirror/drivemirror/internal/chain"
	"github.com/drivemirror/drivemirror/internal/logger"
	"github.com/drivemirror/drivemirror/internal/remote"
	"github.com/drivemirror/drivemirror/internal/store"
	"github.com/drivemirror/drivemirror/models"
)

// ErrNotAFile is returned when a content operation is attempted on a
// folder.
var ErrNotAFile = errors.New("node is not a file")

// Drive is a local mirror of a remote hierarchical drive. All methods are
// safe for concurrent use; syncs are serialised internally.
type Drive struct {
	fs     remote.FileSystem
	store  store.NodeRepository
	db     *store.DB
	chain  *chain.Chain
	logger *logger.Logger

	// syncMu serialises Sync; concurrent callers queue
	syncMu sync.Mutex
}

// Close releases the underlying mirror store.
func (d *Drive) Close() error {
	return d.db.Close()
}

// GetRoot returns the mirrored root node.
func (d *Drive) GetRoot(ctx context.Context) (*models.Node, error) {
	return d.store.GetRoot(ctx)
}

// GetByID returns the node with the given id.
func (d *Drive) GetByID(ctx context.Context, id string) (*models.Node, error) {
	return d.store.GetByID(ctx, id)
}

// GetByPath resolves an absolute path in the mirror.
func (d *Drive) GetByPath(ctx context.Context, path string) (*models.Node, error) {
	return d.store.GetByPath(ctx, path)
}

// ResolvePath returns the absolute path of the node with the given id.
func (d *Drive) ResolvePath(ctx context.Context, id string) (string, error) {
	return d.store.ResolvePath(ctx, id)
}

// GetChildren lists the children of a folder, ordered by name.
func (d *Drive) GetChildren(ctx context.Context, parentID string) ([]*models.Node, error) {
	return d.store.GetChildren(ctx, parentID)
}

// GetChildByName returns the named child of a folder.
func (d *Drive) GetChildByName(ctx context.Context, name, parentID string) (*models.Node, error) {
	return d.store.GetChildByName(ctx, name, parentID)
}

// FindByRegex returns every node whose name matches pattern.
func (d *Drive) FindByRegex(ctx context.Context, pattern string) ([]*models.Node, error) {
	return d.store.FindByRegex(ctx, pattern)
}

// FindDuplicates returns nodes sharing a name under the same parent.
func (d *Drive) FindDuplicates(ctx context.Context) ([]*models.Node, error) {
	return d.store.FindDuplicates(ctx)
}

// FindOrphans returns named nodes that lost all their parents.
func (d *Drive) FindOrphans(ctx context.Context) ([]*models.Node, error) {
	return d.store.FindOrphans(ctx)
}

// FindMultiParent returns nodes with more than one parent.
func (d *Drive) FindMultiParent(ctx context.Context) ([]*models.Node, error) {
	return d.store.FindMultiParent(ctx)
}

// GetTrashed returns the nodes currently in the trash.
func (d *Drive) GetTrashed(ctx context.Context) ([]*models.Node, error) {
	return d.store.GetTrashed(ctx)
}

// GetUploadedSize totals the sizes of files created within [from, to].
func (d *Drive) GetUploadedSize(ctx context.Context, from, to time.Time) (int64, error) {
	return d.store.GetUploadedSize(ctx, from, to)
}

// Download opens the node's content through the wrapped download
// capability.
func (d *Drive) Download(ctx context.Context, node *models.Node) (remote.ReadableFile, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}
	if node.IsFolder {
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, node.ID)
	}
	return d.chain.Download(ctx, node)
}

// DownloadByID looks the node up in the mirror and opens its content.
func (d *Drive) DownloadByID(ctx context.Context, id string) (remote.ReadableFile, error) {
	node, err := d.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.Download(ctx, node)
}

// Upload obtains a writable handle through the wrapped upload capability.
// The uploaded node only appears in the mirror after the next sync.
func (d *Drive) Upload(ctx context.Context, req remote.UploadRequest) (remote.WritableFile, error) {
	if req.Parent == nil {
		return nil, fmt.Errorf("%w: nil parent", ErrInvalidArgument)
	}
	if !req.Parent.IsFolder {
		return nil, fmt.Errorf("%w: %s", ErrParentIsNotFolder, req.Parent.ID)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidArgument)
	}

	existing, err := d.store.GetChildByName(ctx, req.Name, req.Parent.ID)
	if err == nil {
		return nil, &NodeConflictError{Node: existing}
	}
	if !errors.Is(err, store.ErrNodeNotFound) {
		return nil, err
	}

	return d.chain.Upload(ctx, req)
}

// GetHasher returns a hasher matching the remote's digest format, through
// the wrapped hasher capability.
func (d *Drive) GetHasher(ctx context.Context) (remote.Hasher, error) {
	return d.chain.GetHasher(ctx)
}
