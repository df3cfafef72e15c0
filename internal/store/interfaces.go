package store

import (
	"context"
	"time"

	"github.com/drivemirror/drivemirror/models"
)

// NodeRepository is the query and mutation surface of the mirrored tree.
//
// Reads are served from SQLite snapshots and never observe a half-applied
// batch. ApplyChanges is the sole writer of node state: tree-mutating
// operations issued against the remote become visible here only once the
// next sync cycle delivers them through the change feed.
type NodeRepository interface {
	// GetRoot returns the single node without a name and without parents.
	GetRoot(ctx context.Context) (*models.Node, error)

	// GetByID returns the node with the given id, or ErrNodeNotFound.
	GetByID(ctx context.Context, id string) (*models.Node, error)

	// GetByPath resolves an absolute slash-separated path by iterative
	// child-by-name descent from the root.
	GetByPath(ctx context.Context, path string) (*models.Node, error)

	// ResolvePath walks parent pointers from id up to the root and
	// returns the absolute path. A dangling ancestor link yields
	// ErrStoreCorrupt.
	ResolvePath(ctx context.Context, id string) (string, error)

	// GetChildByName returns the child of parentID carrying name.
	GetChildByName(ctx context.Context, name, parentID string) (*models.Node, error)

	// GetChildren lists the direct children of parentID.
	GetChildren(ctx context.Context, parentID string) ([]*models.Node, error)

	// FindByRegex returns nodes whose name matches the Go regular
	// expression pattern.
	FindByRegex(ctx context.Context, pattern string) ([]*models.Node, error)

	// FindDuplicates returns nodes that share both a parent and a name
	// with at least one sibling.
	FindDuplicates(ctx context.Context) ([]*models.Node, error)

	// FindOrphans returns named nodes with no parent references left;
	// they are retained in the mirror but unreachable by path.
	FindOrphans(ctx context.Context) ([]*models.Node, error)

	// FindMultiParent returns nodes referenced by more than one parent.
	FindMultiParent(ctx context.Context) ([]*models.Node, error)

	// GetTrashed returns every trashed node.
	GetTrashed(ctx context.Context) ([]*models.Node, error)

	// GetUploadedSize sums the sizes of files whose creation time falls
	// inside [from, to].
	GetUploadedSize(ctx context.Context, from, to time.Time) (int64, error)

	// Cursor returns the stored change-feed position, or
	// ErrMetadataNotFound before the first committed batch.
	Cursor(ctx context.Context) (string, error)

	// InsertRoot seeds an empty mirror with the remote root node.
	InsertRoot(ctx context.Context, node *models.Node) error

	// ApplyChanges applies one ordered batch and persists newCursor in
	// the same transaction. All-or-nothing: a failure leaves neither
	// partial node changes nor a moved cursor behind.
	ApplyChanges(ctx context.Context, changes []models.Change, newCursor string) error
}
