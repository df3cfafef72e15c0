// Package remote defines the capability surface a remote drive backend has
// to provide. The core never talks a wire protocol itself; a concrete
// backend (an API client, another process, a test fake) implements
// [FileSystem] and the rest of the module builds the local mirror on top
// of it.
package remote

//go:generate mockgen -source=remote.go -destination=../mock/remote_mock.go -package=mock

import (
	"context"
	"io"
	"iter"

	"github.com/drivemirror/drivemirror/models"
)

// ProtocolVersion is the version of the capability contract defined by
// this package. Backends and middlewares declare the range of versions
// they support; the factory refuses to assemble a drive from parts whose
// range does not include this value.
const ProtocolVersion = 1

// FileSystem is the complete capability set of a remote drive backend.
//
// Nodes passed in and returned are snapshots; implementations must not
// retain or mutate them. All mutating calls are remote-first: the local
// mirror only learns about the result through the change feed.
type FileSystem interface {
	// VersionRange reports the inclusive range of protocol versions the
	// backend supports.
	VersionRange() (min, max int)

	// GetInitialCursor returns the cursor denoting "before any change".
	// Resuming from it replays the remote tree from the beginning.
	GetInitialCursor(ctx context.Context) (string, error)

	// FetchRoot fetches the remote root node.
	FetchRoot(ctx context.Context) (*models.Node, error)

	// FetchChanges streams change batches strictly after cursor. Each
	// batch carries the cursor to resume from once the batch has been
	// applied. The stream ends when the remote has no further changes;
	// a mid-stream failure is yielded as the final non-nil error.
	FetchChanges(ctx context.Context, cursor string) iter.Seq2[models.ChangeSet, error]

	// CreateFolder creates a folder named name under parent. When a child
	// with that name already exists and existOK is set, implementations
	// may return the existing node instead of failing.
	CreateFolder(ctx context.Context, parent *models.Node, name string, private map[string]string, existOK bool) (*models.Node, error)

	// Rename moves node under newParent, renames it to newName, or both.
	// A nil newParent keeps the current parent; an empty newName keeps
	// the current name.
	Rename(ctx context.Context, node *models.Node, newParent *models.Node, newName string) (*models.Node, error)

	// Trash moves node to the remote trash.
	Trash(ctx context.Context, node *models.Node) error

	// Download opens node's content for reading.
	Download(ctx context.Context, node *models.Node) (ReadableFile, error)

	// Upload opens a writable handle that creates a new file described by
	// req. The node only materialises once the handle is closed.
	Upload(ctx context.Context, req UploadRequest) (WritableFile, error)

	// GetHasher returns a hasher producing digests in the same format the
	// backend reports in [models.Node.Hash].
	GetHasher(ctx context.Context) (Hasher, error)
}

// UploadRequest describes the file a call to [FileSystem.Upload] creates.
// Size is optional; backends that require a declared length reject a nil
// Size.
type UploadRequest struct {
	Parent   *models.Node
	Name     string
	Size     *int64
	MimeType string
	Image    *models.ImageInfo
	Video    *models.VideoInfo
	Private  map[string]string
}

// ReadableFile is a remote read handle. Seek rewinds or skips within the
// remote content; implementations report the resulting offset.
type ReadableFile interface {
	io.Reader

	// Seek repositions the read offset from the start of the content and
	// returns the new offset.
	Seek(ctx context.Context, offset int64) (int64, error)

	// Node returns the node the handle reads from.
	Node(ctx context.Context) (*models.Node, error)
}

// WritableFile is a remote write handle. The backend tracks how many bytes
// it has durably received; Tell exposes that offset so an interrupted
// upload can resume exactly where the remote left off.
type WritableFile interface {
	io.Writer

	// Tell returns the number of bytes the remote has accepted so far.
	Tell(ctx context.Context) (int64, error)

	// Seek repositions the write offset from the start of the content and
	// returns the new offset.
	Seek(ctx context.Context, offset int64) (int64, error)

	// Node returns the created node. Only valid after the full declared
	// content has been written.
	Node(ctx context.Context) (*models.Node, error)

	// Close finalises the upload.
	Close() error
}

// Hasher computes content digests in the backend's own format.
type Hasher interface {
	// Update feeds data into the digest.
	Update(data []byte) error

	// Digest returns the raw digest of everything fed so far.
	Digest() ([]byte, error)

	// HexDigest returns the digest in the textual form used by
	// [models.Node.Hash].
	HexDigest() (string, error)

	// Copy returns an independent hasher with the same accumulated state.
	Copy() (Hasher, error)
}
