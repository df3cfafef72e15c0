package chain

import (
	"context"

	"github.com/drivemirror/drivemirror/internal/remote"
	"github.com/drivemirror/drivemirror/models"
)

// Passthrough implements [Middleware] by delegating every capability to
// the next-inner function unchanged. Concrete middlewares embed it and
// override only the capabilities they care about.
type Passthrough struct{}

func (Passthrough) VersionRange() (int, int) {
	return remote.ProtocolVersion, remote.ProtocolVersion
}

func (Passthrough) DecodeNode(next DecodeNodeFunc, node *models.Node) (*models.Node, error) {
	return next(node)
}

func (Passthrough) CreateFolder(ctx context.Context, next CreateFolderFunc, parent *models.Node, name string, private map[string]string, existOK bool) (*models.Node, error) {
	return next(ctx, parent, name, private, existOK)
}

func (Passthrough) Rename(ctx context.Context, next RenameFunc, node, newParent *models.Node, newName string) (*models.Node, error) {
	return next(ctx, node, newParent, newName)
}

func (Passthrough) Download(ctx context.Context, next DownloadFunc, node *models.Node) (remote.ReadableFile, error) {
	return next(ctx, node)
}

func (Passthrough) Upload(ctx context.Context, next UploadFunc, req remote.UploadRequest) (remote.WritableFile, error) {
	return next(ctx, req)
}

func (Passthrough) GetHasher(ctx context.Context, next GetHasherFunc) (remote.Hasher, error) {
	return next(ctx)
}
