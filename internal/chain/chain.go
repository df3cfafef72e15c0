// Package chain stacks middlewares on top of a remote backend. Each
// capability of the backend is wrapped once, at construction, into a single
// callable; middlewares never see the backend directly, only the next-inner
// function of the capability they wrap.
package chain

import (
	"context"

	"github.com/drivemirror/drivemirror/internal/remote"
	"github.com/drivemirror/drivemirror/models"
)

// Per-capability function types. A middleware method receives the
// next-inner function of the same shape and decides when, whether, and
// with which arguments to call it.
type (
	DecodeNodeFunc   func(node *models.Node) (*models.Node, error)
	CreateFolderFunc func(ctx context.Context, parent *models.Node, name string, private map[string]string, existOK bool) (*models.Node, error)
	RenameFunc       func(ctx context.Context, node, newParent *models.Node, newName string) (*models.Node, error)
	DownloadFunc     func(ctx context.Context, node *models.Node) (remote.ReadableFile, error)
	UploadFunc       func(ctx context.Context, req remote.UploadRequest) (remote.WritableFile, error)
	GetHasherFunc    func(ctx context.Context) (remote.Hasher, error)
)

// Middleware intercepts the wrapped capabilities of a remote backend.
//
// Capabilities compose in two opposite directions. Mutating calls
// (CreateFolder, Rename, Upload, GetHasher) nest in registration order:
// the first registered middleware is outermost and sees caller arguments
// first. Data-returning calls (Download, DecodeNode) nest in reverse: the
// last registered middleware is invoked first, so the newest registration
// undoes its transformation before older ones run. Callers that install
// encode/decode pairs rely on this symmetry.
type Middleware interface {
	// VersionRange reports the inclusive range of protocol versions the
	// middleware supports.
	VersionRange() (min, max int)

	// DecodeNode post-processes a node freshly fetched from the remote,
	// before it is stored or returned.
	DecodeNode(next DecodeNodeFunc, node *models.Node) (*models.Node, error)

	CreateFolder(ctx context.Context, next CreateFolderFunc, parent *models.Node, name string, private map[string]string, existOK bool) (*models.Node, error)
	Rename(ctx context.Context, next RenameFunc, node, newParent *models.Node, newName string) (*models.Node, error)
	Download(ctx context.Context, next DownloadFunc, node *models.Node) (remote.ReadableFile, error)
	Upload(ctx context.Context, next UploadFunc, req remote.UploadRequest) (remote.WritableFile, error)
	GetHasher(ctx context.Context, next GetHasherFunc) (remote.Hasher, error)
}

// Chain is the composed capability set. It is built once per drive and is
// safe for concurrent use as long as the middlewares are.
type Chain struct {
	decodeNode   DecodeNodeFunc
	createFolder CreateFolderFunc
	rename       RenameFunc
	download     DownloadFunc
	upload       UploadFunc
	getHasher    GetHasherFunc
}

// New composes middlewares around fs. The middleware slice is not
// retained; the composition is fixed at this point.
func New(fs remote.FileSystem, middlewares ...Middleware) *Chain {
	c := &Chain{
		decodeNode: func(node *models.Node) (*models.Node, error) {
			return node, nil
		},
		createFolder: fs.CreateFolder,
		rename:       fs.Rename,
		download:     fs.Download,
		upload:       fs.Upload,
		getHasher:    fs.GetHasher,
	}

	// mutating capabilities: wrap back to front so the first middleware
	// ends up outermost
	for i := len(middlewares) - 1; i >= 0; i-- {
		m := middlewares[i]

		nextCreateFolder := c.createFolder
		c.createFolder = func(ctx context.Context, parent *models.Node, name string, private map[string]string, existOK bool) (*models.Node, error) {
			return m.CreateFolder(ctx, nextCreateFolder, parent, name, private, existOK)
		}

		nextRename := c.rename
		c.rename = func(ctx context.Context, node, newParent *models.Node, newName string) (*models.Node, error) {
			return m.Rename(ctx, nextRename, node, newParent, newName)
		}

		nextUpload := c.upload
		c.upload = func(ctx context.Context, req remote.UploadRequest) (remote.WritableFile, error) {
			return m.Upload(ctx, nextUpload, req)
		}

		nextGetHasher := c.getHasher
		c.getHasher = func(ctx context.Context) (remote.Hasher, error) {
			return m.GetHasher(ctx, nextGetHasher)
		}
	}

	// data-returning capabilities: wrap front to back so the last
	// middleware ends up outermost and runs first
	for _, m := range middlewares {
		m := m

		nextDownload := c.download
		c.download = func(ctx context.Context, node *models.Node) (remote.ReadableFile, error) {
			return m.Download(ctx, nextDownload, node)
		}

		nextDecodeNode := c.decodeNode
		c.decodeNode = func(node *models.Node) (*models.Node, error) {
			return m.DecodeNode(nextDecodeNode, node)
		}
	}

	return c
}

// DecodeNode runs a freshly fetched node through the decode direction of
// the chain.
func (c *Chain) DecodeNode(node *models.Node) (*models.Node, error) {
	return c.decodeNode(node)
}

// CreateFolder invokes the wrapped folder-creation capability.
func (c *Chain) CreateFolder(ctx context.Context, parent *models.Node, name string, private map[string]string, existOK bool) (*models.Node, error) {
	return c.createFolder(ctx, parent, name, private, existOK)
}

// Rename invokes the wrapped rename capability.
func (c *Chain) Rename(ctx context.Context, node, newParent *models.Node, newName string) (*models.Node, error) {
	return c.rename(ctx, node, newParent, newName)
}

// Download invokes the wrapped download capability.
func (c *Chain) Download(ctx context.Context, node *models.Node) (remote.ReadableFile, error) {
	return c.download(ctx, node)
}

// Upload invokes the wrapped upload capability.
func (c *Chain) Upload(ctx context.Context, req remote.UploadRequest) (remote.WritableFile, error) {
	return c.upload(ctx, req)
}

// GetHasher invokes the wrapped hasher capability.
func (c *Chain) GetHasher(ctx context.Context) (remote.Hasher, error) {
	return c.getHasher(ctx)
}
