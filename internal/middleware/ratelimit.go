package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/drivemirror/drivemirror/internal/chain"
	"github.com/drivemirror/drivemirror/internal/remote"
	"github.com/drivemirror/drivemirror/models"
)

// RateLimit throttles every remote-touching capability through a shared
// token bucket. Node decoding is local and is not gated.
type RateLimit struct {
	chain.Passthrough
	limiter *rate.Limiter
}

// NewRateLimit allows limit events per second with the given burst.
func NewRateLimit(limit rate.Limit, burst int) *RateLimit {
	return &RateLimit{limiter: rate.NewLimiter(limit, burst)}
}

// CreateFolder implements [chain.Middleware].
func (r *RateLimit) CreateFolder(ctx context.Context, next chain.CreateFolderFunc, parent *models.Node, name string, private map[string]string, existOK bool) (*models.Node, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return next(ctx, parent, name, private, existOK)
}

// Rename implements [chain.Middleware].
func (r *RateLimit) Rename(ctx context.Context, next chain.RenameFunc, node, newParent *models.Node, newName string) (*models.Node, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return next(ctx, node, newParent, newName)
}

// Download implements [chain.Middleware]. Only the handle acquisition is
// gated, not individual reads.
func (r *RateLimit) Download(ctx context.Context, next chain.DownloadFunc, node *models.Node) (remote.ReadableFile, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return next(ctx, node)
}

// Upload implements [chain.Middleware].
func (r *RateLimit) Upload(ctx context.Context, next chain.UploadFunc, req remote.UploadRequest) (remote.WritableFile, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return next(ctx, req)
}

// GetHasher implements [chain.Middleware].
func (r *RateLimit) GetHasher(ctx context.Context, next chain.GetHasherFunc) (remote.Hasher, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return next(ctx)
}
