package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/drivemirror/drivemirror/internal/chain"
	"github.com/drivemirror/drivemirror/internal/remote"
	"github.com/drivemirror/drivemirror/models"
)

// ErrCompressedSeek is returned when a transfer tries to seek a compressed
// handle to a non-zero offset. Compressed streams only restart.
var ErrCompressedSeek = errors.New("compressed stream supports seeking to offset 0 only")

// ZstdPack compresses upload streams and decompresses download streams
// with zstd, so the remote stores compressed content while callers keep
// working with plain bytes.
//
// Offsets visible through the wrapped handles are plaintext offsets; a
// write handle cannot resume mid-stream, it restarts from zero.
type ZstdPack struct {
	chain.Passthrough
}

// NewZstdPack builds a [ZstdPack].
func NewZstdPack() *ZstdPack {
	return &ZstdPack{}
}

// Download implements [chain.Middleware].
func (z *ZstdPack) Download(ctx context.Context, next chain.DownloadFunc, node *models.Node) (remote.ReadableFile, error) {
	handle, err := next(ctx, node)
	if err != nil {
		return nil, err
	}

	decoder, err := zstd.NewReader(handle)
	if err != nil {
		return nil, fmt.Errorf("creating decoder: %w", err)
	}
	return &zstdReadable{inner: handle, decoder: decoder}, nil
}

// Upload implements [chain.Middleware]. The declared size is dropped from
// the request: the compressed length is unknown up front.
func (z *ZstdPack) Upload(ctx context.Context, next chain.UploadFunc, req remote.UploadRequest) (remote.WritableFile, error) {
	req.Size = nil

	handle, err := next(ctx, req)
	if err != nil {
		return nil, err
	}

	encoder, err := zstd.NewWriter(handle)
	if err != nil {
		return nil, fmt.Errorf("creating encoder: %w", err)
	}
	return &zstdWritable{inner: handle, encoder: encoder}, nil
}

type zstdReadable struct {
	inner   remote.ReadableFile
	decoder *zstd.Decoder
}

func (r *zstdReadable) Read(p []byte) (int, error) {
	return r.decoder.Read(p)
}

// Seek repositions the plaintext stream by restarting the remote read and
// discarding offset decompressed bytes.
func (r *zstdReadable) Seek(ctx context.Context, offset int64) (int64, error) {
	if _, err := r.inner.Seek(ctx, 0); err != nil {
		return 0, err
	}
	if err := r.decoder.Reset(r.inner); err != nil {
		return 0, fmt.Errorf("resetting decoder: %w", err)
	}
	if _, err := io.CopyN(io.Discard, r.decoder, offset); err != nil {
		return 0, fmt.Errorf("skipping to offset %d: %w", offset, err)
	}
	return offset, nil
}

func (r *zstdReadable) Node(ctx context.Context) (*models.Node, error) {
	return r.inner.Node(ctx)
}

type zstdWritable struct {
	inner   remote.WritableFile
	encoder *zstd.Encoder
	written int64
}

func (w *zstdWritable) Write(p []byte) (int, error) {
	n, err := w.encoder.Write(p)
	w.written += int64(n)
	return n, err
}

// Tell reports the plaintext offset, not the compressed bytes the remote
// has accepted.
func (w *zstdWritable) Tell(ctx context.Context) (int64, error) {
	return w.written, nil
}

func (w *zstdWritable) Seek(ctx context.Context, offset int64) (int64, error) {
	if offset != 0 {
		return 0, ErrCompressedSeek
	}
	if _, err := w.inner.Seek(ctx, 0); err != nil {
		return 0, err
	}
	w.encoder.Reset(w.inner)
	w.written = 0
	return 0, nil
}

func (w *zstdWritable) Node(ctx context.Context) (*models.Node, error) {
	return w.inner.Node(ctx)
}

func (w *zstdWritable) Close() error {
	if err := w.encoder.Close(); err != nil {
		return fmt.Errorf("flushing encoder: %w", err)
	}
	return w.inner.Close()
}
