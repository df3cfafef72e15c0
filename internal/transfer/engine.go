// Package transfer moves file content between the local filesystem and
// the remote, resuming interrupted transfers instead of restarting them.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/drivemirror/drivemirror/internal/drive"
	"github.com/drivemirror/drivemirror/internal/logger"
	"github.com/drivemirror/drivemirror/internal/remote"
	"github.com/drivemirror/drivemirror/models"
)

// DefaultChunkSize is the stream chunk size used when none is configured.
const DefaultChunkSize = 64 * 1024

// tempSuffix marks a download in progress. The file is renamed to its
// final name only once the content is complete.
const tempSuffix = ".download"

// Engine streams file content in fixed-size chunks. Transient stream
// failures are retried by reconciling offsets with the other side;
// retrying is bounded only by context cancellation.
type Engine struct {
	drive     *drive.Drive
	chunkSize int64
	logger    *logger.Logger
}

// NewEngine builds an [Engine] on top of d. A non-positive chunkSize
// falls back to [DefaultChunkSize]; a nil log falls back to no-op.
func NewEngine(d *drive.Drive, chunkSize int64, log *logger.Logger) *Engine {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{drive: d, chunkSize: chunkSize, logger: log}
}

// Download opens node's content for reading. A folder fails with
// [*DownloadError].
func (e *Engine) Download(ctx context.Context, node *models.Node) (remote.ReadableFile, error) {
	reader, err := e.drive.Download(ctx, node)
	if errors.Is(err, drive.ErrNotAFile) {
		return nil, &DownloadError{Node: node, Msg: "node is a folder", Err: err}
	}
	return reader, err
}

// DownloadTo streams node's content into dir and returns the final local
// path. A finished file of the same name short-circuits; a partial
// temporary file resumes from its size. On transient stream failures the
// engine re-reads the local offset, re-seeks the remote and continues
// until the context is cancelled.
func (e *Engine) DownloadTo(ctx context.Context, node *models.Node, dir string) (string, error) {
	if node == nil {
		return "", fmt.Errorf("%w: nil node", drive.ErrInvalidArgument)
	}
	if node.IsFolder {
		return "", &DownloadError{Node: node, Msg: "node is a folder"}
	}

	log := logger.FromContext(ctx)
	target := filepath.Join(dir, node.Name)

	if _, err := os.Stat(target); err == nil {
		return target, nil
	}

	if node.Size == 0 {
		if err := os.WriteFile(target, nil, 0o644); err != nil {
			return "", fmt.Errorf("creating empty file: %w", err)
		}
		return target, nil
	}

	temp := target + tempSuffix
	file, err := os.OpenFile(temp, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening temp file: %w", err)
	}
	defer file.Close()

	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return "", fmt.Errorf("reading temp file size: %w", err)
	}
	if offset > node.Size {
		return "", &DownloadError{
			Node: node,
			Msg:  fmt.Sprintf("partial file is %d bytes, node declares %d", offset, node.Size),
		}
	}
	if offset > 0 {
		log.Debug().
			Str("func", "Engine.DownloadTo").
			Str("node_id", node.ID).
			Int64("offset", offset).
			Msg("resuming partial download")
	}

	reader, err := e.Download(ctx, node)
	if err != nil {
		return "", err
	}
	if offset > 0 {
		if _, err = reader.Seek(ctx, offset); err != nil {
			return "", fmt.Errorf("seeking remote to %d: %w", offset, err)
		}
	}

	buf := make([]byte, e.chunkSize)
	for offset < node.Size {
		if err = ctx.Err(); err != nil {
			return "", err
		}

		n, readErr := reader.Read(buf)
		if n > 0 {
			if _, err = file.Write(buf[:n]); err != nil {
				return "", fmt.Errorf("writing temp file: %w", err)
			}
			offset += int64(n)
		}

		switch {
		case readErr == nil:
		case errors.Is(readErr, io.EOF):
			if offset < node.Size {
				return "", &DownloadError{
					Node: node,
					Msg:  fmt.Sprintf("stream ended at %d of %d bytes", offset, node.Size),
				}
			}
		default:
			// transient: reconcile the local offset and continue where
			// the remote left off
			offset, err = file.Seek(0, io.SeekEnd)
			if err != nil {
				return "", fmt.Errorf("re-reading local offset: %w", err)
			}
			if _, err = reader.Seek(ctx, offset); err != nil {
				return "", fmt.Errorf("re-seeking remote to %d: %w", offset, err)
			}
			log.Debug().
				Str("func", "Engine.DownloadTo").
				Str("node_id", node.ID).
				Int64("offset", offset).
				Err(readErr).
				Msg("retrying after stream failure")
		}
	}

	if err = file.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(temp, target); err != nil {
		return "", fmt.Errorf("finalising download: %w", err)
	}
	return target, nil
}

// UploadFrom streams the local file at path into a new child of parent
// named after the file. A same-named child returns the existing node when
// existOK is set, [*drive.NodeConflictError] otherwise. Transient write
// failures reconcile offsets with the remote handle and continue;
// [*UploadError] is never retried.
func (e *Engine) UploadFrom(ctx context.Context, parent *models.Node, path string, existOK bool) (*models.Node, error) {
	log := logger.FromContext(ctx)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening local file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading local file size: %w", err)
	}
	size := info.Size()

	handle, err := e.drive.Upload(ctx, remote.UploadRequest{
		Parent: parent,
		Name:   filepath.Base(path),
		Size:   &size,
	})
	var conflict *drive.NodeConflictError
	if errors.As(err, &conflict) {
		if existOK {
			return conflict.Node, nil
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	var sent int64
	buf := make([]byte, e.chunkSize)
	for sent < size {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		n, readErr := file.Read(buf)
		if n > 0 {
			written, writeErr := handle.Write(buf[:n])
			if writeErr != nil {
				var uploadErr *UploadError
				if errors.As(writeErr, &uploadErr) {
					return nil, writeErr
				}

				// transient: the remote tells us how much it kept; move
				// both sides there and continue
				offset, tellErr := handle.Tell(ctx)
				if tellErr != nil {
					return nil, fmt.Errorf("querying remote offset: %w", tellErr)
				}
				if _, err = handle.Seek(ctx, offset); err != nil {
					return nil, fmt.Errorf("re-seeking remote to %d: %w", offset, err)
				}
				if _, err = file.Seek(offset, io.SeekStart); err != nil {
					return nil, fmt.Errorf("re-seeking local file to %d: %w", offset, err)
				}
				sent = offset
				log.Debug().
					Str("func", "Engine.UploadFrom").
					Str("path", path).
					Int64("offset", offset).
					Err(writeErr).
					Msg("retrying after stream failure")
				continue
			}
			sent += int64(written)
		}

		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("reading local file: %w", readErr)
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
	}

	if err = handle.Close(); err != nil {
		return nil, fmt.Errorf("finalising upload: %w", err)
	}
	return handle.Node(ctx)
}
