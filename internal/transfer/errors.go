package transfer

import (
	"fmt"

	"github.com/drivemirror/drivemirror/models"
)

// DownloadError marks a download failure that retrying cannot fix, such
// as downloading a folder or a partial file larger than the node itself.
type DownloadError struct {
	Node *models.Node
	Msg  string
	Err  error
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("download failed: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("download failed: %s", e.Msg)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// UploadError marks an upload-protocol failure. Backends and middlewares
// return it when the transfer itself is broken beyond resuming; the engine
// never retries it.
type UploadError struct {
	Msg string
	Err error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upload failed: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("upload failed: %s", e.Msg)
}

func (e *UploadError) Unwrap() error { return e.Err }
