// Package testutil provides shared builders for tests: canned nodes shaped
// like real change-feed payloads, and id generation for fixtures that do
// not care about exact values.
package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/drivemirror/drivemirror/models"
)

// FixedTime is the reference timestamp used by the node builders so tests
// can assert on exact values.
var FixedTime = time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)

// NewID returns a fresh opaque node id.
func NewID() string {
	return uuid.NewString()
}

// NewRoot builds the unnamed, parentless root node.
func NewRoot(id string) *models.Node {
	return &models.Node{
		ID:       id,
		IsFolder: true,
		Created:  FixedTime,
		Modified: FixedTime,
	}
}

// NewFolder builds a folder node under the given parent.
func NewFolder(id, name, parentID string) *models.Node {
	return &models.Node{
		ID:        id,
		Name:      name,
		IsFolder:  true,
		Created:   FixedTime,
		Modified:  FixedTime,
		ParentIDs: []string{parentID},
	}
}

// NewFile builds a file node under the given parent.
func NewFile(id, name, parentID string, size int64, hash, mimeType string) *models.Node {
	return &models.Node{
		ID:        id,
		Name:      name,
		Created:   FixedTime,
		Modified:  FixedTime,
		ParentIDs: []string{parentID},
		Size:      size,
		Hash:      hash,
		MimeType:  mimeType,
	}
}
