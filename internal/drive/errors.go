package drive

import (
	"errors"
	"fmt"

	"github.com/drivemirror/drivemirror/models"
)

// ErrInvalidArgument is returned when a required argument is missing or
// empty, such as a nil node or an empty name.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrParentIsNotFolder is returned when an operation needs a folder parent
// but was given a file.
var ErrParentIsNotFolder = errors.New("parent is not a folder")

// ErrTrashedNode is returned when a mutating operation touches a trashed
// node or targets a trashed destination.
var ErrTrashedNode = errors.New("node is trashed")

// ErrRootNodeProtected is returned when an operation would rename, move,
// or trash the root node.
var ErrRootNodeProtected = errors.New("root node cannot be modified")

// ErrLineage is returned when a move would make a node an ancestor of
// itself, or when a destination path names a missing parent.
var ErrLineage = errors.New("invalid lineage")

// NodeConflictError is returned when a create or upload collides with an
// existing child of the same name. It carries the existing node so callers
// can decide whether the conflict is acceptable.
type NodeConflictError struct {
	Node *models.Node
}

func (e *NodeConflictError) Error() string {
	return fmt.Sprintf("node already exists: %s", e.Node.Name)
}
