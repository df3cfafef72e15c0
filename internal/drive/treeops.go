package drive

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"path"
	"strings"

	"github.com/drivemirror/drivemirror/internal/store"
	"github.com/drivemirror/drivemirror/models"
)

// CreateFolder creates a folder named name under parent through the
// wrapped create capability. When existOK is false a same-named child in
// the mirror fails with [*NodeConflictError]; when true the conflict is
// left to the remote, which may return the existing folder.
func (d *Drive) CreateFolder(ctx context.Context, parent *models.Node, name string, private map[string]string, existOK bool) (*models.Node, error) {
	if parent == nil {
		return nil, fmt.Errorf("%w: nil parent", ErrInvalidArgument)
	}
	if !parent.IsFolder {
		return nil, fmt.Errorf("%w: %s", ErrParentIsNotFolder, parent.ID)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidArgument)
	}

	existing, err := d.store.GetChildByName(ctx, name, parent.ID)
	if err == nil && !existOK {
		return nil, &NodeConflictError{Node: existing}
	}
	if err != nil && !errors.Is(err, store.ErrNodeNotFound) {
		return nil, err
	}

	return d.chain.CreateFolder(ctx, parent, name, private, existOK)
}

// Rename moves node under newParent, renames it to newName, or both. At
// least one of the two must be given. The mirror reflects the change
// after the next sync.
func (d *Drive) Rename(ctx context.Context, node, newParent *models.Node, newName string) (*models.Node, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}
	if node.Trashed {
		return nil, fmt.Errorf("%w: %s", ErrTrashedNode, node.ID)
	}

	root, err := d.store.GetRoot(ctx)
	if err != nil {
		return nil, err
	}
	if node.ID == root.ID {
		return nil, ErrRootNodeProtected
	}

	if newParent == nil && newName == "" {
		return nil, fmt.Errorf("%w: need a new parent or a new name", ErrInvalidArgument)
	}

	if newParent != nil {
		if newParent.Trashed {
			return nil, fmt.Errorf("%w: new parent %s", ErrTrashedNode, newParent.ID)
		}
		if !newParent.IsFolder {
			return nil, fmt.Errorf("%w: %s", ErrParentIsNotFolder, newParent.ID)
		}

		// walk the destination's lineage; finding node there would make
		// it its own ancestor
		ancestor := newParent
		for {
			if ancestor.ID == node.ID {
				return nil, fmt.Errorf("%w: %s is a descendant of %s", ErrLineage, newParent.ID, node.ID)
			}
			if ancestor.ParentID() == "" {
				break
			}
			ancestor, err = d.store.GetByID(ctx, ancestor.ParentID())
			if err != nil {
				return nil, err
			}
		}
	}

	return d.chain.Rename(ctx, node, newParent, newName)
}

// RenameByPath renames or moves the node at srcPath to dstPath.
//
// A relative dstPath is interpreted against srcPath's parent: a bare "."
// is a no-op, ".." moves to the grandparent, any other bare name renames
// in place, and a multi-segment path is normalised (no symlink semantics).
// An absolute dstPath naming an existing file fails with
// [*NodeConflictError]; an existing folder receives the node unrenamed; a
// missing path moves and renames, failing with [ErrLineage] when its
// parent does not exist either.
func (d *Drive) RenameByPath(ctx context.Context, srcPath, dstPath string) (*models.Node, error) {
	node, err := d.store.GetByPath(ctx, srcPath)
	if err != nil {
		return nil, err
	}

	dst := dstPath
	if !path.IsAbs(dst) {
		if base := path.Base(dst); base == dstPath {
			switch base {
			case ".":
				return node, nil
			case "..":
				// same as a relative walk of ".."
			default:
				return d.Rename(ctx, node, nil, base)
			}
		}
		dst = resolveRelative(parentPath(srcPath), dst)
	}

	dstNode, err := d.store.GetByPath(ctx, dst)
	switch {
	case errors.Is(err, store.ErrNodeNotFound):
		newParent, err := d.store.GetByPath(ctx, parentPath(dst))
		if errors.Is(err, store.ErrNodeNotFound) {
			return nil, fmt.Errorf("%w: no direct path to %s", ErrLineage, dstPath)
		}
		if err != nil {
			return nil, err
		}
		return d.Rename(ctx, node, newParent, path.Base(dst))
	case err != nil:
		return nil, err
	case dstNode.IsFile():
		return nil, &NodeConflictError{Node: dstNode}
	default:
		return d.Rename(ctx, node, dstNode, "")
	}
}

// Trash moves node to the remote trash. The operation goes to the remote
// directly; no middleware capability covers it.
func (d *Drive) Trash(ctx context.Context, node *models.Node) error {
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}

	root, err := d.store.GetRoot(ctx)
	if err != nil {
		return err
	}
	if node.ID == root.ID {
		return ErrRootNodeProtected
	}

	return d.fs.Trash(ctx, node)
}

// TrashByID looks the node up in the mirror and trashes it.
func (d *Drive) TrashByID(ctx context.Context, id string) error {
	node, err := d.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return d.Trash(ctx, node)
}

// WalkEntry is one visited folder of a traversal.
type WalkEntry struct {
	Dir     *models.Node
	Folders []*models.Node
	Files   []*models.Node
}

// Walk traverses the mirror breadth first from node, yielding each folder
// with its immediate children. A non-folder start yields nothing. The
// traversal reads the mirror lazily; restarting it re-reads current state.
func (d *Drive) Walk(ctx context.Context, node *models.Node) iter.Seq2[*WalkEntry, error] {
	return func(yield func(*WalkEntry, error) bool) {
		if node == nil || !node.IsFolder {
			return
		}

		queue := []*models.Node{node}
		for len(queue) > 0 {
			dir := queue[0]
			queue = queue[1:]

			children, err := d.store.GetChildren(ctx, dir.ID)
			if err != nil {
				yield(nil, err)
				return
			}

			entry := &WalkEntry{Dir: dir}
			for _, child := range children {
				if child.IsFolder {
					entry.Folders = append(entry.Folders, child)
				} else {
					entry.Files = append(entry.Files, child)
				}
			}

			if !yield(entry, nil) {
				return
			}
			queue = append(queue, entry.Folders...)
		}
	}
}

// parentPath returns the parent of a slash path, "/" included.
func parentPath(p string) string {
	return path.Dir(strings.TrimSuffix(p, "/"))
}

// resolveRelative normalises to against from without touching the mirror:
// "." is consumed, ".." pops one segment, anything else appends.
func resolveRelative(from, to string) string {
	resolved := from
	for _, part := range strings.Split(to, "/") {
		switch part {
		case "", ".":
		case "..":
			resolved = path.Dir(resolved)
		default:
			resolved = path.Join(resolved, part)
		}
	}
	return resolved
}
