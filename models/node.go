package models

import "time"

// ImageInfo holds the pixel dimensions reported by the remote for image
// files.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// VideoInfo holds the pixel dimensions and duration reported by the remote
// for video files.
type VideoInfo struct {
	Width      int   `json:"width"`
	Height     int   `json:"height"`
	MsDuration int64 `json:"ms_duration"`
}

// Node is one entry of the mirrored remote tree.
//
// A Node is a snapshot value: mutating a copy never affects the mirror.
// Identity is the ID alone; it is stable across renames and moves, so two
// nodes are the same entry exactly when their IDs match (see Equal).
//
// Exactly one node in a consistent mirror has an empty Name and no parents:
// the root. File-only attributes (Size, MimeType, Hash, Image, Video) are
// zero for folders.
type Node struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Trashed  bool      `json:"trashed"`
	IsFolder bool      `json:"is_folder"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// ParentIDs is ordered; index 0 is the effective parent used for path
	// resolution. More than one entry marks a multi-parent anomaly that is
	// surfaced by FindMultiParent and never auto-resolved.
	ParentIDs []string `json:"parent_ids"`

	Size     int64      `json:"size,omitempty"`
	MimeType string     `json:"mime_type,omitempty"`
	Hash     string     `json:"hash,omitempty"`
	Image    *ImageInfo `json:"image,omitempty"`
	Video    *VideoInfo `json:"video,omitempty"`

	// Private is an opaque annotation area reserved for middlewares. The
	// core never interprets its contents.
	Private map[string]string `json:"private,omitempty"`
}

// IsRoot reports whether the node is the tree root. The root is the only
// node without a name and without parents.
func (n *Node) IsRoot() bool {
	return n.Name == "" && len(n.ParentIDs) == 0
}

// IsFile reports whether the node is a regular file.
func (n *Node) IsFile() bool {
	return !n.IsFolder
}

// ParentID returns the effective parent id, or the empty string for the
// root and for orphaned nodes.
func (n *Node) ParentID() string {
	if len(n.ParentIDs) == 0 {
		return ""
	}
	return n.ParentIDs[0]
}

// Equal reports node identity. Nodes are compared by ID only; two snapshots
// of the same entry taken before and after a rename are still equal.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.ID == other.ID
}
