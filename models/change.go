package models

// Change is one delta from the remote change feed: either a removal by id
// or a full updated snapshot of a node.
type Change struct {
	Removed bool   `json:"removed"`
	ID      string `json:"id,omitempty"`
	Node    *Node  `json:"node,omitempty"`
}

// RemoveChange builds a removal delta.
func RemoveChange(id string) Change {
	return Change{Removed: true, ID: id}
}

// UpdateChange builds an upsert delta.
func UpdateChange(node *Node) Change {
	return Change{Node: node}
}

// ChangeSet is one cursor-delimited batch from the remote feed. Applying
// Changes in order and persisting Cursor in the same transaction brings the
// mirror to the state the remote had at Cursor.
type ChangeSet struct {
	Cursor  string
	Changes []Change
}
