package drive

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemirror/drivemirror/internal/chain"
	"github.com/drivemirror/drivemirror/internal/remote"
	"github.com/drivemirror/drivemirror/internal/store"
	"github.com/drivemirror/drivemirror/models"
)

// buildTree creates /a/b/c plus a file /a/f.txt and syncs the mirror.
func buildTree(t *testing.T, d *Drive) (a, b, c, f *models.Node) {
	t.Helper()
	ctx := context.Background()
	syncAll(t, d)

	root, err := d.GetRoot(ctx)
	require.NoError(t, err)

	a, err = d.CreateFolder(ctx, root, "a", nil, false)
	require.NoError(t, err)
	b, err = d.CreateFolder(ctx, a, "b", nil, false)
	require.NoError(t, err)
	c, err = d.CreateFolder(ctx, b, "c", nil, false)
	require.NoError(t, err)

	handle, err := d.Upload(ctx, remote.UploadRequest{Parent: a, Name: "f.txt", MimeType: "text/plain"})
	require.NoError(t, err)
	_, err = handle.Write([]byte("content"))
	require.NoError(t, err)
	require.NoError(t, handle.Close())
	f, err = handle.Node(ctx)
	require.NoError(t, err)

	syncAll(t, d)
	return a, b, c, f
}

func TestCreateFolder_Validation(t *testing.T) {
	d, _ := newTestDrive(t)
	a, _, _, f := buildTree(t, d)
	ctx := context.Background()

	tests := []struct {
		name    string
		parent  *models.Node
		folder  string
		wantErr error
	}{
		{name: "nil parent", parent: nil, folder: "x", wantErr: ErrInvalidArgument},
		{name: "file parent", parent: f, folder: "x", wantErr: ErrParentIsNotFolder},
		{name: "empty name", parent: a, folder: "", wantErr: ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.CreateFolder(ctx, tt.parent, tt.folder, nil, false)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateFolder_Conflict(t *testing.T) {
	d, _ := newTestDrive(t)
	a, b, _, _ := buildTree(t, d)
	ctx := context.Background()

	_, err := d.CreateFolder(ctx, a, "b", nil, false)
	var conflict *NodeConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, b.ID, conflict.Node.ID)

	// existOK defers to the remote, which returns the existing folder
	existing, err := d.CreateFolder(ctx, a, "b", nil, true)
	require.NoError(t, err)
	assert.Equal(t, b.ID, existing.ID)
}

func TestRename_Validation(t *testing.T) {
	d, _ := newTestDrive(t)
	a, b, _, f := buildTree(t, d)
	ctx := context.Background()

	root, err := d.GetRoot(ctx)
	require.NoError(t, err)

	trashed := &models.Node{ID: "t", Name: "t", Trashed: true, ParentIDs: []string{"root"}}

	tests := []struct {
		name      string
		node      *models.Node
		newParent *models.Node
		newName   string
		wantErr   error
	}{
		{name: "nil node", node: nil, newName: "x", wantErr: ErrInvalidArgument},
		{name: "trashed node", node: trashed, newName: "x", wantErr: ErrTrashedNode},
		{name: "root node", node: root, newName: "x", wantErr: ErrRootNodeProtected},
		{name: "nothing to do", node: b, wantErr: ErrInvalidArgument},
		{name: "trashed destination", node: b, newParent: trashed, wantErr: ErrTrashedNode},
		{name: "file destination", node: b, newParent: f, wantErr: ErrParentIsNotFolder},
		{name: "move under itself", node: b, newParent: b, wantErr: ErrLineage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Rename(ctx, tt.node, tt.newParent, tt.newName)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("move under own descendant", func(t *testing.T) {
		c, err := d.GetByPath(ctx, "/a/b/c")
		require.NoError(t, err)
		_, err = d.Rename(ctx, a, c, "")
		assert.ErrorIs(t, err, ErrLineage)
	})
}

func TestRename_MoveAndRename(t *testing.T) {
	d, _ := newTestDrive(t)
	_, b, _, _ := buildTree(t, d)
	ctx := context.Background()

	root, err := d.GetRoot(ctx)
	require.NoError(t, err)

	renamed, err := d.Rename(ctx, b, root, "moved")
	require.NoError(t, err)
	assert.Equal(t, "moved", renamed.Name)

	syncAll(t, d)

	got, err := d.GetByPath(ctx, "/moved")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	// the subtree followed its parent
	_, err = d.GetByPath(ctx, "/moved/c")
	assert.NoError(t, err)
}

func TestRenameByPath(t *testing.T) {
	ctx := context.Background()

	t.Run("dot is a no-op", func(t *testing.T) {
		d, _ := newTestDrive(t)
		_, b, _, _ := buildTree(t, d)

		node, err := d.RenameByPath(ctx, "/a/b", ".")
		require.NoError(t, err)
		assert.Equal(t, b.ID, node.ID)
	})

	t.Run("bare name renames in place", func(t *testing.T) {
		d, _ := newTestDrive(t)
		buildTree(t, d)

		_, err := d.RenameByPath(ctx, "/a/b", "renamed")
		require.NoError(t, err)
		syncAll(t, d)

		_, err = d.GetByPath(ctx, "/a/renamed")
		assert.NoError(t, err)
	})

	t.Run("dotdot moves to grandparent", func(t *testing.T) {
		d, _ := newTestDrive(t)
		_, b, _, _ := buildTree(t, d)

		_, err := d.RenameByPath(ctx, "/a/b", "..")
		require.NoError(t, err)
		syncAll(t, d)

		got, err := d.GetByPath(ctx, "/b")
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("existing folder receives the node", func(t *testing.T) {
		d, _ := newTestDrive(t)
		_, _, _, f := buildTree(t, d)

		_, err := d.RenameByPath(ctx, "/a/f.txt", "/a/b/c")
		require.NoError(t, err)
		syncAll(t, d)

		got, err := d.GetByPath(ctx, "/a/b/c/f.txt")
		require.NoError(t, err)
		assert.Equal(t, f.ID, got.ID)
	})

	t.Run("existing file is a conflict", func(t *testing.T) {
		d, _ := newTestDrive(t)
		buildTree(t, d)

		_, err := d.RenameByPath(ctx, "/a/b", "/a/f.txt")
		var conflict *NodeConflictError
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("missing destination moves and renames", func(t *testing.T) {
		d, _ := newTestDrive(t)
		_, b, _, _ := buildTree(t, d)

		_, err := d.RenameByPath(ctx, "/a/b", "/fresh")
		require.NoError(t, err)
		syncAll(t, d)

		got, err := d.GetByPath(ctx, "/fresh")
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("missing destination parent fails lineage", func(t *testing.T) {
		d, _ := newTestDrive(t)
		buildTree(t, d)

		_, err := d.RenameByPath(ctx, "/a/b", "/nowhere/else")
		assert.ErrorIs(t, err, ErrLineage)
	})

	t.Run("missing source", func(t *testing.T) {
		d, _ := newTestDrive(t)
		buildTree(t, d)

		_, err := d.RenameByPath(ctx, "/ghost", "x")
		assert.ErrorIs(t, err, store.ErrNodeNotFound)
	})
}

// countingMiddleware tallies wrapped capability invocations.
type countingMiddleware struct {
	chain.Passthrough
	calls int
}

func (m *countingMiddleware) Rename(ctx context.Context, next chain.RenameFunc, node, newParent *models.Node, newName string) (*models.Node, error) {
	m.calls++
	return next(ctx, node, newParent, newName)
}

func TestTrash(t *testing.T) {
	counter := &countingMiddleware{}
	d, _ := newTestDrive(t, counter)
	_, b, _, _ := buildTree(t, d)
	ctx := context.Background()

	root, err := d.GetRoot(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, d.Trash(ctx, nil), ErrInvalidArgument)
	assert.ErrorIs(t, d.Trash(ctx, root), ErrRootNodeProtected)

	require.NoError(t, d.Trash(ctx, b))
	syncAll(t, d)

	trashed, err := d.GetTrashed(ctx)
	require.NoError(t, err)
	require.Len(t, trashed, 1)
	assert.Equal(t, b.ID, trashed[0].ID)

	// trash goes to the remote directly, outside the chain
	assert.Zero(t, counter.calls)
}

func TestTrashByID(t *testing.T) {
	d, _ := newTestDrive(t)
	_, _, c, _ := buildTree(t, d)
	ctx := context.Background()

	assert.ErrorIs(t, d.TrashByID(ctx, "ghost"), store.ErrNodeNotFound)

	require.NoError(t, d.TrashByID(ctx, c.ID))
	syncAll(t, d)

	got, err := d.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Trashed)
}

func TestWalk(t *testing.T) {
	d, _ := newTestDrive(t)
	buildTree(t, d)
	ctx := context.Background()

	root, err := d.GetRoot(ctx)
	require.NoError(t, err)

	var dirs []string
	var files []string
	for entry, err := range d.Walk(ctx, root) {
		require.NoError(t, err)
		dirs = append(dirs, entry.Dir.ID)
		for _, file := range entry.Files {
			files = append(files, file.Name)
		}
	}

	// breadth first: root, then a, then a's children
	require.Len(t, dirs, 4)
	assert.Equal(t, "root", dirs[0])
	assert.Equal(t, []string{"f.txt"}, files)
}

func TestWalk_NonFolderYieldsNothing(t *testing.T) {
	d, _ := newTestDrive(t)
	_, _, _, f := buildTree(t, d)

	count := 0
	for range d.Walk(context.Background(), f) {
		count++
	}
	assert.Zero(t, count)
}

func TestDownload_Validation(t *testing.T) {
	d, _ := newTestDrive(t)
	a, _, _, f := buildTree(t, d)
	ctx := context.Background()

	_, err := d.Download(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = d.Download(ctx, a)
	assert.ErrorIs(t, err, ErrNotAFile)

	reader, err := d.Download(ctx, f)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)
}

func TestDownloadByID(t *testing.T) {
	d, _ := newTestDrive(t)
	_, _, _, f := buildTree(t, d)
	ctx := context.Background()

	_, err := d.DownloadByID(ctx, "ghost")
	assert.ErrorIs(t, err, store.ErrNodeNotFound)

	reader, err := d.DownloadByID(ctx, f.ID)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)
}

func TestUpload_Validation(t *testing.T) {
	d, _ := newTestDrive(t)
	a, _, _, f := buildTree(t, d)
	ctx := context.Background()

	_, err := d.Upload(ctx, remote.UploadRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = d.Upload(ctx, remote.UploadRequest{Parent: f, Name: "x"})
	assert.ErrorIs(t, err, ErrParentIsNotFolder)

	_, err = d.Upload(ctx, remote.UploadRequest{Parent: a})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = d.Upload(ctx, remote.UploadRequest{Parent: a, Name: "f.txt"})
	var conflict *NodeConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, f.ID, conflict.Node.ID)
}

func TestGetHasher(t *testing.T) {
	d, _ := newTestDrive(t)
	_, _, _, f := buildTree(t, d)
	ctx := context.Background()

	hasher, err := d.GetHasher(ctx)
	require.NoError(t, err)
	require.NoError(t, hasher.Update([]byte("content")))

	digest, err := hasher.HexDigest()
	require.NoError(t, err)
	// the fake backend hashes uploads the same way
	assert.Equal(t, f.Hash, digest)
}

func TestGetUploadedSizeThroughDrive(t *testing.T) {
	d, _ := newTestDrive(t)
	_, _, _, f := buildTree(t, d)
	ctx := context.Background()

	total, err := d.GetUploadedSize(ctx, f.Created.Add(-time.Minute), f.Created.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, f.Size, total)
}

func TestNodeConflictError_Message(t *testing.T) {
	err := &NodeConflictError{Node: &models.Node{ID: "n", Name: "dup"}}
	assert.Contains(t, err.Error(), "dup")
	assert.False(t, errors.Is(err, ErrInvalidArgument))
}
