package drive

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemirror/drivemirror/internal/chain"
	"github.com/drivemirror/drivemirror/internal/logger"
	"github.com/drivemirror/drivemirror/internal/remote"
	"github.com/drivemirror/drivemirror/internal/store"
	"github.com/drivemirror/drivemirror/internal/testutil"
	"github.com/drivemirror/drivemirror/models"
)

func newTestDrive(t *testing.T, middlewares ...chain.Middleware) (*Drive, *testutil.FakeFileSystem) {
	t.Helper()

	fs := testutil.NewFakeFileSystem("root")
	factory := &Factory{
		DatabasePath: filepath.Join(t.TempDir(), "mirror.db"),
		FileSystem:   fs,
		Middlewares:  middlewares,
		Logger:       logger.Nop(),
	}
	d, err := factory.New(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d, fs
}

// syncAll consumes a full sync and returns the yielded changes.
func syncAll(t *testing.T, d *Drive, opts ...SyncOption) []models.Change {
	t.Helper()

	var changes []models.Change
	for change, err := range d.Sync(context.Background(), opts...) {
		require.NoError(t, err)
		changes = append(changes, change)
	}
	return changes
}

type badVersionFS struct {
	*testutil.FakeFileSystem
}

func (badVersionFS) VersionRange() (int, int) {
	return remote.ProtocolVersion + 1, remote.ProtocolVersion + 2
}

type badVersionMiddleware struct {
	chain.Passthrough
}

func (badVersionMiddleware) VersionRange() (int, int) {
	return remote.ProtocolVersion + 1, remote.ProtocolVersion + 2
}

func TestFactory_New(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mirror.db")
	fs := testutil.NewFakeFileSystem("root")

	tests := []struct {
		name    string
		factory Factory
		wantErr error
	}{
		{
			name:    "missing backend",
			factory: Factory{DatabasePath: dbPath},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "missing database path",
			factory: Factory{FileSystem: fs},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "unsupported driver version",
			factory: Factory{DatabasePath: dbPath, FileSystem: badVersionFS{fs}},
			wantErr: remote.ErrInvalidDriverVersion,
		},
		{
			name: "unsupported middleware version",
			factory: Factory{
				DatabasePath: dbPath,
				FileSystem:   fs,
				Middlewares:  []chain.Middleware{badVersionMiddleware{}},
			},
			wantErr: remote.ErrInvalidMiddlewareVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.factory.New(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("valid factory", func(t *testing.T) {
		factory := Factory{DatabasePath: dbPath, FileSystem: fs, Logger: logger.Nop()}
		d, err := factory.New(context.Background())
		require.NoError(t, err)
		assert.NoError(t, d.Close())
	})
}

func TestSync_SeedsFreshMirror(t *testing.T) {
	d, _ := newTestDrive(t)

	changes := syncAll(t, d)
	assert.Empty(t, changes)

	root, err := d.GetRoot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "root", root.ID)
}

func TestSync_AppliesRemoteChanges(t *testing.T) {
	d, _ := newTestDrive(t)
	ctx := context.Background()
	syncAll(t, d)

	root, err := d.GetRoot(ctx)
	require.NoError(t, err)

	folder, err := d.CreateFolder(ctx, root, "d1", nil, false)
	require.NoError(t, err)

	changes := syncAll(t, d)
	require.Len(t, changes, 1)
	assert.False(t, changes[0].Removed)
	assert.Equal(t, folder.ID, changes[0].Node.ID)

	got, err := d.GetByPath(ctx, "/d1")
	require.NoError(t, err)
	assert.Equal(t, folder.ID, got.ID)
}

func TestSync_ResumesFromStoredCursor(t *testing.T) {
	d, fs := newTestDrive(t)
	ctx := context.Background()
	syncAll(t, d)

	root, err := d.GetRoot(ctx)
	require.NoError(t, err)

	_, err = fs.CreateFolder(ctx, root, "d1", nil, false)
	require.NoError(t, err)
	require.Len(t, syncAll(t, d), 1)

	d2, err := fs.CreateFolder(ctx, root, "d2", nil, false)
	require.NoError(t, err)

	changes := syncAll(t, d)
	require.Len(t, changes, 1)
	assert.Equal(t, d2.ID, changes[0].Node.ID)
}

func TestSync_DryRunDoesNotPersist(t *testing.T) {
	d, fs := newTestDrive(t)
	ctx := context.Background()

	root, err := fs.FetchRoot(ctx)
	require.NoError(t, err)
	_, err = fs.CreateFolder(ctx, root, "d1", nil, false)
	require.NoError(t, err)

	changes := syncAll(t, d, WithCursor(testutil.FakeInitialCursor))
	require.Len(t, changes, 1)
	assert.Equal(t, "d1", changes[0].Node.Name)

	// nothing reached the mirror, not even the root
	_, err = d.GetRoot(ctx)
	assert.ErrorIs(t, err, store.ErrNodeNotFound)
}

func TestSync_FeedErrorStopsIterator(t *testing.T) {
	d, fs := newTestDrive(t)
	ctx := context.Background()
	syncAll(t, d)

	root, err := d.GetRoot(ctx)
	require.NoError(t, err)
	_, err = fs.CreateFolder(ctx, root, "d1", nil, false)
	require.NoError(t, err)

	feedErr := errors.New("remote gone")
	fs.FeedErr = feedErr

	var yielded []models.Change
	var lastErr error
	for change, err := range d.Sync(ctx) {
		if err != nil {
			lastErr = err
			break
		}
		yielded = append(yielded, change)
	}

	assert.ErrorIs(t, lastErr, feedErr)
	// the batch before the failure is already committed
	require.Len(t, yielded, 1)
	_, err = d.GetByPath(ctx, "/d1")
	assert.NoError(t, err)
}

// annotatingMiddleware marks every decoded node.
type annotatingMiddleware struct {
	chain.Passthrough
}

func (annotatingMiddleware) DecodeNode(next chain.DecodeNodeFunc, node *models.Node) (*models.Node, error) {
	if node.Private == nil {
		node.Private = map[string]string{}
	}
	node.Private["decoded"] = "1"
	return next(node)
}

func TestSync_DecodesNodesThroughChain(t *testing.T) {
	d, fs := newTestDrive(t, annotatingMiddleware{})
	ctx := context.Background()
	syncAll(t, d)

	root, err := d.GetRoot(ctx)
	require.NoError(t, err)
	_, err = fs.CreateFolder(ctx, root, "d1", nil, false)
	require.NoError(t, err)

	changes := syncAll(t, d)
	require.Len(t, changes, 1)
	assert.Equal(t, "1", changes[0].Node.Private["decoded"])

	stored, err := d.GetByPath(ctx, "/d1")
	require.NoError(t, err)
	assert.Equal(t, "1", stored.Private["decoded"])
}
