package chain

import (
	"context"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivemirror/drivemirror/internal/remote"
	"github.com/drivemirror/drivemirror/models"
)

// recordingFS notes every capability invocation as "base".
type recordingFS struct {
	log *[]string
}

func (f *recordingFS) VersionRange() (int, int) { return remote.ProtocolVersion, remote.ProtocolVersion }

func (f *recordingFS) GetInitialCursor(context.Context) (string, error) { return "1", nil }

func (f *recordingFS) FetchRoot(context.Context) (*models.Node, error) { return nil, nil }

func (f *recordingFS) FetchChanges(context.Context, string) iter.Seq2[models.ChangeSet, error] {
	return func(func(models.ChangeSet, error) bool) {}
}

func (f *recordingFS) CreateFolder(context.Context, *models.Node, string, map[string]string, bool) (*models.Node, error) {
	*f.log = append(*f.log, "base")
	return &models.Node{ID: "created"}, nil
}

func (f *recordingFS) Rename(context.Context, *models.Node, *models.Node, string) (*models.Node, error) {
	*f.log = append(*f.log, "base")
	return &models.Node{ID: "renamed"}, nil
}

func (f *recordingFS) Trash(context.Context, *models.Node) error { return nil }

func (f *recordingFS) Download(context.Context, *models.Node) (remote.ReadableFile, error) {
	*f.log = append(*f.log, "base")
	return nil, nil
}

func (f *recordingFS) Upload(context.Context, remote.UploadRequest) (remote.WritableFile, error) {
	*f.log = append(*f.log, "base")
	return nil, nil
}

func (f *recordingFS) GetHasher(context.Context) (remote.Hasher, error) {
	*f.log = append(*f.log, "base")
	return nil, nil
}

// recorder notes its label on every capability, then defers inward.
type recorder struct {
	Passthrough
	label string
	log   *[]string
}

func (r *recorder) DecodeNode(next DecodeNodeFunc, node *models.Node) (*models.Node, error) {
	*r.log = append(*r.log, r.label)
	return next(node)
}

func (r *recorder) CreateFolder(ctx context.Context, next CreateFolderFunc, parent *models.Node, name string, private map[string]string, existOK bool) (*models.Node, error) {
	*r.log = append(*r.log, r.label)
	return next(ctx, parent, name, private, existOK)
}

func (r *recorder) Rename(ctx context.Context, next RenameFunc, node, newParent *models.Node, newName string) (*models.Node, error) {
	*r.log = append(*r.log, r.label)
	return next(ctx, node, newParent, newName)
}

func (r *recorder) Download(ctx context.Context, next DownloadFunc, node *models.Node) (remote.ReadableFile, error) {
	*r.log = append(*r.log, r.label)
	return next(ctx, node)
}

func (r *recorder) Upload(ctx context.Context, next UploadFunc, req remote.UploadRequest) (remote.WritableFile, error) {
	*r.log = append(*r.log, r.label)
	return next(ctx, req)
}

func (r *recorder) GetHasher(ctx context.Context, next GetHasherFunc) (remote.Hasher, error) {
	*r.log = append(*r.log, r.label)
	return next(ctx)
}

func newRecordedChain(t *testing.T) (*Chain, *[]string) {
	t.Helper()

	log := &[]string{}
	fs := &recordingFS{log: log}
	x := &recorder{label: "X", log: log}
	y := &recorder{label: "Y", log: log}
	return New(fs, x, y), log
}

func TestChain_MutatingCallsRunFirstRegisteredFirst(t *testing.T) {
	ctx := context.Background()
	parent := &models.Node{ID: "parent", IsFolder: true}

	tests := []struct {
		name string
		call func(c *Chain) error
	}{
		{
			name: "create folder",
			call: func(c *Chain) error {
				_, err := c.CreateFolder(ctx, parent, "d1", nil, false)
				return err
			},
		},
		{
			name: "rename",
			call: func(c *Chain) error {
				_, err := c.Rename(ctx, &models.Node{ID: "n"}, parent, "renamed")
				return err
			},
		},
		{
			name: "upload",
			call: func(c *Chain) error {
				_, err := c.Upload(ctx, remote.UploadRequest{Parent: parent, Name: "f"})
				return err
			},
		},
		{
			name: "get hasher",
			call: func(c *Chain) error {
				_, err := c.GetHasher(ctx)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, log := newRecordedChain(t)
			require.NoError(t, tt.call(c))
			assert.Equal(t, []string{"X", "Y", "base"}, *log)
		})
	}
}

func TestChain_DownloadRunsLastRegisteredFirst(t *testing.T) {
	c, log := newRecordedChain(t)

	_, err := c.Download(context.Background(), &models.Node{ID: "n"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Y", "X", "base"}, *log)
}

func TestChain_DecodeNodeRunsLastRegisteredFirst(t *testing.T) {
	c, log := newRecordedChain(t)

	node, err := c.DecodeNode(&models.Node{ID: "n"})
	require.NoError(t, err)
	assert.Equal(t, "n", node.ID)
	assert.Equal(t, []string{"Y", "X"}, *log)
}

func TestChain_EmptyChainDelegatesToBackend(t *testing.T) {
	log := &[]string{}
	c := New(&recordingFS{log: log})

	node, err := c.CreateFolder(context.Background(), &models.Node{ID: "p"}, "d", nil, false)
	require.NoError(t, err)
	assert.Equal(t, "created", node.ID)

	decoded, err := c.DecodeNode(&models.Node{ID: "n"})
	require.NoError(t, err)
	assert.Equal(t, "n", decoded.ID)
}
