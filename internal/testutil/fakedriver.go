package testutil

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"iter"
	"strconv"
	"sync"
	"time"

	"github.com/drivemirror/drivemirror/internal/remote"
	"github.com/drivemirror/drivemirror/models"
)

// FakeFileSystem is an in-memory remote backend. Every mutation appends a
// one-change batch to its change feed, so a mirror syncing against it
// observes the same sequence of events a real remote would publish.
//
// The zero value is not usable; construct with [NewFakeFileSystem].
type FakeFileSystem struct {
	mu      sync.Mutex
	nodes   map[string]*models.Node
	content map[string][]byte
	feed    []models.ChangeSet
	nextSeq int
	nextID  int

	// FeedErr, when set, terminates FetchChanges with this error after
	// all pending batches have been yielded.
	FeedErr error

	// ReadFailAt and WriteFailAt are copied onto handles this backend
	// creates; see [FakeReadable.FailAt] and [FakeWritable.FailAt].
	ReadFailAt  int64
	WriteFailAt int64

	// WriteErr is copied onto created write handles; see
	// [FakeWritable.WriteErr].
	WriteErr error
}

// FakeInitialCursor is the cursor denoting "before any change".
const FakeInitialCursor = "1"

// NewFakeFileSystem builds a backend containing only a root node with the
// given id.
func NewFakeFileSystem(rootID string) *FakeFileSystem {
	return &FakeFileSystem{
		nodes:       map[string]*models.Node{rootID: NewRoot(rootID)},
		content:     map[string][]byte{},
		nextSeq:     1,
		ReadFailAt:  -1,
		WriteFailAt: -1,
	}
}

func cloneNode(node *models.Node) *models.Node {
	if node == nil {
		return nil
	}
	clone := *node
	clone.ParentIDs = append([]string(nil), node.ParentIDs...)
	if node.Image != nil {
		image := *node.Image
		clone.Image = &image
	}
	if node.Video != nil {
		video := *node.Video
		clone.Video = &video
	}
	if node.Private != nil {
		clone.Private = make(map[string]string, len(node.Private))
		for k, v := range node.Private {
			clone.Private[k] = v
		}
	}
	return &clone
}

// record stores the node and publishes it as the next feed batch.
// Callers must hold mu.
func (f *FakeFileSystem) record(node *models.Node) {
	f.nodes[node.ID] = node
	f.nextSeq++
	f.feed = append(f.feed, models.ChangeSet{
		Cursor:  strconv.Itoa(f.nextSeq),
		Changes: []models.Change{models.UpdateChange(cloneNode(node))},
	})
}

// PushBatch appends a pre-built batch to the feed without touching the
// backend's own node table. Tests use it to script arbitrary remote
// histories.
func (f *FakeFileSystem) PushBatch(cursor string, changes ...models.Change) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feed = append(f.feed, models.ChangeSet{Cursor: cursor, Changes: changes})
	if seq, err := strconv.Atoi(cursor); err == nil && seq > f.nextSeq {
		f.nextSeq = seq
	}
}

// Content returns the stored bytes of a file.
func (f *FakeFileSystem) Content(id string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.content[id]...)
}

// SetContent stores file bytes without publishing a change.
func (f *FakeFileSystem) SetContent(id string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.content[id] = append([]byte(nil), data...)
}

func (f *FakeFileSystem) newID() string {
	f.nextID++
	return fmt.Sprintf("fake-%d", f.nextID)
}

// VersionRange implements [remote.FileSystem].
func (f *FakeFileSystem) VersionRange() (int, int) {
	return remote.ProtocolVersion, remote.ProtocolVersion
}

// GetInitialCursor implements [remote.FileSystem].
func (f *FakeFileSystem) GetInitialCursor(context.Context) (string, error) {
	return FakeInitialCursor, nil
}

// FetchRoot implements [remote.FileSystem].
func (f *FakeFileSystem) FetchRoot(context.Context) (*models.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, node := range f.nodes {
		if node.IsRoot() {
			return cloneNode(node), nil
		}
	}
	return nil, fmt.Errorf("fake backend has no root")
}

// FetchChanges implements [remote.FileSystem]. Batches strictly after
// cursor are yielded in feed order.
func (f *FakeFileSystem) FetchChanges(ctx context.Context, cursor string) iter.Seq2[models.ChangeSet, error] {
	return func(yield func(models.ChangeSet, error) bool) {
		f.mu.Lock()
		pending := make([]models.ChangeSet, 0, len(f.feed))
		start := cursor == FakeInitialCursor
		for _, batch := range f.feed {
			if start {
				pending = append(pending, batch)
			}
			if batch.Cursor == cursor {
				start = true
			}
		}
		feedErr := f.FeedErr
		f.mu.Unlock()

		for _, batch := range pending {
			if ctx.Err() != nil {
				yield(models.ChangeSet{}, ctx.Err())
				return
			}
			if !yield(batch, nil) {
				return
			}
		}
		if feedErr != nil {
			yield(models.ChangeSet{}, feedErr)
		}
	}
}

// CreateFolder implements [remote.FileSystem].
func (f *FakeFileSystem) CreateFolder(ctx context.Context, parent *models.Node, name string, private map[string]string, existOK bool) (*models.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.nodes[parent.ID]; !ok {
		return nil, fmt.Errorf("unknown parent %s", parent.ID)
	}
	for _, node := range f.nodes {
		if node.ParentID() == parent.ID && node.Name == name && !node.Trashed {
			if existOK {
				return cloneNode(node), nil
			}
			return nil, fmt.Errorf("folder %s already exists", name)
		}
	}

	folder := NewFolder(f.newID(), name, parent.ID)
	folder.Created = time.Now().UTC()
	folder.Modified = folder.Created
	folder.Private = private
	f.record(folder)
	return cloneNode(folder), nil
}

// Rename implements [remote.FileSystem].
func (f *FakeFileSystem) Rename(ctx context.Context, node, newParent *models.Node, newName string) (*models.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.nodes[node.ID]
	if !ok {
		return nil, fmt.Errorf("unknown node %s", node.ID)
	}
	renamed := cloneNode(stored)
	if newParent != nil {
		renamed.ParentIDs = []string{newParent.ID}
	}
	if newName != "" {
		renamed.Name = newName
	}
	renamed.Modified = time.Now().UTC()
	f.record(renamed)
	return cloneNode(renamed), nil
}

// Trash implements [remote.FileSystem].
func (f *FakeFileSystem) Trash(ctx context.Context, node *models.Node) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.nodes[node.ID]
	if !ok {
		return fmt.Errorf("unknown node %s", node.ID)
	}
	trashed := cloneNode(stored)
	trashed.Trashed = true
	trashed.Modified = time.Now().UTC()
	f.record(trashed)
	return nil
}

// Download implements [remote.FileSystem].
func (f *FakeFileSystem) Download(ctx context.Context, node *models.Node) (remote.ReadableFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.nodes[node.ID]
	if !ok {
		return nil, fmt.Errorf("unknown node %s", node.ID)
	}
	return &FakeReadable{node: cloneNode(stored), data: f.content[node.ID], FailAt: f.ReadFailAt}, nil
}

// Upload implements [remote.FileSystem].
func (f *FakeFileSystem) Upload(ctx context.Context, req remote.UploadRequest) (remote.WritableFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.nodes[req.Parent.ID]; !ok {
		return nil, fmt.Errorf("unknown parent %s", req.Parent.ID)
	}
	return &FakeWritable{fs: f, req: req, FailAt: f.WriteFailAt, WriteErr: f.WriteErr}, nil
}

// GetHasher implements [remote.FileSystem]. The fake reports MD5 digests,
// matching the Hash values the fake's own uploads produce.
func (f *FakeFileSystem) GetHasher(context.Context) (remote.Hasher, error) {
	return &fakeHasher{hash: md5.New()}, nil
}

// FakeReadable reads from an in-memory byte slice.
//
// FailAt, when non-negative, makes the read crossing that offset fail once
// with a transient error; the next read succeeds. Tests use it to exercise
// resume logic.
type FakeReadable struct {
	node   *models.Node
	data   []byte
	pos    int64
	FailAt int64
	failed bool
}

// NewFakeReadable builds a standalone readable handle over data.
func NewFakeReadable(node *models.Node, data []byte) *FakeReadable {
	return &FakeReadable{node: node, data: data, FailAt: -1}
}

func (r *FakeReadable) Read(p []byte) (int, error) {
	if r.pos >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	if r.FailAt >= r.pos && !r.failed && r.pos+int64(n) > r.FailAt {
		n = int(r.FailAt - r.pos)
		r.pos = r.FailAt
		r.failed = true
		return n, fmt.Errorf("transient read failure at %d", r.FailAt)
	}
	r.pos += int64(n)
	return n, nil
}

func (r *FakeReadable) Seek(ctx context.Context, offset int64) (int64, error) {
	if offset < 0 || offset > int64(len(r.data)) {
		return 0, fmt.Errorf("offset %d out of range", offset)
	}
	r.pos = offset
	return offset, nil
}

func (r *FakeReadable) Node(context.Context) (*models.Node, error) {
	return cloneNode(r.node), nil
}

// FakeWritable buffers writes and materialises the node on Close.
//
// FailAt, when non-negative, makes the write crossing that offset fail
// once; the remote keeps the bytes it accepted before the failure, so
// Tell reports a shorter offset than the caller has sent.
type FakeWritable struct {
	fs     *FakeFileSystem
	req    remote.UploadRequest
	buf    bytes.Buffer
	node   *models.Node
	FailAt int64
	failed bool

	// WriteErr, when set, is returned by every Write call unchanged.
	WriteErr error
}

func (w *FakeWritable) Write(p []byte) (int, error) {
	if w.WriteErr != nil {
		return 0, w.WriteErr
	}
	if w.FailAt >= 0 && !w.failed && int64(w.buf.Len())+int64(len(p)) > w.FailAt {
		accepted := max(int(w.FailAt-int64(w.buf.Len())), 0)
		w.buf.Write(p[:accepted])
		w.failed = true
		return accepted, fmt.Errorf("transient write failure at %d", w.FailAt)
	}
	return w.buf.Write(p)
}

func (w *FakeWritable) Tell(context.Context) (int64, error) {
	return int64(w.buf.Len()), nil
}

func (w *FakeWritable) Seek(ctx context.Context, offset int64) (int64, error) {
	if offset < 0 || offset > int64(w.buf.Len()) {
		return 0, fmt.Errorf("offset %d out of range", offset)
	}
	w.buf.Truncate(int(offset))
	return offset, nil
}

func (w *FakeWritable) Node(context.Context) (*models.Node, error) {
	if w.node == nil {
		return nil, fmt.Errorf("upload not finalised")
	}
	return cloneNode(w.node), nil
}

func (w *FakeWritable) Close() error {
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()

	data := append([]byte(nil), w.buf.Bytes()...)
	sum := md5.Sum(data)

	node := NewFile(w.fs.newID(), w.req.Name, w.req.Parent.ID, int64(len(data)), hex.EncodeToString(sum[:]), w.req.MimeType)
	node.Created = time.Now().UTC()
	node.Modified = node.Created
	node.Image = w.req.Image
	node.Video = w.req.Video
	node.Private = w.req.Private

	w.fs.content[node.ID] = data
	w.fs.record(node)
	w.node = node
	return nil
}

type fakeHasher struct {
	hash interface {
		io.Writer
		Sum([]byte) []byte
	}
	seen bytes.Buffer
}

func (h *fakeHasher) Update(data []byte) error {
	h.seen.Write(data)
	_, err := h.hash.Write(data)
	return err
}

func (h *fakeHasher) Digest() ([]byte, error) {
	return h.hash.Sum(nil), nil
}

func (h *fakeHasher) HexDigest() (string, error) {
	return hex.EncodeToString(h.hash.Sum(nil)), nil
}

func (h *fakeHasher) Copy() (remote.Hasher, error) {
	clone := &fakeHasher{hash: md5.New()}
	if err := clone.Update(h.seen.Bytes()); err != nil {
		return nil, err
	}
	return clone, nil
}
