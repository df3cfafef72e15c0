// Package middleware ships chain middlewares for the cross-cutting
// concerns real deployments stack on a remote backend: node name
// encryption, request rate limiting, and transparent stream compression.
package middleware

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/drivemirror/drivemirror/internal/chain"
	"github.com/drivemirror/drivemirror/internal/remote"
	"github.com/drivemirror/drivemirror/models"
)

// namePrefix marks an encrypted name. Names without it are passed through
// untouched, so a tree that predates the middleware keeps working.
const namePrefix = "nc1:"

// ErrInvalidKeySize is returned by [NewNameCrypt] when the key is not
// exactly [chacha20poly1305.KeySize] bytes.
var ErrInvalidKeySize = errors.New("name encryption key must be 32 bytes")

// NameCrypt encrypts node names before they reach the remote and decrypts
// them on the way back, so the remote only ever stores ciphertext names.
//
// Names are sealed with XChaCha20-Poly1305 under a random nonce and
// encoded as nonce ‖ ciphertext in unpadded base64url, prefixed with a
// scheme marker. Content is left alone.
type NameCrypt struct {
	chain.Passthrough
	aead cipher.AEAD
}

// NewNameCrypt builds a [NameCrypt] from a 32-byte key.
func NewNameCrypt(key []byte) (*NameCrypt, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	return &NameCrypt{aead: aead}, nil
}

func (n *NameCrypt) encryptName(name string) (string, error) {
	nonce := make([]byte, n.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	// blob = nonce ‖ ciphertext, so decryptName can split it back out
	blob := n.aead.Seal(nonce, nonce, []byte(name), nil)
	return namePrefix + base64.RawURLEncoding.EncodeToString(blob), nil
}

func (n *NameCrypt) decryptName(name string) (string, error) {
	encoded, found := strings.CutPrefix(name, namePrefix)
	if !found {
		return name, nil
	}

	blob, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding name: %w", err)
	}
	if len(blob) < n.aead.NonceSize() {
		return "", errors.New("encrypted name too short")
	}

	nonce, ciphertext := blob[:n.aead.NonceSize()], blob[n.aead.NonceSize():]
	plaintext, err := n.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypting name: %w", err)
	}
	return string(plaintext), nil
}

func (n *NameCrypt) decodeNodeName(node *models.Node) (*models.Node, error) {
	if node == nil || node.Name == "" {
		return node, nil
	}
	name, err := n.decryptName(node.Name)
	if err != nil {
		return nil, err
	}
	node.Name = name
	return node, nil
}

// DecodeNode implements [chain.Middleware]. The name is decrypted before
// inner middlewares see the node.
func (n *NameCrypt) DecodeNode(next chain.DecodeNodeFunc, node *models.Node) (*models.Node, error) {
	node, err := n.decodeNodeName(node)
	if err != nil {
		return nil, err
	}
	return next(node)
}

// CreateFolder implements [chain.Middleware].
func (n *NameCrypt) CreateFolder(ctx context.Context, next chain.CreateFolderFunc, parent *models.Node, name string, private map[string]string, existOK bool) (*models.Node, error) {
	encrypted, err := n.encryptName(name)
	if err != nil {
		return nil, err
	}
	node, err := next(ctx, parent, encrypted, private, existOK)
	if err != nil {
		return nil, err
	}
	return n.decodeNodeName(node)
}

// Rename implements [chain.Middleware]. An empty newName (move only) is
// left alone.
func (n *NameCrypt) Rename(ctx context.Context, next chain.RenameFunc, node, newParent *models.Node, newName string) (*models.Node, error) {
	if newName != "" {
		encrypted, err := n.encryptName(newName)
		if err != nil {
			return nil, err
		}
		newName = encrypted
	}
	renamed, err := next(ctx, node, newParent, newName)
	if err != nil {
		return nil, err
	}
	return n.decodeNodeName(renamed)
}

// Upload implements [chain.Middleware]. The returned handle decrypts the
// materialised node's name.
func (n *NameCrypt) Upload(ctx context.Context, next chain.UploadFunc, req remote.UploadRequest) (remote.WritableFile, error) {
	encrypted, err := n.encryptName(req.Name)
	if err != nil {
		return nil, err
	}
	req.Name = encrypted

	handle, err := next(ctx, req)
	if err != nil {
		return nil, err
	}
	return &nameCryptWritable{WritableFile: handle, crypt: n}, nil
}

type nameCryptWritable struct {
	remote.WritableFile
	crypt *NameCrypt
}

func (w *nameCryptWritable) Node(ctx context.Context) (*models.Node, error) {
	node, err := w.WritableFile.Node(ctx)
	if err != nil {
		return nil, err
	}
	return w.crypt.decodeNodeName(node)
}
