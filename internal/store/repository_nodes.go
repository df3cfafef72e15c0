package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/drivemirror/drivemirror/internal/logger"
	"github.com/drivemirror/drivemirror/models"
)

// metadataCursorKey is the metadata row holding the change-feed position.
const metadataCursorKey = "cursor"

// nodeRepository is the SQLite-backed implementation of [NodeRepository].
// The tree is stored as an id-indexed node table plus a parentage edge
// table; all relationships are id references, never object aliasing.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that database interactions are traced with
// structured fields (node_id, path, cursor, etc.).
type nodeRepository struct {
	*DB
	logger *logger.Logger
}

// NewNodeRepository constructs a [NodeRepository] backed by the provided
// database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewNodeRepository(db *DB, logger *logger.Logger) NodeRepository {
	return &nodeRepository{
		DB:     db,
		logger: logger,
	}
}

// GetRoot implements [NodeRepository].
func (r *nodeRepository) GetRoot(ctx context.Context) (*models.Node, error) {
	return r.getOne(ctx, getRootNode)
}

// GetByID implements [NodeRepository].
func (r *nodeRepository) GetByID(ctx context.Context, id string) (*models.Node, error) {
	return r.getOne(ctx, getNodeByID, id)
}

// GetChildByName implements [NodeRepository].
func (r *nodeRepository) GetChildByName(ctx context.Context, name, parentID string) (*models.Node, error) {
	return r.getOne(ctx, getChildNodeByName, parentID, name)
}

// GetByPath implements [NodeRepository]. The path is split into segments
// and resolved by iterative child-by-name descent from the root. An empty
// mirror or an unknown segment yields ErrNodeNotFound.
func (r *nodeRepository) GetByPath(ctx context.Context, path string) (*models.Node, error) {
	node, err := r.GetRoot(ctx)
	if err != nil {
		return nil, err
	}

	for _, segment := range splitPath(path) {
		node, err = r.GetChildByName(ctx, segment, node.ID)
		if err != nil {
			if errors.Is(err, ErrNodeNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, path)
			}
			return nil, err
		}
	}

	return node, nil
}

// ResolvePath implements [NodeRepository]. It walks effective-parent
// pointers up to the root. A named node without parents, a missing
// ancestor, or a parent cycle marks a corrupted mirror.
func (r *nodeRepository) ResolvePath(ctx context.Context, id string) (string, error) {
	node, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	var names []string
	visited := map[string]bool{node.ID: true}
	for !node.IsRoot() {
		if len(node.ParentIDs) == 0 {
			return "", fmt.Errorf("%w: node %s has no parents", ErrStoreCorrupt, node.ID)
		}

		names = append(names, node.Name)

		parentID := node.ParentID()
		if visited[parentID] {
			return "", fmt.Errorf("%w: parent cycle at %s", ErrStoreCorrupt, parentID)
		}
		visited[parentID] = true

		node, err = r.GetByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, ErrNodeNotFound) {
				return "", fmt.Errorf("%w: missing ancestor %s", ErrStoreCorrupt, parentID)
			}
			return "", err
		}
	}

	// names were collected leaf-first
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return "/" + strings.Join(names, "/"), nil
}

// GetChildren implements [NodeRepository].
func (r *nodeRepository) GetChildren(ctx context.Context, parentID string) ([]*models.Node, error) {
	return r.queryNodes(ctx, getChildNodes, parentID)
}

// FindByRegex implements [NodeRepository]. Matching runs inside SQLite via
// the REGEXP function registered on the connection.
func (r *nodeRepository) FindByRegex(ctx context.Context, pattern string) ([]*models.Node, error) {
	return r.queryNodes(ctx, findNodesByRegex, pattern)
}

// FindDuplicates implements [NodeRepository].
func (r *nodeRepository) FindDuplicates(ctx context.Context) ([]*models.Node, error) {
	return r.queryNodes(ctx, findDuplicateNodes)
}

// FindOrphans implements [NodeRepository].
func (r *nodeRepository) FindOrphans(ctx context.Context) ([]*models.Node, error) {
	return r.queryNodes(ctx, findOrphanNodes)
}

// FindMultiParent implements [NodeRepository].
func (r *nodeRepository) FindMultiParent(ctx context.Context) ([]*models.Node, error) {
	return r.queryNodes(ctx, findMultiParentNodes)
}

// GetTrashed implements [NodeRepository].
func (r *nodeRepository) GetTrashed(ctx context.Context) ([]*models.Node, error) {
	return r.queryNodes(ctx, getTrashedNodes)
}

// GetUploadedSize implements [NodeRepository].
func (r *nodeRepository) GetUploadedSize(ctx context.Context, from, to time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUploadedSizeQuery(from, to)
	if err != nil {
		log.Err(err).
			Str("func", "nodeRepository.GetUploadedSize").
			Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Err(err).
			Str("func", "nodeRepository.GetUploadedSize").
			Msg("failed to sum uploaded sizes")
		return 0, r.wrapStoreError(err, ErrExecutingQuery)
	}

	return total, nil
}

// Cursor implements [NodeRepository].
func (r *nodeRepository) Cursor(ctx context.Context) (string, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, getMetadataValue, metadataCursorKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrMetadataNotFound, metadataCursorKey)
	}
	if err != nil {
		return "", r.wrapStoreError(err, ErrExecutingQuery)
	}
	return value, nil
}

// InsertRoot implements [NodeRepository].
func (r *nodeRepository) InsertRoot(ctx context.Context, node *models.Node) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, upsertNode, nodeArgs(node)...); err != nil {
		log.Err(err).
			Str("func", "nodeRepository.InsertRoot").
			Str("node_id", node.ID).
			Msg("failed to insert root node")
		return r.wrapStoreError(err, ErrExecutingStatement)
	}

	log.Debug().
		Str("func", "nodeRepository.InsertRoot").
		Str("node_id", node.ID).
		Msg("root node seeded")
	return nil
}

// ApplyChanges implements [NodeRepository]. The whole batch and the cursor
// advance share one transaction.
//
// Removed{id}: every child of id loses its parentage entry for id (a child
// left with zero parents stays in the mirror as an orphan), then the node
// row and its own parentage are deleted. Updated{node}: the node row is
// upserted and its parentage rows are replaced in order. Multi-parent nodes
// are stored as delivered, never auto-resolved.
func (r *nodeRepository) ApplyChanges(ctx context.Context, changes []models.Change, newCursor string) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "nodeRepository.ApplyChanges").
			Msg("failed to begin transaction")
		return r.wrapStoreError(err, ErrBeginningTransaction)
	}
	defer tx.Rollback()

	for _, change := range changes {
		if change.Removed {
			err = applyRemove(ctx, tx, change.ID)
		} else {
			err = applyUpdate(ctx, tx, change.Node)
		}
		if err != nil {
			log.Err(err).
				Str("func", "nodeRepository.ApplyChanges").
				Bool("removed", change.Removed).
				Msg("failed to apply change")
			return r.wrapStoreError(err, ErrExecutingStatement)
		}
	}

	if _, err = tx.ExecContext(ctx, upsertMetadataValue, metadataCursorKey, newCursor); err != nil {
		log.Err(err).
			Str("func", "nodeRepository.ApplyChanges").
			Str("cursor", newCursor).
			Msg("failed to advance cursor")
		return r.wrapStoreError(err, ErrExecutingStatement)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "nodeRepository.ApplyChanges").
			Msg("failed to commit transaction")
		return r.wrapStoreError(err, ErrCommitingTransaction)
	}

	log.Debug().
		Str("func", "nodeRepository.ApplyChanges").
		Int("changes", len(changes)).
		Str("cursor", newCursor).
		Msg("batch applied")
	return nil
}

func applyRemove(ctx context.Context, tx *sql.Tx, id string) error {
	if _, err := tx.ExecContext(ctx, deleteParentageByParent, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, deleteParentageOfChild, id); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, deleteNode, id)
	return err
}

func applyUpdate(ctx context.Context, tx *sql.Tx, node *models.Node) error {
	if _, err := tx.ExecContext(ctx, upsertNode, nodeArgs(node)...); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, deleteParentageOfChild, node.ID); err != nil {
		return err
	}
	for position, parentID := range node.ParentIDs {
		if _, err := tx.ExecContext(ctx, insertParentage, node.ID, parentID, position); err != nil {
			return err
		}
	}
	return nil
}

// getOne runs a single-node query and attaches the ordered parent list.
func (r *nodeRepository) getOne(ctx context.Context, query string, args ...any) (*models.Node, error) {
	node, err := scanNode(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNodeNotFound
	}
	if err != nil {
		return nil, r.wrapStoreError(err, ErrScanningRow)
	}

	rows, err := r.DB.QueryContext(ctx, getParentIDsOfNode, node.ID)
	if err != nil {
		return nil, r.wrapStoreError(err, ErrExecutingQuery)
	}
	defer rows.Close()

	for rows.Next() {
		var parentID string
		if err = rows.Scan(&parentID); err != nil {
			return nil, r.wrapStoreError(err, ErrScanningRows)
		}
		node.ParentIDs = append(node.ParentIDs, parentID)
	}
	if err = rows.Err(); err != nil {
		return nil, r.wrapStoreError(err, ErrScanningRows)
	}

	return node, nil
}

// queryNodes runs a multi-node query and attaches parent lists in one
// batched round trip.
func (r *nodeRepository) queryNodes(ctx context.Context, query string, args ...any) ([]*models.Node, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "nodeRepository.queryNodes").
			Msg("failed to execute node query")
		return nil, r.wrapStoreError(err, ErrExecutingQuery)
	}
	defer rows.Close()

	nodes := make([]*models.Node, 0, 16)
	for rows.Next() {
		node, scanErr := scanNode(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "nodeRepository.queryNodes").
				Msg("failed to scan node row")
			return nil, r.wrapStoreError(scanErr, ErrScanningRow)
		}
		nodes = append(nodes, node)
	}
	if err = rows.Err(); err != nil {
		return nil, r.wrapStoreError(err, ErrScanningRows)
	}

	if err = r.attachParents(ctx, nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *nodeRepository) attachParents(ctx context.Context, nodes []*models.Node) error {
	if len(nodes) == 0 {
		return nil
	}

	ids := make([]string, 0, len(nodes))
	byID := make(map[string]*models.Node, len(nodes))
	for _, node := range nodes {
		// duplicate-result queries may return a node once per edge
		if _, ok := byID[node.ID]; !ok {
			ids = append(ids, node.ID)
			byID[node.ID] = node
		}
	}

	query, args, err := buildParentageQuery(ids)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return r.wrapStoreError(err, ErrExecutingQuery)
	}
	defer rows.Close()

	for rows.Next() {
		var childID, parentID string
		if err = rows.Scan(&childID, &parentID); err != nil {
			return r.wrapStoreError(err, ErrScanningRows)
		}
		if node, ok := byID[childID]; ok {
			node.ParentIDs = append(node.ParentIDs, parentID)
		}
	}
	return rows.Err()
}

// scanTarget is satisfied by both *sql.Row and *sql.Rows.
type scanTarget interface {
	Scan(dest ...any) error
}

func scanNode(row scanTarget) (*models.Node, error) {
	var (
		node                     models.Node
		name, mimeType, hash     sql.NullString
		private                  sql.NullString
		size, imageW, imageH     sql.NullInt64
		videoW, videoH, videoDur sql.NullInt64
		created, modified        int64
	)

	err := row.Scan(
		&node.ID,
		&name,
		&node.Trashed,
		&node.IsFolder,
		&created,
		&modified,
		&size,
		&mimeType,
		&hash,
		&imageW,
		&imageH,
		&videoW,
		&videoH,
		&videoDur,
		&private,
	)
	if err != nil {
		return nil, err
	}

	node.Name = name.String
	node.Created = time.Unix(created, 0).UTC()
	node.Modified = time.Unix(modified, 0).UTC()
	node.Size = size.Int64
	node.MimeType = mimeType.String
	node.Hash = hash.String

	if imageW.Valid && imageH.Valid {
		node.Image = &models.ImageInfo{Width: int(imageW.Int64), Height: int(imageH.Int64)}
	}
	if videoW.Valid && videoH.Valid && videoDur.Valid {
		node.Video = &models.VideoInfo{Width: int(videoW.Int64), Height: int(videoH.Int64), MsDuration: videoDur.Int64}
	}
	if private.Valid && private.String != "" {
		if err = json.Unmarshal([]byte(private.String), &node.Private); err != nil {
			return nil, fmt.Errorf("decode private map: %w", err)
		}
	}

	return &node, nil
}

// nodeArgs flattens a node into the upsertNode parameter list. File-only
// attributes are stored as NULL for folders; the root's name is NULL.
func nodeArgs(node *models.Node) []any {
	args := make([]any, 0, 15)
	args = append(args, node.ID)

	if node.Name == "" {
		args = append(args, nil)
	} else {
		args = append(args, node.Name)
	}

	args = append(args, node.Trashed, node.IsFolder,
		node.Created.UTC().Unix(), node.Modified.UTC().Unix())

	if node.IsFolder {
		args = append(args, nil, nil, nil)
	} else {
		args = append(args, node.Size, nullableString(node.MimeType), nullableString(node.Hash))
	}

	if node.Image != nil {
		args = append(args, node.Image.Width, node.Image.Height)
	} else {
		args = append(args, nil, nil)
	}
	if node.Video != nil {
		args = append(args, node.Video.Width, node.Video.Height, node.Video.MsDuration)
	} else {
		args = append(args, nil, nil, nil)
	}

	if len(node.Private) == 0 {
		args = append(args, nil)
	} else {
		payload, err := json.Marshal(node.Private)
		if err != nil {
			// map[string]string always marshals; keep the row insertable
			args = append(args, nil)
		} else {
			args = append(args, string(payload))
		}
	}

	return args
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}
