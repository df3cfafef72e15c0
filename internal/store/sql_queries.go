package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const nodeColumns = `n.id, n.name, n.trashed, n.is_folder, n.created, n.modified, n.size, n.mime_type, n.hash, n.image_width, n.image_height, n.video_width, n.video_height, n.video_ms_duration, n.private`

const (
	getRootNode = `SELECT ` + nodeColumns + `
		FROM nodes n
		WHERE n.name IS NULL;`

	getNodeByID = `SELECT ` + nodeColumns + `
		FROM nodes n
		WHERE n.id = ?;`

	getChildNodeByName = `SELECT ` + nodeColumns + `
		FROM nodes n
		JOIN parentage p ON p.child_id = n.id
		WHERE p.parent_id = ? AND n.name = ?;`

	getChildNodes = `SELECT ` + nodeColumns + `
		FROM nodes n
		JOIN parentage p ON p.child_id = n.id
		WHERE p.parent_id = ?
		ORDER BY n.name;`

	findNodesByRegex = `SELECT ` + nodeColumns + `
		FROM nodes n
		WHERE n.name REGEXP ?
		ORDER BY n.id;`

	findOrphanNodes = `SELECT ` + nodeColumns + `
		FROM nodes n
		WHERE n.name IS NOT NULL
		  AND n.id NOT IN (SELECT child_id FROM parentage)
		ORDER BY n.id;`

	findMultiParentNodes = `SELECT ` + nodeColumns + `
		FROM nodes n
		WHERE n.id IN (
			SELECT child_id FROM parentage
			GROUP BY child_id
			HAVING COUNT(*) > 1
		)
		ORDER BY n.id;`

	findDuplicateNodes = `SELECT ` + nodeColumns + `
		FROM nodes n
		JOIN parentage p ON p.child_id = n.id
		JOIN (
			SELECT p2.parent_id AS parent_id, n2.name AS name
			FROM nodes n2
			JOIN parentage p2 ON p2.child_id = n2.id
			GROUP BY p2.parent_id, n2.name
			HAVING COUNT(*) > 1
		) dup ON dup.parent_id = p.parent_id AND dup.name = n.name
		ORDER BY n.name, n.id;`

	getTrashedNodes = `SELECT ` + nodeColumns + `
		FROM nodes n
		WHERE n.trashed = 1
		ORDER BY n.id;`

	getParentIDsOfNode = `SELECT parent_id
		FROM parentage
		WHERE child_id = ?
		ORDER BY position;`

	getMetadataValue = `SELECT value
		FROM metadata
		WHERE key = ?;`

	upsertMetadataValue = `INSERT INTO metadata (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;`

	upsertNode = `INSERT OR REPLACE INTO nodes (
			id,
			name,
			trashed,
			is_folder,
			created,
			modified,
			size,
			mime_type,
			hash,
			image_width,
			image_height,
			video_width,
			video_height,
			video_ms_duration,
			private
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	deleteNode = `DELETE FROM nodes
		WHERE id = ?;`

	deleteParentageOfChild = `DELETE FROM parentage
		WHERE child_id = ?;`

	deleteParentageByParent = `DELETE FROM parentage
		WHERE parent_id = ?;`

	insertParentage = `INSERT INTO parentage (child_id, parent_id, position)
		VALUES (?, ?, ?);`
)

// buildUploadedSizeQuery sums file sizes created inside [from, to].
// Timestamps are stored as unix seconds, so bounds are converted before
// comparison. squirrel keeps the range predicate readable.
func buildUploadedSizeQuery(from, to time.Time) (string, []any, error) {
	return sq.Select("COALESCE(SUM(n.size), 0)").
		From("nodes n").
		Where(sq.Eq{"n.is_folder": 0}).
		Where(sq.GtOrEq{"n.created": from.UTC().Unix()}).
		Where(sq.LtOrEq{"n.created": to.UTC().Unix()}).
		ToSql()
}

// buildParentageQuery loads the ordered parent ids for a set of children in
// one round trip. squirrel generates IN (?,?,?) for a slice.
func buildParentageQuery(childIDs []string) (string, []any, error) {
	return sq.Select("child_id", "parent_id").
		From("parentage").
		Where(sq.Eq{"child_id": childIDs}).
		OrderBy("child_id", "position").
		ToSql()
}
