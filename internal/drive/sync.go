package drive

import (
	"context"
	"errors"
	"iter"

	"github.com/drivemirror/drivemirror/internal/logger"
	"github.com/drivemirror/drivemirror/internal/store"
	"github.com/drivemirror/drivemirror/models"
)

type syncOptions struct {
	cursorOverride string
}

// SyncOption tweaks a single Sync call.
type SyncOption func(*syncOptions)

// WithCursor previews the change feed from the given cursor without
// touching the mirror: no root seeding, no batch application, no cursor
// advance.
func WithCursor(cursor string) SyncOption {
	return func(o *syncOptions) {
		o.cursorOverride = cursor
	}
}

// Sync pulls the remote change feed into the mirror and yields every
// change in remote order. Batches are applied atomically together with
// their cursor, so an interrupted sync resumes from the last committed
// batch and replays at most that batch.
//
// Only one sync runs at a time per Drive; concurrent callers queue. The
// returned iterator does the work as it is consumed; abandoning it
// mid-way leaves the mirror at the last applied batch.
func (d *Drive) Sync(ctx context.Context, opts ...SyncOption) iter.Seq2[models.Change, error] {
	var o syncOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(yield func(models.Change, error) bool) {
		d.syncMu.Lock()
		defer d.syncMu.Unlock()

		log := logger.FromContext(ctx)
		dryRun := o.cursorOverride != ""

		initial, err := d.fs.GetInitialCursor(ctx)
		if err != nil {
			yield(models.Change{}, err)
			return
		}

		cursor := o.cursorOverride
		if !dryRun {
			cursor, err = d.store.Cursor(ctx)
			if errors.Is(err, store.ErrMetadataNotFound) {
				cursor = initial
			} else if err != nil {
				yield(models.Change{}, err)
				return
			}
		}

		// an unsynced mirror has no nodes yet; seed the root so the
		// first batch has something to attach to
		if !dryRun && cursor == initial {
			root, err := d.fs.FetchRoot(ctx)
			if err != nil {
				yield(models.Change{}, err)
				return
			}
			if err = d.store.InsertRoot(ctx, root); err != nil {
				yield(models.Change{}, err)
				return
			}
			log.Debug().
				Str("func", "Drive.Sync").
				Str("root_id", root.ID).
				Msg("seeded fresh mirror")
		}

		applied := 0
		for batch, err := range d.fs.FetchChanges(ctx, cursor) {
			if err != nil {
				yield(models.Change{}, err)
				return
			}

			decoded := make([]models.Change, 0, len(batch.Changes))
			for _, change := range batch.Changes {
				if !change.Removed {
					node, err := d.chain.DecodeNode(change.Node)
					if err != nil {
						yield(models.Change{}, err)
						return
					}
					change.Node = node
				}
				decoded = append(decoded, change)
			}

			if !dryRun {
				if err = d.store.ApplyChanges(ctx, decoded, batch.Cursor); err != nil {
					yield(models.Change{}, err)
					return
				}
				applied++
			}

			for _, change := range decoded {
				if !yield(change, nil) {
					return
				}
			}
		}

		log.Debug().
			Str("func", "Drive.Sync").
			Bool("dry_run", dryRun).
			Int("batches", applied).
			Msg("sync finished")
	}
}
