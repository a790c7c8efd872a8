// Package worker replays local transaction mutations against the remote
// service and periodically mirrors the full ledger to an optional
// spreadsheet target.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/remote"
	"fintrack/internal/store"
)

// Target is the remote side mutations are replayed against. The remote
// HTTP client satisfies it.
type Target interface {
	Push(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	Update(ctx context.Context, id string, patch core.TransactionPatch) (core.Transaction, error)
	Delete(ctx context.Context, id string) error
}

// Mirror receives full ledger snapshots during reconciliation.
type Mirror interface {
	Replace(ctx context.Context, txs []core.Transaction) error
}

// SyncWorker consumes sync messages and drives the remote target from the
// local store. The store is the source of truth; messages only say which
// record changed, the worker re-reads its current state before replaying.
type SyncWorker struct {
	store  *store.Adapter
	target Target
	mirror Mirror // optional
}

func NewSyncWorker(store *store.Adapter, target Target, mirror Mirror) *SyncWorker {
	return &SyncWorker{
		store:  store,
		target: target,
		mirror: mirror,
	}
}

// HandleSyncMessage replays a single mutation against the remote target.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.SyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID, "op", msg.Op)

	switch msg.Op {
	case amqp.OpDelete:
		return w.replayDelete(ctx, msg.ID)
	case amqp.OpCreate, amqp.OpUpdate:
		return w.replayUpsert(ctx, msg.ID, msg.Op)
	default:
		// Validate() rejects unknown ops at decode time; drop just in case.
		slog.WarnContext(ctx, "Skipping message with unknown op", "id", msg.ID, "op", msg.Op)
		return nil
	}
}

func (w *SyncWorker) replayDelete(ctx context.Context, id string) error {
	err := w.target.Delete(ctx, id)
	if errors.Is(err, remote.ErrNotFound) {
		// Already gone on the remote side, nothing to do.
		slog.DebugContext(ctx, "Remote record already absent", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete remote transaction: %w", err)
	}

	slog.InfoContext(ctx, "Deleted remote transaction", "id", id)
	return nil
}

func (w *SyncWorker) replayUpsert(ctx context.Context, id, op string) error {
	tx, found := w.store.GetTransaction(ctx, id)
	if !found {
		// Deleted locally after the message was published; a delete
		// message follows, so this one is obsolete.
		slog.InfoContext(ctx, "Transaction no longer in store, skipping", "id", id, "op", op)
		return nil
	}

	if op == amqp.OpCreate {
		if _, err := w.target.Push(ctx, tx); err != nil {
			return fmt.Errorf("push remote transaction: %w", err)
		}
		slog.InfoContext(ctx, "Pushed remote transaction", "id", id)
		return nil
	}

	_, err := w.target.Update(ctx, id, fullPatch(tx))
	if errors.Is(err, remote.ErrNotFound) {
		// The remote side never saw the create; push the full record.
		if _, err := w.target.Push(ctx, tx); err != nil {
			return fmt.Errorf("push remote transaction: %w", err)
		}
		slog.InfoContext(ctx, "Pushed remote transaction after missed create", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("update remote transaction: %w", err)
	}

	slog.InfoContext(ctx, "Updated remote transaction", "id", id)
	return nil
}

// Reconcile mirrors the full ledger to the spreadsheet target. It runs on
// a schedule as a backstop for lost messages.
func (w *SyncWorker) Reconcile(ctx context.Context) error {
	if w.mirror == nil {
		slog.DebugContext(ctx, "No mirror configured, skipping reconcile")
		return nil
	}

	txs := w.store.Transactions(ctx)
	if err := w.mirror.Replace(ctx, txs); err != nil {
		return fmt.Errorf("replace mirror snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Reconciled ledger to mirror", "count", len(txs))
	return nil
}

// fullPatch turns a stored record into a patch carrying every field, so a
// remote update converges on local state regardless of what the remote
// currently holds.
func fullPatch(tx core.Transaction) core.TransactionPatch {
	return core.TransactionPatch{
		Date:     &tx.Date,
		Time:     &tx.Time,
		Type:     &tx.Type,
		Category: &tx.Category,
		Amount:   &tx.Amount,
		Notes:    &tx.Notes,
	}
}
