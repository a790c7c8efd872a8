package worker

import (
	"context"
	"testing"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/remote"
	"fintrack/internal/store"
)

type fakeTarget struct {
	pushed   []core.Transaction
	updated  []string
	deleted  []string
	updErr   error
	notFound bool
}

func (f *fakeTarget) Push(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	f.pushed = append(f.pushed, tx)
	return tx, nil
}

func (f *fakeTarget) Update(_ context.Context, id string, _ core.TransactionPatch) (core.Transaction, error) {
	if f.updErr != nil {
		return core.Transaction{}, f.updErr
	}
	f.updated = append(f.updated, id)
	return core.Transaction{ID: id}, nil
}

func (f *fakeTarget) Delete(_ context.Context, id string) error {
	if f.notFound {
		return remote.ErrNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeMirror struct {
	snapshots [][]core.Transaction
}

func (f *fakeMirror) Replace(_ context.Context, txs []core.Transaction) error {
	f.snapshots = append(f.snapshots, txs)
	return nil
}

func newTestWorker(target *fakeTarget, mirror Mirror) (*SyncWorker, *store.Adapter) {
	adapter := store.NewAdapter(store.NewMemoryKV())
	return NewSyncWorker(adapter, target, mirror), adapter
}

func addTx(t *testing.T, adapter *store.Adapter) core.Transaction {
	t.Helper()
	tx, _ := adapter.AddTransaction(context.Background(), core.TransactionInput{
		Date:     "2024-03-15",
		Type:     core.Expense,
		Category: "Food",
		Amount:   core.AmountFromString("250"),
	})
	return tx
}

func TestCreateMessagePushesStoredRecord(t *testing.T) {
	target := &fakeTarget{}
	w, adapter := newTestWorker(target, nil)
	tx := addTx(t, adapter)

	msg := amqp.NewSyncMessage(tx.ID, amqp.OpCreate)
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}

	if len(target.pushed) != 1 || target.pushed[0].ID != tx.ID {
		t.Fatalf("pushed = %+v, want single record with id %q", target.pushed, tx.ID)
	}
}

func TestCreateMessageForMissingRecordIsSkipped(t *testing.T) {
	target := &fakeTarget{}
	w, _ := newTestWorker(target, nil)

	msg := amqp.NewSyncMessage("gone", amqp.OpCreate)
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}
	if len(target.pushed) != 0 {
		t.Fatalf("pushed = %+v, want none", target.pushed)
	}
}

func TestUpdateMessageReplaysCurrentState(t *testing.T) {
	target := &fakeTarget{}
	w, adapter := newTestWorker(target, nil)
	tx := addTx(t, adapter)

	msg := amqp.NewSyncMessage(tx.ID, amqp.OpUpdate)
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}
	if len(target.updated) != 1 || target.updated[0] != tx.ID {
		t.Fatalf("updated = %v, want [%q]", target.updated, tx.ID)
	}
}

func TestUpdateFallsBackToPushWhenRemoteMissing(t *testing.T) {
	target := &fakeTarget{updErr: remote.ErrNotFound}
	w, adapter := newTestWorker(target, nil)
	tx := addTx(t, adapter)

	msg := amqp.NewSyncMessage(tx.ID, amqp.OpUpdate)
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}
	if len(target.pushed) != 1 || target.pushed[0].ID != tx.ID {
		t.Fatalf("pushed = %+v, want fallback push of %q", target.pushed, tx.ID)
	}
}

func TestDeleteMessageToleratesMissingRemote(t *testing.T) {
	target := &fakeTarget{notFound: true}
	w, _ := newTestWorker(target, nil)

	msg := amqp.NewSyncMessage("gone", amqp.OpDelete)
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}
}

func TestReconcileSendsSnapshot(t *testing.T) {
	target := &fakeTarget{}
	mirror := &fakeMirror{}
	w, adapter := newTestWorker(target, mirror)
	addTx(t, adapter)
	addTx(t, adapter)

	if err := w.Reconcile(context.Background()); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if len(mirror.snapshots) != 1 || len(mirror.snapshots[0]) != 2 {
		t.Fatalf("snapshots = %+v, want one snapshot of two records", mirror.snapshots)
	}
}

func TestReconcileWithoutMirrorIsNoop(t *testing.T) {
	w, _ := newTestWorker(&fakeTarget{}, nil)
	if err := w.Reconcile(context.Background()); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
}
