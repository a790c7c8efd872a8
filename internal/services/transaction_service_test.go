package services

import (
	"context"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

func newTestService() *TransactionService {
	adapter := store.NewAdapter(store.NewMemoryKV())
	return NewTransactionService(adapter, nil) // no AMQP in tests
}

func input(amount string) core.TransactionInput {
	return core.TransactionInput{
		Date:     "2024-03-15",
		Type:     core.Expense,
		Category: "Food",
		Amount:   core.AmountFromString(amount),
	}
}

func TestCreateWithoutAMQP(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tx := svc.Create(ctx, input("250"))
	if tx.ID == "" {
		t.Fatal("created transaction has empty id")
	}

	got, found := svc.Transaction(ctx, tx.ID)
	if !found {
		t.Fatal("created transaction not found in store")
	}
	if got.Category != "Food" {
		t.Errorf("Category = %q, want %q", got.Category, "Food")
	}
}

func TestUpdateMissingID(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	notes := "late lunch"
	_, found := svc.Update(ctx, "does-not-exist", core.TransactionPatch{Notes: &notes})
	if found {
		t.Error("update of unknown id reported found")
	}
}

func TestUpdateAppliesPatch(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tx := svc.Create(ctx, input("100"))

	category := "Transport"
	updated, found := svc.Update(ctx, tx.ID, core.TransactionPatch{Category: &category})
	if !found {
		t.Fatal("update of existing id reported not found")
	}
	if updated.Category != "Transport" {
		t.Errorf("Category = %q, want %q", updated.Category, "Transport")
	}
	if updated.ID != tx.ID {
		t.Errorf("ID changed on update: %q -> %q", tx.ID, updated.ID)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tx := svc.Create(ctx, input("100"))

	if !svc.Delete(ctx, tx.ID) {
		t.Fatal("delete of existing id reported not found")
	}
	if _, found := svc.Transaction(ctx, tx.ID); found {
		t.Error("transaction still present after delete")
	}
	if svc.Delete(ctx, tx.ID) {
		t.Error("second delete of same id reported found")
	}
}
