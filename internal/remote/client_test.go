package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/core"
)

func TestListAndCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/transactions":
			_ = json.NewEncoder(w).Encode([]core.Transaction{
				{ID: "1", Date: "2024-01-15", Type: core.Expense, Category: "Food", Amount: core.AmountFromString("12.5")},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/transactions":
			var in core.TransactionInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				t.Errorf("decode input: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(core.Transaction{ID: "2", Date: in.Date, Type: in.Type, Amount: in.Amount})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())

	txs, err := c.List(context.Background())
	if err != nil || len(txs) != 1 || txs[0].Amount.String() != "12.5" {
		t.Fatalf("list: %v %+v", err, txs)
	}

	created, err := c.Create(context.Background(), core.TransactionInput{
		Date: "2024-03-02", Type: core.Income, Amount: core.AmountFromString("100"),
	})
	if err != nil || created.ID != "2" {
		t.Fatalf("create: %v %+v", err, created)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_ = json.NewEncoder(w).Encode(core.Transaction{ID: "abc"})
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())

	notes := "n"
	if _, err := c.Update(context.Background(), "abc", core.TransactionPatch{Notes: &notes}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/transactions/abc" {
		t.Fatalf("update request: %s %s", gotMethod, gotPath)
	}

	if err := c.Delete(context.Background(), "abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Fatalf("delete request: %s %s", gotMethod, gotPath)
	}
}

func TestNotFoundSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	if err := c.Delete(context.Background(), "gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := c.Update(context.Background(), "gone", core.TransactionPatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPushPreservesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tx core.Transaction
		if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(tx)
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	out, err := c.Push(context.Background(), core.Transaction{ID: "local-id", Date: "2024-01-01", Type: core.Income})
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if out.ID != "local-id" {
		t.Fatalf("ID = %q, want %q", out.ID, "local-id")
	}
}

func TestNon2xxSurfacesGenericError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	if _, err := c.List(context.Background()); err == nil {
		t.Fatalf("expected error on 500")
	}
	if err := c.Delete(context.Background(), "x"); err == nil {
		t.Fatalf("expected error on 500")
	}
}
