package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"fintrack/internal/core"
)

// Adapter is the best-effort persistence layer over a KV backend.
//
// No method ever returns an error: absent, unreadable, or malformed state
// resolves to a typed fallback ([] for lists, the default settings record),
// and write failures are logged and swallowed. There is exactly one logical
// writer; the mutex only serializes read-modify-write sequences within this
// process, last write wins.
type Adapter struct {
	mu sync.Mutex
	kv KV
}

func NewAdapter(kv KV) *Adapter {
	return &Adapter{kv: kv}
}

// Transactions returns the stored list, most recent first by convention of
// the writer. Malformed state reads as empty.
func (a *Adapter) Transactions(ctx context.Context) []core.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.transactions(ctx)
}

func (a *Adapter) transactions(ctx context.Context) []core.Transaction {
	raw, ok := a.kv.Get(ctx, KeyTransactions)
	if !ok {
		return []core.Transaction{}
	}
	var txs []core.Transaction
	if err := json.Unmarshal(raw, &txs); err != nil {
		slog.WarnContext(ctx, "Malformed transaction store, falling back to empty", "error", err)
		return []core.Transaction{}
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	return txs
}

func (a *Adapter) saveTransactions(ctx context.Context, txs []core.Transaction) {
	raw, err := json.Marshal(txs)
	if err != nil {
		slog.ErrorContext(ctx, "Encode transactions failed, state not persisted", "error", err)
		return
	}
	if err := a.kv.Set(ctx, KeyTransactions, raw); err != nil {
		slog.WarnContext(ctx, "Persist transactions failed", "error", err, "count", len(txs))
	}
}

// GetTransaction looks up a single record by id.
func (a *Adapter) GetTransaction(ctx context.Context, id string) (core.Transaction, bool) {
	for _, tx := range a.Transactions(ctx) {
		if tx.ID == id {
			return tx, true
		}
	}
	return core.Transaction{}, false
}

// AddTransaction materializes the input with a fresh identifier, prepends
// it, persists, and returns the created record plus the new full list.
func (a *Adapter) AddTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, []core.Transaction) {
	a.mu.Lock()
	defer a.mu.Unlock()

	created := in.Transaction()
	next := append([]core.Transaction{created}, a.transactions(ctx)...)
	a.saveTransactions(ctx, next)
	return created, next
}

// UpdateTransaction replaces only the fields present in the patch on the
// record matching id; the identifier is immutable. When id is unknown the
// list is returned unchanged and found is false.
func (a *Adapter) UpdateTransaction(ctx context.Context, id string, patch core.TransactionPatch) (core.Transaction, []core.Transaction, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	txs := a.transactions(ctx)
	for i, tx := range txs {
		if tx.ID != id {
			continue
		}
		updated := patch.Apply(tx)
		updated.ID = id
		txs[i] = updated
		a.saveTransactions(ctx, txs)
		return updated, txs, true
	}
	return core.Transaction{}, txs, false
}

// DeleteTransaction removes the matching record; no-op when absent.
func (a *Adapter) DeleteTransaction(ctx context.Context, id string) ([]core.Transaction, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	txs := a.transactions(ctx)
	next := txs[:0:0]
	found := false
	for _, tx := range txs {
		if tx.ID == id {
			found = true
			continue
		}
		next = append(next, tx)
	}
	if !found {
		return txs, false
	}
	if next == nil {
		next = []core.Transaction{}
	}
	a.saveTransactions(ctx, next)
	return next, true
}

// Categories returns the stored category list. On first read with nothing
// stored it writes back the default set, so the list self-heals.
func (a *Adapter) Categories(ctx context.Context) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.categories(ctx)
}

func (a *Adapter) categories(ctx context.Context) []string {
	raw, ok := a.kv.Get(ctx, KeyCategories)
	if ok {
		var cats []string
		if err := json.Unmarshal(raw, &cats); err == nil && len(cats) > 0 {
			return cats
		}
		slog.WarnContext(ctx, "Malformed or empty category store, reseeding defaults")
	}
	defaults := core.DefaultCategories()
	a.saveCategories(ctx, defaults)
	return defaults
}

func (a *Adapter) saveCategories(ctx context.Context, cats []string) {
	raw, err := json.Marshal(cats)
	if err != nil {
		slog.ErrorContext(ctx, "Encode categories failed", "error", err)
		return
	}
	if err := a.kv.Set(ctx, KeyCategories, raw); err != nil {
		slog.WarnContext(ctx, "Persist categories failed", "error", err)
	}
}

// AddCategory trims the name, silently ignores empty input, and rejects
// case-insensitive duplicates. Returns the resulting list either way.
func (a *Adapter) AddCategory(ctx context.Context, name string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	trimmed := strings.TrimSpace(name)
	cats := a.categories(ctx)
	if trimmed == "" {
		return cats
	}
	for _, c := range cats {
		if strings.EqualFold(c, trimmed) {
			return cats
		}
	}
	next := append(cats, trimmed)
	a.saveCategories(ctx, next)
	return next
}

// DeleteCategory removes an exact-match entry. Transactions keep the
// now-orphaned label as plain text; there is no cascade.
func (a *Adapter) DeleteCategory(ctx context.Context, name string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	cats := a.categories(ctx)
	next := cats[:0:0]
	for _, c := range cats {
		if c == name {
			continue
		}
		next = append(next, c)
	}
	if next == nil {
		next = []string{}
	}
	a.saveCategories(ctx, next)
	return next
}

// Settings returns the stored record normalized against the defaults.
func (a *Adapter) Settings(ctx context.Context) core.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()

	raw, ok := a.kv.Get(ctx, KeySettings)
	if !ok {
		return core.DefaultSettings()
	}
	var s core.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		slog.WarnContext(ctx, "Malformed settings store, falling back to defaults", "error", err)
		return core.DefaultSettings()
	}
	return s.Normalize()
}

// SaveSettings shallow-merges the patch onto the default record and
// persists the result wholesale. Callers must resend unrelated fields or
// they revert to their defaults.
func (a *Adapter) SaveSettings(ctx context.Context, patch core.SettingsPatch) core.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()

	next := patch.ApplyToDefaults()
	raw, err := json.Marshal(next)
	if err != nil {
		slog.ErrorContext(ctx, "Encode settings failed", "error", err)
		return next
	}
	if err := a.kv.Set(ctx, KeySettings, raw); err != nil {
		slog.WarnContext(ctx, "Persist settings failed", "error", err)
	}
	return next
}
