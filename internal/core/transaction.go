package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// OtherCategory is the display label for transactions without a category.
// It is never persisted; folding happens at aggregation/display time only.
const OtherCategory = "Other"

type (
	TransactionType string

	// Transaction is a single recorded income or expense event.
	// Amount holds the unsigned magnitude; the sign is derived from Type.
	Transaction struct {
		ID       string          `json:"id"`
		Date     string          `json:"date"`
		Time     string          `json:"time,omitempty"`
		Type     TransactionType `json:"type"`
		Category string          `json:"category"`
		Amount   Amount          `json:"amount"`
		Notes    string          `json:"notes,omitempty"`
	}

	// TransactionInput is the shape accepted at the create boundary.
	TransactionInput struct {
		Date     string          `json:"date"`
		Time     string          `json:"time,omitempty"`
		Type     TransactionType `json:"type"`
		Category string          `json:"category"`
		Amount   Amount          `json:"amount"`
		Notes    string          `json:"notes,omitempty"`
	}

	// TransactionPatch carries a partial update. Only non-nil fields are
	// applied; the identifier itself is immutable.
	TransactionPatch struct {
		Date     *string          `json:"date,omitempty"`
		Time     *string          `json:"time,omitempty"`
		Type     *TransactionType `json:"type,omitempty"`
		Category *string          `json:"category,omitempty"`
		Amount   *Amount          `json:"amount,omitempty"`
		Notes    *string          `json:"notes,omitempty"`
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidAmount = errors.New("invalid amount")
)

func (t TransactionType) IsValid() bool {
	switch t {
	case Income, Expense:
		return true
	default:
		return false
	}
}

// NewID returns a fresh transaction identifier. Random UUIDs replace the
// wall-clock identifiers of earlier versions, which could collide under
// rapid successive inserts.
func NewID() string {
	return uuid.NewString()
}

// DisplayCategory returns the category label for display, folding the
// empty label into OtherCategory.
func (t Transaction) DisplayCategory() string {
	c := strings.TrimSpace(t.Category)
	if c == "" {
		return OtherCategory
	}
	return c
}

// When parses the transaction's calendar date (and optional time) for
// ordering. Missing or unparsable dates yield the zero time so sorting
// never fails on bad input.
func (t Transaction) When() time.Time {
	if t.Date == "" {
		return time.Time{}
	}
	if t.Time != "" {
		if ts, err := time.Parse("2006-01-02 15:04", t.Date+" "+t.Time); err == nil {
			return ts
		}
	}
	ts, err := time.Parse("2006-01-02", t.Date)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// Validate checks the create-boundary invariants: a well-formed date, a
// known type, and a strictly positive amount.
func (in TransactionInput) Validate() error {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return ErrInvalidDate
	}
	if in.Time != "" {
		if _, err := time.Parse("15:04", in.Time); err != nil {
			return ErrInvalidDate
		}
	}
	if !in.Type.IsValid() {
		return ErrInvalidType
	}
	if !in.Amount.Positive() {
		return ErrInvalidAmount
	}
	return nil
}

// Transaction materializes the input as a stored record with a fresh ID.
func (in TransactionInput) Transaction() Transaction {
	return Transaction{
		ID:       NewID(),
		Date:     in.Date,
		Time:     in.Time,
		Type:     in.Type,
		Category: strings.TrimSpace(in.Category),
		Amount:   in.Amount,
		Notes:    in.Notes,
	}
}

// Apply returns a copy of tx with the patch's present fields replaced.
func (p TransactionPatch) Apply(tx Transaction) Transaction {
	if p.Date != nil {
		tx.Date = *p.Date
	}
	if p.Time != nil {
		tx.Time = *p.Time
	}
	if p.Type != nil {
		tx.Type = *p.Type
	}
	if p.Category != nil {
		tx.Category = strings.TrimSpace(*p.Category)
	}
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}
	if p.Notes != nil {
		tx.Notes = *p.Notes
	}
	return tx
}

// IsEmpty reports whether the patch carries no fields at all.
func (p TransactionPatch) IsEmpty() bool {
	return p.Date == nil && p.Time == nil && p.Type == nil &&
		p.Category == nil && p.Amount == nil && p.Notes == nil
}
