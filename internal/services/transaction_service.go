package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/store"
)

// TransactionService orchestrates transaction mutations across the local
// store and the AMQP sync queue. The local write always wins; publishing
// is best effort and never fails the request.
type TransactionService struct {
	store      *store.Adapter
	amqpClient *amqp.Client
}

func NewTransactionService(store *store.Adapter, amqpClient *amqp.Client) *TransactionService {
	return &TransactionService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// Transactions returns all stored transactions, newest first.
func (s *TransactionService) Transactions(ctx context.Context) []core.Transaction {
	return s.store.Transactions(ctx)
}

// Transaction looks up a single transaction by id.
func (s *TransactionService) Transaction(ctx context.Context, id string) (core.Transaction, bool) {
	return s.store.GetTransaction(ctx, id)
}

// Create saves a transaction locally and publishes a sync message.
func (s *TransactionService) Create(ctx context.Context, in core.TransactionInput) core.Transaction {
	tx, _ := s.store.AddTransaction(ctx, in)

	if err := s.publish(ctx, tx.ID, amqp.OpCreate); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			log.FieldTransactionID, tx.ID, log.FieldOperation, amqp.OpCreate, log.FieldError, err)
		// Don't fail the request, the transaction is saved locally.
	}

	return tx
}

// Update applies a partial update locally and publishes a sync message.
// The second return reports whether the id was found.
func (s *TransactionService) Update(ctx context.Context, id string, patch core.TransactionPatch) (core.Transaction, bool) {
	tx, _, found := s.store.UpdateTransaction(ctx, id, patch)
	if !found {
		return core.Transaction{}, false
	}

	if err := s.publish(ctx, id, amqp.OpUpdate); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			log.FieldTransactionID, id, log.FieldOperation, amqp.OpUpdate, log.FieldError, err)
	}

	return tx, true
}

// Delete removes a transaction locally and publishes a sync message.
func (s *TransactionService) Delete(ctx context.Context, id string) bool {
	_, found := s.store.DeleteTransaction(ctx, id)
	if !found {
		return false
	}

	if err := s.publish(ctx, id, amqp.OpDelete); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			log.FieldTransactionID, id, log.FieldOperation, amqp.OpDelete, log.FieldError, err)
	}

	return true
}

func (s *TransactionService) publish(ctx context.Context, id, op string) error {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}

	return s.amqpClient.PublishSync(ctx, id, op)
}

// Close closes the AMQP connection. The store is owned by the caller.
func (s *TransactionService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp client: %w", err)
		}
	}
	return nil
}
