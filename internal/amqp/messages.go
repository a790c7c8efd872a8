package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Sync operations carried on the queue.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// SyncMessage is a lightweight mirror instruction: the transaction id and
// the operation that happened locally. The worker re-reads the full record
// from the local store, so the payload stays small and never goes stale.
type SyncMessage struct {
	ID        string    `json:"id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSyncMessage(id, op string) *SyncMessage {
	return &SyncMessage{
		ID:        id,
		Op:        op,
		Timestamp: time.Now(),
	}
}

// Validate rejects messages with an unknown operation or a missing id.
func (m *SyncMessage) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("sync message without id")
	}
	switch m.Op {
	case OpCreate, OpUpdate, OpDelete:
		return nil
	default:
		return fmt.Errorf("unknown sync op %q", m.Op)
	}
}

func (m *SyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SyncMessageFromJSON(data []byte) (*SyncMessage, error) {
	var msg SyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
