package amqp

import (
	"testing"
)

func TestSyncMessageRoundTrip(t *testing.T) {
	msg := NewSyncMessage("tx-123", OpCreate)

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	decoded, err := SyncMessageFromJSON(data)
	if err != nil {
		t.Fatalf("SyncMessageFromJSON() error = %v", err)
	}

	if decoded.ID != msg.ID {
		t.Errorf("ID = %q, want %q", decoded.ID, msg.ID)
	}
	if decoded.Op != msg.Op {
		t.Errorf("Op = %q, want %q", decoded.Op, msg.Op)
	}
	if decoded.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
}

func TestSyncMessageValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		op      string
		wantErr bool
	}{
		{"valid create", "tx-1", OpCreate, false},
		{"valid update", "tx-2", OpUpdate, false},
		{"valid delete", "tx-3", OpDelete, false},
		{"empty id", "", OpCreate, true},
		{"unknown op", "tx-4", "upsert", true},
		{"empty op", "tx-5", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := NewSyncMessage(tt.id, tt.op)
			err := msg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSyncMessageFromJSONRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "not-json"},
		{"missing id", `{"op":"create"}`},
		{"bad op", `{"id":"tx-1","op":"noop"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SyncMessageFromJSON([]byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
