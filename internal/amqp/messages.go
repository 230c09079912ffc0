package amqp

import (
	"encoding/json"
	"time"
)

// TransactionExportMessage announces a posted transaction to the export
// worker. It carries only the row id; the worker re-reads the full row
// from the ledger so the queue never holds stale amounts.
type TransactionExportMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionExportMessage creates an export message for a ledger row.
func NewTransactionExportMessage(id int64) *TransactionExportMessage {
	return &TransactionExportMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionExportMessageFromJSON creates a message from JSON bytes
func TransactionExportMessageFromJSON(data []byte) (*TransactionExportMessage, error) {
	var msg TransactionExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
