package events

import (
	"encoding/json"
	"time"

	"budget/internal/core"
)

// Event names carried on the ledger stream.
const (
	EventTransactionRecorded = "transaction:recorded"
	EventTransactionDeleted  = "transaction:deleted"
)

// LedgerEventMessage describes a single ledger mutation. Amount travels as
// the canonical decimal string so consumers don't depend on float precision.
type LedgerEventMessage struct {
	Event         string    `json:"event"`
	User          string    `json:"user"`
	TransactionID string    `json:"transaction_id"`
	Date          string    `json:"date"`
	Object        string    `json:"object"`
	Amount        string    `json:"amount"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewTransactionRecordedMessage builds the event for an appended entry.
func NewTransactionRecordedMessage(user string, t core.Transaction) *LedgerEventMessage {
	return newLedgerEventMessage(EventTransactionRecorded, user, t)
}

// NewTransactionDeletedMessage builds the event for a removed entry.
func NewTransactionDeletedMessage(user string, t core.Transaction) *LedgerEventMessage {
	return newLedgerEventMessage(EventTransactionDeleted, user, t)
}

func newLedgerEventMessage(event, user string, t core.Transaction) *LedgerEventMessage {
	return &LedgerEventMessage{
		Event:         event,
		User:          user,
		TransactionID: t.ID,
		Date:          t.Date,
		Object:        t.Object,
		Amount:        t.Amount.String(),
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON decodes a message from JSON bytes.
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
