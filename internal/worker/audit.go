// Package worker processes ledger events consumed from the message broker.
package worker

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"budget/internal/events"
	"budget/internal/log"
)

// AuditWorker keeps a per-user audit trail of ledger activity built from
// the event stream. It is the consuming counterpart of the publisher in
// the API process.
type AuditWorker struct {
	mu     sync.Mutex
	totals map[string]*userActivity
	logger *log.Logger
}

// userActivity accumulates what the event stream has reported for one user.
type userActivity struct {
	Recorded int64
	Deleted  int64
	Net      decimal.Decimal
}

func NewAuditWorker(logger *log.Logger) *AuditWorker {
	return &AuditWorker{
		totals: make(map[string]*userActivity),
		logger: logger.WithComponent(log.ComponentEvents),
	}
}

// HandleEvent processes a single ledger event. Unknown event types are an
// error so the delivery gets redelivered once a handler exists.
func (w *AuditWorker) HandleEvent(msg *events.LedgerEventMessage) error {
	amount, err := decimal.NewFromString(msg.Amount)
	if err != nil {
		return fmt.Errorf("parse amount %q: %w", msg.Amount, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	activity := w.totals[msg.User]
	if activity == nil {
		activity = &userActivity{}
		w.totals[msg.User] = activity
	}

	switch msg.Event {
	case events.EventTransactionRecorded:
		activity.Recorded++
		activity.Net = activity.Net.Add(amount)
	case events.EventTransactionDeleted:
		activity.Deleted++
		activity.Net = activity.Net.Sub(amount)
	default:
		return fmt.Errorf("unknown event type %q", msg.Event)
	}

	w.logger.Info("Ledger event processed",
		"event", msg.Event,
		log.FieldUser, msg.User,
		log.FieldTransactionID, msg.TransactionID,
		log.FieldAmount, msg.Amount,
		"net", activity.Net.String())
	return nil
}

// Activity returns a snapshot of the accumulated activity for a user.
func (w *AuditWorker) Activity(user string) (recorded, deleted int64, net decimal.Decimal) {
	w.mu.Lock()
	defer w.mu.Unlock()

	activity := w.totals[user]
	if activity == nil {
		return 0, 0, decimal.Zero
	}
	return activity.Recorded, activity.Deleted, activity.Net
}
