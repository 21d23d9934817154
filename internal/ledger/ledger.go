package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/transactions-ledger-api/internal/interfaces"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/models"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/models/events"
)

// Ledger owns the full transaction history: the insertion-ordered record
// slice, the id index over it, and the monotonic id counter. Both
// representations are only ever touched inside this type's critical
// sections, so they cannot drift apart. Account balances are mutated here
// too, never by any other component.
//
// A single RWMutex serializes mutations; reads share the lock and return
// copies, never internal pointers.
type Ledger struct {
	mu        sync.RWMutex
	accounts  interfaces.AccountStore
	publisher interfaces.EventPublisher
	log       *zap.Logger

	// records holds insertion order; byID indexes the same record
	// pointers. nextID never decreases and is never reused.
	records []*models.Transaction
	byID    map[int64]*models.Transaction
	nextID  int64
}

// NewLedger wires a ledger over the given account store. The publisher and
// logger may be nil; they degrade to no-ops.
func NewLedger(accounts interfaces.AccountStore, publisher interfaces.EventPublisher, log *zap.Logger) *Ledger {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{
		accounts:  accounts,
		publisher: publisher,
		log:       log,
		byID:      make(map[int64]*models.Transaction),
	}
}

// UpdateFields carries the mutable subset of a transaction record.
// Nil fields are left untouched; everything outside this struct is
// immutable after creation.
type UpdateFields struct {
	Type *models.TransactionType
}

// Create validates and applies a transfer: debits the sender, credits the
// receiver, assigns the next id and appends the record to both
// representations as one critical section. There is no rollback path, so
// nothing after the balance mutation can fail.
//
// An empty txType defaults to transfer.
func (l *Ledger) Create(senderID, receiverID string, amount decimal.Decimal, txType models.TransactionType) (int64, error) {
	if txType == "" {
		txType = models.TypeTransfer
	}
	if !txType.Valid() {
		return 0, ErrInvalidType
	}
	// A negative amount would pass the balance check and invert the
	// transfer direction, so reject it up front.
	if amount.Sign() <= 0 {
		return 0, ErrInvalidAmount
	}

	l.mu.Lock()
	sender, senderOK := l.accounts.Get(senderID)
	receiver, receiverOK := l.accounts.Get(receiverID)
	if !senderOK || !receiverOK {
		l.mu.Unlock()
		return 0, ErrInvalidParty
	}
	if sender.Balance.LessThan(amount) {
		l.mu.Unlock()
		return 0, ErrInsufficientBalance
	}

	sender.Balance = sender.Balance.Sub(amount)
	receiver.Balance = receiver.Balance.Add(amount)

	l.nextID++
	rec := &models.Transaction{
		ID:         l.nextID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		Type:       txType,
		CreatedAt:  time.Now().UTC(),
	}
	l.records = append(l.records, rec)
	l.byID[rec.ID] = rec
	l.mu.Unlock()

	l.log.Info("transaction created",
		zap.Int64("id", rec.ID),
		zap.String("sender", senderID),
		zap.String("receiver", receiverID),
		zap.String("amount", amount.String()),
		zap.String("type", string(txType)),
	)
	l.publishCompleted(rec)

	return rec.ID, nil
}

// publishCompleted emits a TransactionCompleted event. Publishing is
// best-effort: the balances have already moved, so a broker failure is
// logged and swallowed.
func (l *Ledger) publishCompleted(rec *models.Transaction) {
	event := events.TransactionCompleted{
		EventID:       uuid.New(),
		TransactionID: rec.ID,
		SenderID:      rec.SenderID,
		ReceiverID:    rec.ReceiverID,
		Amount:        rec.Amount,
		Type:          rec.Type,
		OccurredAt:    rec.CreatedAt,
	}
	if err := l.publisher.Publish(context.Background(), event); err != nil {
		l.log.Warn("publish transaction_completed failed",
			zap.Int64("id", rec.ID),
			zap.Error(err),
		)
	}
}

// GetAll returns every record in insertion order. The result is a copy;
// callers cannot reach internal state through it.
func (l *Ledger) GetAll() []models.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Transaction, len(l.records))
	for i, rec := range l.records {
		out[i] = *rec
	}
	return out
}

// GetByID looks a record up with a linear scan over the ordered sequence.
func (l *Ledger) GetByID(id int64) (models.Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, rec := range l.records {
		if rec.ID == id {
			return *rec, true
		}
	}
	return models.Transaction{}, false
}

// GetByIDIndexed looks a record up through the id index. It is a pure
// performance variant of GetByID and always returns the same result.
func (l *Ledger) GetByIDIndexed(id int64) (models.Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rec, ok := l.byID[id]
	if !ok {
		return models.Transaction{}, false
	}
	return *rec, true
}

// GetByUser returns every record where the user is sender or receiver,
// preserving insertion order.
func (l *Ledger) GetByUser(userID string) []models.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []models.Transaction
	for _, rec := range l.records {
		if rec.SenderID == userID || rec.ReceiverID == userID {
			out = append(out, *rec)
		}
	}
	return out
}

// Update mutates a record's type. Only administrators may update, only the
// type field is mutable, and a type outside the closed enumeration leaves
// the record completely unchanged. Both the ordered sequence and the index
// see the change since they share the record.
func (l *Ledger) Update(id int64, caller models.Caller, fields UpdateFields) (models.Transaction, error) {
	if !caller.IsAdmin() {
		return models.Transaction{}, ErrForbidden
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.byID[id]
	if !ok {
		return models.Transaction{}, ErrNotFound
	}

	if fields.Type != nil {
		if !fields.Type.Valid() {
			return models.Transaction{}, ErrInvalidType
		}
		rec.Type = *fields.Type
		l.log.Info("transaction updated",
			zap.Int64("id", id),
			zap.String("type", string(rec.Type)),
			zap.String("caller", caller.AccountID),
		)
	}

	return *rec, nil
}

// Delete removes a record from both the ordered sequence and the index and
// returns the removed record. Only administrators may delete; the record's
// id is never reassigned.
func (l *Ledger) Delete(id int64, caller models.Caller) (models.Transaction, error) {
	if !caller.IsAdmin() {
		return models.Transaction{}, ErrForbidden
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.byID[id]
	if !ok {
		return models.Transaction{}, ErrNotFound
	}

	for i, r := range l.records {
		if r.ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			break
		}
	}
	delete(l.byID, id)

	l.log.Info("transaction deleted",
		zap.Int64("id", id),
		zap.String("caller", caller.AccountID),
	)
	return *rec, nil
}

// nopPublisher keeps the publish path total when no broker is configured.
type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, any) error { return nil }
func (nopPublisher) Close() error                       { return nil }
