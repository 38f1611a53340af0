package core

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"
)

// Sentinel errors for the account ledger. The messages double as the wire
// error strings returned to API clients, so they stay capitalized.
var (
	ErrMissingParameters   = errors.New("Missing parameters")
	ErrUserExists          = errors.New("User already exists")
	ErrUserNotFound        = errors.New("User does not exist")
	ErrTransactionExists   = errors.New("Transaction already exists")
	ErrTransactionNotFound = errors.New("Transaction does not exist")
)

type (
	// Account is a named budget ledger owned by one user identifier.
	Account struct {
		User           string        `json:"user"`
		Currency       string        `json:"currency"`
		Description    string        `json:"description"`
		InitialBalance Money         `json:"initialBalance"`
		Balance        Money         `json:"balance"`
		Transactions   []Transaction `json:"transactions"`
	}

	// Transaction is a single dated, described, amount-bearing ledger entry.
	// Immutable once created.
	Transaction struct {
		ID     string `json:"id"`
		Date   string `json:"date"`
		Object string `json:"object"`
		Amount Money  `json:"amount"`
	}
)

// TransactionID derives the content identifier for a ledger entry: the hex
// MD5 digest of the undelimited concatenation of date, object and the
// canonical amount string. Entries with identical defining fields map to the
// same ID and are treated as duplicates. MD5 is used for addressing only,
// not for security.
func TransactionID(date, object string, amount Money) string {
	sum := md5.Sum([]byte(date + object + amount.String()))
	return hex.EncodeToString(sum[:])
}

// NewAccount builds an account with an empty ledger. Description defaults to
// "<user>'s budget" when blank; the running balance starts at the initial
// balance.
func NewAccount(user, currency, description string, initial Money) Account {
	if strings.TrimSpace(description) == "" {
		description = user + "'s budget"
	}
	return Account{
		User:           user,
		Currency:       currency,
		Description:    description,
		InitialBalance: initial,
		Balance:        initial,
		Transactions:   []Transaction{},
	}
}

// NewTransaction builds a ledger entry with its content-derived ID.
func NewTransaction(date, object string, amount Money) Transaction {
	return Transaction{
		ID:     TransactionID(date, object, amount),
		Date:   date,
		Object: object,
		Amount: amount,
	}
}

// Validate checks the mandatory account creation parameters.
func (a Account) Validate() error {
	if strings.TrimSpace(a.User) == "" || strings.TrimSpace(a.Currency) == "" {
		return ErrMissingParameters
	}
	return nil
}

// Validate checks the mandatory transaction parameters. A zero amount counts
// as missing, matching the presence semantics of the API contract.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Date) == "" || strings.TrimSpace(t.Object) == "" || t.Amount.IsZero() {
		return ErrMissingParameters
	}
	return nil
}

// AddTransaction appends the entry to the ledger and moves the running
// balance. Rejects with ErrTransactionExists when an entry with the same ID
// is already present; the account is left untouched on rejection.
func (a *Account) AddTransaction(t Transaction) error {
	for _, existing := range a.Transactions {
		if existing.ID == t.ID {
			return ErrTransactionExists
		}
	}
	a.Transactions = append(a.Transactions, t)
	a.Balance = a.Balance.Add(t.Amount)
	return nil
}

// RemoveTransaction deletes exactly the entry with the given ID, preserving
// the order of the remaining entries, and moves the running balance back.
// It returns the removed entry.
func (a *Account) RemoveTransaction(id string) (Transaction, error) {
	for i, t := range a.Transactions {
		if t.ID == id {
			a.Transactions = append(a.Transactions[:i], a.Transactions[i+1:]...)
			a.Balance = a.Balance.Sub(t.Amount)
			return t, nil
		}
	}
	return Transaction{}, ErrTransactionNotFound
}

// Clone returns a deep copy so callers can mutate freely without aliasing
// the ledger slice.
func (a Account) Clone() Account {
	out := a
	out.Transactions = make([]Transaction, len(a.Transactions))
	copy(out.Transactions, a.Transactions)
	return out
}
