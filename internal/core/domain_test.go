package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func money(t *testing.T, s string) Money {
	t.Helper()
	m, err := MoneyFromString(s)
	if err != nil {
		t.Fatalf("parse money %q: %v", s, err)
	}
	return m
}

func TestTransactionIDDeterministic(t *testing.T) {
	a := TransactionID("2024-01-01", "coffee", money(t, "5"))
	b := TransactionID("2024-01-01", "coffee", money(t, "5"))
	if a != b {
		t.Fatalf("same fields produced different ids: %s vs %s", a, b)
	}
	if len(a) != 32 {
		t.Fatalf("expected 32 hex chars, got %d (%s)", len(a), a)
	}
	if a != strings.ToLower(a) {
		t.Fatalf("expected lowercase hex id, got %s", a)
	}
}

func TestTransactionIDDistinctPerField(t *testing.T) {
	base := TransactionID("2024-01-01", "coffee", money(t, "5"))
	variants := []struct {
		name         string
		date, object string
		amount       string
	}{
		{"different date", "2024-01-02", "coffee", "5"},
		{"different object", "2024-01-01", "tea", "5"},
		{"different amount", "2024-01-01", "coffee", "6"},
	}
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			id := TransactionID(v.date, v.object, money(t, v.amount))
			if id == base {
				t.Fatalf("expected distinct id for %s", v.name)
			}
		})
	}
}

func TestNewAccountDefaults(t *testing.T) {
	a := NewAccount("alice", "USD", "", Zero())
	if a.Description != "alice's budget" {
		t.Fatalf("description default = %q", a.Description)
	}
	if !a.Balance.Equal(a.InitialBalance) {
		t.Fatalf("balance should start at initial balance")
	}
	if a.Transactions == nil || len(a.Transactions) != 0 {
		t.Fatalf("expected empty, non-nil ledger")
	}

	b := NewAccount("bob", "EUR", "holiday fund", money(t, "100"))
	if b.Description != "holiday fund" {
		t.Fatalf("explicit description overridden: %q", b.Description)
	}
	if b.Balance.String() != "100" {
		t.Fatalf("balance = %s, want 100", b.Balance.String())
	}
}

func TestAccountValidate(t *testing.T) {
	cases := []struct {
		name           string
		user, currency string
		ok             bool
	}{
		{"ok", "alice", "USD", true},
		{"missing user", "", "USD", false},
		{"missing currency", "alice", "", false},
		{"blank user", "   ", "USD", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Account{User: tc.user, Currency: tc.currency}.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrMissingParameters) {
				t.Fatalf("expected ErrMissingParameters, got %v", err)
			}
		})
	}
}

func TestTransactionValidate(t *testing.T) {
	good := NewTransaction("2024-01-01", "coffee", money(t, "5"))
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Date: "", Object: "coffee", Amount: money(t, "5")},
		{Date: "2024-01-01", Object: "", Amount: money(t, "5")},
		{Date: "2024-01-01", Object: "coffee", Amount: Zero()},
	}
	for i, tx := range bads {
		if !errors.Is(tx.Validate(), ErrMissingParameters) {
			t.Fatalf("case %d expected ErrMissingParameters", i)
		}
	}
}

func TestAddTransactionRejectsDuplicate(t *testing.T) {
	a := NewAccount("alice", "USD", "", Zero())
	tx := NewTransaction("2024-01-01", "coffee", money(t, "5"))

	if err := a.AddTransaction(tx); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := a.AddTransaction(NewTransaction("2024-01-01", "coffee", money(t, "5")))
	if !errors.Is(err, ErrTransactionExists) {
		t.Fatalf("expected ErrTransactionExists, got %v", err)
	}
	if len(a.Transactions) != 1 {
		t.Fatalf("ledger length = %d after rejected duplicate, want 1", len(a.Transactions))
	}
	if a.Balance.String() != "5" {
		t.Fatalf("balance = %s after rejected duplicate, want 5", a.Balance.String())
	}
}

func TestBalanceFollowsLedger(t *testing.T) {
	a := NewAccount("alice", "USD", "", money(t, "10"))
	_ = a.AddTransaction(NewTransaction("2024-01-01", "coffee", money(t, "5")))
	_ = a.AddTransaction(NewTransaction("2024-01-02", "refund", money(t, "-2.50")))

	if a.Balance.String() != "12.5" {
		t.Fatalf("balance = %s, want 12.5", a.Balance.String())
	}
}

func TestRemoveTransactionPreservesOrder(t *testing.T) {
	a := NewAccount("alice", "USD", "", Zero())
	first := NewTransaction("2024-01-01", "coffee", money(t, "5"))
	second := NewTransaction("2024-01-02", "lunch", money(t, "12"))
	third := NewTransaction("2024-01-03", "book", money(t, "20"))
	for _, tx := range []Transaction{first, second, third} {
		if err := a.AddTransaction(tx); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	removed, err := a.RemoveTransaction(second.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed.ID != second.ID {
		t.Fatalf("removed id = %s, want %s", removed.ID, second.ID)
	}
	if len(a.Transactions) != 2 {
		t.Fatalf("ledger length = %d, want 2", len(a.Transactions))
	}
	if a.Transactions[0].ID != first.ID || a.Transactions[1].ID != third.ID {
		t.Fatalf("remaining order broken: %s, %s", a.Transactions[0].Object, a.Transactions[1].Object)
	}
	if a.Balance.String() != "25" {
		t.Fatalf("balance = %s after removal, want 25", a.Balance.String())
	}

	if _, err := a.RemoveTransaction("deadbeef"); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestCloneIsolatesLedger(t *testing.T) {
	a := NewAccount("alice", "USD", "", Zero())
	_ = a.AddTransaction(NewTransaction("2024-01-01", "coffee", money(t, "5")))

	c := a.Clone()
	_ = c.AddTransaction(NewTransaction("2024-01-02", "lunch", money(t, "12")))

	if len(a.Transactions) != 1 {
		t.Fatalf("clone mutation leaked into original: %d entries", len(a.Transactions))
	}
}

func TestAccountJSONShape(t *testing.T) {
	a := NewAccount("alice", "USD", "", Zero())
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	for _, want := range []string{`"user":"alice"`, `"currency":"USD"`, `"description":"alice's budget"`, `"initialBalance":0`, `"balance":0`, `"transactions":[]`} {
		if !strings.Contains(body, want) {
			t.Fatalf("marshaled account missing %s: %s", want, body)
		}
	}
}

func TestMoneyUnmarshalNumberAndString(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`5.5`), &m); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if !m.Equal(NewMoney(decimal.RequireFromString("5.5"))) {
		t.Fatalf("got %s, want 5.5", m.String())
	}
	if err := json.Unmarshal([]byte(`"7.25"`), &m); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if m.String() != "7.25" {
		t.Fatalf("got %s, want 7.25", m.String())
	}
}
