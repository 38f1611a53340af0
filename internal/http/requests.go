package http

import (
	"encoding/json"
	"net/http"

	"budget/internal/core"
)

// createAccountRequest is the body of POST /api/accounts. Balance is a
// pointer so an absent field is distinguishable from an explicit zero,
// which is a valid opening balance.
type createAccountRequest struct {
	User        string      `json:"user"`
	Currency    string      `json:"currency"`
	Description string      `json:"description"`
	Balance     *core.Money `json:"balance"`
}

// createTransactionRequest is the body of POST /api/accounts/{user}/transactions.
type createTransactionRequest struct {
	Date   string     `json:"date"`
	Object string     `json:"object"`
	Amount core.Money `json:"amount"`
}

// decodeJSON reads the request body into dst. A body that is not valid JSON
// is reported as missing parameters, matching how callers see any other
// unusable input.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return core.ErrMissingParameters
	}
	return nil
}
