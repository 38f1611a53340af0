package http

import (
	"errors"
	"net/http"

	"budget/internal/core"
	"budget/internal/log"
)

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context()).WithComponent(log.ComponentAccount)

	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	balance := core.Zero()
	if req.Balance != nil {
		balance = *req.Balance
	}
	account := core.NewAccount(req.User, req.Currency, req.Description, balance)
	if err := account.Validate(); err != nil {
		logger.WarnContext(r.Context(), "Rejected account creation",
			log.FieldOperation, log.OpCreate,
			log.FieldError, err)
		writeError(w, err)
		return
	}

	if _, err := s.store.Get(r.Context(), account.User); err == nil {
		writeError(w, core.ErrUserExists)
		return
	} else if !errors.Is(err, core.ErrUserNotFound) {
		logger.ErrorContext(r.Context(), "Store lookup failed",
			log.FieldUser, account.User,
			log.FieldError, err)
		writeError(w, err)
		return
	}

	if err := s.store.Put(r.Context(), account); err != nil {
		logger.ErrorContext(r.Context(), "Store write failed",
			log.FieldUser, account.User,
			log.FieldError, err)
		writeError(w, err)
		return
	}

	s.countAccountCreated()
	logger.InfoContext(r.Context(), "Account created",
		log.FieldOperation, log.OpCreate,
		log.FieldUser, account.User,
		log.FieldCurrency, account.Currency)
	writeJSON(w, http.StatusCreated, account)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("user")

	account, err := s.store.Get(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context()).WithComponent(log.ComponentAccount)
	user := r.PathValue("user")

	if err := s.store.Delete(r.Context(), user); err != nil {
		writeError(w, err)
		return
	}

	s.countAccountDeleted()
	logger.InfoContext(r.Context(), "Account deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldUser, user)
	w.WriteHeader(http.StatusNoContent)
}
