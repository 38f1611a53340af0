package http

import (
	"net/http"

	"budget/internal/core"
	"budget/internal/log"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context()).WithComponent(log.ComponentTransaction)
	user := r.PathValue("user")

	// Account existence wins over body problems: a bad payload for an
	// unknown user is still a 404.
	account, err := s.store.Get(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	transaction := core.NewTransaction(req.Date, req.Object, req.Amount)
	if err := transaction.Validate(); err != nil {
		logger.WarnContext(r.Context(), "Rejected transaction",
			log.FieldOperation, log.OpCreate,
			log.FieldUser, user,
			log.FieldError, err)
		writeError(w, err)
		return
	}

	if err := account.AddTransaction(transaction); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), account); err != nil {
		logger.ErrorContext(r.Context(), "Store write failed",
			log.FieldUser, user,
			log.FieldError, err)
		writeError(w, err)
		return
	}

	s.countTransactionRecorded()
	s.publishRecorded(r, user, transaction)
	logger.InfoContext(r.Context(), "Transaction recorded",
		log.FieldOperation, log.OpCreate,
		log.FieldUser, user,
		log.FieldTransactionID, transaction.ID,
		log.FieldAmount, transaction.Amount.String())
	writeJSON(w, http.StatusCreated, transaction)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context()).WithComponent(log.ComponentTransaction)
	user := r.PathValue("user")
	id := r.PathValue("id")

	account, err := s.store.Get(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	removed, err := account.RemoveTransaction(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), account); err != nil {
		logger.ErrorContext(r.Context(), "Store write failed",
			log.FieldUser, user,
			log.FieldError, err)
		writeError(w, err)
		return
	}

	s.countTransactionDeleted()
	s.publishDeleted(r, user, removed)
	logger.InfoContext(r.Context(), "Transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldUser, user,
		log.FieldTransactionID, id)
	w.WriteHeader(http.StatusNoContent)
}

// publishRecorded emits a ledger event when a publisher is configured.
// Event failures never fail the request.
func (s *Server) publishRecorded(r *http.Request, user string, t core.Transaction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionRecorded(r.Context(), user, t); err != nil {
		s.logger.WarnContext(r.Context(), "Failed to publish ledger event",
			log.FieldOperation, log.OpPublish,
			log.FieldTransactionID, t.ID,
			log.FieldError, err)
	}
}

func (s *Server) publishDeleted(r *http.Request, user string, t core.Transaction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionDeleted(r.Context(), user, t); err != nil {
		s.logger.WarnContext(r.Context(), "Failed to publish ledger event",
			log.FieldOperation, log.OpPublish,
			log.FieldTransactionID, t.ID,
			log.FieldError, err)
	}
}
