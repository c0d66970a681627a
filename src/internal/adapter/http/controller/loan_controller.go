package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/api-sage/pawnshop-processor/src/internal/adapter/http/models"
	"github.com/api-sage/pawnshop-processor/src/internal/commons"
)

type LoanService interface {
	OpenLoan(ctx context.Context, req models.OpenLoanRequest) (commons.Response[models.LoanAccountResponse], error)
	GetLoan(ctx context.Context, accountID string) (commons.Response[models.LoanAccountResponse], error)
	ListLoans(ctx context.Context) (commons.Response[models.ListLoansResponse], error)
	ApplyTransaction(ctx context.Context, req models.LoanTransactionRequest) (commons.Response[models.LoanTransactionResponse], error)
	ListReceipts(ctx context.Context, accountID string) (commons.Response[models.ListReceiptsResponse], error)
}

type LoanController struct {
	service LoanService
}

func NewLoanController(service LoanService) *LoanController {
	return &LoanController{service: service}
}

func (c *LoanController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("/open-loan", wrap(c.openLoan))
	mux.Handle("/get-loans", wrap(c.listLoans))
	mux.Handle("/get-loan", wrap(c.getLoan))
	mux.Handle("/apply-transaction", wrap(c.applyTransaction))
	mux.Handle("/get-receipts", wrap(c.listReceipts))
}

func (c *LoanController) openLoan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.LoanAccountResponse]("method not allowed"))
		return
	}

	var req models.OpenLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoanAccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoanAccountResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.OpenLoan(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if response.Message == "validation failed" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *LoanController) listLoans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.ListLoansResponse]("method not allowed"))
		return
	}
	logRequest(r, nil)

	response, err := c.service.ListLoans(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *LoanController) getLoan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.LoanAccountResponse]("method not allowed"))
		return
	}
	logRequest(r, nil)

	response, err := c.service.GetLoan(r.Context(), r.URL.Query().Get("accountId"))
	if err != nil {
		writeJSON(w, statusForLookupFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *LoanController) applyTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.LoanTransactionResponse]("method not allowed"))
		return
	}

	var req models.LoanTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoanTransactionResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoanTransactionResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.ApplyTransaction(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		switch response.Message {
		case "validation failed", "invalid pin":
			status = http.StatusBadRequest
		case "transaction rejected":
			status = http.StatusConflict
		case "Account not found", "Operator not found":
			status = http.StatusNotFound
		}
		writeJSON(w, status, response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *LoanController) listReceipts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.ListReceiptsResponse]("method not allowed"))
		return
	}
	logRequest(r, nil)

	response, err := c.service.ListReceipts(r.Context(), r.URL.Query().Get("accountId"))
	if err != nil {
		writeJSON(w, statusForLookupFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func statusForLookupFailure(message string) int {
	switch message {
	case "validation failed":
		return http.StatusBadRequest
	case "Account not found":
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
