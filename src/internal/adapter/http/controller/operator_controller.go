package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/api-sage/pawnshop-processor/src/internal/adapter/http/models"
	"github.com/api-sage/pawnshop-processor/src/internal/commons"
)

type OperatorService interface {
	CreateOperator(ctx context.Context, req models.CreateOperatorRequest) (commons.Response[models.CreateOperatorResponse], error)
	VerifyPin(ctx context.Context, operatorID string, pin string) (commons.Response[models.VerifyPinResponse], error)
}

type OperatorController struct {
	service OperatorService
}

func NewOperatorController(service OperatorService) *OperatorController {
	return &OperatorController{service: service}
}

func (c *OperatorController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	createHandler := http.HandlerFunc(c.createOperator)
	verifyHandler := http.HandlerFunc(c.verifyPin)
	if authMiddleware != nil {
		createHandler = authMiddleware(createHandler).ServeHTTP
		verifyHandler = authMiddleware(verifyHandler).ServeHTTP
	}
	mux.Handle("/create-operator", http.HandlerFunc(createHandler))
	mux.Handle("/verify-pin", http.HandlerFunc(verifyHandler))
}

func (c *OperatorController) createOperator(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CreateOperatorResponse]("method not allowed"))
		return
	}

	var req models.CreateOperatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CreateOperatorResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CreateOperatorResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.CreateOperator(r.Context(), req)
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

func (c *OperatorController) verifyPin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.VerifyPinResponse]("method not allowed"))
		return
	}

	var req models.VerifyPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.VerifyPinResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.VerifyPin(r.Context(), req.OperatorID, req.Pin)
	if err != nil {
		status := http.StatusInternalServerError
		switch response.Message {
		case "validation failed", "invalid pin":
			status = http.StatusBadRequest
		case "Operator not found":
			status = http.StatusNotFound
		}
		writeJSON(w, status, response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
