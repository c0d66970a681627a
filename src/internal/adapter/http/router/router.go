package router

import "net/http"

type LoanRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type OperatorRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	loanController LoanRouteRegistrar,
	operatorController OperatorRouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()

	if loanController != nil {
		loanController.RegisterRoutes(mux, authMiddleware)
	}
	if operatorController != nil {
		operatorController.RegisterRoutes(mux, authMiddleware)
	}

	return mux
}
