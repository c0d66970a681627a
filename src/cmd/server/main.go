package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/api-sage/pawnshop-processor/src/internal/adapter/http/controller"
	"github.com/api-sage/pawnshop-processor/src/internal/adapter/http/middleware"
	"github.com/api-sage/pawnshop-processor/src/internal/adapter/http/router"
	"github.com/api-sage/pawnshop-processor/src/internal/adapter/repository/memory"
	"github.com/api-sage/pawnshop-processor/src/internal/adapter/repository/postgres"
	"github.com/api-sage/pawnshop-processor/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/pawnshop-processor/src/internal/config"
	"github.com/api-sage/pawnshop-processor/src/internal/usecase/service_interfaces"
	"github.com/api-sage/pawnshop-processor/src/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var loanRepo repo_interfaces.LoanRepository
	var receiptRepo repo_interfaces.ReceiptRepository
	var operatorService service_interfaces.OperatorService
	var operatorController router.OperatorRouteRegistrar

	if cfg.Store == config.StoreMemory {
		loanRepo = memory.NewLoanRepository()
		receiptRepo = memory.NewReceiptRepository()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
			log.Fatalf("run migrations: %v", err)
		}

		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()

		loanRepo = postgres.NewLoanRepository(db)
		receiptRepo = postgres.NewReceiptRepository(db)

		opService := services.NewOperatorService(postgres.NewOperatorRepository(db))
		operatorService = opService
		operatorController = controller.NewOperatorController(opService)
	}

	engine := services.NewLoanEngine(services.NewInterestCalculator(), cfg.ServiceFee)
	var loanService service_interfaces.LoanService = services.NewLoanService(loanRepo, receiptRepo, operatorService, engine)

	mux := router.New(
		controller.NewLoanController(loanService),
		operatorController,
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("pawnshop processor listening on %s (store=%s, service fee=%s)", cfg.HTTPAddr, cfg.Store, cfg.ServiceFee.StringFixed(2))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("serve http: %v", err)
	}
}
