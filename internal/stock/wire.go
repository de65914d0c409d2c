package stock

import (
	"net/http"

	"go.uber.org/zap"

	"stockscan/internal/config"
	"stockscan/internal/infrastructure/metrics"
	"stockscan/internal/infrastructure/sap"
	"stockscan/internal/stock/controller"
	"stockscan/internal/stock/repository"
	"stockscan/internal/stock/service"
	"stockscan/internal/stock/usecase"
)

// NewModule wires the stock lookup. reg and recorder are optional.
func NewModule(
	cfg *config.Config,
	httpClient *http.Client,
	reg *metrics.Registry,
	recorder usecase.ScanRecorder,
	logger *zap.Logger,
) *controller.StockController {
	var (
		upstreamObserver repository.UpstreamObserver
		lookupObserver   usecase.LookupObserver
	)
	if reg != nil {
		upstreamObserver = reg
		lookupObserver = reg
	}

	client := sap.NewClient(cfg.SAP, httpClient)
	repo := repository.NewERPRepository(client, upstreamObserver, logger)
	builder := repository.NewQueryBuilder(cfg.SAP)
	aggregator := service.NewAggregator(cfg.Stock)
	uc := usecase.NewLookupUseCase(builder, repo, aggregator, recorder, lookupObserver, logger)
	return controller.NewStockController(uc, logger)
}
