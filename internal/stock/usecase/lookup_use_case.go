package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stockscan/internal/commons"
	"stockscan/internal/domain"
	apperrors "stockscan/internal/errors"
	"stockscan/internal/infrastructure/sap"
	"stockscan/internal/session"
	"stockscan/internal/stock/normalizer"
)

const (
	StageProduct = "product"
	StageStock   = "stock"
)

type State string

const (
	StateIdle                 State = "IDLE"
	StateProductQueryInFlight State = "PRODUCT_QUERY_IN_FLIGHT"
	StateProductResolved      State = "PRODUCT_RESOLVED"
	StateProductNotFound      State = "PRODUCT_NOT_FOUND"
	StateProductQueryFailed   State = "PRODUCT_QUERY_FAILED"
	StateStockQueryInFlight   State = "STOCK_QUERY_IN_FLIGHT"
	StateStockQueryFailed     State = "STOCK_QUERY_FAILED"
	StateDone                 State = "DONE"
)

const notConfiguredMessage = "SAP_BASE_API_URL is not configured on the server."

// DefaultRecordTimeout bounds the audit write that follows every lookup.
const DefaultRecordTimeout = 2 * time.Second

type QueryBuilder interface {
	ProductURL(barcode string) (string, bool)
	StockURL(productID string) (string, bool)
}

type ERPRepository interface {
	Fetch(ctx context.Context, stage, url string) (*sap.Response, error)
}

type StockAggregator interface {
	Total(items []domain.StockLineItem) decimal.Decimal
	Convert(total decimal.Decimal, baseUnit *string, units []domain.UnitConversion) []domain.AlternateQuantity
}

type ScanRecorder interface {
	Record(ctx context.Context, record domain.ScanRecord) error
}

type LookupObserver interface {
	ObserveLookup(outcome string, elapsed time.Duration)
}

type LookupUseCase struct {
	builder       QueryBuilder
	repo          ERPRepository
	aggregator    StockAggregator
	recorder      ScanRecorder
	observer      LookupObserver
	recordTimeout time.Duration
	logger        *zap.Logger
}

// NewLookupUseCase wires the orchestrator. recorder and observer may be nil.
func NewLookupUseCase(
	builder QueryBuilder,
	repo ERPRepository,
	aggregator StockAggregator,
	recorder ScanRecorder,
	observer LookupObserver,
	logger *zap.Logger,
) *LookupUseCase {
	return &LookupUseCase{
		builder:       builder,
		repo:          repo,
		aggregator:    aggregator,
		recorder:      recorder,
		observer:      observer,
		recordTimeout: DefaultRecordTimeout,
		logger:        logger,
	}
}

// Lookup resolves a barcode to its current warehouse stock. Every call goes to
// the backend; nothing is cached between calls.
func (uc *LookupUseCase) Lookup(ctx context.Context, barcode string) (*domain.StockResult, error) {
	traceID := commons.TraceID(ctx)
	l := &lookup{
		state:  StateIdle,
		logger: uc.logger.With(zap.String("traceId", traceID), zap.String("barcode", barcode)),
	}
	start := time.Now()

	result, err := uc.run(ctx, l, barcode)

	outcome := outcomeOf(l.state, err)
	elapsed := time.Since(start)
	if uc.observer != nil {
		uc.observer.ObserveLookup(outcome, elapsed)
	}
	uc.record(ctx, traceID, barcode, outcome, result, err, l.productID, elapsed, l.logger)

	return result, err
}

func (uc *LookupUseCase) run(ctx context.Context, l *lookup, barcode string) (*domain.StockResult, error) {
	if barcode == "" {
		return nil, apperrors.NewValidationError("Missing barcode query parameter.", apperrors.ValidationDetail{
			Field:   "barcode",
			Message: "barcode is required",
		})
	}

	productURL, ok := uc.builder.ProductURL(barcode)
	if !ok {
		return nil, apperrors.NewConfigurationError(notConfiguredMessage)
	}

	// Bloque 1: product query
	l.transition(StateProductQueryInFlight)
	productResp, err := uc.repo.Fetch(ctx, StageProduct, productURL)
	if err != nil {
		l.transition(StateProductQueryFailed)
		return nil, apperrors.NewUpstreamTransportError("SAP request failed.", StageProduct, 0, nil, err)
	}
	if !productResp.OK() || productResp.DecodeErr != nil {
		l.transition(StateProductQueryFailed)
		return nil, apperrors.NewUpstreamTransportError("SAP product request failed.", StageProduct, productResp.StatusCode, productResp.Payload, productResp.DecodeErr)
	}

	info, ok := normalizer.ExtractProductInfo(productResp.Payload)
	if !ok {
		if normalizer.IsEmptyResult(productResp.Payload) {
			l.transition(StateProductNotFound)
			nf := apperrors.NewNotFoundError("No SAP product matches the scanned barcode.")
			nf.Details = productResp.Payload
			return nil, nf
		}
		l.transition(StateProductQueryFailed)
		return nil, apperrors.NewUpstreamShapeError("SAP product response missing Product key.", StageProduct, productResp.Payload)
	}
	l.productID = &info.ProductID
	l.transition(StateProductResolved)

	// Bloque 2: stock query
	stockURL, ok := uc.builder.StockURL(info.ProductID)
	if !ok {
		return nil, apperrors.NewConfigurationError(notConfiguredMessage)
	}

	l.transition(StateStockQueryInFlight)
	stockResp, err := uc.repo.Fetch(ctx, StageStock, stockURL)
	if err != nil {
		l.transition(StateStockQueryFailed)
		return nil, apperrors.NewUpstreamTransportError("SAP request failed.", StageStock, 0, nil, err)
	}
	if !stockResp.OK() || stockResp.DecodeErr != nil {
		l.transition(StateStockQueryFailed)
		return nil, apperrors.NewUpstreamTransportError("SAP stock request failed.", StageStock, stockResp.StatusCode, stockResp.Payload, stockResp.DecodeErr)
	}

	// Bloque 3: aggregate
	items := normalizer.ExtractStockItems(stockResp.Payload)
	total := uc.aggregator.Total(items)

	result := &domain.StockResult{
		Barcode:             barcode,
		ProductID:           info.ProductID,
		ProductName:         info.ProductName,
		BaseUnit:            info.BaseUnit,
		BaseISOUnit:         info.BaseISOUnit,
		TotalBaseQuantity:   total.InexactFloat64(),
		AlternateQuantities: uc.aggregator.Convert(total, info.BaseUnit, info.AlternateUnits),
		LineItems:           items,
		Raw: domain.RawEnvelopes{
			Product: productResp.Payload,
			Stock:   stockResp.Payload,
		},
	}
	l.transition(StateDone)
	l.logger.Info("stock lookup done",
		zap.String("product", result.ProductID),
		zap.Float64("stock", result.TotalBaseQuantity),
		zap.Int("lineItems", len(items)),
	)

	return result, nil
}

func (uc *LookupUseCase) record(
	ctx context.Context,
	traceID, barcode, outcome string,
	result *domain.StockResult,
	lookupErr error,
	productID *string,
	elapsed time.Duration,
	logger *zap.Logger,
) {
	if uc.recorder == nil {
		return
	}

	rec := domain.ScanRecord{
		ID:         uuid.New().String(),
		TraceID:    traceID,
		Barcode:    barcode,
		ProductID:  productID,
		Outcome:    outcome,
		DurationMs: elapsed.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	if result != nil {
		total := result.TotalBaseQuantity
		rec.TotalQuantity = &total
	}
	if lookupErr != nil {
		msg := lookupErr.Error()
		rec.ErrorMessage = &msg
	}
	if op, ok := session.OperatorFromContext(ctx); ok && op.ID != "" {
		rec.OperatorID = &op.ID
	}

	// The write outlives a disconnected client but never holds the response
	// longer than recordTimeout. Failures only log.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.recordTimeout)
	defer cancel()
	if err := uc.recorder.Record(recordCtx, rec); err != nil {
		logger.Warn("recording scan failed", zap.Error(err))
	}
}

type lookup struct {
	state     State
	productID *string
	logger    *zap.Logger
}

func (l *lookup) transition(to State) {
	l.logger.Debug("lookup state", zap.String("from", string(l.state)), zap.String("to", string(to)))
	l.state = to
}

func outcomeOf(state State, err error) string {
	if err == nil {
		return domain.OutcomeDone
	}
	if _, ok := apperrors.IsValidationError(err); ok {
		return domain.OutcomeValidationError
	}
	if _, ok := apperrors.IsConfigurationError(err); ok {
		return domain.OutcomeConfigurationError
	}
	switch state {
	case StateProductNotFound:
		return domain.OutcomeNotFound
	case StateStockQueryFailed:
		return domain.OutcomeStockQueryFailed
	}
	return domain.OutcomeProductQueryFailed
}
