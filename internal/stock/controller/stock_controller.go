package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockscan/internal/commons"
	"stockscan/internal/domain"
	"stockscan/internal/dto"
	apperrors "stockscan/internal/errors"
)

type LookupUseCase interface {
	Lookup(ctx context.Context, barcode string) (*domain.StockResult, error)
}

type StockController struct {
	useCase LookupUseCase
	logger  *zap.Logger
}

func NewStockController(useCase LookupUseCase, logger *zap.Logger) *StockController {
	return &StockController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *StockController) GetStock(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	barcode := r.URL.Query().Get("barcode")
	if barcode == "" {
		logger.Warn("missing barcode parameter")
		c.writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Missing barcode query parameter.",
			TraceID: traceID,
		})
		return
	}

	ctx := commons.WithTraceID(r.Context(), traceID)
	result, err := c.useCase.Lookup(ctx, barcode)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toStockResponse(traceID, result))
}

func (c *StockController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: ve.Message, TraceID: traceID})
		return
	}

	if ce, ok := apperrors.IsConfigurationError(err); ok {
		logger.Error("backend not configured", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: ce.Message, TraceID: traceID})
		return
	}

	if nf, ok := apperrors.IsNotFoundError(err); ok {
		logger.Info("product not found", zap.Error(err))
		c.writeJSON(w, http.StatusNotFound, dto.DetailedErrorResponse{
			Error:   nf.Message,
			Details: nf.Details,
			TraceID: traceID,
		})
		return
	}

	if se, ok := apperrors.IsUpstreamShapeError(err); ok {
		logger.Error("unexpected SAP response shape", zap.String("stage", se.Stage))
		c.writeJSON(w, http.StatusBadGateway, dto.UpstreamShapeErrorResponse{
			Error:   se.Message,
			Details: se.Raw,
			Raw:     se.Raw,
			TraceID: traceID,
		})
		return
	}

	if ue, ok := apperrors.IsUpstreamTransportError(err); ok {
		logger.Error("SAP request failed", zap.String("stage", ue.Stage), zap.Int("status", ue.Status), zap.Error(err))
		if ue.Status == 0 && ue.Cause != nil {
			c.writeJSON(w, http.StatusBadGateway, dto.NetworkErrorResponse{
				Error:   ue.Message,
				Details: describeNetworkError(ue.Cause),
				TraceID: traceID,
			})
			return
		}
		c.writeJSON(w, http.StatusBadGateway, dto.UpstreamStatusErrorResponse{
			Error:   ue.Message,
			Details: ue.Details,
			Status:  ue.Status,
			TraceID: traceID,
		})
		return
	}

	ie, ok := apperrors.IsInternalError(err)
	if !ok {
		ie = apperrors.NewInternalError("an unexpected error occurred", err)
	}
	logger.Error("unexpected error", zap.Error(ie))
	c.writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
		Error:   ie.Message,
		TraceID: traceID,
	})
}

func toStockResponse(traceID string, result *domain.StockResult) dto.StockResponse {
	units := make([]dto.AlternateUnitDTO, len(result.AlternateQuantities))
	for i, alt := range result.AlternateQuantities {
		units[i] = dto.AlternateUnitDTO{
			Uom:         alt.UnitCode,
			IsoUom:      alt.ISOUnitCode,
			Quantity:    alt.Quantity,
			Numerator:   alt.Numerator,
			Denominator: alt.Denominator,
			Ratio:       alt.Ratio,
		}
	}

	items := make([]map[string]any, len(result.LineItems))
	for i, item := range result.LineItems {
		items[i] = item.Raw
	}

	return dto.StockResponse{
		TraceID:        traceID,
		Barcode:        result.Barcode,
		Product:        result.ProductID,
		ProductName:    result.ProductName,
		Stock:          result.TotalBaseQuantity,
		BaseUom:        result.BaseUnit,
		BaseIsoUom:     result.BaseISOUnit,
		AlternateUnits: units,
		StockItems:     items,
		Raw: dto.RawEnvelopesDTO{
			Product: result.Raw.Product,
			Stock:   result.Raw.Stock,
		},
	}
}

func (c *StockController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
