package scanlog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	apperrors "stockscan/internal/errors"
)

type Controller struct {
	useCase HistoryUseCase
	logger  *zap.Logger
}

func NewController(useCase HistoryUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleRecentScans(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			msg := "limit must be a positive integer"
			c.writeValidationError(w, msg, apperrors.ValidationDetail{
				Field:   "limit",
				Message: msg,
			})
			return
		}
		limit = n
	}

	resp, err := c.useCase.RecentScans(r.Context(), limit)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if ie, ok := apperrors.IsInternalError(err); ok {
			fields = append(fields, zap.String("operation", ie.Message))
		}
		c.logger.Error("listing scans failed", fields...)
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
