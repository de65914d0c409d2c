package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"stockscan/internal/infrastructure/sap"
	"stockscan/internal/stock/normalizer"
)

type HTTPGetter interface {
	Get(ctx context.Context, url string) (*sap.Response, error)
}

type UpstreamObserver interface {
	ObserveUpstream(stage string, status int, elapsed time.Duration)
}

// ERPRepository issues the read-only OData queries. It never caches.
type ERPRepository struct {
	client   HTTPGetter
	observer UpstreamObserver
	logger   *zap.Logger
}

func NewERPRepository(client HTTPGetter, observer UpstreamObserver, logger *zap.Logger) *ERPRepository {
	return &ERPRepository{
		client:   client,
		observer: observer,
		logger:   logger,
	}
}

func (r *ERPRepository) Fetch(ctx context.Context, stage, url string) (*sap.Response, error) {
	r.logger.Info("SAP request", zap.String("stage", stage), zap.String("url", url))

	start := time.Now()
	resp, err := r.client.Get(ctx, url)
	elapsed := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if r.observer != nil {
		r.observer.ObserveUpstream(stage, status, elapsed)
	}

	if err != nil {
		r.logger.Warn("SAP request failed", zap.String("stage", stage), zap.Duration("elapsed", elapsed), zap.Error(err))
		return nil, err
	}

	r.logger.Debug("SAP response",
		zap.String("stage", stage),
		zap.Int("status", status),
		zap.String("envelope", envelopeKind(resp.Payload)),
		zap.Duration("elapsed", elapsed),
	)
	return resp, nil
}

// envelopeKind names the OData shape a payload arrived in, for the logs.
func envelopeKind(payload any) string {
	env, ok := normalizer.ParseEnvelope(payload)
	if !ok {
		return "none"
	}
	return env.Kind.String()
}
