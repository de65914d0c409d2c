package session

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"stockscan/internal/dto"
)

const APIKeyHeader = "X-API-Key"

var (
	ErrMissingCredentials = errors.New("API key required")
	ErrInvalidCredentials = errors.New("invalid API key")
)

// Operator is whoever is scanning. With API keys it is identified by a key
// fingerprint so the key itself never reaches the logs.
type Operator struct {
	ID string
}

type Authenticator interface {
	Authenticate(r *http.Request) (Operator, error)
}

type APIKeyAuthenticator struct {
	keys [][]byte
}

// NewAPIKeyAuthenticator returns nil when no keys are configured, which
// leaves the API open.
func NewAPIKeyAuthenticator(keys []string) *APIKeyAuthenticator {
	var valid [][]byte
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			valid = append(valid, []byte(k))
		}
	}
	if len(valid) == 0 {
		return nil
	}
	return &APIKeyAuthenticator{keys: valid}
}

// Authenticate accepts the key from X-API-Key or a bearer token. A nil
// authenticator accepts everyone.
func (a *APIKeyAuthenticator) Authenticate(r *http.Request) (Operator, error) {
	if a == nil {
		return Operator{}, nil
	}
	key := r.Header.Get(APIKeyHeader)
	if key == "" {
		if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
			key = strings.TrimSpace(bearer)
		}
	}
	if key == "" {
		return Operator{}, ErrMissingCredentials
	}

	provided := []byte(key)
	for _, valid := range a.keys {
		if subtle.ConstantTimeCompare(provided, valid) == 1 {
			return Operator{ID: fingerprint(provided)}, nil
		}
	}
	return Operator{}, ErrInvalidCredentials
}

func fingerprint(key []byte) string {
	sum := sha256.Sum256(key)
	return "key-" + hex.EncodeToString(sum[:4])
}

type ctxKey struct{ name string }

var ctxKeyOperator = ctxKey{name: "operator"}

func WithOperator(ctx context.Context, op Operator) context.Context {
	return context.WithValue(ctx, ctxKeyOperator, op)
}

func OperatorFromContext(ctx context.Context) (Operator, bool) {
	op, ok := ctx.Value(ctxKeyOperator).(Operator)
	return op, ok
}

// Middleware rejects unauthenticated requests with 401. A nil auth lets
// every request through.
func Middleware(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if auth == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			op, err := auth.Authenticate(r)
			if err != nil {
				logger.Warn("authentication failed",
					zap.String("path", r.URL.Path),
					zap.String("remoteAddr", r.RemoteAddr),
					zap.Error(err),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: err.Error()})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithOperator(r.Context(), op)))
		})
	}
}
