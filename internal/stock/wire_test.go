package stock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stockscan/internal/config"
	"stockscan/internal/infrastructure/metrics"
)

const (
	productBody = `{"value":[{
		"Product":"P100",
		"BaseUnit":"PC",
		"BaseISOUnit":"PCE",
		"_ProductBasicText":[{"ProductLongText":"Widget"}],
		"_ProductUnitOfMeasure":[
			{"AlternativeUnit":"PC","QuantityNumerator":"1","QuantityDenominator":"1"},
			{"AlternativeUnit":"BOX","AlternativeUnitISOCode":"BX","QuantityNumerator":"12","QuantityDenominator":"1"}
		]
	}]}`
	stockBody = `{"d":{"results":[{"to_MatlStkInAcctMod":{"results":[
		{"StorageLocation":"FG01","InventoryStockType":"01","MatlWrhsStkQtyInMatlBaseUnit":"40"},
		{"StorageLocation":"FG01","InventoryStockType":"01","MatlWrhsStkQtyInMatlBaseUnit":"2"},
		{"StorageLocation":"FG02","InventoryStockType":"01","MatlWrhsStkQtyInMatlBaseUnit":"100"}
	]}}]}}`
)

type fakeERP struct {
	mu          sync.Mutex
	paths       []string
	auth        []string
	productBody string
	productCode int
}

func (f *fakeERP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.auth = append(f.auth, r.Header.Get("Authorization"))
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if strings.HasSuffix(r.URL.Path, "/Product") {
		w.WriteHeader(f.productCode)
		_, _ = w.Write([]byte(f.productBody))
		return
	}
	_, _ = w.Write([]byte(stockBody))
}

func newModule(t *testing.T, erp *fakeERP) (http.HandlerFunc, *metrics.Registry) {
	t.Helper()
	srv := httptest.NewServer(erp)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		SAP: config.SAPConfig{
			BaseURL:       srv.URL + "/",
			BasicAuthUser: "user",
			BasicAuthPass: "pass",
		},
	}
	reg := metrics.NewRegistry()
	ctrl := NewModule(cfg, srv.Client(), reg, nil, zap.NewNop())
	return ctrl.GetStock, reg
}

func TestStockModule_EndToEnd(t *testing.T) {
	erp := &fakeERP{productBody: productBody, productCode: http.StatusOK}
	handler, _ := newModule(t, erp)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/stock?barcode=1234567890123", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1234567890123", body["barcode"])
	assert.Equal(t, "P100", body["product"])
	assert.Equal(t, "Widget", body["productName"])
	assert.Equal(t, 42.0, body["stock"])
	assert.Equal(t, "PC", body["baseUom"])
	assert.Equal(t, "PCE", body["baseIsoUom"])

	units := body["alternateUnits"].([]any)
	require.Len(t, units, 1)
	box := units[0].(map[string]any)
	assert.Equal(t, "BOX", box["uom"])
	assert.Equal(t, "BX", box["isoUom"])
	assert.InDelta(t, 3.5, box["quantity"], 1e-9)

	assert.Len(t, body["stockItems"], 3)

	require.Len(t, erp.paths, 2)
	assert.True(t, strings.HasSuffix(erp.paths[0], "/Product"))
	assert.True(t, strings.HasSuffix(erp.paths[1], "/A_MaterialStock"))
	assert.Equal(t, "Basic dXNlcjpwYXNz", erp.auth[0])
}

func TestStockModule_ProductNotFound(t *testing.T) {
	erp := &fakeERP{productBody: `{"value":[]}`, productCode: http.StatusOK}
	handler, _ := newModule(t, erp)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/stock?barcode=0000000000000", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, erp.paths, 1)
}

func TestStockModule_ProductStatusFailure(t *testing.T) {
	erp := &fakeERP{productBody: `{"error":{"code":"403"}}`, productCode: http.StatusForbidden}
	handler, _ := newModule(t, erp)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/stock?barcode=1234567890123", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SAP product request failed.", body["error"])
	assert.Equal(t, 403.0, body["status"])
	assert.Len(t, erp.paths, 1)
}

func TestStockModule_NotConfigured(t *testing.T) {
	ctrl := NewModule(&config.Config{}, nil, nil, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.GetStock(rec, httptest.NewRequest(http.MethodGet, "/api/stock?barcode=1234567890123", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "SAP_BASE_API_URL is not configured on the server.")
}
