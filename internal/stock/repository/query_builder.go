package repository

import (
	"net/url"
	"strings"

	"stockscan/internal/config"
)

const (
	productPath = "/sap/opu/odata4/sap/api_product/srvd_a2x/sap/product/0002/Product"
	stockPath   = "/sap/opu/odata/sap/API_MATERIAL_STOCK_SRV/A_MaterialStock"
)

type QueryBuilder struct {
	baseURL     string
	filterField string
}

func NewQueryBuilder(cfg config.SAPConfig) *QueryBuilder {
	filterField := cfg.ProductFilterField
	if filterField == "" {
		filterField = config.DefaultProductFilterField
	}
	return &QueryBuilder{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		filterField: filterField,
	}
}

// ProductURL builds the product lookup for a barcode. ok is false when the
// backend base URL is not configured.
func (b *QueryBuilder) ProductURL(barcode string) (string, bool) {
	return b.build(productPath, []queryParam{
		{"$filter", b.filterField + " eq '" + barcode + "'"},
		{"$select", "Product,BaseUnit,BaseISOUnit"},
		{"$expand", "_ProductBasicText($select=ProductLongText),_ProductUnitOfMeasure"},
	})
}

// StockURL builds the stock-ledger query for a resolved product.
func (b *QueryBuilder) StockURL(productID string) (string, bool) {
	return b.build(stockPath, []queryParam{
		{"$filter", "Material eq '" + productID + "'"},
		{"$expand", "to_MatlStkInAcctMod"},
		{"$select", "to_MatlStkInAcctMod/MatlWrhsStkQtyInMatlBaseUnit,to_MatlStkInAcctMod/StorageLocation,to_MatlStkInAcctMod/InventoryStockType"},
	})
}

type queryParam struct {
	key   string
	value string
}

// build keeps parameter order and leaves the OData "$" keys readable; values
// are always query-escaped.
func (b *QueryBuilder) build(path string, params []queryParam) (string, bool) {
	if b.baseURL == "" {
		return "", false
	}

	u, err := url.Parse(b.baseURL + path)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}

	var q strings.Builder
	for i, p := range params {
		if i > 0 {
			q.WriteByte('&')
		}
		q.WriteString(p.key)
		q.WriteByte('=')
		q.WriteString(url.QueryEscape(p.value))
	}
	u.RawQuery = q.String()

	return u.String(), true
}
