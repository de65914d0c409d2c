package repository

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockscan/internal/config"
)

func TestQueryBuilder_ProductURL(t *testing.T) {
	b := NewQueryBuilder(config.SAPConfig{BaseURL: "https://erp.example.com", ProductFilterField: "ProductStandardID"})

	raw, ok := b.ProductURL("1234567890123")
	require.True(t, ok)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/sap/opu/odata4/sap/api_product/srvd_a2x/sap/product/0002/Product", u.Path)

	q := u.Query()
	assert.Equal(t, "ProductStandardID eq '1234567890123'", q.Get("$filter"))
	assert.Equal(t, "Product,BaseUnit,BaseISOUnit", q.Get("$select"))
	assert.Equal(t, "_ProductBasicText($select=ProductLongText),_ProductUnitOfMeasure", q.Get("$expand"))
	assert.True(t, strings.HasPrefix(u.RawQuery, "$filter="))
}

func TestQueryBuilder_TrailingSlashes(t *testing.T) {
	bases := []string{
		"https://erp.example.com",
		"https://erp.example.com/",
		"https://erp.example.com///",
		"https://erp.example.com/gw/",
	}

	for _, base := range bases {
		t.Run(base, func(t *testing.T) {
			b := NewQueryBuilder(config.SAPConfig{BaseURL: base})

			productURL, ok := b.ProductURL("4006381333931")
			require.True(t, ok)
			stockURL, ok := b.StockURL("P100")
			require.True(t, ok)

			for _, raw := range []string{productURL, stockURL} {
				withoutScheme := strings.TrimPrefix(raw, "https://")
				assert.NotContains(t, withoutScheme, "//")
			}
		})
	}
}

func TestQueryBuilder_EncodesFilterValue(t *testing.T) {
	b := NewQueryBuilder(config.SAPConfig{BaseURL: "https://erp.example.com", ProductFilterField: "GTIN"})

	barcodes := []string{"12 34&x=1", "ÄÖ#?", "a+b/c"}
	for _, barcode := range barcodes {
		raw, ok := b.ProductURL(barcode)
		require.True(t, ok)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "GTIN eq '"+barcode+"'", u.Query().Get("$filter"))
		assert.Len(t, u.Query()["$filter"], 1)
	}
}

func TestQueryBuilder_DefaultFilterField(t *testing.T) {
	b := NewQueryBuilder(config.SAPConfig{BaseURL: "https://erp.example.com"})

	raw, ok := b.ProductURL("1")
	require.True(t, ok)
	u, _ := url.Parse(raw)
	assert.Equal(t, "ProductStandardID eq '1'", u.Query().Get("$filter"))
}

func TestQueryBuilder_StockURL(t *testing.T) {
	b := NewQueryBuilder(config.SAPConfig{BaseURL: "https://erp.example.com/"})

	raw, ok := b.StockURL("P100")
	require.True(t, ok)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/sap/opu/odata/sap/API_MATERIAL_STOCK_SRV/A_MaterialStock", u.Path)
	assert.Equal(t, "Material eq 'P100'", u.Query().Get("$filter"))
	assert.Equal(t, "to_MatlStkInAcctMod", u.Query().Get("$expand"))
	assert.Contains(t, u.Query().Get("$select"), "to_MatlStkInAcctMod/MatlWrhsStkQtyInMatlBaseUnit")
}

func TestQueryBuilder_NotConfigured(t *testing.T) {
	for _, base := range []string{"", "   ", "/"} {
		b := NewQueryBuilder(config.SAPConfig{BaseURL: base})

		raw, ok := b.ProductURL("1234567890123")
		assert.False(t, ok)
		assert.Empty(t, raw)

		raw, ok = b.StockURL("P100")
		assert.False(t, ok)
		assert.Empty(t, raw)
	}
}
