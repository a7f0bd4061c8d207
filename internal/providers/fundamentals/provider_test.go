package fundamentals

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/advisor/pkg/config"
	"github.com/wonny/advisor/pkg/logger"
	"github.com/wonny/advisor/pkg/redis"
)

func fundamentalsProvider(baseURL string) *Provider {
	cfg := &config.Config{}
	cfg.Fundamentals.BaseURL = baseURL
	cfg.Fundamentals.APIKey = "test-key"
	return NewProvider(cfg, redis.NewCache(redis.Disabled(), "advisor"), logger.NewNop())
}

func TestGetCompanyFinancialsNormalizesFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Symbol": "AAPL",
			"Name": "Apple Inc",
			"Sector": "Technology",
			"PERatio": "28.5",
			"PriceToBookRatio": "None",
			"ProfitMargin": "0.253",
			"ReturnOnEquityTTM": "1.47",
			"CurrentRatio": "-",
			"DebtToEquity": "1.95",
			"RevenueGrowth1Y": "0.08",
			"RevenueHistory": [100, 110, 120]
		}`))
	}))
	defer server.Close()

	fin, err := fundamentalsProvider(server.URL).GetCompanyFinancials(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", fin.Symbol)
	assert.Equal(t, "Technology", fin.Sector)

	require.NotNil(t, fin.PERatio)
	assert.InDelta(t, 28.5, *fin.PERatio, 1e-9)

	// Sentinels normalize to nil
	assert.Nil(t, fin.PBRatio)
	assert.Nil(t, fin.CurrentRatio)

	// Fractions convert to percentages, values above 1 pass through
	require.NotNil(t, fin.ProfitMargin)
	assert.InDelta(t, 25.3, *fin.ProfitMargin, 1e-9)
	require.NotNil(t, fin.ROE)
	assert.InDelta(t, 1.47, *fin.ROE, 1e-9)
	require.NotNil(t, fin.RevenueGrowth1Y)
	assert.InDelta(t, 8.0, *fin.RevenueGrowth1Y, 1e-9)

	// Plain ratios stay as-is
	require.NotNil(t, fin.DebtToEquity)
	assert.InDelta(t, 1.95, *fin.DebtToEquity, 1e-9)

	assert.Equal(t, []float64{100, 110, 120}, fin.RevenueHistory)
}

func TestGetCompanyFinancialsEmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := fundamentalsProvider(server.URL).GetCompanyFinancials(context.Background(), "GONE")
	assert.Error(t, err)
}

func TestGetCompanyFinancialsEmptySymbol(t *testing.T) {
	_, err := fundamentalsProvider("http://localhost").GetCompanyFinancials(context.Background(), "")
	assert.Error(t, err)
}
