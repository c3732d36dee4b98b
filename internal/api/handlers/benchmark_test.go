package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-benchmark/internal/api/models"
)

func newTestRouter(h *BenchmarkHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/benchmark", h.RunBenchmark)
	return r
}

func postBenchmark(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/benchmark", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const inlineRequest = `{
	"battery": {
		"max_power_kw": 4000,
		"max_capacity_kwh": 2000,
		"initial_capacity_kwh": 1000,
		"final_capacity_kwh": 1000,
		"charge_efficiency": 1.0,
		"discharge_efficiency": 1.0,
		"allowed_cycles": 20
	},
	"markets": [{
		"name": "imbalance",
		"prices": [
			{"charge_price": 50, "discharge_price": 49},
			{"charge_price": 0, "discharge_price": -1},
			{"charge_price": 100, "discharge_price": 99},
			{"charge_price": 51, "discharge_price": 50}
		]
	}],
	"options": {"include_ledger": true}
}`

func TestRunBenchmarkInlinePrices(t *testing.T) {
	r := newTestRouter(NewBenchmarkHandler(nil, ""))

	w := postBenchmark(t, r, inlineRequest)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.BenchmarkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Results, 1)

	res := resp.Results[0]
	assert.Equal(t, "imbalance", res.Market)
	assert.Equal(t, 0.25, res.TimestepHours)
	assert.Equal(t, "OPTIMAL", res.Status)
	assert.InDelta(t, 99.0, res.RevenueEUR, 1e-6)
	assert.InDelta(t, 0.5, res.FinalCycles, 1e-6)
	assert.Equal(t, 18, res.NumVariables)
	require.Len(t, res.Ledger, 4)
	assert.Equal(t, "CHARGING", res.Ledger[1].Action)
	assert.InDelta(t, 99.0, res.Ledger[3].CumRevenueEUR, 1e-6)
}

func TestRunBenchmarkInfeasibleBattery(t *testing.T) {
	r := newTestRouter(NewBenchmarkHandler(nil, ""))

	// Final capacity unreachable in a single step at 1 kW.
	w := postBenchmark(t, r, `{
		"battery": {
			"max_power_kw": 1,
			"max_capacity_kwh": 20,
			"initial_capacity_kwh": 0,
			"final_capacity_kwh": 20,
			"charge_efficiency": 1.0,
			"discharge_efficiency": 1.0,
			"allowed_cycles": 10
		},
		"markets": [{
			"name": "dayahead",
			"prices": [{"charge_price": 50, "discharge_price": 49}]
		}]
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.BenchmarkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "INFEASIBLE", resp.Results[0].Status)
	assert.Zero(t, resp.Results[0].RevenueEUR)
	assert.Empty(t, resp.Results[0].Ledger)
}

func TestRunBenchmarkValidation(t *testing.T) {
	r := newTestRouter(NewBenchmarkHandler(nil, ""))

	tests := []struct {
		name string
		body string
		code string
	}{
		{"no markets", `{"battery": {"max_capacity_kwh": 100, "charge_efficiency": 1, "discharge_efficiency": 1}, "markets": []}`, "INVALID_REQUEST"},
		{"bad battery", `{"battery": {"max_capacity_kwh": 0}, "markets": [{"name": "dayahead"}]}`, "INVALID_BATTERY"},
		{"unknown market", `{"battery": {"max_power_kw": 10, "max_capacity_kwh": 100, "charge_efficiency": 1, "discharge_efficiency": 1}, "markets": [{"name": "intraday"}]}`, "UNKNOWN_MARKET"},
		{"no prices or range", `{"battery": {"max_power_kw": 10, "max_capacity_kwh": 100, "charge_efficiency": 1, "discharge_efficiency": 1}, "markets": [{"name": "dayahead"}]}`, "DATA_FETCH_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postBenchmark(t, r, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestRunBenchmarkWithBatteryPreset(t *testing.T) {
	dir := t.TempDir()
	preset := `
battery:
  name: preset-2mwh
  max_power_kw: 4000
  max_capacity_kwh: 2000
  initial_capacity_kwh: 1000
  final_capacity_kwh: 1000
  charge_efficiency: 1.0
  discharge_efficiency: 1.0
  allowed_cycles: 20
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preset-2mwh.yaml"), []byte(preset), 0o644))

	r := newTestRouter(NewBenchmarkHandler(nil, dir))

	w := postBenchmark(t, r, `{
		"battery_file": "preset-2mwh",
		"battery": {"max_power_kw": 1000},
		"markets": [{
			"name": "dayahead",
			"prices": [
				{"charge_price": 50, "discharge_price": 49},
				{"charge_price": 0, "discharge_price": -1},
				{"charge_price": 100, "discharge_price": 99},
				{"charge_price": 51, "discharge_price": 50}
			]
		}]
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.BenchmarkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	// The inline 1 MW override caps the preset's 4 MW battery.
	assert.InDelta(t, 99.0, resp.Results[0].RevenueEUR, 1e-6)
}

func TestRunBenchmarkRejectsPresetPathTraversal(t *testing.T) {
	r := newTestRouter(NewBenchmarkHandler(nil, t.TempDir()))

	w := postBenchmark(t, r, `{
		"battery_file": "../secrets",
		"markets": [{"name": "dayahead", "prices": [{"charge_price": 1, "discharge_price": 1}]}]
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_BATTERY", resp.Error.Code)
}
