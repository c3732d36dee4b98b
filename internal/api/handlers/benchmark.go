package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"battery-benchmark/internal/api/models"
	"battery-benchmark/internal/benchmark"
	"battery-benchmark/internal/config"
	"battery-benchmark/internal/data"
	"battery-benchmark/internal/lp"
	"battery-benchmark/internal/model"

	"github.com/gin-gonic/gin"
)

// PriceLoaders maps each market to its hot loader. Nil when the server runs
// without a configured data source; inline price schedules still work then.
type PriceLoaders map[string]*data.HotLoader

// BenchmarkHandler handles benchmark runs.
type BenchmarkHandler struct {
	loaders    PriceLoaders
	batteryDir string
}

// NewBenchmarkHandler creates a new benchmark handler. loaders may be nil.
func NewBenchmarkHandler(loaders PriceLoaders, batteryDir string) *BenchmarkHandler {
	return &BenchmarkHandler{loaders: loaders, batteryDir: batteryDir}
}

// RunBenchmark handles POST /api/v1/benchmark.
func (h *BenchmarkHandler) RunBenchmark(c *gin.Context) {
	var req models.BenchmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	params, err := h.resolveBattery(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_BATTERY", Message: err.Error()},
		})
		return
	}

	results := make([]models.MarketResult, 0, len(req.Markets))
	for _, mreq := range req.Markets {
		market, err := model.MarketByName(mreq.Name)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "UNKNOWN_MARKET", Message: err.Error()},
			})
			return
		}

		prices, err := h.resolvePrices(c, market, mreq)
		if err != nil {
			status := http.StatusBadRequest
			code := "DATA_FETCH_ERROR"
			var apiErr *data.APIError
			if errors.As(err, &apiErr) {
				switch apiErr.StatusCode {
				case http.StatusUnauthorized, http.StatusForbidden:
					status = http.StatusUnauthorized
				case http.StatusTooManyRequests:
					status = http.StatusTooManyRequests
				}
				code = apiErr.Code
			}
			c.JSON(status, models.ErrorResponse{
				Error: models.ErrorDetail{Code: code, Message: err.Error()},
			})
			return
		}

		results = append(results, h.runMarket(market, prices, params, req.Options))
	}

	c.JSON(http.StatusOK, models.BenchmarkResponse{Status: "ok", Results: results})
}

// runMarket benchmarks one market. Infeasible or failed runs come back with
// their terminal status and no numeric results, mirroring the run contract.
func (h *BenchmarkHandler) runMarket(market model.Market, prices model.PriceSchedule, params model.BatteryParams, opts models.BenchmarkOptions) models.MarketResult {
	out := models.MarketResult{
		Market:        market.Name,
		TimestepHours: market.TimestepHours,
	}

	res, err := benchmark.Run(market, prices, params)
	if err != nil {
		var noOpt *benchmark.ErrNoOptimalSolution
		if errors.As(err, &noOpt) {
			out.Status = noOpt.Status.String()
		} else {
			out.Status = lp.StatusError.String()
		}
		return out
	}

	out.Status = lp.StatusOptimal.String()
	out.RevenueEUR = res.RevenueEUR
	out.FinalCycles = res.FinalCycles()
	out.SolveTimeMS = float64(res.Stats.SolveTime.Microseconds()) / 1000
	out.NumVariables = res.Stats.NumVariables
	out.NumConstraints = res.Stats.NumEqualities + res.Stats.NumInequalities

	if opts.IncludeLedger {
		for _, row := range benchmark.BuildLedger(prices, res) {
			out.Ledger = append(out.Ledger, models.LedgerRow{
				Index:            row.Index,
				IntervalStart:    row.IntervalStart,
				Market:           row.Market,
				ChargePrice:      row.ChargePrice,
				DischargePrice:   row.DischargePrice,
				Action:           string(row.Action),
				ChargePowerKW:    row.ChargePowerKW,
				DischargePowerKW: row.DischargePowerKW,
				CapacityStartKWh: row.CapacityStartKWh,
				CapacityEndKWh:   row.CapacityEndKWh,
				Cycles:           row.Cycles,
				RevenueEUR:       row.RevenueEUR,
				CumRevenueEUR:    row.CumRevenueEUR,
			})
		}
	}
	return out
}

func (h *BenchmarkHandler) resolveBattery(req models.BenchmarkRequest) (model.BatteryParams, error) {
	battery := config.BatteryConfig{
		Name:                req.Battery.Name,
		MaxPowerKW:          req.Battery.MaxPowerKW,
		MinCapacityKWh:      req.Battery.MinCapacityKWh,
		MaxCapacityKWh:      req.Battery.MaxCapacityKWh,
		InitialCapacityKWh:  req.Battery.InitialCapacityKWh,
		FinalCapacityKWh:    req.Battery.FinalCapacityKWh,
		ChargeEfficiency:    req.Battery.ChargeEfficiency,
		DischargeEfficiency: req.Battery.DischargeEfficiency,
		AllowedCycles:       req.Battery.AllowedCycles,
	}

	if req.BatteryFile != "" {
		preset, err := loadBatteryPreset(h.batteryDir, req.BatteryFile)
		if err != nil {
			return model.BatteryParams{}, err
		}
		battery = config.MergeBattery(preset, battery)
	}

	params := battery.ToParams()
	if err := params.Validate(); err != nil {
		return model.BatteryParams{}, err
	}
	return params, nil
}

func (h *BenchmarkHandler) resolvePrices(c *gin.Context, market model.Market, mreq models.MarketRequest) (model.PriceSchedule, error) {
	if len(mreq.Prices) > 0 {
		if err := mreq.Prices.Validate(); err != nil {
			return nil, err
		}
		return mreq.Prices, nil
	}
	if mreq.Start == nil || mreq.End == nil {
		return nil, fmt.Errorf("market %s: either prices or start/end are required", market.Name)
	}
	loader, ok := h.loaders[market.Name]
	if !ok || loader == nil {
		return nil, fmt.Errorf("market %s: no data source configured on this server", market.Name)
	}
	return loader.Load(c.Request.Context(), *mreq.Start, *mreq.End)
}
