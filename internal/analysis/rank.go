package analysis

import (
	"sort"

	"battery-benchmark/internal/benchmark"
	"battery-benchmark/internal/model"
)

// RankedMarket joins a market's price statistics with the benchmark revenue
// the battery would have earned on it.
type RankedMarket struct {
	MarketPotential
	RevenueEUR  float64
	FinalCycles float64
}

// RankMarkets benchmarks the battery on every market and sorts the results
// by revenue, best first. A market whose run fails (infeasible or solver
// error) is skipped; with per-market problem instances one failure never
// taints the others.
func RankMarkets(schedules map[model.Market]model.PriceSchedule, params model.BatteryParams) []RankedMarket {
	out := make([]RankedMarket, 0, len(schedules))
	for market, prices := range schedules {
		res, err := benchmark.Run(market, prices, params)
		if err != nil {
			continue
		}
		out = append(out, RankedMarket{
			MarketPotential: ComputePotential(market, prices),
			RevenueEUR:      res.RevenueEUR,
			FinalCycles:     res.FinalCycles(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RevenueEUR > out[j].RevenueEUR
	})
	return out
}
