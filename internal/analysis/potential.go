package analysis

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"battery-benchmark/internal/model"
)

// MarketPotential summarizes how attractive a market's price series is for
// arbitrage. It combines raw price statistics with the discharge-charge
// spread; wide p95-p05 spreads are what a battery monetizes.
type MarketPotential struct {
	Market string

	Start time.Time
	End   time.Time

	Count int

	MinDischargePrice  float64
	MaxDischargePrice  float64
	MeanDischargePrice float64
	P05DischargePrice  float64
	P95DischargePrice  float64

	SpreadP95P05 float64
}

// ComputePotential derives price statistics from one market's schedule.
func ComputePotential(market model.Market, prices model.PriceSchedule) MarketPotential {
	p := MarketPotential{Market: market.Name}
	if len(prices) == 0 {
		return p
	}
	p.Count = len(prices)
	p.Start = prices[0].IntervalStart
	p.End = prices[len(prices)-1].IntervalStart

	vals := prices.DischargePrices()
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	for _, v := range vals {
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	p.MinDischargePrice = minv
	p.MaxDischargePrice = maxv
	p.MeanDischargePrice = stat.Mean(vals, nil)
	p.P05DischargePrice = stat.Quantile(0.05, stat.Empirical, vals, nil)
	p.P95DischargePrice = stat.Quantile(0.95, stat.Empirical, vals, nil)
	p.SpreadP95P05 = p.P95DischargePrice - p.P05DischargePrice

	return p
}
