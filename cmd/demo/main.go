package main

import (
	"fmt"

	"battery-benchmark/internal/benchmark"
	"battery-benchmark/internal/model"
)

// Demo:
// - Build a four-step imbalance price schedule with an obvious arbitrage
// - Benchmark a 4 MW / 2 MWh battery against it
// - Print the optimal dispatch ledger
func main() {
	prices := model.PriceSchedule{
		{ChargePrice: 50, DischargePrice: 50},
		{ChargePrice: 0, DischargePrice: 0},
		{ChargePrice: 100, DischargePrice: 100},
		{ChargePrice: 51, DischargePrice: 51},
	}
	params := model.BatteryParams{
		MaxPowerKW:          4000,
		MinCapacityKWh:      0,
		MaxCapacityKWh:      2000,
		InitialCapacityKWh:  1000,
		FinalCapacityKWh:    1000,
		ChargeEfficiency:    1.0,
		DischargeEfficiency: 1.0,
		AllowedCycles:       20,
	}

	res, err := benchmark.Run(model.MarketImbalance, prices, params)
	if err != nil {
		panic(err)
	}

	fmt.Printf("market=%s revenue=EUR %.2f cycles=%.2f solved in %v\n",
		res.Market.Name, res.RevenueEUR, res.FinalCycles(), res.Stats.SolveTime)
	fmt.Printf("%-5s %-12s %-10s %-12s %-12s %-10s %-10s\n",
		"step", "action", "charge_kw", "discharge_kw", "capacity_kwh", "cycles", "revenue")
	for _, row := range benchmark.BuildLedger(prices, res) {
		fmt.Printf("%-5d %-12s %-10.0f %-12.0f %-12.0f %-10.3f %-10.2f\n",
			row.Index, row.Action, row.ChargePowerKW, row.DischargePowerKW,
			row.CapacityEndKWh, row.Cycles, row.RevenueEUR)
	}
}
