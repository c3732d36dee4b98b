package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"battery-benchmark/internal/analysis"
	"battery-benchmark/internal/benchmark"
	"battery-benchmark/internal/config"
	"battery-benchmark/internal/data"
	"battery-benchmark/internal/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "benchmark":
		cmdBenchmark(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli benchmark --config examples/config.yaml --prices prices.json --out results/dispatch.csv")
	fmt.Println("  cli benchmark --config examples/config.yaml --start 2024-06-01 --end 2024-06-02")
	fmt.Println("  cli rank --config examples/config.yaml --prices dayahead.json,imbalance.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - benchmark computes the revenue-optimal dispatch for each market")
	fmt.Println("  - rank orders markets by the revenue the configured battery would earn")
}

func cmdBenchmark(args []string) {
	fs := flag.NewFlagSet("benchmark", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	pricesPath := fs.String("prices", "", "Path to a price schedule JSON file (offline mode)")
	outPath := fs.String("out", "results/dispatch.csv", "Output CSV path")
	startFlag := fs.String("start", "", "Range start (YYYY-MM-DD), used with the configured data source")
	endFlag := fs.String("end", "", "Range end (YYYY-MM-DD, inclusive)")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	params := cfg.Battery.ToParams()

	schedules := loadSchedules(cfg, *pricesPath, *startFlag, *endFlag)

	for market, prices := range schedules {
		res, err := benchmark.Run(market, prices, params)
		if err != nil {
			fmt.Printf("%s: %v\n", market.Name, err)
			continue
		}

		ledger := benchmark.BuildLedger(prices, res)
		out := marketOutPath(*outPath, market, len(schedules) > 1)
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			panic(err)
		}
		if err := benchmark.WriteLedgerCSV(out, ledger); err != nil {
			panic(err)
		}

		fmt.Printf("%s: revenue=EUR %.2f cycles=%.2f solved in %v (%d vars, %d constraints)\n",
			market.Name, res.RevenueEUR, res.FinalCycles(), res.Stats.SolveTime,
			res.Stats.NumVariables, res.Stats.NumEqualities+res.Stats.NumInequalities)
		fmt.Printf("%s: wrote %d rows to %s\n", market.Name, len(ledger), out)
	}
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	pricesPaths := fs.String("prices", "", "Comma-separated price schedule JSON files")
	startFlag := fs.String("start", "", "Range start (YYYY-MM-DD), used with the configured data source")
	endFlag := fs.String("end", "", "Range end (YYYY-MM-DD, inclusive)")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	schedules := loadSchedules(cfg, *pricesPaths, *startFlag, *endFlag)

	ranked := analysis.RankMarkets(schedules, cfg.Battery.ToParams())
	fmt.Printf("%-4s %-12s %-8s %-10s %-12s %-10s %-12s\n",
		"rank", "market", "count", "p95-p05", "min/max", "cycles", "revenue")
	for i, r := range ranked {
		fmt.Printf("%-4d %-12s %-8d %-10.2f %-5.1f/%-5.1f %-10.2f %-12.2f\n",
			i+1, r.Market, r.Count, r.SpreadP95P05,
			r.MinDischargePrice, r.MaxDischargePrice, r.FinalCycles, r.RevenueEUR)
	}
}

// loadSchedules resolves price schedules per market, either from JSON files
// or through the configured hot-load path.
func loadSchedules(cfg *config.Config, pricesPaths, startFlag, endFlag string) map[model.Market]model.PriceSchedule {
	schedules := map[model.Market]model.PriceSchedule{}

	if pricesPaths != "" {
		for _, p := range strings.Split(pricesPaths, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			f, err := data.LoadPriceScheduleJSON(p)
			if err != nil {
				panic(err)
			}
			market, err := model.MarketByName(f.Market)
			if err != nil {
				panic(err)
			}
			schedules[market] = f.Data
		}
		return schedules
	}

	if startFlag == "" || endFlag == "" {
		fmt.Println("either --prices or --start/--end are required")
		os.Exit(2)
	}
	start, err := time.Parse("2006-01-02", startFlag)
	if err != nil {
		panic(fmt.Errorf("invalid --start (expected YYYY-MM-DD): %w", err))
	}
	end, err := time.Parse("2006-01-02", endFlag)
	if err != nil {
		panic(fmt.Errorf("invalid --end (expected YYYY-MM-DD): %w", err))
	}

	client := data.NewClient(cfg.Data.APIKey(), cfg.Data.BaseURL)
	cachePath := cfg.Data.CachePath
	if cachePath == "" {
		cachePath = "market_data.db"
	}
	cache, err := data.OpenPriceCache(cachePath)
	if err != nil {
		panic(err)
	}
	defer cache.Close()

	loc := time.UTC
	if cfg.Data.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Data.Timezone)
		if err != nil {
			panic(err)
		}
	}

	ctx := context.Background()
	for _, name := range cfg.Markets {
		var source data.MarketPriceSource
		switch name {
		case model.MarketDayahead.Name:
			source = &data.DayaheadSource{Client: client, Area: cfg.Data.Area, Loc: loc}
		case model.MarketImbalance.Name:
			source = &data.ImbalanceSource{Client: client, Area: cfg.Data.Area, Loc: loc}
		default:
			continue
		}
		loader := &data.HotLoader{Cache: cache, Source: source, Area: cfg.Data.Area, AllowColdLoad: cfg.Data.AllowColdLoad}

		// The range end is the last interval start of the day, per market
		// resolution: 23:00 for dayahead, 23:45 for imbalance.
		market := source.Market()
		rangeEnd := end.Add(24*time.Hour - market.TimestepDuration())
		prices, err := loader.Load(ctx, start, rangeEnd)
		if err != nil {
			panic(err)
		}
		schedules[market] = prices
	}
	return schedules
}

func marketOutPath(out string, market model.Market, multi bool) string {
	if !multi {
		return out
	}
	ext := filepath.Ext(out)
	return strings.TrimSuffix(out, ext) + "_" + market.Name + ext
}
