package benchmark

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"interval_start",
		"market",
		"charge_price",
		"discharge_price",
		"action",
		"charge_power_kw",
		"discharge_power_kw",
		"capacity_start_kwh",
		"capacity_end_kwh",
		"cycles",
		"revenue_eur",
		"cum_revenue_eur",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			fmtTime(r.IntervalStart),
			r.Market,
			fmtFloat(r.ChargePrice),
			fmtFloat(r.DischargePrice),
			string(r.Action),
			fmtFloat(r.ChargePowerKW),
			fmtFloat(r.DischargePowerKW),
			fmtFloat(r.CapacityStartKWh),
			fmtFloat(r.CapacityEndKWh),
			fmtFloat(r.Cycles),
			fmtFloat(r.RevenueEUR),
			fmtFloat(r.CumRevenueEUR),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
