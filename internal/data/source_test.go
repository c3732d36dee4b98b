package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-benchmark/internal/model"
)

func TestSourceMarkets(t *testing.T) {
	dayahead := &DayaheadSource{}
	assert.Equal(t, model.MarketDayahead, dayahead.Market())

	imbalance := &ImbalanceSource{}
	assert.Equal(t, model.MarketImbalance, imbalance.Market())

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(23*time.Hour + 45*time.Minute)
	assert.Equal(t, 24, dayahead.ExpectedLength(start, start.Add(23*time.Hour)))
	assert.Equal(t, 96, imbalance.ExpectedLength(start, end))
}

func TestAlignRange(t *testing.T) {
	ams, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	localStart, localEnd := AlignRange(start, end, ams)
	// Same instant, expressed in market-local time.
	assert.True(t, localStart.Equal(start))
	assert.True(t, localEnd.Equal(end))
	assert.Equal(t, ams, localStart.Location())
	assert.Equal(t, 1, localStart.Hour())
}

func TestDayaheadSourceColdLoadAlignsRange(t *testing.T) {
	ams, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)

	var gotStart string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStart = r.URL.Query().Get("start")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [{"interval_start": "2024-03-01T00:00:00Z", "price": 50}]}`))
	}))
	defer server.Close()

	source := &DayaheadSource{
		Client: NewClient("key", server.URL),
		Area:   "NL",
		Loc:    ams,
	}

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	schedule, err := source.ColdLoad(context.Background(), start, start)
	require.NoError(t, err)
	require.Len(t, schedule, 1)
	// The UTC midnight request goes upstream as 01:00 local time.
	assert.Equal(t, "2024-03-01T01:00:00+01:00", gotStart)
}
