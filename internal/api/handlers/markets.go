package handlers

import (
	"fmt"
	"net/http"

	"battery-benchmark/internal/api/models"
	"battery-benchmark/internal/model"

	"github.com/gin-gonic/gin"
)

// ListMarkets handles GET /api/v1/markets.
func ListMarkets(c *gin.Context) {
	markets := make([]models.MarketInfo, 0, len(model.Markets()))
	for _, m := range model.Markets() {
		markets = append(markets, models.MarketInfo{
			Name:          m.Name,
			TimestepHours: m.TimestepHours,
			Resolution:    fmt.Sprintf("%.0fmin", m.TimestepHours*60),
		})
	}
	c.JSON(http.StatusOK, gin.H{"markets": markets})
}
