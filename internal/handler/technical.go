package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// GetTechnicalIndicators godoc
// @Summary      Technical indicators
// @Description  Current price, 52-week range position, average volume and SMA 20/50/200 with price deviation
// @Tags         technical
// @Produce      json
// @Param        symbol  path   string  true   "Ticker symbol (e.g. AAPL)"
// @Param        period  query  string  false  "Lookback period"  default(6mo)
// @Success      200  {object}  analytics.TechnicalIndicators
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/technical/{symbol}/indicators [get]
func (h *Handler) GetTechnicalIndicators(c *gin.Context) {
	if h.technical == nil {
		unavailable(c, "technical")
		return
	}
	started := time.Now()
	ctx, span := h.start(c, "get-technical-indicators")
	defer span.End()

	out, err := h.technical.GetTechnicalIndicators(ctx, c.Param("symbol"), c.Query("period"))
	respond(c, "rest.technical.indicators", started, out, err)
}

// GetVolatilityMetrics godoc
// @Summary      Volatility metrics
// @Description  Daily and annualized volatility, largest daily moves and up/down day counts
// @Tags         technical
// @Produce      json
// @Param        symbol  path   string  true   "Ticker symbol (e.g. AAPL)"
// @Param        period  query  string  false  "Lookback period"  default(1y)
// @Success      200  {object}  analytics.VolatilityMetrics
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/technical/{symbol}/volatility [get]
func (h *Handler) GetVolatilityMetrics(c *gin.Context) {
	if h.technical == nil {
		unavailable(c, "technical")
		return
	}
	started := time.Now()
	ctx, span := h.start(c, "get-volatility-metrics")
	defer span.End()

	out, err := h.technical.GetVolatilityMetrics(ctx, c.Param("symbol"), c.Query("period"))
	respond(c, "rest.technical.volatility", started, out, err)
}

// GetSupportResistanceLevels godoc
// @Summary      Support and resistance levels
// @Tags         technical
// @Produce      json
// @Param        symbol  path   string  true   "Ticker symbol (e.g. AAPL)"
// @Param        period  query  string  false  "Lookback period"  default(6mo)
// @Success      200  {object}  analytics.SupportResistanceLevels
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/technical/{symbol}/levels [get]
func (h *Handler) GetSupportResistanceLevels(c *gin.Context) {
	if h.technical == nil {
		unavailable(c, "technical")
		return
	}
	started := time.Now()
	ctx, span := h.start(c, "get-support-resistance-levels")
	defer span.End()

	out, err := h.technical.GetSupportResistanceLevels(ctx, c.Param("symbol"), c.Query("period"))
	respond(c, "rest.technical.levels", started, out, err)
}
