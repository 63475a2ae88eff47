package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// GetQuote godoc
// @Summary      Latest quote
// @Tags         stocks
// @Produce      json
// @Param        symbol  path  string  true  "Ticker symbol (e.g. AAPL, ^GSPC)"
// @Success      200  {object}  domain.Quote
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/stocks/{symbol}/quote [get]
func (h *Handler) GetQuote(c *gin.Context) {
	if h.stock == nil {
		unavailable(c, "stock")
		return
	}
	started := time.Now()
	ctx, span := h.start(c, "get-quote")
	defer span.End()

	quote, err := h.stock.GetQuote(ctx, c.Param("symbol"))
	respond(c, "rest.stocks.quote", started, quote, err)
}

// GetHistory godoc
// @Summary      Price history
// @Tags         stocks
// @Produce      json
// @Param        symbol    path   string  true   "Ticker symbol"
// @Param        period    query  string  false  "Lookback period"  default(1y)
// @Param        interval  query  string  false  "Bar interval"     default(1d)
// @Success      200  {object}  domain.PriceSeries
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/stocks/{symbol}/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	if h.stock == nil {
		unavailable(c, "stock")
		return
	}
	started := time.Now()
	ctx, span := h.start(c, "get-history")
	defer span.End()

	series, err := h.stock.GetHistory(ctx, c.Param("symbol"), c.Query("period"), c.Query("interval"))
	respond(c, "rest.stocks.history", started, series, err)
}

// GetDividends godoc
// @Summary      Dividend history
// @Tags         stocks
// @Produce      json
// @Param        symbol  path  string  true  "Ticker symbol"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/stocks/{symbol}/dividends [get]
func (h *Handler) GetDividends(c *gin.Context) {
	if h.stock == nil {
		unavailable(c, "stock")
		return
	}
	started := time.Now()
	ctx, span := h.start(c, "get-dividends")
	defer span.End()

	dividends, err := h.stock.GetDividends(ctx, c.Param("symbol"))
	respond(c, "rest.stocks.dividends", started, gin.H{"symbol": c.Param("symbol"), "dividends": dividends}, err)
}
