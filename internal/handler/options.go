package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// GetExpirationDates godoc
// @Summary      Option expiration dates
// @Tags         options
// @Produce      json
// @Param        symbol  path  string  true  "Underlying ticker symbol"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/options/{symbol}/expirations [get]
func (h *Handler) GetExpirationDates(c *gin.Context) {
	if h.options == nil {
		unavailable(c, "options")
		return
	}
	started := time.Now()
	ctx, span := h.start(c, "get-expiration-dates")
	defer span.End()

	dates, err := h.options.GetExpirationDates(ctx, c.Param("symbol"))
	respond(c, "rest.options.expirations", started, gin.H{"expirations": dates}, err)
}

// GetOptionChain godoc
// @Summary      Option chain
// @Description  Calls and puts for one expiration, the nearest when none is given
// @Tags         options
// @Produce      json
// @Param        symbol      path   string  true   "Underlying ticker symbol"
// @Param        expiration  query  string  false  "Expiration date (YYYY-MM-DD)"
// @Success      200  {object}  domain.OptionsChain
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/options/{symbol}/chain [get]
func (h *Handler) GetOptionChain(c *gin.Context) {
	if h.options == nil {
		unavailable(c, "options")
		return
	}
	started := time.Now()
	ctx, span := h.start(c, "get-option-chain")
	defer span.End()

	chain, err := h.options.GetOptionChain(ctx, c.Param("symbol"), c.Query("expiration"))
	respond(c, "rest.options.chain", started, chain, err)
}

// GetVolumeAnalysis godoc
// @Summary      Options volume analysis
// @Description  Call and put volume and open interest totals with put/call ratios
// @Tags         options
// @Produce      json
// @Param        symbol      path   string  true   "Underlying ticker symbol"
// @Param        expiration  query  string  false  "Expiration date (YYYY-MM-DD)"
// @Success      200  {object}  analytics.VolumeAnalysis
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/options/{symbol}/volume [get]
func (h *Handler) GetVolumeAnalysis(c *gin.Context) {
	if h.options == nil {
		unavailable(c, "options")
		return
	}
	started := time.Now()
	ctx, span := h.start(c, "get-volume-analysis")
	defer span.End()

	out, err := h.options.GetVolumeAnalysis(ctx, c.Param("symbol"), c.Query("expiration"))
	respond(c, "rest.options.volume", started, out, err)
}

// GetByMoneyness godoc
// @Summary      Options near the money
// @Description  Contracts with strikes within current price * (1 ± moneyness_range)
// @Tags         options
// @Produce      json
// @Param        symbol           path   string  true   "Underlying ticker symbol"
// @Param        expiration       query  string  false  "Expiration date (YYYY-MM-DD)"
// @Param        moneyness_range  query  number  false  "Half-width of the strike band"  default(0.1)
// @Success      200  {object}  analytics.MoneynessResult
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/options/{symbol}/moneyness [get]
func (h *Handler) GetByMoneyness(c *gin.Context) {
	if h.options == nil {
		unavailable(c, "options")
		return
	}
	started := time.Now()
	ctx, span := h.start(c, "get-by-moneyness")
	defer span.End()

	var moneynessRange float64
	if raw := strings.TrimSpace(c.Query("moneyness_range")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "moneyness_range must be a number"})
			return
		}
		moneynessRange = v
	}

	out, err := h.options.GetByMoneyness(ctx, c.Param("symbol"), c.Query("expiration"), moneynessRange)
	respond(c, "rest.options.moneyness", started, out, err)
}

// GetSkew godoc
// @Summary      Implied volatility skew
// @Tags         options
// @Produce      json
// @Param        symbol      path   string  true   "Underlying ticker symbol"
// @Param        expiration  query  string  false  "Expiration date (YYYY-MM-DD)"
// @Success      200  {object}  analytics.SkewResult
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/options/{symbol}/skew [get]
func (h *Handler) GetSkew(c *gin.Context) {
	if h.options == nil {
		unavailable(c, "options")
		return
	}
	started := time.Now()
	ctx, span := h.start(c, "get-skew")
	defer span.End()

	out, err := h.options.GetSkew(ctx, c.Param("symbol"), c.Query("expiration"))
	respond(c, "rest.options.skew", started, out, err)
}
