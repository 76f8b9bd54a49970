package actions

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gitlab.com/tierpass-exchange/ledger_api/conv"
	"gitlab.com/tierpass-exchange/ledger_api/logger"
	"gitlab.com/tierpass-exchange/ledger_api/model"
)

// IssueRequest is the body of an issuance call
type IssueRequest struct {
	Buyer         string `json:"buyer" binding:"required"`
	Tier          uint8  `json:"tier"`
	Quantity      uint64 `json:"quantity"`
	Referrer      string `json:"referrer"`
	SuppliedValue string `json:"supplied_value" binding:"required"`
}

// IssueTier godoc
// swagger:route POST /tiers/issue
// Issue membership units
//
// Sells units of one membership tier against an exact native value payment
func (actions *Actions) IssueTier(c *gin.Context) {
	var request IssueRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid issuance request")
		return
	}

	suppliedValue, ok := conv.NewAmountFromString(request.SuppliedValue)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "invalid supplied value")
		return
	}

	result, err := actions.engine.Issue(request.Buyer, model.TierID(request.Tier), request.Quantity, request.Referrer, suppliedValue)
	if err != nil {
		reqLogger := logger.GetLogger(c)
		reqLogger.Warn().Err(err).Str("buyer", request.Buyer).Uint8("tier", request.Tier).
			Msg("Issuance rejected")
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, map[string]interface{}{
		"ref_id":        result.RefID,
		"tier":          result.Tier,
		"quantity":      result.Quantity,
		"native_paid":   result.NativePaid.String(),
		"referral_paid": result.ReferralPaid.String(),
	})
}

// GetQuote godoc
// swagger:route GET /tiers/:tier/quote
// Quote the native value price of one unit of a tier
func (actions *Actions) GetQuote(c *gin.Context) {
	tier, ok := getTierParam(c)
	if !ok {
		return
	}

	price, err := actions.engine.GetTierPrice(tier)
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}
	requested := getQueryAsInt(c, "quantity", 1)
	_, maxSupply, _ := actions.engine.GetTierSupply(tier)
	if requested <= 0 || uint64(requested) > maxSupply {
		abortWithError(c, http.StatusBadRequest, "invalid quantity")
		return
	}
	quantity := uint64(requested)
	native, err := actions.engine.QuoteNativeAmount(price * quantity)
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, map[string]interface{}{
		"tier":            tier,
		"quantity":        quantity,
		"usd_price_cents": price * quantity,
		"native_amount":   native.String(),
	})
}

// GetTierSupply godoc
func (actions *Actions) GetTierSupply(c *gin.Context) {
	tier, ok := getTierParam(c)
	if !ok {
		return
	}

	current, max, err := actions.engine.GetTierSupply(tier)
	if err != nil {
		abortWithLedgerError(c, err)
		return
	}
	uri, _ := actions.engine.GetTierURI(tier)
	c.JSON(http.StatusOK, map[string]interface{}{
		"tier":           tier,
		"current_supply": current,
		"max_supply":     max,
		"uri":            uri,
	})
}

// GetSupply godoc
func (actions *Actions) GetSupply(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"total_supply": actions.engine.TotalSupply(),
		"max_supply":   actions.engine.MaxSupply(),
	})
}

// GetUserTiers godoc
func (actions *Actions) GetUserTiers(c *gin.Context) {
	holder := c.Param("holder")
	c.JSON(http.StatusOK, map[string]interface{}{
		"holder": holder,
		"tiers":  actions.engine.GetUserTiers(holder),
	})
}

// GetHighestTier godoc
func (actions *Actions) GetHighestTier(c *gin.Context) {
	holder := c.Param("holder")
	tier, ok := actions.engine.GetHighestTier(holder)
	if !ok {
		c.JSON(http.StatusOK, map[string]interface{}{"holder": holder, "tier": nil})
		return
	}
	c.JSON(http.StatusOK, map[string]interface{}{"holder": holder, "tier": tier})
}

// GetReferralRecord godoc
func (actions *Actions) GetReferralRecord(c *gin.Context) {
	referrer := c.Param("referrer")
	record := actions.engine.GetReferralRecord(referrer)

	history := make([]map[string]interface{}, len(record.History))
	for i, entry := range record.History {
		history[i] = map[string]interface{}{
			"user":      entry.User,
			"amount":    entry.Amount.String(),
			"timestamp": entry.Timestamp.Unix(),
			"tier":      entry.Tier,
		}
	}
	c.JSON(http.StatusOK, map[string]interface{}{
		"referrer":           record.Referrer,
		"total_referrals":    record.TotalReferrals,
		"total_earned":       record.TotalEarned.String(),
		"last_referral_time": record.LastReferralTime.Unix(),
		"history":            history,
	})
}

// GetReferralEarnings godoc
func (actions *Actions) GetReferralEarnings(c *gin.Context) {
	if actions.repo == nil {
		abortWithError(c, http.StatusNotFound, "journal disabled")
		return
	}
	referrer := c.Param("referrer")
	page := getQueryAsInt(c, "page", 1)
	limit := getQueryAsInt(c, "limit", 50)

	list, err := actions.repo.GetReferralEarnings(referrer, limit, page)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Unable to get referral earnings")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetIssuanceHistory godoc
func (actions *Actions) GetIssuanceHistory(c *gin.Context) {
	if actions.repo == nil {
		abortWithError(c, http.StatusNotFound, "journal disabled")
		return
	}
	holder := c.Param("holder")
	page := getQueryAsInt(c, "page", 1)
	limit := getQueryAsInt(c, "limit", 50)

	list, err := actions.repo.GetIssuanceRecords(holder, limit, page)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Unable to get issuance history")
		return
	}
	c.JSON(http.StatusOK, list)
}

func getTierParam(c *gin.Context) (model.TierID, bool) {
	value, err := strconv.Atoi(c.Param("tier"))
	if err != nil || value < 0 || value >= model.TierCount {
		abortWithError(c, http.StatusBadRequest, "invalid tier")
		return 0, false
	}
	return model.TierID(value), true
}
