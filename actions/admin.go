package actions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/tierpass-exchange/ledger_api/conv"
	"gitlab.com/tierpass-exchange/ledger_api/service/issuance"
)

// RestrictAdmin guards the administrative routes behind a shared token
func (actions *Actions) RestrictAdmin(c *gin.Context) {
	token := c.GetHeader("X-Admin-Token")
	if actions.cfg.Server.AdminToken == "" || token != actions.cfg.Server.AdminToken {
		abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED")
		return
	}
	c.Next()
}

// SetPriceRequest godoc
type SetPriceRequest struct {
	USDPriceCents uint64 `json:"usd_price_cents" binding:"required"`
}

// SetTierPrice godoc
func (actions *Actions) SetTierPrice(c *gin.Context) {
	tier, ok := getTierParam(c)
	if !ok {
		return
	}
	var request SetPriceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid price request")
		return
	}
	if err := actions.engine.SetTierPrice(tier, request.USDPriceCents); err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, map[string]interface{}{"tier": tier, "usd_price_cents": request.USDPriceCents})
}

// SetURIRequest godoc
type SetURIRequest struct {
	URI string `json:"uri" binding:"required"`
}

// SetTierURI godoc
func (actions *Actions) SetTierURI(c *gin.Context) {
	tier, ok := getTierParam(c)
	if !ok {
		return
	}
	var request SetURIRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid uri request")
		return
	}
	if err := actions.engine.SetTierURI(tier, request.URI); err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, map[string]interface{}{"tier": tier, "uri": request.URI})
}

// SetWalletsRequest godoc
type SetWalletsRequest struct {
	Partner string `json:"partner" binding:"required"`
	Pool    string `json:"pool" binding:"required"`
	Company string `json:"company" binding:"required"`
}

// SetWallets godoc
func (actions *Actions) SetWallets(c *gin.Context) {
	var request SetWalletsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid wallets request")
		return
	}
	actions.engine.SetWallets(issuance.Wallets{
		Partner: request.Partner,
		Pool:    request.Pool,
		Company: request.Company,
	})
	c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SetFeedRequest godoc
type SetFeedRequest struct {
	URL string `json:"url" binding:"required"`
}

// SetFeed points the engine at a new price oracle endpoint
func (actions *Actions) SetFeed(c *gin.Context) {
	var request SetFeedRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid feed request")
		return
	}
	actions.feed.SetURL(request.URL)
	actions.engine.SetPriceFeed(actions.feed, request.URL)
	c.JSON(http.StatusOK, map[string]string{"url": request.URL})
}

// SetBurnRateRequest godoc
type SetBurnRateRequest struct {
	Rate uint16 `json:"rate"`
}

// SetBurnRate godoc
func (actions *Actions) SetBurnRate(c *gin.Context) {
	var request SetBurnRateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid burn rate request")
		return
	}
	actions.token.SetBurnRate(request.Rate)
	c.JSON(http.StatusOK, map[string]interface{}{"rate": request.Rate})
}

// PauseToken godoc
func (actions *Actions) PauseToken(c *gin.Context) {
	actions.token.Pause()
	c.JSON(http.StatusOK, map[string]interface{}{"paused": true})
}

// UnpauseToken godoc
func (actions *Actions) UnpauseToken(c *gin.Context) {
	actions.token.Unpause()
	c.JSON(http.StatusOK, map[string]interface{}{"paused": false})
}

// DepositRequest godoc
type DepositRequest struct {
	Account string `json:"account" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
}

// DepositNative credits an account of the native value ledger. Used to fund
// buyer accounts in test and staging environments.
func (actions *Actions) DepositNative(c *gin.Context) {
	var request DepositRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid deposit request")
		return
	}
	amount, ok := conv.NewAmountFromString(request.Amount)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "invalid amount")
		return
	}
	if err := actions.treasury.Deposit(request.Account, amount); err != nil {
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, map[string]string{
		"account": request.Account,
		"balance": actions.treasury.BalanceOf(request.Account).String(),
	})
}

// GetNativeBalance godoc
func (actions *Actions) GetNativeBalance(c *gin.Context) {
	account := c.Param("account")
	c.JSON(http.StatusOK, map[string]string{
		"account": account,
		"balance": actions.treasury.BalanceOf(account).String(),
	})
}
