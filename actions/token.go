package actions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/tierpass-exchange/ledger_api/conv"
	"gitlab.com/tierpass-exchange/ledger_api/logger"
)

// TransferRequest is the body of a token transfer call
type TransferRequest struct {
	From   string `json:"from" binding:"required"`
	To     string `json:"to" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// TransferToken godoc
// swagger:route POST /token/transfer
// Move token units between two accounts, deducting the automatic burn
func (actions *Actions) TransferToken(c *gin.Context) {
	var request TransferRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid transfer request")
		return
	}

	amount, ok := conv.NewAmountFromString(request.Amount)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "invalid amount")
		return
	}

	if err := actions.token.Transfer(request.From, request.To, amount); err != nil {
		reqLogger := logger.GetLogger(c)
		reqLogger.Warn().Err(err).Str("from", request.From).Str("to", request.To).
			Msg("Transfer rejected")
		abortWithLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, map[string]interface{}{
		"from":   request.From,
		"to":     request.To,
		"amount": request.Amount,
	})
}

// GetTokenBalance godoc
func (actions *Actions) GetTokenBalance(c *gin.Context) {
	account := c.Param("account")
	c.JSON(http.StatusOK, map[string]interface{}{
		"account": account,
		"balance": actions.token.BalanceOf(account).String(),
	})
}

// GetTokenSupply godoc
func (actions *Actions) GetTokenSupply(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"initial_supply":     actions.token.InitialSupply().String(),
		"circulating_supply": actions.token.CirculatingSupply().String(),
	})
}

// GetBurnState godoc
func (actions *Actions) GetBurnState(c *gin.Context) {
	state := actions.token.GetBurnState()
	c.JSON(http.StatusOK, map[string]interface{}{
		"burn_rate_basis_units": state.BurnRateBasisUnits,
		"burn_precision":        state.BurnPrecision,
		"total_burned":          state.TotalBurned.String(),
		"max_total_burn":        state.MaxTotalBurn.String(),
		"paused":                state.Paused,
	})
}

// GetBurnEvents godoc
func (actions *Actions) GetBurnEvents(c *gin.Context) {
	if actions.repo == nil {
		abortWithError(c, http.StatusNotFound, "journal disabled")
		return
	}
	page := getQueryAsInt(c, "page", 1)
	limit := getQueryAsInt(c, "limit", 50)

	list, err := actions.repo.GetBurnEvents(limit, page)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Unable to get burn events")
		return
	}
	c.JSON(http.StatusOK, list)
}
