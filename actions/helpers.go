package actions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gitlab.com/tierpass-exchange/ledger_api/oracle"
	"gitlab.com/tierpass-exchange/ledger_api/service/issuance"
	"gitlab.com/tierpass-exchange/ledger_api/service/tokenledger"
	"gitlab.com/tierpass-exchange/ledger_api/treasury"
)

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, map[string]string{"error": msg})
}

func getQueryAsInt(c *gin.Context, name string, defaultValue int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return defaultValue
	}
	return value
}

// statusForError maps a ledger failure reason on a response status so every
// rejected precondition stays caller visible and distinguishable
func statusForError(err error) int {
	switch {
	case errors.Is(err, issuance.ErrInvalidTier),
		errors.Is(err, issuance.ErrInvalidQuantity),
		errors.Is(err, issuance.ErrPaymentMismatch),
		errors.Is(err, tokenledger.ErrInvalidAmount),
		errors.Is(err, tokenledger.ErrInvalidAccount),
		errors.Is(err, treasury.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, issuance.ErrSupplyExceeded),
		errors.Is(err, issuance.ErrTransferFailed),
		errors.Is(err, tokenledger.ErrMintingDisabled),
		errors.Is(err, tokenledger.ErrContractPaused),
		errors.Is(err, tokenledger.ErrInsufficientFunds),
		errors.Is(err, treasury.ErrInsufficientFunds):
		return http.StatusConflict
	case errors.Is(err, issuance.ErrOracleUnavailable),
		errors.Is(err, oracle.ErrOracleUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func abortWithLedgerError(c *gin.Context, err error) {
	abortWithError(c, statusForError(err), err.Error())
}
