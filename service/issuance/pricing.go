package issuance

import (
	"errors"

	"github.com/ericlagergren/decimal"
	"github.com/rs/zerolog/log"
	"gitlab.com/tierpass-exchange/ledger_api/conv"
	"gitlab.com/tierpass-exchange/ledger_api/oracle"
)

var (
	ErrInvalidTier       = errors.New("INVALID_TIER")
	ErrInvalidQuantity   = errors.New("INVALID_QUANTITY")
	ErrSupplyExceeded    = errors.New("SUPPLY_EXCEEDED")
	ErrOracleUnavailable = errors.New("ORACLE_UNAVAILABLE")
	ErrPaymentMismatch   = errors.New("PAYMENT_MISMATCH")
	ErrTransferFailed    = errors.New("TRANSFER_FAILED")
)

// QuoteNativeAmount converts a USD cent price into the native value amount
// using the external price feed:
//
//	nativeAmount = usdPriceCents * 10^18 * 10^decimals / (rawPrice * 100)
//
// The multiplication happens before the single truncating division so the
// result is bit for bit reproducible for the same feed reading. A feed
// failure or a non positive price aborts the enclosing request.
func (e *Engine) QuoteNativeAmount(usdPriceCents uint64) (*decimal.Big, error) {
	e.stateLock.RLock()
	feed := e.feed
	e.stateLock.RUnlock()
	return quoteWith(feed, usdPriceCents)
}

func quoteWith(feed oracle.PriceFeed, usdPriceCents uint64) (*decimal.Big, error) {
	quote, err := feed.GetCurrentPrice()
	if err != nil {
		log.Error().Err(err).Str("package", "issuance").Str("func", "QuoteNativeAmount").
			Msg("Price feed unavailable")
		return nil, ErrOracleUnavailable
	}
	if !conv.IsPositive(quote.Price) {
		return nil, ErrOracleUnavailable
	}

	numerator := conv.MulUint(conv.Pow10(18+int(quote.Decimals)), usdPriceCents)
	denominator := conv.MulUint(quote.Price, 100)
	return conv.DivTrunc(numerator, denominator), nil
}
