package issuance

import (
	"github.com/rs/zerolog/log"
	"gitlab.com/tierpass-exchange/ledger_api/data"
	"gitlab.com/tierpass-exchange/ledger_api/model"
	"gitlab.com/tierpass-exchange/ledger_api/oracle"
)

// SetTierPrice updates the USD cent price of one tier. Only future quotes are
// affected.
func (e *Engine) SetTierPrice(tier model.TierID, usdPriceCents uint64) error {
	if !tier.Valid() {
		return ErrInvalidTier
	}

	e.stateLock.Lock()
	e.tiers[tier].usdPriceCents = usdPriceCents
	e.stateLock.Unlock()

	e.events.Publish(&data.PriceUpdated{Tier: tier, USDPriceCents: usdPriceCents})
	log.Info().Str("package", "issuance").Str("func", "SetTierPrice").
		Uint8("tier", uint8(tier)).Uint64("usd_price_cents", usdPriceCents).Msg("Tier price updated")
	return nil
}

// SetTierURI updates the metadata URI of one tier
func (e *Engine) SetTierURI(tier model.TierID, uri string) error {
	if !tier.Valid() {
		return ErrInvalidTier
	}

	e.stateLock.Lock()
	e.tiers[tier].uri = uri
	e.stateLock.Unlock()

	e.events.Publish(&data.URIUpdated{Tier: tier, URI: uri})
	return nil
}

// SetWallets replaces the three fixed disbursement recipients
func (e *Engine) SetWallets(wallets Wallets) {
	e.stateLock.Lock()
	e.wallets = wallets
	e.stateLock.Unlock()

	e.events.Publish(&data.WalletUpdated{
		Partner: wallets.Partner,
		Pool:    wallets.Pool,
		Company: wallets.Company,
	})
}

// GetWallets returns the current disbursement recipients
func (e *Engine) GetWallets() Wallets {
	e.stateLock.RLock()
	defer e.stateLock.RUnlock()
	return e.wallets
}

// SetPriceFeed swaps the price feed collaborator
func (e *Engine) SetPriceFeed(feed oracle.PriceFeed, url string) {
	e.stateLock.Lock()
	e.feed = feed
	e.stateLock.Unlock()

	e.events.Publish(&data.FeedUpdated{URL: url})
	log.Info().Str("package", "issuance").Str("func", "SetPriceFeed").
		Str("url", url).Msg("Price feed updated")
}
