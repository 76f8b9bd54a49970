package issuance

import (
	"gitlab.com/tierpass-exchange/ledger_api/model"
)

// GetTierSupply returns the current and maximum supply of a tier
func (e *Engine) GetTierSupply(tier model.TierID) (current, max uint64, err error) {
	if !tier.Valid() {
		return 0, 0, ErrInvalidTier
	}

	e.stateLock.RLock()
	defer e.stateLock.RUnlock()
	ts := &e.tiers[tier]
	return ts.currentSupply, ts.maxSupply, nil
}

// GetTierPrice returns the configured USD cent price of a tier
func (e *Engine) GetTierPrice(tier model.TierID) (uint64, error) {
	if !tier.Valid() {
		return 0, ErrInvalidTier
	}

	e.stateLock.RLock()
	defer e.stateLock.RUnlock()
	return e.tiers[tier].usdPriceCents, nil
}

// GetTierURI returns the metadata URI of a tier
func (e *Engine) GetTierURI(tier model.TierID) (string, error) {
	if !tier.Valid() {
		return "", ErrInvalidTier
	}

	e.stateLock.RLock()
	defer e.stateLock.RUnlock()
	return e.tiers[tier].uri, nil
}

// TotalSupply returns the number of issued units across all tiers
func (e *Engine) TotalSupply() uint64 {
	e.stateLock.RLock()
	defer e.stateLock.RUnlock()

	var total uint64
	for i := range e.tiers {
		total += e.tiers[i].currentSupply
	}
	return total
}

// MaxSupply returns the fixed total supply cap across all tiers
func (e *Engine) MaxSupply() uint64 {
	e.stateLock.RLock()
	defer e.stateLock.RUnlock()

	var total uint64
	for i := range e.tiers {
		total += e.tiers[i].maxSupply
	}
	return total
}

// BalanceOf returns the holder's unit balance for one tier
func (e *Engine) BalanceOf(holder string, tier model.TierID) (uint64, error) {
	if !tier.Valid() {
		return 0, ErrInvalidTier
	}

	e.stateLock.RLock()
	defer e.stateLock.RUnlock()

	positions, ok := e.holders[holder]
	if !ok {
		return 0, nil
	}
	pos, ok := positions[tier]
	if !ok {
		return 0, nil
	}
	return pos.balance, nil
}

// GetUserTiers returns the holder's nonzero positions ordered by ascending
// tier index
func (e *Engine) GetUserTiers(holder string) []model.UserTier {
	e.stateLock.RLock()
	defer e.stateLock.RUnlock()

	result := []model.UserTier{}
	positions, ok := e.holders[holder]
	if !ok {
		return result
	}
	for tier := model.TierID(0); tier.Valid(); tier++ {
		pos, ok := positions[tier]
		if !ok || pos.balance == 0 {
			continue
		}
		result = append(result, model.UserTier{
			Tier:          tier,
			Amount:        pos.balance,
			MintTimestamp: pos.lastMintAt.Unix(),
		})
	}
	return result
}

// GetHighestTier returns the most valuable tier the holder owns, which is the
// lowest tier index with a nonzero balance. ok is false when the holder owns
// nothing.
func (e *Engine) GetHighestTier(holder string) (model.TierID, bool) {
	e.stateLock.RLock()
	defer e.stateLock.RUnlock()

	positions, ok := e.holders[holder]
	if !ok {
		return 0, false
	}
	for tier := model.TierID(0); tier.Valid(); tier++ {
		if pos, ok := positions[tier]; ok && pos.balance > 0 {
			return tier, true
		}
	}
	return 0, false
}
