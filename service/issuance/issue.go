package issuance

import (
	"github.com/ericlagergren/decimal"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"gitlab.com/tierpass-exchange/ledger_api/conv"
	"gitlab.com/tierpass-exchange/ledger_api/data"
	"gitlab.com/tierpass-exchange/ledger_api/model"
)

// Referral reward share of the company leg. Tiers below the cutoff reward 10
// percent, the five cheapest tiers reward 5 percent.
const (
	referralTierCutoff  = 5
	referralPercentHigh = 10
	referralPercentLow  = 5
)

type disbursementPlan struct {
	referral *decimal.Big
	partner  *decimal.Big
	pool     *decimal.Big
	company  *decimal.Big
	referrer string
}

// Issue sells quantity units of a membership tier to the buyer against an
// exact native value payment. The whole call is a single atomic unit: every
// precondition is checked and every disbursement leg is paid through one
// payment session before any ledger state is touched, so a failed leg rolls
// the entire issuance back, referral append included.
func (e *Engine) Issue(buyer string, tier model.TierID, quantity uint64, referrer string, suppliedValue *decimal.Big) (*IssueResult, error) {
	e.stateLock.Lock()
	defer e.stateLock.Unlock()

	if !tier.Valid() {
		return nil, ErrInvalidTier
	}
	if quantity == 0 {
		return nil, ErrInvalidQuantity
	}
	// headroom comparison, the sum currentSupply+quantity could wrap in uint64
	ts := &e.tiers[tier]
	if quantity > ts.maxSupply-ts.currentSupply {
		return nil, ErrSupplyExceeded
	}

	requiredUsd := ts.usdPriceCents * quantity
	requiredNative, err := quoteWith(e.feed, requiredUsd)
	if err != nil {
		return nil, err
	}
	if suppliedValue == nil || suppliedValue.IsNaN(0) || suppliedValue.Cmp(requiredNative) != 0 {
		return nil, ErrPaymentMismatch
	}

	plan := splitPayment(suppliedValue, tier, buyer, referrer)
	if err := e.disburse(buyer, suppliedValue, plan); err != nil {
		return nil, err
	}

	// every leg is paid, commit the ledger state
	now := e.clock()
	refID := xid.New().String()

	ts.currentSupply += quantity
	pos := e.position(buyer, tier)
	pos.balance += quantity
	pos.lastMintAt = now

	if plan.referrer != "" {
		e.recordReferral(refID, buyer, plan.referrer, tier, plan.referral, now)
	}

	e.events.Publish(&data.IssuanceCompleted{
		RefID:         refID,
		Holder:        buyer,
		Tier:          tier,
		Quantity:      quantity,
		Referrer:      plan.referrer,
		USDPriceCents: requiredUsd,
		NativePaid:    suppliedValue.String(),
		Timestamp:     now.Unix(),
	})

	log.Info().Str("package", "issuance").Str("func", "Issue").
		Str("holder", buyer).Uint8("tier", uint8(tier)).Uint64("quantity", quantity).
		Str("native_paid", suppliedValue.String()).Msg("Issuance completed")

	return &IssueResult{
		RefID:        refID,
		Tier:         tier,
		Quantity:     quantity,
		NativePaid:   conv.Clone(suppliedValue),
		ReferralPaid: conv.Clone(plan.referral),
	}, nil
}

// splitPayment computes the deterministic disbursement deltas. The company
// leg absorbs the integer division remainder of the pool split so the four
// legs always sum to the full payment.
func splitPayment(value *decimal.Big, tier model.TierID, buyer, referrer string) disbursementPlan {
	partner := conv.PercentTrunc(value, 2)
	remaining := conv.Sub(value, partner)
	pool := conv.DivTrunc(remaining, conv.NewAmountFromUint(2))
	company := conv.Sub(remaining, pool)

	plan := disbursementPlan{
		referral: conv.NewAmount(),
		partner:  partner,
		pool:     pool,
		company:  company,
	}

	if referrer == "" || referrer == model.ZeroAddress || referrer == buyer {
		return plan
	}

	percent := uint64(referralPercentHigh)
	if uint8(tier) >= referralTierCutoff {
		percent = referralPercentLow
	}
	plan.referrer = referrer
	plan.referral = conv.PercentTrunc(company, percent)
	plan.company = conv.Sub(company, plan.referral)
	return plan
}

// disburse pays the legs in their observable order: referral, partner, pool,
// company. Any rejected leg aborts the session and fails the issuance.
func (e *Engine) disburse(buyer string, total *decimal.Big, plan disbursementPlan) error {
	session, err := e.payer.Begin(buyer, total)
	if err != nil {
		log.Warn().Err(err).Str("package", "issuance").Str("func", "disburse").
			Str("buyer", buyer).Msg("Unable to open payment session")
		return ErrTransferFailed
	}

	legs := []struct {
		to     string
		amount *decimal.Big
	}{
		{plan.referrer, plan.referral},
		{e.wallets.Partner, plan.partner},
		{e.wallets.Pool, plan.pool},
		{e.wallets.Company, plan.company},
	}
	for _, leg := range legs {
		if leg.to == "" || leg.amount.Sign() == 0 {
			continue
		}
		if err := session.Pay(leg.to, leg.amount); err != nil {
			log.Warn().Err(err).Str("package", "issuance").Str("func", "disburse").
				Str("to", leg.to).Str("amount", leg.amount.String()).
				Msg("Disbursement leg failed")
			session.Abort()
			return ErrTransferFailed
		}
	}
	if err := session.Commit(); err != nil {
		return ErrTransferFailed
	}
	return nil
}

func (e *Engine) position(holder string, tier model.TierID) *holderPosition {
	positions, ok := e.holders[holder]
	if !ok {
		positions = map[model.TierID]*holderPosition{}
		e.holders[holder] = positions
	}
	pos, ok := positions[tier]
	if !ok {
		pos = &holderPosition{}
		positions[tier] = pos
	}
	return pos
}
