package issuance

import (
	"time"

	"github.com/ericlagergren/decimal"
	"gitlab.com/tierpass-exchange/ledger_api/conv"
	"gitlab.com/tierpass-exchange/ledger_api/data"
	"gitlab.com/tierpass-exchange/ledger_api/model"
)

// recordReferral appends one history entry and maintains the permanent buyer
// to referrer binding. The caller holds the state lock and has already paid
// the referral leg.
func (e *Engine) recordReferral(refID, buyer, referrer string, tier model.TierID, amount *decimal.Big, now time.Time) {
	record, ok := e.referrals[referrer]
	if !ok {
		record = &referralRecord{totalEarned: conv.NewAmount()}
		e.referrals[referrer] = record
	}

	if _, bound := e.referrerOf[buyer]; !bound {
		e.referrerOf[buyer] = referrer
		record.totalReferrals++
	}

	record.history = append(record.history, ReferralEntry{
		User:      buyer,
		Amount:    conv.Clone(amount),
		Timestamp: now,
		Tier:      tier,
	})
	record.totalEarned = conv.Add(record.totalEarned, amount)
	record.lastReferralAt = now

	e.events.Publish(&data.ReferralPaid{
		RefID:     refID,
		Referrer:  referrer,
		Buyer:     buyer,
		Tier:      tier,
		Amount:    amount.String(),
		Timestamp: now.Unix(),
	})
	e.events.Publish(&data.ReferralRewardsAccrued{
		Referrer:       referrer,
		TotalEarned:    record.totalEarned.String(),
		TotalReferrals: record.totalReferrals,
		Timestamp:      now.Unix(),
	})
}

// GetReferralRecord returns a snapshot of the referrer's ledger entry
func (e *Engine) GetReferralRecord(referrer string) ReferralRecord {
	e.stateLock.RLock()
	defer e.stateLock.RUnlock()

	record, ok := e.referrals[referrer]
	if !ok {
		return ReferralRecord{
			Referrer:    referrer,
			TotalEarned: conv.NewAmount(),
			History:     []ReferralEntry{},
		}
	}

	history := make([]ReferralEntry, len(record.history))
	for i, entry := range record.history {
		history[i] = ReferralEntry{
			User:      entry.User,
			Amount:    conv.Clone(entry.Amount),
			Timestamp: entry.Timestamp,
			Tier:      entry.Tier,
		}
	}
	return ReferralRecord{
		Referrer:         referrer,
		TotalReferrals:   record.totalReferrals,
		TotalEarned:      conv.Clone(record.totalEarned),
		LastReferralTime: record.lastReferralAt,
		History:          history,
	}
}

// GetReferrerOf returns the permanent referrer binding of a buyer
func (e *Engine) GetReferrerOf(buyer string) (string, bool) {
	e.stateLock.RLock()
	defer e.stateLock.RUnlock()

	referrer, ok := e.referrerOf[buyer]
	return referrer, ok
}
