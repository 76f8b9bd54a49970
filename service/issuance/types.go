package issuance

import (
	"sync"
	"time"

	"github.com/ericlagergren/decimal"
	"gitlab.com/tierpass-exchange/ledger_api/data"
	"gitlab.com/tierpass-exchange/ledger_api/model"
	"gitlab.com/tierpass-exchange/ledger_api/oracle"
	"gitlab.com/tierpass-exchange/ledger_api/treasury"
)

// TierParams is the issuance configuration of a single membership level
type TierParams struct {
	USDPriceCents uint64
	MaxSupply     uint64
	URI           string
}

// Wallets holds the three fixed disbursement recipients
type Wallets struct {
	Partner string
	Pool    string
	Company string
}

type tierState struct {
	usdPriceCents uint64
	maxSupply     uint64
	currentSupply uint64
	uri           string
}

type holderPosition struct {
	balance    uint64
	lastMintAt time.Time
}

// ReferralEntry is one row of a referrer's append-only history
type ReferralEntry struct {
	User      string       `json:"user"`
	Amount    *decimal.Big `json:"amount"`
	Timestamp time.Time    `json:"timestamp"`
	Tier      model.TierID `json:"tier"`
}

type referralRecord struct {
	totalReferrals uint64
	totalEarned    *decimal.Big
	lastReferralAt time.Time
	history        []ReferralEntry
}

// ReferralRecord is the read model of a referrer's ledger entry
type ReferralRecord struct {
	Referrer         string          `json:"referrer"`
	TotalReferrals   uint64          `json:"total_referrals"`
	TotalEarned      *decimal.Big    `json:"total_earned"`
	LastReferralTime time.Time       `json:"last_referral_time"`
	History          []ReferralEntry `json:"history"`
}

// IssueResult describes one completed issuance
type IssueResult struct {
	RefID        string       `json:"ref_id"`
	Tier         model.TierID `json:"tier"`
	Quantity     uint64       `json:"quantity"`
	NativePaid   *decimal.Big `json:"native_paid"`
	ReferralPaid *decimal.Big `json:"referral_paid"`
}

// Engine is the membership issuance state machine. One mutex serializes every
// state changing call, which models the total ordering the transaction log
// imposes: reads never observe a half applied issuance.
type Engine struct {
	stateLock  *sync.RWMutex
	tiers      [model.TierCount]tierState
	holders    map[string]map[model.TierID]*holderPosition
	referrals  map[string]*referralRecord
	referrerOf map[string]string
	wallets    Wallets
	feed       oracle.PriceFeed
	payer      treasury.Payer
	events     data.Publisher
	clock      func() time.Time
}

// Init creates an issuance engine over the given tier set
func Init(tiers []TierParams, wallets Wallets, feed oracle.PriceFeed, payer treasury.Payer, events data.Publisher, clock func() time.Time) (*Engine, error) {
	if len(tiers) != model.TierCount {
		return nil, ErrInvalidTier
	}
	if clock == nil {
		clock = time.Now
	}

	e := &Engine{
		stateLock:  &sync.RWMutex{},
		holders:    map[string]map[model.TierID]*holderPosition{},
		referrals:  map[string]*referralRecord{},
		referrerOf: map[string]string{},
		wallets:    wallets,
		feed:       feed,
		payer:      payer,
		events:     events,
		clock:      clock,
	}
	for i, params := range tiers {
		e.tiers[i] = tierState{
			usdPriceCents: params.USDPriceCents,
			maxSupply:     params.MaxSupply,
			uri:           params.URI,
		}
	}
	return e, nil
}

// DefaultTiers returns the launch tier set. Supply caps sum to 25275.
func DefaultTiers() []TierParams {
	prices := []uint64{900, 700, 500, 400, 300, 250, 200, 150, 100, 50}
	caps := []uint64{25, 50, 100, 300, 800, 1500, 2500, 5000, 7000, 8000}

	tiers := make([]TierParams, model.TierCount)
	for i := range tiers {
		tiers[i] = TierParams{
			USDPriceCents: prices[i],
			MaxSupply:     caps[i],
		}
	}
	return tiers
}
