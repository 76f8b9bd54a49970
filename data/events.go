package data

import (
	jsoniter "github.com/json-iterator/go"
	"gitlab.com/tierpass-exchange/ledger_api/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type EventType string

const (
	EventType_IssuanceCompleted EventType = "issuance_completed"
	EventType_ReferralPaid      EventType = "referral_payment"
	EventType_ReferralAccrued   EventType = "referral_rewards_accrued"
	EventType_PriceUpdated      EventType = "price_updated"
	EventType_URIUpdated        EventType = "uri_updated"
	EventType_WalletUpdated     EventType = "wallet_updated"
	EventType_FeedUpdated       EventType = "feed_address_updated"
	EventType_BurnRateChanged   EventType = "burn_rate_changed"
	EventType_BurnExecuted      EventType = "auto_burn_executed"
	EventType_BurnCapReached    EventType = "burn_cap_reached"
)

// Event is one observable ledger signal. Amount fields are carried as decimal
// strings so the wire format does not depend on the in memory representation.
type Event interface {
	Type() EventType
}

type IssuanceCompleted struct {
	RefID         string       `json:"ref_id"`
	Holder        string       `json:"holder"`
	Tier          model.TierID `json:"tier"`
	Quantity      uint64       `json:"quantity"`
	Referrer      string       `json:"referrer"`
	USDPriceCents uint64       `json:"usd_price_cents"`
	NativePaid    string       `json:"native_paid"`
	Timestamp     int64        `json:"timestamp"`
}

func (*IssuanceCompleted) Type() EventType { return EventType_IssuanceCompleted }

type ReferralPaid struct {
	RefID     string       `json:"ref_id"`
	Referrer  string       `json:"referrer"`
	Buyer     string       `json:"buyer"`
	Tier      model.TierID `json:"tier"`
	Amount    string       `json:"amount"`
	Timestamp int64        `json:"timestamp"`
}

func (*ReferralPaid) Type() EventType { return EventType_ReferralPaid }

// ReferralRewardsAccrued carries the referrer's running totals after a paid
// referral leg has been added to the ledger.
type ReferralRewardsAccrued struct {
	Referrer       string `json:"referrer"`
	TotalEarned    string `json:"total_earned"`
	TotalReferrals uint64 `json:"total_referrals"`
	Timestamp      int64  `json:"timestamp"`
}

func (*ReferralRewardsAccrued) Type() EventType { return EventType_ReferralAccrued }

type PriceUpdated struct {
	Tier          model.TierID `json:"tier"`
	USDPriceCents uint64       `json:"usd_price_cents"`
}

func (*PriceUpdated) Type() EventType { return EventType_PriceUpdated }

type URIUpdated struct {
	Tier model.TierID `json:"tier"`
	URI  string       `json:"uri"`
}

func (*URIUpdated) Type() EventType { return EventType_URIUpdated }

type WalletUpdated struct {
	Partner string `json:"partner"`
	Pool    string `json:"pool"`
	Company string `json:"company"`
}

func (*WalletUpdated) Type() EventType { return EventType_WalletUpdated }

type FeedUpdated struct {
	URL string `json:"url"`
}

func (*FeedUpdated) Type() EventType { return EventType_FeedUpdated }

type BurnRateChanged struct {
	Rate uint16 `json:"rate"`
}

func (*BurnRateChanged) Type() EventType { return EventType_BurnRateChanged }

type BurnExecuted struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Volume      string `json:"volume"`
	AmountBurnt string `json:"amount_burnt"`
	TotalBurnt  string `json:"total_burnt"`
	Timestamp   int64  `json:"timestamp"`
}

func (*BurnExecuted) Type() EventType { return EventType_BurnExecuted }

type BurnCapReached struct {
	TotalBurnt string `json:"total_burnt"`
	Timestamp  int64  `json:"timestamp"`
}

func (*BurnCapReached) Type() EventType { return EventType_BurnCapReached }

type envelope struct {
	Type    EventType `json:"type"`
	Payload Event     `json:"payload"`
}

// ToBinary converts an event to its wire representation
func ToBinary(ev Event) ([]byte, error) {
	return json.Marshal(envelope{Type: ev.Type(), Payload: ev})
}
