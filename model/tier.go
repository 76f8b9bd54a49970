package model

// TierID indexes the fixed membership levels. Tier 0 is the highest value
// level, tier 9 the lowest.
type TierID uint8

// TierCount is the number of membership levels
const TierCount = 10

// Valid reports whether the id falls inside the defined tier range
func (t TierID) Valid() bool {
	return uint8(t) < TierCount
}

// TierSupply is a snapshot row of one tier's counters, persisted by the
// snapshot cron for audit
type TierSupply struct {
	ID            uint64 `sql:"type:bigint" gorm:"PRIMARY_KEY" json:"-"`
	Tier          TierID `gorm:"column:tier" json:"tier"`
	USDPriceCents uint64 `gorm:"column:usd_price_cents" json:"usd_price_cents"`
	MaxSupply     uint64 `gorm:"column:max_supply" json:"max_supply"`
	CurrentSupply uint64 `gorm:"column:current_supply" json:"current_supply"`
	URI           string `gorm:"column:uri" json:"uri"`
}

// UserTier is one nonzero holder position returned by the balance ledger
type UserTier struct {
	Tier          TierID `json:"tier"`
	Amount        uint64 `json:"amount"`
	MintTimestamp int64  `json:"mint_timestamp"`
}
