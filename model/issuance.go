package model

import (
	"time"

	"github.com/ericlagergren/decimal"
	"github.com/ericlagergren/decimal/sql/postgres"
)

// IssuanceRecord is the journal row written after a completed issuance
type IssuanceRecord struct {
	ID            uint64            `sql:"type:bigint" gorm:"PRIMARY_KEY" json:"-"`
	RefID         string            `gorm:"column:ref_id" json:"ref_id"`
	Holder        string            `gorm:"column:holder" json:"holder"`
	Tier          TierID            `gorm:"column:tier" json:"tier"`
	Quantity      uint64            `gorm:"column:quantity" json:"quantity"`
	Referrer      string            `gorm:"column:referrer" json:"referrer"`
	USDPriceCents uint64            `gorm:"column:usd_price_cents" json:"usd_price_cents"`
	NativePaid    *postgres.Decimal `sql:"type:decimal(36,18)" gorm:"column:native_paid" json:"native_paid"`
	CreatedAt     time.Time         `gorm:"column:created_at" json:"created_at"`
}

// NewIssuanceRecord godoc
func NewIssuanceRecord(refID, holder string, tier TierID, quantity uint64, referrer string, usdPriceCents uint64, nativePaid *decimal.Big, at time.Time) *IssuanceRecord {
	return &IssuanceRecord{
		RefID:         refID,
		Holder:        holder,
		Tier:          tier,
		Quantity:      quantity,
		Referrer:      referrer,
		USDPriceCents: usdPriceCents,
		NativePaid:    &postgres.Decimal{V: nativePaid},
		CreatedAt:     at,
	}
}

// IssuanceRecordList structure
type IssuanceRecordList struct {
	Records []IssuanceRecord `json:"records"`
	Meta    PagingMeta       `json:"meta"`
}
