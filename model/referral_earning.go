package model

import (
	"time"

	"github.com/ericlagergren/decimal"
	"github.com/ericlagergren/decimal/sql/postgres"
)

// ReferralEarning is the journal row written for every paid referral leg
type ReferralEarning struct {
	ID           uint64            `sql:"type:bigint" gorm:"PRIMARY_KEY" json:"-"`
	RefID        string            `gorm:"column:ref_id" json:"ref_id"`
	Referrer     string            `gorm:"column:referrer" json:"referrer"`
	ReferredUser string            `gorm:"column:referred_user" json:"referred_user"`
	Tier         TierID            `gorm:"column:tier" json:"tier"`
	Amount       *postgres.Decimal `sql:"type:decimal(36,18)" gorm:"column:amount" json:"amount"`
	CreatedAt    time.Time         `gorm:"column:created_at" json:"created_at"`
}

// NewReferralEarning godoc
func NewReferralEarning(refID, referrer, referredUser string, tier TierID, amount *decimal.Big, at time.Time) *ReferralEarning {
	return &ReferralEarning{
		RefID:        refID,
		Referrer:     referrer,
		ReferredUser: referredUser,
		Tier:         tier,
		Amount:       &postgres.Decimal{V: amount},
		CreatedAt:    at,
	}
}

// ReferralEarningList structure
type ReferralEarningList struct {
	Earnings []ReferralEarning `json:"earnings"`
	Meta     PagingMeta        `json:"meta"`
}
