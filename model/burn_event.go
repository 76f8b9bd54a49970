package model

import (
	"encoding/json"
	"time"

	"github.com/ericlagergren/decimal"
	"github.com/ericlagergren/decimal/sql/postgres"
)

// BurnEvent is the journal row written for every executed automatic burn
type BurnEvent struct {
	ID          uint64            `sql:"type:bigint" gorm:"PRIMARY_KEY" json:"-"`
	From        string            `gorm:"column:from_account" json:"from"`
	To          string            `gorm:"column:to_account" json:"to"`
	Volume      *postgres.Decimal `sql:"type:decimal(36,18)" gorm:"column:volume" json:"volume"`
	AmountBurnt *postgres.Decimal `sql:"type:decimal(36,18)" gorm:"column:amount_burnt" json:"amount_burnt"`
	TotalBurnt  *postgres.Decimal `sql:"type:decimal(36,18)" gorm:"column:total_burnt" json:"total_burnt"`
	CreatedAt   time.Time         `gorm:"column:created_at" json:"created_at"`
}

// MarshalJSON convert the burn event into a json string
func (event *BurnEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"id":           event.ID,
		"from":         event.From,
		"to":           event.To,
		"volume":       event.Volume.V.String(),
		"amount_burnt": event.AmountBurnt.V.String(),
		"total_burnt":  event.TotalBurnt.V.String(),
		"created_at":   event.CreatedAt,
	})
}

// NewBurnEvent structure
func NewBurnEvent(from, to string, volume, amountBurnt, totalBurnt *decimal.Big, at time.Time) *BurnEvent {
	return &BurnEvent{
		From:        from,
		To:          to,
		Volume:      &postgres.Decimal{V: volume},
		AmountBurnt: &postgres.Decimal{V: amountBurnt},
		TotalBurnt:  &postgres.Decimal{V: totalBurnt},
		CreatedAt:   at,
	}
}

// BurnEventList structure
type BurnEventList struct {
	BurnEvents []BurnEvent `json:"burn_events"`
	Meta       PagingMeta  `json:"meta"`
}
