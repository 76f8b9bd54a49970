package model

import (
	"time"

	"github.com/ericlagergren/decimal/sql/postgres"
)

// LedgerSnapshot is a periodic audit row with the aggregate counters of both
// ledgers, written by the snapshot cron
type LedgerSnapshot struct {
	ID          uint64            `sql:"type:bigint" gorm:"PRIMARY_KEY" json:"-"`
	TotalSupply uint64            `gorm:"column:total_supply" json:"total_supply"`
	TotalBurned *postgres.Decimal `sql:"type:decimal(36,18)" gorm:"column:total_burned" json:"total_burned"`
	BurnRate    uint16            `gorm:"column:burn_rate" json:"burn_rate"`
	CreatedAt   time.Time         `gorm:"column:created_at" json:"created_at"`
}
