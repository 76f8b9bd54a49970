package queries

import (
	"github.com/ericlagergren/decimal"
	sqlpg "github.com/ericlagergren/decimal/sql/postgres"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gitlab.com/tierpass-exchange/ledger_api/conv"
	"gitlab.com/tierpass-exchange/ledger_api/model"
)

// Repo is the write behind journal of both ledgers. The authoritative state
// machines live in memory; these rows exist for audit and reporting.
type Repo struct {
	Conn *gorm.DB
}

// NewRepo connects to the journal database
func NewRepo(dsn string) (*Repo, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect to the journal database")
	}
	return &Repo{Conn: conn}, nil
}

// Migrate creates the journal tables
func (r *Repo) Migrate() error {
	return r.Conn.AutoMigrate(
		&model.IssuanceRecord{},
		&model.ReferralEarning{},
		&model.BurnEvent{},
		&model.LedgerSnapshot{},
		&model.TierSupply{},
	)
}

// Create godoc
func (r *Repo) Create(row interface{}) error {
	return r.Conn.Create(row).Error
}

// GetBurnEvents returns the persisted burn events, newest first
func (r *Repo) GetBurnEvents(limit, page int) (*model.BurnEventList, error) {
	events := make([]model.BurnEvent, 0)
	var rowCount int64 = 0

	q := r.Conn.Table("burn_events")
	dbc := q.Count(&rowCount)
	if dbc.Error != nil {
		return nil, dbc.Error
	}

	if limit != 0 {
		q = q.Limit(limit).Offset((page - 1) * limit)
	}
	q = q.Order("created_at DESC")
	db := q.Find(&events)
	list := model.BurnEventList{
		BurnEvents: events,
		Meta: model.PagingMeta{
			Page:  page,
			Count: rowCount,
			Limit: limit,
		},
	}
	return &list, db.Error
}

// GetReferralEarnings returns the persisted referral legs of one referrer,
// newest first
func (r *Repo) GetReferralEarnings(referrer string, limit, page int) (*model.ReferralEarningList, error) {
	earnings := make([]model.ReferralEarning, 0)
	var rowCount int64 = 0

	q := r.Conn.Table("referral_earnings").Where("referrer = ?", referrer)
	dbc := q.Count(&rowCount)
	if dbc.Error != nil {
		return nil, dbc.Error
	}

	if limit != 0 {
		q = q.Limit(limit).Offset((page - 1) * limit)
	}
	q = q.Order("created_at DESC")
	db := q.Find(&earnings)
	list := model.ReferralEarningList{
		Earnings: earnings,
		Meta: model.PagingMeta{
			Page:  page,
			Count: rowCount,
			Limit: limit,
		},
	}
	return &list, db.Error
}

// GetReferralEarningsTotal returns the summed persisted earnings of one
// referrer
func (r *Repo) GetReferralEarningsTotal(referrer string) (*decimal.Big, error) {
	data := &struct{ Balance *sqlpg.Decimal }{Balance: &sqlpg.Decimal{V: conv.NewAmount()}}

	db := r.Conn.
		Table("referral_earnings").
		Select("sum(amount) as balance").
		Where("referrer = ?", referrer).
		Scan(data)
	if db.Error != nil {
		if errors.Is(db.Error, gorm.ErrRecordNotFound) {
			return conv.NewAmount(), nil
		}
		return nil, db.Error
	}
	if data.Balance != nil && data.Balance.V != nil {
		return data.Balance.V, nil
	}
	return conv.NewAmount(), nil
}

// GetIssuanceRecords returns the persisted issuances of one holder, newest
// first
func (r *Repo) GetIssuanceRecords(holder string, limit, page int) (*model.IssuanceRecordList, error) {
	records := make([]model.IssuanceRecord, 0)
	var rowCount int64 = 0

	q := r.Conn.Table("issuance_records").Where("holder = ?", holder)
	dbc := q.Count(&rowCount)
	if dbc.Error != nil {
		return nil, dbc.Error
	}

	if limit != 0 {
		q = q.Limit(limit).Offset((page - 1) * limit)
	}
	q = q.Order("created_at DESC")
	db := q.Find(&records)
	list := model.IssuanceRecordList{
		Records: records,
		Meta: model.PagingMeta{
			Page:  page,
			Count: rowCount,
			Limit: limit,
		},
	}
	return &list, db.Error
}

// SaveSnapshot persists one audit snapshot together with the per tier supply
// rows
func (r *Repo) SaveSnapshot(snapshot *model.LedgerSnapshot, tiers []model.TierSupply) error {
	if err := r.Conn.Create(snapshot).Error; err != nil {
		return err
	}
	for i := range tiers {
		if err := r.Conn.Create(&tiers[i]).Error; err != nil {
			log.Error().Err(err).Str("package", "queries").Str("func", "SaveSnapshot").
				Msg("Unable to persist tier supply row")
			return err
		}
	}
	return nil
}
