package queries

import (
	"time"

	"github.com/rs/zerolog/log"

	"gitlab.com/tierpass-exchange/ledger_api/conv"
	"gitlab.com/tierpass-exchange/ledger_api/data"
	"gitlab.com/tierpass-exchange/ledger_api/model"
)

// Journal mirrors emitted ledger signals into audit rows. It runs after the
// in memory commit, so persistence failures are logged and never fail the
// already completed transaction.
type Journal struct {
	repo *Repo
}

// NewJournal godoc
func NewJournal(repo *Repo) *Journal {
	return &Journal{repo: repo}
}

// Publish implements data.Publisher
func (j *Journal) Publish(ev data.Event) {
	switch e := ev.(type) {
	case *data.IssuanceCompleted:
		amount, ok := conv.NewAmountFromString(e.NativePaid)
		if !ok {
			return
		}
		row := model.NewIssuanceRecord(e.RefID, e.Holder, e.Tier, e.Quantity, e.Referrer, e.USDPriceCents, amount, time.Unix(e.Timestamp, 0))
		j.create(row, ev)
	case *data.ReferralPaid:
		amount, ok := conv.NewAmountFromString(e.Amount)
		if !ok {
			return
		}
		row := model.NewReferralEarning(e.RefID, e.Referrer, e.Buyer, e.Tier, amount, time.Unix(e.Timestamp, 0))
		j.create(row, ev)
	case *data.BurnExecuted:
		volume, okV := conv.NewAmountFromString(e.Volume)
		burnt, okB := conv.NewAmountFromString(e.AmountBurnt)
		total, okT := conv.NewAmountFromString(e.TotalBurnt)
		if !okV || !okB || !okT {
			return
		}
		row := model.NewBurnEvent(e.From, e.To, volume, burnt, total, time.Unix(e.Timestamp, 0))
		j.create(row, ev)
	}
}

func (j *Journal) create(row interface{}, ev data.Event) {
	if err := j.repo.Create(row); err != nil {
		log.Error().Err(err).Str("package", "queries").Str("func", "Publish").
			Str("event", string(ev.Type())).Msg("Unable to journal ledger event")
	}
}
