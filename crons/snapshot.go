package crons

import (
	"time"

	"github.com/ericlagergren/decimal/sql/postgres"
	"github.com/rs/zerolog/log"

	"gitlab.com/tierpass-exchange/ledger_api/model"
	"gitlab.com/tierpass-exchange/ledger_api/queries"
	"gitlab.com/tierpass-exchange/ledger_api/service/issuance"
	"gitlab.com/tierpass-exchange/ledger_api/service/tokenledger"
)

// CronLedgerSnapshot persists the aggregate counters of both ledgers for
// audit
func CronLedgerSnapshot(repo *queries.Repo, engine *issuance.Engine, ledger *tokenledger.Ledger) {
	if repo == nil {
		return
	}

	burnState := ledger.GetBurnState()
	snapshot := &model.LedgerSnapshot{
		TotalSupply: engine.TotalSupply(),
		TotalBurned: &postgres.Decimal{V: burnState.TotalBurned},
		BurnRate:    burnState.BurnRateBasisUnits,
		CreatedAt:   time.Now(),
	}

	tiers := make([]model.TierSupply, 0, model.TierCount)
	for tier := model.TierID(0); tier.Valid(); tier++ {
		current, max, err := engine.GetTierSupply(tier)
		if err != nil {
			continue
		}
		price, _ := engine.GetTierPrice(tier)
		uri, _ := engine.GetTierURI(tier)
		tiers = append(tiers, model.TierSupply{
			Tier:          tier,
			USDPriceCents: price,
			MaxSupply:     max,
			CurrentSupply: current,
			URI:           uri,
		})
	}

	if err := repo.SaveSnapshot(snapshot, tiers); err != nil {
		log.Error().Err(err).Str("package", "crons").Str("func", "CronLedgerSnapshot").
			Msg("Unable to persist ledger snapshot")
		return
	}
	log.Debug().Str("package", "crons").Str("func", "CronLedgerSnapshot").
		Uint64("total_supply", snapshot.TotalSupply).Msg("Ledger snapshot persisted")
}
