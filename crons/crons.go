package crons

import (
	"github.com/robfig/cron"

	"gitlab.com/tierpass-exchange/ledger_api/queries"
	"gitlab.com/tierpass-exchange/ledger_api/service/issuance"
	"gitlab.com/tierpass-exchange/ledger_api/service/tokenledger"
)

var cronService *cron.Cron

// Start initiates the crons based on the given schedule configuration
func Start(schedules map[string]string, repo *queries.Repo, engine *issuance.Engine, ledger *tokenledger.Ledger) {
	cronService = cron.New()
	for id, schedule := range schedules {
		callback := GetCronByID(id, repo, engine, ledger)
		_ = cronService.AddFunc(schedule, callback)
	}
	cronService.Start()
}

// GetCronByID get a function to execute based on the id
func GetCronByID(id string, repo *queries.Repo, engine *issuance.Engine, ledger *tokenledger.Ledger) func() {
	switch id {
	case "ledger_snapshot":
		return func() {
			CronLedgerSnapshot(repo, engine, ledger)
		}
	}
	return func() {}
}

// Close godoc
func Close() {
	if cronService != nil {
		cronService.Stop()
	}
}
