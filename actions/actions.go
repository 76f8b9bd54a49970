package actions

import (
	"github.com/gin-gonic/gin"

	"gitlab.com/tierpass-exchange/ledger_api/config"
	"gitlab.com/tierpass-exchange/ledger_api/oracle"
	"gitlab.com/tierpass-exchange/ledger_api/queries"
	"gitlab.com/tierpass-exchange/ledger_api/service/issuance"
	"gitlab.com/tierpass-exchange/ledger_api/service/tokenledger"
	"gitlab.com/tierpass-exchange/ledger_api/treasury"
)

// Actions structure
type Actions struct {
	cfg      config.Config
	engine   *issuance.Engine
	token    *tokenledger.Ledger
	treasury *treasury.Ledger
	feed     *oracle.App
	repo     *queries.Repo
}

// NewActions constructor
func NewActions(
	cfg config.Config,
	engine *issuance.Engine,
	token *tokenledger.Ledger,
	treasuryLedger *treasury.Ledger,
	feed *oracle.App,
	repo *queries.Repo,
) *Actions {
	return &Actions{
		cfg:      cfg,
		engine:   engine,
		token:    token,
		treasury: treasuryLedger,
		feed:     feed,
		repo:     repo,
	}
}

// Ping godoc
func (actions *Actions) Ping(c *gin.Context) {
	c.JSON(200, gin.H{"message": "pong"})
}
