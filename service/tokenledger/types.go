package tokenledger

import (
	"errors"
	"sync"
	"time"

	"github.com/ericlagergren/decimal"
	"gitlab.com/tierpass-exchange/ledger_api/conv"
	"gitlab.com/tierpass-exchange/ledger_api/data"
	"gitlab.com/tierpass-exchange/ledger_api/model"
)

// BurnPrecision is the fixed divisor of the burn rate. A rate of 1 burns
// 1/100000 of every transfer.
const BurnPrecision = 100000

// maxBurnDivisor fixes the lifetime burn ceiling at a tenth of the genesis
// supply
const maxBurnDivisor = 10

var (
	ErrContractPaused    = errors.New("CONTRACT_PAUSED")
	ErrMintingDisabled   = errors.New("MINTING_DISABLED")
	ErrInsufficientFunds = errors.New("INSUFFICIENT_FUNDS")
	ErrInvalidAmount     = errors.New("INVALID_AMOUNT")
	ErrInvalidAccount    = errors.New("INVALID_ACCOUNT")
)

// Ledger is the fee-on-transfer value ledger. The whole genesis supply is
// minted to the owner at construction and minting is permanently disabled
// from then on, so every later operation is a pure move between accounts:
// the sum over all balances, the void account included, never changes.
type Ledger struct {
	stateLock     *sync.RWMutex
	balances      map[string]*decimal.Big
	initialSupply *decimal.Big
	maxTotalBurn  *decimal.Big
	totalBurned   *decimal.Big
	burnRate      uint16
	paused        bool
	events        data.Publisher
	clock         func() time.Time
}

// BurnState is the read model of the process wide burn counters
type BurnState struct {
	BurnRateBasisUnits uint16       `json:"burn_rate_basis_units"`
	TotalBurned        *decimal.Big `json:"total_burned"`
	MaxTotalBurn       *decimal.Big `json:"max_total_burn"`
	BurnPrecision      uint64       `json:"burn_precision"`
	Paused             bool         `json:"paused"`
}

// Init performs the one time genesis issuance to the owner account
func Init(owner string, initialSupply *decimal.Big, burnRate uint16, events data.Publisher, clock func() time.Time) (*Ledger, error) {
	if owner == "" || owner == model.ZeroAddress {
		return nil, ErrInvalidAccount
	}
	if !conv.IsPositive(initialSupply) {
		return nil, ErrInvalidAmount
	}
	if clock == nil {
		clock = time.Now
	}

	l := &Ledger{
		stateLock:     &sync.RWMutex{},
		balances:      map[string]*decimal.Big{},
		initialSupply: conv.Clone(initialSupply),
		maxTotalBurn:  conv.DivTrunc(initialSupply, conv.NewAmountFromUint(maxBurnDivisor)),
		totalBurned:   conv.NewAmount(),
		burnRate:      burnRate,
		events:        events,
		clock:         clock,
	}
	l.balances[owner] = conv.Clone(initialSupply)
	return l, nil
}
