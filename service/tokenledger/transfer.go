package tokenledger

import (
	"github.com/ericlagergren/decimal"
	"github.com/rs/zerolog/log"
	"gitlab.com/tierpass-exchange/ledger_api/conv"
	"gitlab.com/tierpass-exchange/ledger_api/data"
	"gitlab.com/tierpass-exchange/ledger_api/model"
)

// Transfer moves amount between two accounts, deducting the automatic burn
// from the transferred amount while the lifetime allowance lasts. Transfers
// from the void account are mints and permanently disabled; transfers to the
// void account are fee exempt burns. Once totalBurned reaches the cap every
// transfer is fee free.
func (l *Ledger) Transfer(from, to string, amount *decimal.Big) error {
	l.stateLock.Lock()
	defer l.stateLock.Unlock()

	if l.paused {
		return ErrContractPaused
	}
	if amount == nil || amount.IsNaN(0) || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if from == model.ZeroAddress {
		return ErrMintingDisabled
	}
	if from == "" || to == "" {
		return ErrInvalidAccount
	}

	balance, ok := l.balances[from]
	if !ok || balance.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}

	if to == model.ZeroAddress {
		balance.Sub(balance, amount)
		l.credit(model.ZeroAddress, amount)
		return nil
	}

	burnAmount := conv.NewAmount()
	if l.burnRate > 0 && l.totalBurned.Cmp(l.maxTotalBurn) < 0 {
		burnAmount = conv.DivTrunc(
			conv.MulUint(amount, uint64(l.burnRate)),
			conv.NewAmountFromUint(BurnPrecision),
		)
		// never overshoot the lifetime cap
		headroom := conv.Sub(l.maxTotalBurn, l.totalBurned)
		if burnAmount.Cmp(headroom) > 0 {
			burnAmount = headroom
		}
	}

	balance.Sub(balance, amount)
	if burnAmount.Sign() > 0 {
		l.credit(model.ZeroAddress, burnAmount)
		l.credit(to, conv.Sub(amount, burnAmount))
		l.totalBurned.Add(l.totalBurned, burnAmount)

		now := l.clock()
		l.events.Publish(&data.BurnExecuted{
			From:        from,
			To:          to,
			Volume:      amount.String(),
			AmountBurnt: burnAmount.String(),
			TotalBurnt:  l.totalBurned.String(),
			Timestamp:   now.Unix(),
		})
		if l.totalBurned.Cmp(l.maxTotalBurn) == 0 {
			l.events.Publish(&data.BurnCapReached{
				TotalBurnt: l.totalBurned.String(),
				Timestamp:  now.Unix(),
			})
			log.Info().Str("package", "tokenledger").Str("func", "Transfer").
				Str("total_burnt", l.totalBurned.String()).Msg("Lifetime burn cap reached")
		}
	} else {
		l.credit(to, amount)
	}
	return nil
}

// Mint is permanently disabled after the genesis issuance
func (l *Ledger) Mint(to string, amount *decimal.Big) error {
	return ErrMintingDisabled
}

// SetBurnRate changes the burn rate for all subsequent transfers. Historical
// transfers are unaffected.
func (l *Ledger) SetBurnRate(rate uint16) {
	l.stateLock.Lock()
	l.burnRate = rate
	l.stateLock.Unlock()

	l.events.Publish(&data.BurnRateChanged{Rate: rate})
	log.Info().Str("package", "tokenledger").Str("func", "SetBurnRate").
		Uint16("rate", rate).Msg("Burn rate updated")
}

// Pause blocks every transfer until Unpause
func (l *Ledger) Pause() {
	l.stateLock.Lock()
	l.paused = true
	l.stateLock.Unlock()
}

// Unpause godoc
func (l *Ledger) Unpause() {
	l.stateLock.Lock()
	l.paused = false
	l.stateLock.Unlock()
}

// Paused godoc
func (l *Ledger) Paused() bool {
	l.stateLock.RLock()
	defer l.stateLock.RUnlock()
	return l.paused
}

// BalanceOf returns a copy of the account balance
func (l *Ledger) BalanceOf(account string) *decimal.Big {
	l.stateLock.RLock()
	defer l.stateLock.RUnlock()

	balance, ok := l.balances[account]
	if !ok {
		return conv.NewAmount()
	}
	return conv.Clone(balance)
}

// InitialSupply returns the fixed genesis supply
func (l *Ledger) InitialSupply() *decimal.Big {
	return conv.Clone(l.initialSupply)
}

// CirculatingSupply returns the supply outside the void account
func (l *Ledger) CirculatingSupply() *decimal.Big {
	l.stateLock.RLock()
	defer l.stateLock.RUnlock()

	void, ok := l.balances[model.ZeroAddress]
	if !ok {
		return conv.Clone(l.initialSupply)
	}
	return conv.Sub(l.initialSupply, void)
}

// GetBurnState returns a snapshot of the burn counters
func (l *Ledger) GetBurnState() BurnState {
	l.stateLock.RLock()
	defer l.stateLock.RUnlock()

	return BurnState{
		BurnRateBasisUnits: l.burnRate,
		TotalBurned:        conv.Clone(l.totalBurned),
		MaxTotalBurn:       conv.Clone(l.maxTotalBurn),
		BurnPrecision:      BurnPrecision,
		Paused:             l.paused,
	}
}

// BurnRate godoc
func (l *Ledger) BurnRate() uint16 {
	l.stateLock.RLock()
	defer l.stateLock.RUnlock()
	return l.burnRate
}

// TotalBurned returns the lifetime automatic burn counter
func (l *Ledger) TotalBurned() *decimal.Big {
	l.stateLock.RLock()
	defer l.stateLock.RUnlock()
	return conv.Clone(l.totalBurned)
}

// MaxTotalBurn returns the lifetime burn ceiling
func (l *Ledger) MaxTotalBurn() *decimal.Big {
	return conv.Clone(l.maxTotalBurn)
}

// Balances returns a copy of every account balance, the void account included
func (l *Ledger) Balances() map[string]*decimal.Big {
	l.stateLock.RLock()
	defer l.stateLock.RUnlock()

	result := make(map[string]*decimal.Big, len(l.balances))
	for account, balance := range l.balances {
		result[account] = conv.Clone(balance)
	}
	return result
}

func (l *Ledger) credit(account string, amount *decimal.Big) {
	balance, ok := l.balances[account]
	if !ok {
		balance = conv.NewAmount()
		l.balances[account] = balance
	}
	balance.Add(balance, amount)
}
