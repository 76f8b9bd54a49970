package treasury

import (
	"errors"
	"sync"

	"github.com/ericlagergren/decimal"
	"github.com/rs/zerolog/log"
	"gitlab.com/tierpass-exchange/ledger_api/conv"
)

var (
	ErrInsufficientFunds = errors.New("INSUFFICIENT_FUNDS")
	ErrInvalidAmount     = errors.New("INVALID_AMOUNT")
	ErrTransferRejected  = errors.New("TRANSFER_REJECTED")
	ErrSessionClosed     = errors.New("SESSION_CLOSED")
)

// Payer is the value transfer collaborator used by the issuance engine. Legs
// paid through a session become visible only on Commit, which mirrors the
// revert-on-failure semantics of the underlying payment substrate: an aborted
// session leaves no observable effect.
type Payer interface {
	Begin(payer string, total *decimal.Big) (Session, error)
}

// Session is one in-flight disbursement
type Session interface {
	Pay(to string, amount *decimal.Big) error
	Commit() error
	Abort()
}

// Ledger tracks native value balances per account
type Ledger struct {
	balancesLock *sync.RWMutex
	balances     map[string]*decimal.Big
	rejecting    map[string]bool
}

// New creates an empty native value ledger
func New() *Ledger {
	return &Ledger{
		balancesLock: &sync.RWMutex{},
		balances:     map[string]*decimal.Big{},
		rejecting:    map[string]bool{},
	}
}

// Deposit credits an account with native value
func (l *Ledger) Deposit(account string, amount *decimal.Big) error {
	if !conv.IsPositive(amount) {
		return ErrInvalidAmount
	}

	l.balancesLock.Lock()
	defer l.balancesLock.Unlock()
	l.credit(account, amount)
	return nil
}

// BalanceOf returns a copy of the account balance
func (l *Ledger) BalanceOf(account string) *decimal.Big {
	l.balancesLock.RLock()
	defer l.balancesLock.RUnlock()

	balance, ok := l.balances[account]
	if !ok {
		return conv.NewAmount()
	}
	return conv.Clone(balance)
}

// SetRejecting marks an account as unable to receive value. A disbursement
// leg towards such an account fails and aborts the whole session.
func (l *Ledger) SetRejecting(account string, rejecting bool) {
	l.balancesLock.Lock()
	l.rejecting[account] = rejecting
	l.balancesLock.Unlock()
}

// Begin opens a payment session that will debit total from the payer account
// once every leg has been accepted
func (l *Ledger) Begin(payer string, total *decimal.Big) (Session, error) {
	if !conv.IsPositive(total) {
		return nil, ErrInvalidAmount
	}

	l.balancesLock.RLock()
	balance, ok := l.balances[payer]
	l.balancesLock.RUnlock()
	if !ok || balance.Cmp(total) < 0 {
		return nil, ErrInsufficientFunds
	}

	return &session{
		ledger:  l,
		payer:   payer,
		total:   conv.Clone(total),
		staged:  map[string]*decimal.Big{},
		order:   []string{},
		balance: conv.NewAmount(),
	}, nil
}

func (l *Ledger) credit(account string, amount *decimal.Big) {
	balance, ok := l.balances[account]
	if !ok {
		balance = conv.NewAmount()
		l.balances[account] = balance
	}
	balance.Add(balance, amount)
}

type session struct {
	ledger  *Ledger
	payer   string
	total   *decimal.Big
	staged  map[string]*decimal.Big
	order   []string
	balance *decimal.Big
	closed  bool
}

// Pay stages one leg of the disbursement
func (s *session) Pay(to string, amount *decimal.Big) error {
	if s.closed {
		return ErrSessionClosed
	}
	if amount == nil || amount.IsNaN(0) || amount.Sign() < 0 {
		return ErrInvalidAmount
	}

	s.ledger.balancesLock.RLock()
	rejecting := s.ledger.rejecting[to]
	s.ledger.balancesLock.RUnlock()
	if rejecting {
		log.Warn().Str("package", "treasury").Str("func", "Pay").
			Str("to", to).Str("amount", amount.String()).
			Msg("Recipient rejected the transfer leg")
		return ErrTransferRejected
	}

	staged, ok := s.staged[to]
	if !ok {
		staged = conv.NewAmount()
		s.staged[to] = staged
		s.order = append(s.order, to)
	}
	staged.Add(staged, amount)
	s.balance.Add(s.balance, amount)
	return nil
}

// Commit debits the payer and applies every staged leg
func (s *session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.balance.Cmp(s.total) != 0 {
		return ErrInvalidAmount
	}
	s.closed = true

	s.ledger.balancesLock.Lock()
	defer s.ledger.balancesLock.Unlock()

	payerBalance, ok := s.ledger.balances[s.payer]
	if !ok || payerBalance.Cmp(s.total) < 0 {
		return ErrInsufficientFunds
	}
	payerBalance.Sub(payerBalance, s.total)
	for _, to := range s.order {
		s.ledger.credit(to, s.staged[to])
	}
	return nil
}

// Abort drops every staged leg without touching any balance
func (s *session) Abort() {
	s.closed = true
}
