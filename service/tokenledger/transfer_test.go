package tokenledger

import (
	"testing"

	"github.com/ericlagergren/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"gitlab.com/tierpass-exchange/ledger_api/conv"
	"gitlab.com/tierpass-exchange/ledger_api/data"
	"gitlab.com/tierpass-exchange/ledger_api/model"
)

type capture struct {
	events []data.Event
}

func (c *capture) Publish(ev data.Event) {
	c.events = append(c.events, ev)
}

func (c *capture) countOf(t data.EventType) int {
	n := 0
	for _, ev := range c.events {
		if ev.Type() == t {
			n++
		}
	}
	return n
}

func initTestLedger(supply uint64, rate uint16) (*Ledger, *capture) {
	events := &capture{}
	l, err := Init("owner", conv.NewAmountFromUint(supply), rate, events, nil)
	if err != nil {
		panic(err)
	}
	return l, events
}

func sumBalances(l *Ledger) *decimal.Big {
	sum := conv.NewAmount()
	for _, balance := range l.Balances() {
		sum = conv.Add(sum, balance)
	}
	return sum
}

func TestLedger_Init(t *testing.T) {
	Convey("It should mint the whole genesis supply to the owner", t, func() {
		l, _ := initTestLedger(1000000000, 1)
		So(l.BalanceOf("owner").Cmp(conv.NewAmountFromUint(1000000000)), ShouldEqual, 0)
		So(l.InitialSupply().Cmp(conv.NewAmountFromUint(1000000000)), ShouldEqual, 0)
		So(l.MaxTotalBurn().Cmp(conv.NewAmountFromUint(100000000)), ShouldEqual, 0)
		So(l.TotalBurned().Sign(), ShouldEqual, 0)
	})

	Convey("It should reject the void account and empty owners", t, func() {
		_, err := Init(model.ZeroAddress, conv.NewAmountFromUint(1), 0, &capture{}, nil)
		So(err, ShouldEqual, ErrInvalidAccount)
		_, err = Init("", conv.NewAmountFromUint(1), 0, &capture{}, nil)
		So(err, ShouldEqual, ErrInvalidAccount)
	})

	Convey("It should reject a non positive genesis supply", t, func() {
		_, err := Init("owner", conv.NewAmount(), 0, &capture{}, nil)
		So(err, ShouldEqual, ErrInvalidAmount)
	})
}

func TestLedger_TransferBurnsFromTheAmount(t *testing.T) {
	l, events := initTestLedger(1000000000, 1)

	Convey("A rate of 1 should burn one part in 100000 of the transfer", t, func() {
		err := l.Transfer("owner", "bob", conv.NewAmountFromUint(1000000))
		So(err, ShouldBeNil)

		So(l.BalanceOf("bob").Cmp(conv.NewAmountFromUint(999990)), ShouldEqual, 0)
		So(l.BalanceOf(model.ZeroAddress).Cmp(conv.NewAmountFromUint(10)), ShouldEqual, 0)
		So(l.TotalBurned().Cmp(conv.NewAmountFromUint(10)), ShouldEqual, 0)
		So(events.countOf(data.EventType_BurnExecuted), ShouldEqual, 1)
	})

	Convey("The sum over all balances should never change", t, func() {
		So(sumBalances(l).Cmp(l.InitialSupply()), ShouldEqual, 0)
	})

	Convey("An amount too small to burn should move in full", t, func() {
		err := l.Transfer("owner", "carol", conv.NewAmountFromUint(99999))
		So(err, ShouldBeNil)
		So(l.BalanceOf("carol").Cmp(conv.NewAmountFromUint(99999)), ShouldEqual, 0)
		So(l.TotalBurned().Cmp(conv.NewAmountFromUint(10)), ShouldEqual, 0)
	})

	Convey("A zero rate should burn nothing", t, func() {
		l.SetBurnRate(0)
		err := l.Transfer("owner", "dave", conv.NewAmountFromUint(1000000))
		So(err, ShouldBeNil)
		So(l.BalanceOf("dave").Cmp(conv.NewAmountFromUint(1000000)), ShouldEqual, 0)
	})
}

func TestLedger_BurnCapClampsTheLastBurn(t *testing.T) {
	// genesis 1000, lifetime cap 100
	l, events := initTestLedger(1000, 30000)

	Convey("Burns below the remaining headroom apply in full", t, func() {
		err := l.Transfer("owner", "bob", conv.NewAmountFromUint(300))
		So(err, ShouldBeNil)
		So(l.BalanceOf("bob").Cmp(conv.NewAmountFromUint(210)), ShouldEqual, 0)
		So(l.TotalBurned().Cmp(conv.NewAmountFromUint(90)), ShouldEqual, 0)
		So(events.countOf(data.EventType_BurnCapReached), ShouldEqual, 0)
	})

	Convey("The burn crossing the cap is clamped to the headroom", t, func() {
		err := l.Transfer("owner", "carol", conv.NewAmountFromUint(300))
		So(err, ShouldBeNil)
		So(l.BalanceOf("carol").Cmp(conv.NewAmountFromUint(290)), ShouldEqual, 0)
		So(l.TotalBurned().Cmp(conv.NewAmountFromUint(100)), ShouldEqual, 0)

		Convey("The cap signal fires exactly once", func() {
			So(events.countOf(data.EventType_BurnCapReached), ShouldEqual, 1)
		})
	})

	Convey("Every later transfer is fee free", t, func() {
		err := l.Transfer("bob", "dave", conv.NewAmountFromUint(210))
		So(err, ShouldBeNil)
		So(l.BalanceOf("dave").Cmp(conv.NewAmountFromUint(210)), ShouldEqual, 0)
		So(l.TotalBurned().Cmp(conv.NewAmountFromUint(100)), ShouldEqual, 0)
		So(events.countOf(data.EventType_BurnCapReached), ShouldEqual, 1)
	})

	Convey("Conservation holds through the cap", t, func() {
		So(sumBalances(l).Cmp(l.InitialSupply()), ShouldEqual, 0)
	})
}

func TestLedger_ManualBurn(t *testing.T) {
	l, events := initTestLedger(1000, 1)

	Convey("A transfer to the void account is a fee exempt burn", t, func() {
		err := l.Transfer("owner", model.ZeroAddress, conv.NewAmountFromUint(100))
		So(err, ShouldBeNil)

		So(l.BalanceOf(model.ZeroAddress).Cmp(conv.NewAmountFromUint(100)), ShouldEqual, 0)
		So(l.CirculatingSupply().Cmp(conv.NewAmountFromUint(900)), ShouldEqual, 0)

		Convey("It should not consume the lifetime allowance", func() {
			So(l.TotalBurned().Sign(), ShouldEqual, 0)
			So(events.countOf(data.EventType_BurnExecuted), ShouldEqual, 0)
		})
	})
}

func TestLedger_TransferValidations(t *testing.T) {
	l, _ := initTestLedger(1000, 1)

	Convey("Minting is permanently disabled", t, func() {
		So(l.Mint("bob", conv.NewAmountFromUint(1)), ShouldEqual, ErrMintingDisabled)
		So(l.Transfer(model.ZeroAddress, "bob", conv.NewAmountFromUint(1)), ShouldEqual, ErrMintingDisabled)
	})

	Convey("It should reject invalid amounts", t, func() {
		So(l.Transfer("owner", "bob", nil), ShouldEqual, ErrInvalidAmount)
		So(l.Transfer("owner", "bob", conv.NewAmount().SetNaN(true)), ShouldEqual, ErrInvalidAmount)
		neg, _ := conv.NewAmountFromString("-1")
		So(l.Transfer("owner", "bob", neg), ShouldEqual, ErrInvalidAmount)
	})

	Convey("It should reject empty accounts", t, func() {
		So(l.Transfer("", "bob", conv.NewAmountFromUint(1)), ShouldEqual, ErrInvalidAccount)
		So(l.Transfer("owner", "", conv.NewAmountFromUint(1)), ShouldEqual, ErrInvalidAccount)
	})

	Convey("It should reject transfers above the sender balance", t, func() {
		So(l.Transfer("owner", "bob", conv.NewAmountFromUint(1001)), ShouldEqual, ErrInsufficientFunds)
		So(l.Transfer("stranger", "bob", conv.NewAmountFromUint(1)), ShouldEqual, ErrInsufficientFunds)
	})
}

func TestLedger_Pause(t *testing.T) {
	l, _ := initTestLedger(1000, 1)

	Convey("A paused ledger rejects every transfer", t, func() {
		l.Pause()
		So(l.Paused(), ShouldBeTrue)
		So(l.Transfer("owner", "bob", conv.NewAmountFromUint(1)), ShouldEqual, ErrContractPaused)

		Convey("and accepts them again after unpause", func() {
			l.Unpause()
			So(l.Paused(), ShouldBeFalse)
			So(l.Transfer("owner", "bob", conv.NewAmountFromUint(1)), ShouldBeNil)
		})
	})
}

func TestLedger_SetBurnRate(t *testing.T) {
	l, events := initTestLedger(1000000000, 1)

	Convey("A rate change applies to subsequent transfers only", t, func() {
		err := l.Transfer("owner", "bob", conv.NewAmountFromUint(100000))
		So(err, ShouldBeNil)
		So(l.TotalBurned().Cmp(conv.NewAmountFromUint(1)), ShouldEqual, 0)

		l.SetBurnRate(10)
		So(l.BurnRate(), ShouldEqual, uint16(10))
		So(events.countOf(data.EventType_BurnRateChanged), ShouldEqual, 1)

		err = l.Transfer("owner", "bob", conv.NewAmountFromUint(100000))
		So(err, ShouldBeNil)
		So(l.TotalBurned().Cmp(conv.NewAmountFromUint(11)), ShouldEqual, 0)
	})
}

func TestLedger_GetBurnState(t *testing.T) {
	l, _ := initTestLedger(1000000000, 5)

	Convey("It should expose a consistent snapshot of the burn counters", t, func() {
		state := l.GetBurnState()
		So(state.BurnRateBasisUnits, ShouldEqual, uint16(5))
		So(state.BurnPrecision, ShouldEqual, uint64(BurnPrecision))
		So(state.MaxTotalBurn.Cmp(conv.NewAmountFromUint(100000000)), ShouldEqual, 0)
		So(state.Paused, ShouldBeFalse)

		Convey("Mutating the snapshot should not leak into the ledger", func() {
			state.TotalBurned.SetUint64(999)
			So(l.TotalBurned().Sign(), ShouldEqual, 0)
		})
	})
}
