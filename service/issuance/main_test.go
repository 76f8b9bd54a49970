package issuance

import (
	"time"

	"github.com/ericlagergren/decimal"
	"github.com/rs/zerolog/log"

	"gitlab.com/tierpass-exchange/ledger_api/conv"
	"gitlab.com/tierpass-exchange/ledger_api/data"
	"gitlab.com/tierpass-exchange/ledger_api/oracle"
	"gitlab.com/tierpass-exchange/ledger_api/treasury"
)

// feed price of 5000.00000 USD per native unit: one USD cent quotes to exactly
// 2 * 10^12 native units
const testFeedPrice = "500000000"

var testWallets = Wallets{Partner: "partner", Pool: "pool", Company: "company"}

type stubFeed struct {
	price *decimal.Big
	err   error
}

func (f *stubFeed) GetCurrentPrice() (oracle.Quote, error) {
	if f.err != nil {
		return oracle.Quote{}, f.err
	}
	return oracle.Quote{
		Price:     conv.Clone(f.price),
		Timestamp: time.Now(),
		Decimals:  oracle.FeedDecimals,
	}, nil
}

type capture struct {
	events []data.Event
}

func (c *capture) Publish(ev data.Event) {
	c.events = append(c.events, ev)
}

func (c *capture) ofType(t data.EventType) []data.Event {
	matched := []data.Event{}
	for _, ev := range c.events {
		if ev.Type() == t {
			matched = append(matched, ev)
		}
	}
	return matched
}

func initTestEngine(tiers []TierParams) (*Engine, *treasury.Ledger, *capture) {
	feed := &stubFeed{price: mustAmount(testFeedPrice)}
	payments := treasury.New()
	events := &capture{}

	engine, err := Init(tiers, testWallets, feed, payments, events, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to init the test engine")
	}
	return engine, payments, events
}

func mustAmount(s string) *decimal.Big {
	a, ok := conv.NewAmountFromString(s)
	if !ok {
		log.Fatal().Str("value", s).Msg("invalid test amount")
	}
	return a
}

func fundBuyer(payments *treasury.Ledger, buyer string) {
	_ = payments.Deposit(buyer, mustAmount("100000000000000000000"))
}
