package issuance

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"gitlab.com/tierpass-exchange/ledger_api/data"
	"gitlab.com/tierpass-exchange/ledger_api/model"
)

func TestEngine_SetTierPrice(t *testing.T) {
	engine, payments, events := initTestEngine(DefaultTiers())
	fundBuyer(payments, "buyer")

	Convey("It should change only future quotes", t, func() {
		So(engine.SetTierPrice(9, 80), ShouldBeNil)

		price, err := engine.GetTierPrice(9)
		So(err, ShouldBeNil)
		So(price, ShouldEqual, uint64(80))
		So(len(events.ofType(data.EventType_PriceUpdated)), ShouldEqual, 1)

		// 80 cents now quotes to 1.6 * 10^14
		_, err = engine.Issue("buyer", 9, 1, "", mustAmount("100000000000000"))
		So(err, ShouldEqual, ErrPaymentMismatch)
		_, err = engine.Issue("buyer", 9, 1, "", mustAmount("160000000000000"))
		So(err, ShouldBeNil)
	})

	Convey("It should reject an out of range tier", t, func() {
		So(engine.SetTierPrice(model.TierCount, 80), ShouldEqual, ErrInvalidTier)
	})
}

func TestEngine_SetTierURI(t *testing.T) {
	engine, _, events := initTestEngine(DefaultTiers())

	Convey("It should store the metadata URI per tier", t, func() {
		So(engine.SetTierURI(2, "ipfs://tier-2"), ShouldBeNil)

		uri, err := engine.GetTierURI(2)
		So(err, ShouldBeNil)
		So(uri, ShouldEqual, "ipfs://tier-2")
		So(len(events.ofType(data.EventType_URIUpdated)), ShouldEqual, 1)

		other, err := engine.GetTierURI(3)
		So(err, ShouldBeNil)
		So(other, ShouldEqual, "")
	})

	Convey("It should reject an out of range tier", t, func() {
		So(engine.SetTierURI(model.TierCount, "x"), ShouldEqual, ErrInvalidTier)
	})
}

func TestEngine_SetWallets(t *testing.T) {
	engine, payments, events := initTestEngine(DefaultTiers())
	fundBuyer(payments, "buyer")

	Convey("New wallets should receive the next disbursement", t, func() {
		engine.SetWallets(Wallets{Partner: "p2", Pool: "l2", Company: "c2"})
		So(engine.GetWallets().Partner, ShouldEqual, "p2")
		So(len(events.ofType(data.EventType_WalletUpdated)), ShouldEqual, 1)

		_, err := engine.Issue("buyer", 9, 1, "", mustAmount("100000000000000"))
		So(err, ShouldBeNil)
		So(payments.BalanceOf("p2").Cmp(mustAmount("2000000000000")), ShouldEqual, 0)
		So(payments.BalanceOf("partner").Sign(), ShouldEqual, 0)
	})
}
