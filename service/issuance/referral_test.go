package issuance

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"gitlab.com/tierpass-exchange/ledger_api/conv"
	"gitlab.com/tierpass-exchange/ledger_api/data"
)

func TestEngine_ReferralRecord(t *testing.T) {
	Convey("Given two referred issuances by the same buyer", t, func() {
		engine, payments, events := initTestEngine(DefaultTiers())
		fundBuyer(payments, "buyer")

		// tier 3: referral leg is 39200000000000
		_, err := engine.Issue("buyer", 3, 1, "anna", mustAmount("800000000000000"))
		So(err, ShouldBeNil)
		_, err = engine.Issue("buyer", 3, 1, "anna", mustAmount("800000000000000"))
		So(err, ShouldBeNil)

		record := engine.GetReferralRecord("anna")

		Convey("The buyer should count as one referral", func() {
			So(record.TotalReferrals, ShouldEqual, uint64(1))
		})

		Convey("Every paid leg should append to the history", func() {
			So(len(record.History), ShouldEqual, 2)
			So(record.History[0].User, ShouldEqual, "buyer")
			So(record.History[1].User, ShouldEqual, "buyer")
		})

		Convey("The earned total should equal the sum of the history entries", func() {
			sum := conv.NewAmount()
			for _, entry := range record.History {
				sum = conv.Add(sum, entry.Amount)
			}
			So(record.TotalEarned.Cmp(sum), ShouldEqual, 0)
			So(record.TotalEarned.Cmp(mustAmount("78400000000000")), ShouldEqual, 0)
		})

		Convey("The earned total should match the referrer's paid balance", func() {
			So(payments.BalanceOf("anna").Cmp(record.TotalEarned), ShouldEqual, 0)
		})

		Convey("Each paid leg should emit the accrued running totals", func() {
			accrued := events.ofType(data.EventType_ReferralAccrued)
			So(len(accrued), ShouldEqual, 2)

			last := accrued[1].(*data.ReferralRewardsAccrued)
			So(last.Referrer, ShouldEqual, "anna")
			So(last.TotalReferrals, ShouldEqual, uint64(1))
			earned, ok := conv.NewAmountFromString(last.TotalEarned)
			So(ok, ShouldBeTrue)
			So(earned.Cmp(mustAmount("78400000000000")), ShouldEqual, 0)
		})
	})
}

func TestEngine_ReferrerBinding(t *testing.T) {
	engine, payments, _ := initTestEngine(DefaultTiers())
	fundBuyer(payments, "buyer")

	Convey("The first referrer should bind the buyer permanently", t, func() {
		_, err := engine.Issue("buyer", 9, 1, "anna", mustAmount("100000000000000"))
		So(err, ShouldBeNil)

		referrer, ok := engine.GetReferrerOf("buyer")
		So(ok, ShouldBeTrue)
		So(referrer, ShouldEqual, "anna")

		Convey("A later purchase through another referrer should not rebind", func() {
			_, err := engine.Issue("buyer", 9, 1, "boris", mustAmount("100000000000000"))
			So(err, ShouldBeNil)

			referrer, ok := engine.GetReferrerOf("buyer")
			So(ok, ShouldBeTrue)
			So(referrer, ShouldEqual, "anna")
			So(engine.GetReferralRecord("anna").TotalReferrals, ShouldEqual, uint64(1))

			// boris is still paid for the leg he brought in
			So(engine.GetReferralRecord("boris").TotalReferrals, ShouldEqual, uint64(0))
			So(len(engine.GetReferralRecord("boris").History), ShouldEqual, 1)
		})
	})

	Convey("An unreferred buyer has no binding", t, func() {
		_, ok := engine.GetReferrerOf("stranger")
		So(ok, ShouldBeFalse)
	})
}

func TestEngine_GetReferralRecordSnapshot(t *testing.T) {
	engine, payments, _ := initTestEngine(DefaultTiers())
	fundBuyer(payments, "buyer")

	Convey("Mutating a returned record should not leak into the ledger", t, func() {
		_, err := engine.Issue("buyer", 9, 1, "anna", mustAmount("100000000000000"))
		So(err, ShouldBeNil)

		record := engine.GetReferralRecord("anna")
		record.TotalEarned.SetUint64(0)
		record.History[0].User = "mallory"

		fresh := engine.GetReferralRecord("anna")
		So(fresh.TotalEarned.Sign(), ShouldEqual, 1)
		So(fresh.History[0].User, ShouldEqual, "buyer")
	})

	Convey("An unknown referrer gets an empty record", t, func() {
		record := engine.GetReferralRecord("nobody")
		So(record.TotalReferrals, ShouldEqual, uint64(0))
		So(record.TotalEarned.Sign(), ShouldEqual, 0)
		So(record.History, ShouldBeEmpty)
	})
}
