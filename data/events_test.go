package data

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestToBinary(t *testing.T) {
	Convey("It should wrap the payload in a typed envelope", t, func() {
		msg, err := ToBinary(&BurnCapReached{TotalBurnt: "100", Timestamp: 1700000000})
		So(err, ShouldBeNil)
		So(string(msg), ShouldEqual, `{"type":"burn_cap_reached","payload":{"total_burnt":"100","timestamp":1700000000}}`)
	})
}

func TestMultiPublisher(t *testing.T) {
	Convey("It should fan every event out to all sinks in order", t, func() {
		order := []string{}
		first := PublisherFunc(func(ev Event) { order = append(order, "first") })
		second := PublisherFunc(func(ev Event) { order = append(order, "second") })

		publisher := MultiPublisher(first, second)
		publisher.Publish(&BurnRateChanged{Rate: 1})
		publisher.Publish(&BurnRateChanged{Rate: 2})

		So(order, ShouldResemble, []string{"first", "second", "first", "second"})
	})

	Convey("With no sinks it should be a no-op", t, func() {
		So(func() { MultiPublisher().Publish(&BurnRateChanged{}) }, ShouldNotPanic)
	})
}
