package data

// Publisher receives every signal emitted by the ledgers
type Publisher interface {
	Publish(ev Event)
}

// PublisherFunc adapts a function to the Publisher interface
type PublisherFunc func(ev Event)

func (f PublisherFunc) Publish(ev Event) { f(ev) }

type multiPublisher struct {
	sinks []Publisher
}

func (m *multiPublisher) Publish(ev Event) {
	for _, sink := range m.sinks {
		sink.Publish(ev)
	}
}

// MultiPublisher fans every event out to all given sinks in order. With no
// sinks it is a no-op publisher.
func MultiPublisher(sinks ...Publisher) Publisher {
	return &multiPublisher{sinks: sinks}
}
