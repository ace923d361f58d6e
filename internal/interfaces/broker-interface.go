package interfaces

type ConsumerHandler interface {
	HandleMessage(message string) error
}

type ProducerHandler interface {
	PublishMessage(key, value []byte) error
}

// Publisher is a producer that owns a connection to release on shutdown.
type Publisher interface {
	ProducerHandler
	Close() error
}
