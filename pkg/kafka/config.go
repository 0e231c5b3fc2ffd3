package kafka

// Config holds the broker list and the topic a producer writes to.
type Config struct {
	Brokers []string
	Topic   string
}
