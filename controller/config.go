package controller

const defaultSubscriberBuffer = 8

// Config holds controller initialization parameters.
type Config struct {
	// Observer names an entry in the observability registry ("noop", "slog",
	// or anything the application registered).
	Observer string `json:"observer,omitempty"`
	// SubscriberBuffer is the channel capacity handed to each snapshot
	// subscriber. Slow subscribers skip intermediate snapshots rather than
	// block publication.
	SubscriberBuffer int `json:"subscriber_buffer,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Observer:         "noop",
		SubscriberBuffer: defaultSubscriberBuffer,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Observer != "" {
		c.Observer = source.Observer
	}
	if source.SubscriberBuffer > 0 {
		c.SubscriberBuffer = source.SubscriberBuffer
	}
}
