package transition

const (
	defaultCommitThreshold  = 0.35
	defaultSubscriberBuffer = 8
)

// Config holds transition machine initialization parameters.
type Config struct {
	// Observer names an entry in the observability registry.
	Observer string `json:"observer,omitempty"`
	// CommitThreshold is the gesture progress at or beyond which a release
	// commits the back navigation. Must lie in (0, 1].
	CommitThreshold float64 `json:"commit_threshold,omitempty"`
	// SubscriberBuffer is the channel capacity handed to each state
	// subscriber.
	SubscriberBuffer int `json:"subscriber_buffer,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Observer:         "noop",
		CommitThreshold:  defaultCommitThreshold,
		SubscriberBuffer: defaultSubscriberBuffer,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Observer != "" {
		c.Observer = source.Observer
	}
	if source.CommitThreshold > 0 {
		c.CommitThreshold = source.CommitThreshold
	}
	if source.SubscriberBuffer > 0 {
		c.SubscriberBuffer = source.SubscriberBuffer
	}
}
