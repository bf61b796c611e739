package dynamo

// Config holds configuration for the Store.
type Config struct {
	// Table is the DynamoDB table holding all records.
	// Default: "lattice_records"
	//
	// The table needs a string partition key named "pk" and, when TTL
	// writes are used, TTL enabled on the "ttl" attribute.
	Table string
}

// DefaultConfig returns the default table configuration.
func DefaultConfig() Config {
	return Config{
		Table: "lattice_records",
	}
}

// validate ensures config values are usable.
func (c *Config) validate() {
	if c.Table == "" {
		c.Table = "lattice_records"
	}
}
