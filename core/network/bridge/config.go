package bridge

// Config holds configuration for the in-world RPC bridge.
type Config struct {
	// Endpoint is the base URL of the bridge (e.g. http://127.0.0.1:8438).
	Endpoint string `mapstructure:"endpoint" default:"http://127.0.0.1:8438"`
	// TimeoutSeconds is the per-call timeout in seconds. Bridge calls
	// proxy synchronous in-world operations, so this should stay generous.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
