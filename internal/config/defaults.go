package config

// Default values for optional configuration fields.
const (
	DefaultName         = "tickbot"
	DefaultLogLevel     = "info"
	DefaultMaxLogLength = 3750
	DefaultConversions  = 1
	DefaultLimit        = 50
	DefaultFeedProvider = "stub"
	DefaultMaxTicks     = 1000
)

// Default returns the tutorial product set: RAINFOREST_RESIN around a fixed 10000 and KELP with no belief.
func Default() *Config {
	return &Config{
		App:       App{Name: DefaultName, LogLevel: DefaultLogLevel},
		Telemetry: Telemetry{MaxLogLength: DefaultMaxLogLength},
		Trader:    Trader{Conversions: DefaultConversions},
		Products: []Product{
			{Symbol: "RAINFOREST_RESIN", Limit: DefaultLimit, FairValue: FairValue{Mode: "fixed", Price: "10000"}},
			{Symbol: "KELP", Limit: DefaultLimit, FairValue: FairValue{Mode: "none"}},
		},
		Feed: Feed{Provider: DefaultFeedProvider, MaxTicks: DefaultMaxTicks},
	}
}
