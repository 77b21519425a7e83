package config

import "time"

// Built-in defaults applied after all sources are merged.
const (
	DefaultTokenIssuer          = "rent-pe-easy"
	DefaultAccessTokenDuration  = 15 * time.Minute
	DefaultRefreshTokenDuration = 24 * time.Hour
	DefaultPasswordHashCost     = 12

	DefaultDBDriver     = DriverPostgres
	DefaultMaxOpenConns = 10
	DefaultMaxIdleConns = 4

	DefaultRequestTimeout = 30 * time.Second

	DefaultRateLimitCapacity       = 20
	DefaultRateLimitRefillInterval = 3 * time.Second
	DefaultRateLimitTTL            = 10 * time.Minute
	DefaultRateLimitPrefix         = "rl"

	DefaultTokenCleanupInterval = time.Hour
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:          DefaultTokenIssuer,
			AccessTokenDuration:  DefaultAccessTokenDuration,
			RefreshTokenDuration: DefaultRefreshTokenDuration,
			PasswordHashCost:     DefaultPasswordHashCost,
		},
		Storage: Storage{
			DB: DB{
				Driver:       DefaultDBDriver,
				MaxOpenConns: DefaultMaxOpenConns,
				MaxIdleConns: DefaultMaxIdleConns,
			},
		},
		Server: Server{
			RequestTimeout: DefaultRequestTimeout,
		},
		RateLimit: RateLimit{
			Capacity:       DefaultRateLimitCapacity,
			RefillInterval: DefaultRateLimitRefillInterval,
			TTL:            DefaultRateLimitTTL,
			Prefix:         DefaultRateLimitPrefix,
		},
		Workers: Workers{
			TokenCleanupInterval: DefaultTokenCleanupInterval,
		},
	}
}
