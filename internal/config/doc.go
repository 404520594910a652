// Package config provides unified configuration loading from files,
// environment variables, and CLI flags using viper and pflag.
//
// Resolution order (highest wins):
//  1. CLI flags
//  2. Environment variables (prefix LRUCACHE_)
//  3. Config file (config.yaml in . or /etc/lrucache/)
//  4. Compiled defaults
//
// A key's environment variable is the prefix plus the key upper-cased
// with dots as underscores: cache.capacity is LRUCACHE_CACHE_CAPACITY.
package config

// Viper keys for the cache itself.
const (
	keyCacheCapacity       = "cache.capacity"
	keyCacheReportInterval = "cache.report_interval"
)

// Viper keys for the HTTP server.
const (
	keyServerAddress        = "server.address"
	keyServerAllowedOrigins = "server.allowed_origins"
	keyServerMaxValueBytes  = "server.max_value_bytes"
)

// Viper keys for the bench workload.
const (
	keyBenchOperations = "bench.operations"
	keyBenchKeyspace   = "bench.keyspace"
	keyBenchWorkers    = "bench.workers"
	keyBenchSeed       = "bench.seed"
)

// Viper keys for logging.
const (
	keyLogLevel  = "log.level"
	keyLogFormat = "log.format"
)
