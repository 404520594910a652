package config

import (
	"strings"
	"time"
)

// Option describes a single configuration entry: its viper key, the
// corresponding CLI flag name, the compiled default, and a
// human-readable description shown in --help output.
type Option struct {
	Key         string
	Flag        string
	Default     any
	Description string
}

// CacheOptions apply to every command that builds a cache.
var CacheOptions = []Option{
	{Key: keyCacheCapacity, Flag: toFlag(keyCacheCapacity), Default: 1024, Description: "Maximum number of cached entries"},
	{Key: keyCacheReportInterval, Flag: toFlag(keyCacheReportInterval), Default: time.Duration(0), Description: "Interval between cache stats log lines (0 disables)"},
}

// ServerOptions defines the configuration entries of the serve command.
var ServerOptions = []Option{
	{Key: keyServerAddress, Flag: toFlag(keyServerAddress), Default: ":8380", Description: "Server listen address"},
	{Key: keyServerAllowedOrigins, Flag: toFlag(keyServerAllowedOrigins), Default: []string{}, Description: "Server allowed origins"},
	{Key: keyServerMaxValueBytes, Flag: toFlag(keyServerMaxValueBytes), Default: 1 << 20, Description: "Largest accepted value in bytes"},
}

// BenchOptions defines the configuration entries of the bench command.
var BenchOptions = []Option{
	{Key: keyBenchOperations, Flag: toFlag(keyBenchOperations), Default: 100000, Description: "Number of lookups to replay"},
	{Key: keyBenchKeyspace, Flag: toFlag(keyBenchKeyspace), Default: 4096, Description: "Number of distinct keys in the workload"},
	{Key: keyBenchWorkers, Flag: toFlag(keyBenchWorkers), Default: 4, Description: "Concurrent workers for the shared-cache phase"},
	{Key: keyBenchSeed, Flag: toFlag(keyBenchSeed), Default: int64(1), Description: "Workload random seed"},
}

// LogOptions are bound as persistent flags on the root command.
var LogOptions = []Option{
	{Key: keyLogLevel, Flag: toFlag(keyLogLevel), Default: "info", Description: "Log level (debug, info, warn, error)"},
	{Key: keyLogFormat, Flag: toFlag(keyLogFormat), Default: "text", Description: "Log format (text, json)"},
}

// toFlag converts a viper key like "server.max_value_bytes" into a
// CLI flag like "max-value-bytes" by lower-casing, replacing dots and
// underscores with hyphens, and stripping the section prefix. Log
// keys keep theirs so that "log.level" becomes "log-level".
func toFlag(key string) string {
	flag := strings.ToLower(key)
	flag = strings.ReplaceAll(flag, ".", "-")
	flag = strings.ReplaceAll(flag, "_", "-")
	flag = strings.TrimPrefix(flag, "cache-")
	flag = strings.TrimPrefix(flag, "server-")
	flag = strings.TrimPrefix(flag, "bench-")
	return flag
}
