package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to upper-cased keys when reading the environment.
const EnvPrefix = "LRUCACHE"

const configName = "config"

var allOptions = [][]Option{CacheOptions, ServerOptions, BenchOptions, LogOptions}

type Config struct {
	v *viper.Viper
}

// New loads defaults, the optional config file and the environment.
// Flags are layered on later through BindFlags.
func New() (*Config, error) {
	return newWithPaths(".", "/etc/lrucache/")
}

func newWithPaths(paths ...string) (*Config, error) {
	v := viper.New()
	for _, group := range allOptions {
		for _, o := range group {
			v.SetDefault(o.Key, o.Default)
		}
	}

	if err := readConfigFile(v, paths); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{v: v}, nil
}

// readConfigFile loads config.yaml from the first path that has one.
// A missing file is not an error.
func readConfigFile(v *viper.Viper, paths []string) error {
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err == nil || errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("read %s: %w", v.ConfigFileUsed(), err)
}

// BindFlags registers one flag per option on fs and binds it to the
// option's key, so a flag set on the command line wins over every
// other source.
func (c *Config) BindFlags(fs *pflag.FlagSet, options []Option) error {
	for _, o := range options {
		if err := addFlag(fs, o); err != nil {
			return err
		}
		if err := c.v.BindPFlag(o.Key, fs.Lookup(o.Flag)); err != nil {
			return fmt.Errorf("bind flag --%s: %w", o.Flag, err)
		}
	}
	return nil
}

func addFlag(fs *pflag.FlagSet, o Option) error {
	switch d := o.Default.(type) {
	case string:
		fs.String(o.Flag, d, o.Description)
	case int:
		fs.Int(o.Flag, d, o.Description)
	case int64:
		fs.Int64(o.Flag, d, o.Description)
	case bool:
		fs.Bool(o.Flag, d, o.Description)
	case []string:
		fs.StringSlice(o.Flag, d, o.Description)
	case time.Duration:
		fs.Duration(o.Flag, d, o.Description)
	default:
		return fmt.Errorf("option %s: unsupported default type %T", o.Key, o.Default)
	}
	return nil
}

// ConfigFileUsed returns the path of the loaded config file, or "".
func (c *Config) ConfigFileUsed() string {
	return c.v.ConfigFileUsed()
}

func (c *Config) CacheCapacity() int                 { return c.v.GetInt(keyCacheCapacity) }
func (c *Config) CacheReportInterval() time.Duration { return c.v.GetDuration(keyCacheReportInterval) }

func (c *Config) ServerAddress() string          { return c.v.GetString(keyServerAddress) }
func (c *Config) ServerAllowedOrigins() []string { return c.v.GetStringSlice(keyServerAllowedOrigins) }
func (c *Config) ServerMaxValueBytes() int       { return c.v.GetInt(keyServerMaxValueBytes) }

func (c *Config) BenchOperations() int { return c.v.GetInt(keyBenchOperations) }
func (c *Config) BenchKeyspace() int   { return c.v.GetInt(keyBenchKeyspace) }
func (c *Config) BenchWorkers() int    { return c.v.GetInt(keyBenchWorkers) }
func (c *Config) BenchSeed() int64     { return c.v.GetInt64(keyBenchSeed) }

func (c *Config) LogLevel() string  { return c.v.GetString(keyLogLevel) }
func (c *Config) LogFormat() string { return c.v.GetString(keyLogFormat) }
