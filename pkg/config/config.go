package config

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/cuemby/fdbexporter/pkg/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every setting name to form its environment
// variable, e.g. FDB_EXPORTER_PORT
const EnvPrefix = "FDB_EXPORTER"

// Setting keys, shared by flags, environment and config files
const (
	KeyConfig       = "config"
	KeyPort         = "port"
	KeyAddr         = "addr"
	KeyCluster      = "cluster"
	KeyDelaySec     = "delay-sec"
	KeyStatusFile   = "status-file"
	KeyFDBCLI       = "fdbcli"
	KeyFetchTimeout = "fetch-timeout"
	KeyLogLevel     = "log-level"
	KeyLogJSON      = "log-json"
)

// Defaults
const (
	DefaultPort         = 9090
	DefaultAddr         = "0.0.0.0"
	DefaultDelaySec     = 15
	DefaultFDBCLI       = "fdbcli"
	DefaultFetchTimeout = 10
)

// Config is the validated exporter configuration
type Config struct {
	Port         uint16
	Addr         netip.Addr
	ClusterFile  string
	Delay        time.Duration
	StatusFile   string
	FDBCLI       string
	FetchTimeout time.Duration
	LogLevel     log.Level
	LogJSON      bool
}

// ListenAddr is the host:port the HTTP server binds to
func (c *Config) ListenAddr() string {
	return netip.AddrPortFrom(c.Addr, c.Port).String()
}

// Flags returns the flag set of every setting, with defaults
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("fdb-exporter", pflag.ContinueOnError)
	fs.String(KeyConfig, "", "config file (yaml, toml or json)")
	fs.IntP(KeyPort, "p", DefaultPort, "port to serve metrics on")
	fs.StringP(KeyAddr, "a", DefaultAddr, "IP address to serve metrics on")
	fs.StringP(KeyCluster, "c", "", "FoundationDB cluster file (default: fdbcli's own lookup)")
	fs.IntP(KeyDelaySec, "d", DefaultDelaySec, "seconds to wait after a scrape before the next one")
	fs.String(KeyStatusFile, "", "read the status document from this file instead of running fdbcli")
	fs.String(KeyFDBCLI, DefaultFDBCLI, "fdbcli executable")
	fs.Int(KeyFetchTimeout, DefaultFetchTimeout, "seconds fdbcli may take to answer")
	fs.String(KeyLogLevel, string(log.InfoLevel), "log level (debug, info, warn, error)")
	fs.Bool(KeyLogJSON, false, "log in JSON instead of console format")
	return fs
}

// NewViper binds fs into a fresh viper instance. Flags set on the command
// line win over environment variables, which win over the config file,
// which wins over flag defaults.
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	// Checked after the prefixed names
	if err := v.BindEnv(KeyCluster, "FDB_CLUSTER_FILE"); err != nil {
		return nil, err
	}
	if err := v.BindEnv(KeyDelaySec, EnvPrefix+"_DELAY"); err != nil {
		return nil, err
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	return v, nil
}

// Load validates the settings held by v
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		ClusterFile: v.GetString(KeyCluster),
		StatusFile:  v.GetString(KeyStatusFile),
		FDBCLI:      v.GetString(KeyFDBCLI),
		LogJSON:     v.GetBool(KeyLogJSON),
	}

	port, err := strconv.ParseUint(strings.TrimSpace(v.GetString(KeyPort)), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: must be an integer between 0 and 65535", KeyPort, v.GetString(KeyPort))
	}
	cfg.Port = uint16(port)

	cfg.Addr, err = netip.ParseAddr(strings.TrimSpace(v.GetString(KeyAddr)))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyAddr, err)
	}

	delay, err := seconds(v, KeyDelaySec)
	if err != nil {
		return nil, err
	}
	cfg.Delay = delay

	timeout, err := seconds(v, KeyFetchTimeout)
	if err != nil {
		return nil, err
	}
	cfg.FetchTimeout = timeout

	cfg.LogLevel, err = log.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}

	if cfg.StatusFile == "" && cfg.FDBCLI == "" {
		return nil, fmt.Errorf("%s must not be empty unless %s is set", KeyFDBCLI, KeyStatusFile)
	}

	return cfg, nil
}

// seconds reads a positive whole number of seconds. Fractions and units are
// rejected.
func seconds(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive whole number of seconds", key, raw)
	}
	return time.Duration(n) * time.Second, nil
}
