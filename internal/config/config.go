package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the directory holding the wallet config, the wallet
	// storage and, by default, nothing else
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// TorProxyKey is the <host:port> address of the SOCKS5 port of the Tor
	// daemon every remote connection goes through
	TorProxyKey = "TOR_PROXY"
	// NoTorKey disables Tor and connects directly to remote services. Only
	// meant for local development
	NoTorKey = "NO_TOR"
	// RequestTimeoutKey is the timeout of every single network call
	RequestTimeoutKey = "REQUEST_TIMEOUT"
	// TransparentPoolKey enables the unshielded balance in reports
	TransparentPoolKey = "TRANSPARENT_POOL"
	// BirthdayRoundingKey, when greater than 1, rounds the birthday height
	// down to a multiple of its value before asking the server for its tree
	// state, so the server does not learn the exact birthday
	BirthdayRoundingKey = "BIRTHDAY_ROUNDING"
	// TextWidthKey is the width report lines are wrapped to
	TextWidthKey = "TEXT_WIDTH"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("zecw", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("ZECW")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(TorProxyKey, "127.0.0.1:9050")
	vip.SetDefault(NoTorKey, false)
	vip.SetDefault(RequestTimeoutKey, 30*time.Second)
	vip.SetDefault(TransparentPoolKey, true)
	vip.SetDefault(BirthdayRoundingKey, 0)
	vip.SetDefault(TextWidthKey, 80)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	return nil
}

// Set overrides a value, usually from a command line flag.
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetUint32(key string) uint32 {
	return vip.GetUint32(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// AllSettings returns every key with its effective value, sorted by key.
func AllSettings() [][2]string {
	keys := []string{
		DatadirKey, LogLevelKey, TorProxyKey, NoTorKey, RequestTimeoutKey,
		TransparentPoolKey, BirthdayRoundingKey, TextWidthKey,
	}
	sort.Strings(keys)

	settings := make([][2]string, 0, len(keys))
	for _, key := range keys {
		settings = append(settings, [2]string{key, fmt.Sprint(vip.Get(key))})
	}
	return settings
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	logLevel := GetInt(LogLevelKey)
	if logLevel < 0 || logLevel > 6 {
		return fmt.Errorf("%s must be in range [0, 6]", LogLevelKey)
	}

	if !GetBool(NoTorKey) && GetString(TorProxyKey) == "" {
		return fmt.Errorf("missing tor proxy address")
	}

	if GetDuration(RequestTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be a positive duration", RequestTimeoutKey)
	}

	if GetInt(BirthdayRoundingKey) < 0 {
		return fmt.Errorf("%s must not be negative", BirthdayRoundingKey)
	}

	if GetInt(TextWidthKey) < 20 {
		return fmt.Errorf("%s must be at least 20", TextWidthKey)
	}

	return nil
}
