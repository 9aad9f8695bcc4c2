// Package config loads the daemon configuration from a YAML file, with
// CUBENET_ prefixed environment variables taking precedence.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port      int           `mapstructure:"port"`
		KeyFile   string        `mapstructure:"key_file"`
		CertFile  string        `mapstructure:"cert_file"`
		ReusePort bool          `mapstructure:"reuse_port"`
		KeepAlive time.Duration `mapstructure:"keepalive"`
	} `mapstructure:"server"`

	Reactor struct {
		WaitTimeout    time.Duration `mapstructure:"wait_timeout"`
		BatchSize      int           `mapstructure:"batch_size"`
		ReadBufferSize int           `mapstructure:"read_buffer_size"`
	} `mapstructure:"reactor"`

	Codec struct {
		MaxMessageSize int  `mapstructure:"max_message_size"`
		Obfuscate      bool `mapstructure:"obfuscate"`
	} `mapstructure:"codec"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

var defaults = map[string]interface{}{
	"server.port":              7000,
	"server.key_file":          "",
	"server.cert_file":         "",
	"server.reuse_port":        false,
	"server.keepalive":         time.Duration(0),
	"reactor.wait_timeout":     100 * time.Millisecond,
	"reactor.batch_size":       128,
	"reactor.read_buffer_size": 0x10000,
	"codec.max_message_size":   1 << 20,
	"codec.obfuscate":          false,
	"log.level":                "info",
}

// LoadConfig reads path, or only defaults and environment when path is
// empty. Keys map to variables like CUBENET_SERVER_PORT.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("CUBENET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &c, nil
}
