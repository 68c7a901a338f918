package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

//Config represents options given in the environment
type Config struct {
	ListenAddr string //addr format used for net.Dial; required
	Prefix     string //url prefix to mount api to without trailing slash

	RemoteEndpoint string        //live chat service URL; empty uses the local generator only
	RequestTimeout time.Duration `default:"2.2s"`
	StreamTimeout  time.Duration `default:"12s"`

	LogLevel string `default:"info"` //debug, info, warn, or error

	TelemetryLimit     int `default:"24"` //samples kept in memory
	TelemetrySQLDriver string
	TelemetrySQLDSN    string

	NATSURL     string
	NATSSubject string `default:"chat.transport.reply"`
}

func checkEmpty(val, name string) error {
	if val == "" {
		return fmt.Errorf("CHAT_%s must be configured", name)
	}
	return nil
}

func readConfig() (*Config, error) {
	config := new(Config)
	if err := envconfig.Process("CHAT", config); err != nil {
		return nil, fmt.Errorf("Error reading configuration from environment: %w", err)
	}

	if err := checkEmpty(config.ListenAddr, "LISTENADDR"); err != nil {
		return nil, err
	}
	config.Prefix = strings.TrimSuffix(config.Prefix, "/")

	if config.RequestTimeout <= 0 || config.StreamTimeout <= 0 {
		return nil, fmt.Errorf("CHAT_REQUESTTIMEOUT and CHAT_STREAMTIMEOUT must be positive")
	}

	if config.TelemetrySQLDriver != "" {
		if err := checkEmpty(config.TelemetrySQLDSN, "TELEMETRYSQLDSN"); err != nil {
			return nil, err
		}
		if config.TelemetrySQLDriver == "mysql" && !strings.Contains(config.TelemetrySQLDSN, "parseTime=true") {
			return nil, fmt.Errorf("mysql DSN must contain \"parseTime=true\"")
		}
	}

	return config, nil
}
