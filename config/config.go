// Package config loads the service configuration.
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/adapters"
	"github.com/effective-security/finmcp/events"
	"github.com/effective-security/x/configloader"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
	"github.com/go-playground/validator/v10"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config of the service
type Config struct {
	Log      Log      `json:"log" yaml:"log"`
	HTTP     HTTP     `json:"http" yaml:"http"`
	MCP      MCP      `json:"mcp" yaml:"mcp"`
	Store    Store    `json:"store" yaml:"store"`
	Adapters Adapters `json:"adapters" yaml:"adapters"`
	Events   Events   `json:"events" yaml:"events"`
}

// Log configures the logger
type Log struct {
	// Level is one of TRACE, DEBUG, INFO, NOTICE, WARNING, ERROR
	Level string `json:"level" yaml:"level" validate:"oneof=TRACE DEBUG INFO NOTICE WARNING ERROR"`
	// Format is text or json
	Format string `json:"format" yaml:"format" validate:"oneof=text json"`
	// ToolCalls prints every tool call to stderr when set to brief or verbose,
	// verbose includes the arguments and the output
	ToolCalls string `json:"tool_calls,omitempty" yaml:"tool_calls,omitempty" validate:"omitempty,oneof=brief verbose"`
}

// HTTP configures the query API server
type HTTP struct {
	// Listen is the address of the query API, empty value disables the server
	Listen string `json:"listen" yaml:"listen"`
}

// MCP configures the MCP server
type MCP struct {
	Transport string `json:"transport" yaml:"transport" validate:"oneof=stdio http none"`
	Listen    string `json:"listen" yaml:"listen" validate:"required_if=Transport http"`
	Path      string `json:"path" yaml:"path"`
}

// Store configures the record store
type Store struct {
	Driver   string `json:"driver" yaml:"driver" validate:"oneof=memory redis postgres"`
	RedisURL string `json:"redis_url" yaml:"redis_url" validate:"required_if=Driver redis"`
	Prefix   string `json:"prefix" yaml:"prefix"`
	DSN      string `json:"dsn" yaml:"dsn" validate:"required_if=Driver postgres"`
}

// Endpoint configures an external service
type Endpoint struct {
	BaseURL string `json:"base_url" yaml:"base_url" validate:"required,url"`
	// Timeout is a duration string, like 10s
	Timeout string `json:"timeout" yaml:"timeout"`
}

// Fraud configures the fraud service
type Fraud struct {
	BaseURL string `json:"base_url" yaml:"base_url" validate:"required,url"`
	Timeout string `json:"timeout" yaml:"timeout"`
	// FailMode is the verdict when the service fails: open or closed
	FailMode string `json:"fail_mode" yaml:"fail_mode" validate:"oneof=open closed"`
}

// Adapters configures the external services
type Adapters struct {
	Extraction Endpoint `json:"extraction" yaml:"extraction"`
	Fraud      Fraud    `json:"fraud" yaml:"fraud"`
	Portfolio  Endpoint `json:"portfolio" yaml:"portfolio"`
	LeadRelay  Endpoint `json:"lead_relay" yaml:"lead_relay"`
	Brokerage  Endpoint `json:"brokerage" yaml:"brokerage"`
}

// Events configures the outcome events, nil Kafka disables them
type Events struct {
	Kafka *Kafka `json:"kafka,omitempty" yaml:"kafka,omitempty"`
}

// Kafka configures the producer
type Kafka struct {
	Brokers      []string `json:"brokers" yaml:"brokers" validate:"required,min=1,dive,required"`
	Topic        string   `json:"topic" yaml:"topic" validate:"required"`
	WriteTimeout string   `json:"write_timeout" yaml:"write_timeout"`
}

// Load returns the configuration from file, environment variables
// in values are expanded.
func Load(file string) (*Config, error) {
	cfg := new(Config)
	if err := configloader.UnmarshalAndExpand(file, cfg); err != nil {
		return nil, errors.WithMessagef(err, "failed to load config %s", file)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate sets the defaults and validates the values
func (c *Config) Validate() error {
	c.setDefaults()

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	durations := map[string]string{
		"adapters.extraction.timeout": c.Adapters.Extraction.Timeout,
		"adapters.fraud.timeout":      c.Adapters.Fraud.Timeout,
		"adapters.portfolio.timeout":  c.Adapters.Portfolio.Timeout,
		"adapters.lead_relay.timeout": c.Adapters.LeadRelay.Timeout,
		"adapters.brokerage.timeout":  c.Adapters.Brokerage.Timeout,
	}
	if c.Events.Kafka != nil {
		durations["events.kafka.write_timeout"] = c.Events.Kafka.WriteTimeout
	}
	for name, val := range durations {
		if _, err := parseDuration(val); err != nil {
			return errors.Wrapf(err, "invalid config: %s", name)
		}
	}
	return nil
}

func (c *Config) setDefaults() {
	c.Log.Level = strings.ToUpper(values.StringsCoalesce(c.Log.Level, "INFO"))
	c.Log.Format = strings.ToLower(values.StringsCoalesce(c.Log.Format, "text"))
	c.Log.ToolCalls = strings.ToLower(c.Log.ToolCalls)
	c.MCP.Transport = strings.ToLower(values.StringsCoalesce(c.MCP.Transport, "stdio"))
	c.MCP.Path = values.StringsCoalesce(c.MCP.Path, "/mcp")
	c.Store.Driver = strings.ToLower(values.StringsCoalesce(c.Store.Driver, DriverMemory))
	c.Adapters.Fraud.FailMode = strings.ToLower(values.StringsCoalesce(c.Adapters.Fraud.FailMode, string(adapters.FailOpen)))

	c.Adapters.Extraction.Timeout = values.StringsCoalesce(c.Adapters.Extraction.Timeout, adapters.ShortTimeout.String())
	c.Adapters.Fraud.Timeout = values.StringsCoalesce(c.Adapters.Fraud.Timeout, adapters.ShortTimeout.String())
	c.Adapters.LeadRelay.Timeout = values.StringsCoalesce(c.Adapters.LeadRelay.Timeout, adapters.ShortTimeout.String())
	c.Adapters.Portfolio.Timeout = values.StringsCoalesce(c.Adapters.Portfolio.Timeout, adapters.LongTimeout.String())
	c.Adapters.Brokerage.Timeout = values.StringsCoalesce(c.Adapters.Brokerage.Timeout, adapters.LongTimeout.String())
}

// LogLevel returns the logger level
func (l Log) LogLevel() xlog.LogLevel {
	switch l.Level {
	case "TRACE":
		return xlog.TRACE
	case "DEBUG":
		return xlog.DEBUG
	case "NOTICE":
		return xlog.NOTICE
	case "WARNING":
		return xlog.WARNING
	case "ERROR":
		return xlog.ERROR
	default:
		return xlog.INFO
	}
}

// Adapter returns the adapter configuration of the endpoint
func (e Endpoint) Adapter() adapters.Config {
	d, _ := parseDuration(e.Timeout)
	return adapters.Config{BaseURL: e.BaseURL, Timeout: d}
}

// Adapter returns the adapter configuration of the fraud service
func (f Fraud) Adapter() adapters.Config {
	return Endpoint{BaseURL: f.BaseURL, Timeout: f.Timeout}.Adapter()
}

// Publisher returns the Kafka producer configuration
func (k *Kafka) Publisher() events.KafkaConfig {
	d, _ := parseDuration(k.WriteTimeout)
	return events.KafkaConfig{Brokers: k.Brokers, Topic: k.Topic, WriteTimeout: d}
}

// parseDuration returns 0 for the empty value
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if d < 0 {
		return 0, errors.Errorf("negative duration: %s", s)
	}
	return d, nil
}
