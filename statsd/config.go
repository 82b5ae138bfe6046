package statsd

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultHost is the default value of Config.Host.
	DefaultHost = "127.0.0.1"
	// DefaultPort is the default value of Config.Port.
	DefaultPort uint16 = 8125
	// DefaultPeriodSeconds is the default collection period: one minute.
	DefaultPeriodSeconds = 60
	// MinPeriodSeconds is the shortest accepted collection period.
	MinPeriodSeconds = 5
	// MaxPeriodSeconds is the longest accepted collection period: one hour.
	MaxPeriodSeconds = 60 * 60
)

// ErrInvalidPeriod is returned by Config.Validate for a period outside
// [MinPeriodSeconds, MaxPeriodSeconds].
var ErrInvalidPeriod = errors.New("statsd: invalid period")

// Config holds the resolved settings a Client is built from.
type Config struct {
	// Enable turns the client on. A disabled client never opens a socket.
	Enable bool `yaml:"enable"`
	// Host is a host name or an IPv4/IPv6 literal.
	Host string `yaml:"host"`
	Port uint16 `yaml:"port"`
	// NodeTag replaces the {HOSTNAME} token in metric keys.
	NodeTag string `yaml:"node_tag"`
	// Namespace is prepended to every metric key.
	Namespace string `yaml:"namespace"`
	// PeriodSeconds drives the periodic collection done by the owner of the
	// client. The client itself never reads it.
	PeriodSeconds int `yaml:"period_seconds"`
}

// DefaultConfig returns the default configuration: disabled, 127.0.0.1:8125,
// no node tag, no namespace, one minute period.
func DefaultConfig() Config {
	return Config{
		Enable:        false,
		Host:          DefaultHost,
		Port:          DefaultPort,
		PeriodSeconds: DefaultPeriodSeconds,
	}
}

// Validate checks the collection period.
func (c Config) Validate() error {
	if c.PeriodSeconds < MinPeriodSeconds || c.PeriodSeconds > MaxPeriodSeconds {
		return fmt.Errorf("%w: %ds not in [%d, %d]", ErrInvalidPeriod, c.PeriodSeconds, MinPeriodSeconds, MaxPeriodSeconds)
	}
	return nil
}

// Period returns the collection period clamped to the accepted range.
func (c Config) Period() time.Duration {
	p := c.PeriodSeconds
	if p < MinPeriodSeconds {
		p = MinPeriodSeconds
	} else if p > MaxPeriodSeconds {
		p = MaxPeriodSeconds
	}
	return time.Duration(p) * time.Second
}
