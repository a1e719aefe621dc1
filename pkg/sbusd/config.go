package sbusd

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/robotalks/sbus.go/pkg/sbus"
	"github.com/robotalks/sbus.go/pkg/serial"
	"github.com/robotalks/sbus.go/pkg/telemetry/mqtt"
)

// Config defines the configurations for the daemon.
type Config struct {
	// ID identifies the receiver in published topics.
	// Empty means the hashed machine ID.
	ID string
	// Port is the serial device path, e.g. /dev/ttyAMA0.
	Port   string
	Serial serial.PortOptions
	// FrameTimeout drops a stale partial frame and clears lock.
	FrameTimeout time.Duration
	// MQTTBrokerURL, e.g. mqtt://host:port/topic-prefix.
	// Publishing is disabled when empty.
	MQTTBrokerURL   string
	PublishInterval time.Duration
	// HTTPAddr serves /channels and /metrics. Disabled when empty.
	HTTPAddr string
}

var defaultConfig = Config{
	Port:            "/dev/ttyAMA0",
	FrameTimeout:    sbus.DefaultTimeout,
	PublishInterval: mqtt.DefaultPublishInterval,
	HTTPAddr:        ":8025",
}

func init() {
	if val := os.Getenv("SBUS_ID"); val != "" {
		defaultConfig.ID = val
	}
	if val := os.Getenv("SBUS_PORT"); val != "" {
		defaultConfig.Port = val
	}
	if val := os.Getenv("SBUS_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val, ok := os.LookupEnv("SBUS_HTTP_ADDR"); ok {
		defaultConfig.HTTPAddr = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Receiver ID, default is derived from machine ID.")
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial port the receiver is connected to.")
	flag.IntVar(&defaultConfig.Serial.BaudRate, "baud", defaultConfig.Serial.BaudRate, "Baud rate, 0 for SBUS default.")
	flag.StringVar(&defaultConfig.Serial.Parity, "parity", defaultConfig.Serial.Parity, "Parity N, E or O, empty for SBUS default.")
	flag.DurationVar(&defaultConfig.FrameTimeout, "frame-timeout", defaultConfig.FrameTimeout, "Drop partial frame and lock after this long without data.")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, empty to disable publishing.")
	flag.DurationVar(&defaultConfig.PublishInterval, "publish-interval", defaultConfig.PublishInterval, "Interval between published channel events.")
	flag.StringVar(&defaultConfig.HTTPAddr, "http", defaultConfig.HTTPAddr, "HTTP listen address, empty to disable.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

type fileConfig struct {
	ID              string             `toml:"id"`
	Port            string             `toml:"port"`
	Serial          serial.PortOptions `toml:"serial"`
	FrameTimeout    string             `toml:"frame_timeout"`
	MQTTBrokerURL   string             `toml:"mqtt_url"`
	PublishInterval string             `toml:"publish_interval"`
	HTTPAddr        string             `toml:"http_addr"`
}

// LoadFile overlays settings defined in a TOML file.
// Keys absent from the file keep their current values.
func (c *Config) LoadFile(path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if meta.IsDefined("id") {
		c.ID = strings.TrimSpace(raw.ID)
	}
	if meta.IsDefined("port") {
		c.Port = strings.TrimSpace(raw.Port)
	}
	if meta.IsDefined("serial", "baud_rate") {
		c.Serial.BaudRate = raw.Serial.BaudRate
	}
	if meta.IsDefined("serial", "data_bits") {
		c.Serial.DataBits = raw.Serial.DataBits
	}
	if meta.IsDefined("serial", "stop_bits") {
		c.Serial.StopBits = raw.Serial.StopBits
	}
	if meta.IsDefined("serial", "parity") {
		c.Serial.Parity = raw.Serial.Parity
	}
	if meta.IsDefined("frame_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.FrameTimeout))
		if err != nil {
			return fmt.Errorf("parse frame_timeout: %w", err)
		}
		c.FrameTimeout = d
	}
	if meta.IsDefined("mqtt_url") {
		c.MQTTBrokerURL = strings.TrimSpace(raw.MQTTBrokerURL)
	}
	if meta.IsDefined("publish_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.PublishInterval))
		if err != nil {
			return fmt.Errorf("parse publish_interval: %w", err)
		}
		c.PublishInterval = d
	}
	if meta.IsDefined("http_addr") {
		c.HTTPAddr = strings.TrimSpace(raw.HTTPAddr)
	}
	return nil
}

// Validate checks the config is runnable.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("serial port must be specified")
	}
	if _, err := c.Serial.Normalize(); err != nil {
		return err
	}
	if c.FrameTimeout <= 0 {
		return fmt.Errorf("invalid frame timeout %v", c.FrameTimeout)
	}
	if c.MQTTBrokerURL != "" && c.PublishInterval <= 0 {
		return fmt.Errorf("invalid publish interval %v", c.PublishInterval)
	}
	return nil
}
