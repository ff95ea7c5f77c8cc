// Package config loads settings for the dotsbox client and console from a
// .env file and the environment.
package config

import (
	"errors"
	"io/fs"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/thomaslorincz/arduino-dots-and-boxes/dotsprotocol"
	"github.com/thomaslorincz/arduino-dots-and-boxes/joystick"
)

// Config holds every tunable setting. Zero values are never used; Load
// fills in defaults.
type Config struct {
	Address           string // Transport address for the client; empty discovers a console socket
	Listen            string // Console listen address; empty uses /tmp/dotsbox-<pid>.sock
	Timeout           time.Duration
	Deadzone          int
	ButtonSampleDelay time.Duration
	PollInterval      time.Duration
	LogFile           string
	BaudRate          int
}

// Load reads the given .env files (".env" when none are named) into the
// environment and builds a Config from it. Missing files are not an error;
// variables already set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the environment alone.
func FromEnv() *Config {
	return &Config{
		Address:           GetEnv("DOTSBOX_ADDRESS", ""),
		Listen:            GetEnv("DOTSBOX_LISTEN", ""),
		Timeout:           getEnvAsMillis("DOTSBOX_TIMEOUT_MS", dotsprotocol.DefaultTimeout),
		Deadzone:          getEnvAsPositiveInt("DOTSBOX_DEADZONE", joystick.DefaultDeadzone),
		ButtonSampleDelay: getEnvAsMillis("DOTSBOX_BUTTON_SAMPLE_MS", joystick.DefaultButtonSampleDelay),
		PollInterval:      getEnvAsMillis("DOTSBOX_POLL_MS", dotsprotocol.DefaultPollInterval),
		LogFile:           GetEnv("DOTSBOX_LOG_FILE", ""),
		BaudRate:          getEnvAsPositiveInt("DOTSBOX_BAUD", dotsprotocol.DefaultBaudRate),
	}
}

// TransportAddress returns Address, with BaudRate added to serial
// addresses that do not name a baud rate themselves.
func (c *Config) TransportAddress() string {
	if !strings.HasPrefix(c.Address, "serial://") {
		return c.Address
	}
	u, err := url.Parse(c.Address)
	if err != nil {
		return c.Address
	}
	q := u.Query()
	if q.Get("baud") != "" {
		return c.Address
	}
	q.Set("baud", strconv.Itoa(c.BaudRate))
	u.RawQuery = q.Encode()
	return u.String()
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsPositiveInt(key string, defaultValue int) int {
	value := GetEnvAsInt(key, defaultValue)
	if value <= 0 {
		log.Printf("Non-positive value for %s: %d, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsMillis(key string, defaultValue time.Duration) time.Duration {
	ms := getEnvAsPositiveInt(key, int(defaultValue/time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}
