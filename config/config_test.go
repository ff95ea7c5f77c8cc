package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var allKeys = []string{
	"DOTSBOX_ADDRESS",
	"DOTSBOX_LISTEN",
	"DOTSBOX_TIMEOUT_MS",
	"DOTSBOX_DEADZONE",
	"DOTSBOX_BUTTON_SAMPLE_MS",
	"DOTSBOX_POLL_MS",
	"DOTSBOX_LOG_FILE",
	"DOTSBOX_BAUD",
}

// clearEnv blanks every key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	got := FromEnv()
	want := Config{
		Timeout:           3000 * time.Millisecond,
		Deadzone:          64,
		ButtonSampleDelay: 200 * time.Millisecond,
		PollInterval:      10 * time.Millisecond,
		BaudRate:          9600,
	}
	if *got != want {
		t.Errorf("got %+v, want %+v", *got, want)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOTSBOX_ADDRESS", "tcp://board:4000")
	t.Setenv("DOTSBOX_TIMEOUT_MS", "1500")
	t.Setenv("DOTSBOX_DEADZONE", "100")
	t.Setenv("DOTSBOX_POLL_MS", "5")
	t.Setenv("DOTSBOX_LOG_FILE", "/tmp/dotsbox.log")

	got := FromEnv()
	if got.Address != "tcp://board:4000" {
		t.Errorf("Address = %q", got.Address)
	}
	if got.Timeout != 1500*time.Millisecond {
		t.Errorf("Timeout = %v, want 1.5s", got.Timeout)
	}
	if got.Deadzone != 100 {
		t.Errorf("Deadzone = %d, want 100", got.Deadzone)
	}
	if got.PollInterval != 5*time.Millisecond {
		t.Errorf("PollInterval = %v, want 5ms", got.PollInterval)
	}
	if got.LogFile != "/tmp/dotsbox.log" {
		t.Errorf("LogFile = %q", got.LogFile)
	}
}

func TestFromEnvRejectsBadNumbers(t *testing.T) {
	tests := []struct {
		value string
	}{
		{"soon"},
		{"0"},
		{"-20"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DOTSBOX_TIMEOUT_MS", tt.value)
			if got := FromEnv().Timeout; got != 3*time.Second {
				t.Errorf("Timeout = %v, want the 3s default", got)
			}
		})
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are set, even to "".
	os.Unsetenv("DOTSBOX_ADDRESS")
	os.Unsetenv("DOTSBOX_BAUD")
	t.Cleanup(func() {
		os.Unsetenv("DOTSBOX_ADDRESS")
		os.Unsetenv("DOTSBOX_BAUD")
	})

	path := filepath.Join(t.TempDir(), "test.env")
	content := "DOTSBOX_ADDRESS=serial:///dev/ttyACM0\nDOTSBOX_BAUD=115200\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Address != "serial:///dev/ttyACM0" {
		t.Errorf("Address = %q", cfg.Address)
	}
	if cfg.BaudRate != 115200 {
		t.Errorf("BaudRate = %d, want 115200", cfg.BaudRate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("Load with a missing file: %v", err)
	}
}

func TestTransportAddress(t *testing.T) {
	tests := []struct {
		address string
		baud    int
		want    string
	}{
		{"", 9600, ""},
		{"tcp://board:4000", 9600, "tcp://board:4000"},
		{"serial:///dev/ttyACM0", 9600, "serial:///dev/ttyACM0?baud=9600"},
		{"serial:///dev/ttyACM0?baud=57600", 9600, "serial:///dev/ttyACM0?baud=57600"},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			c := &Config{Address: tt.address, BaudRate: tt.baud}
			if got := c.TransportAddress(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
