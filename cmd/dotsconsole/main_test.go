package main

import (
	"os"
	"strings"
	"testing"
)

func TestFullTitle(t *testing.T) {
	if got, want := fullTitle(), "Dots and Boxes Console v"+version; got != want {
		t.Errorf("fullTitle() = %q, want %q", got, want)
	}
}

func TestWelcomeBanner(t *testing.T) {
	banner := welcomeBanner()
	for _, want := range []string{fullTitle(), copyright, ".help", ".quit"} {
		if !strings.Contains(banner, want) {
			t.Errorf("banner missing %q", want)
		}
	}
	if !strings.HasSuffix(banner, "\n") {
		t.Error("banner should end with a newline")
	}
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want arguments
	}{
		{"defaults", nil, arguments{}},
		{"listen", []string{"--listen", ":4000"}, arguments{listen: ":4000"}},
		{"short listen", []string{"-l", "/tmp/c.sock"}, arguments{listen: "/tmp/c.sock"}},
		{"help", []string{"-h"}, arguments{showHelp: true}},
		{"version", []string{"--version"}, arguments{showVersion: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := os.Args
			defer func() { os.Args = old }()
			os.Args = append([]string{"dotsconsole"}, tt.argv...)

			if got := parseArguments(); got != tt.want {
				t.Errorf("parseArguments() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
