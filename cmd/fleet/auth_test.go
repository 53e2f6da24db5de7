package main

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/99designs/keyring"

	"github.com/nhle/fleet-maintenance/internal/credential"
)

func TestRememberedPassword(t *testing.T) {
	stored := credential.New(keyring.NewArrayKeyring(nil))
	if err := stored.Remember("admin@entnt.com", "admin123"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		open    func() (*credential.Ring, error)
		email   string
		want    string
		wantLog string
	}{
		{
			name:  "remembered",
			open:  func() (*credential.Ring, error) { return stored, nil },
			email: "admin@entnt.com",
			want:  "admin123",
		},
		{
			name:  "not remembered",
			open:  func() (*credential.Ring, error) { return stored, nil },
			email: "inspector@entnt.com",
		},
		{
			name:    "keyring unavailable",
			open:    func() (*credential.Ring, error) { return nil, errors.New("no backend") },
			email:   "admin@entnt.com",
			wantLog: "opening keyring",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			if got := rememberedPassword(tt.open, tt.email, logger); got != tt.want {
				t.Errorf("rememberedPassword() = %q, want %q", got, tt.want)
			}
			if tt.wantLog == "" && buf.Len() > 0 {
				t.Errorf("unexpected log output %q", buf.String())
			}
			if tt.wantLog != "" && !strings.Contains(buf.String(), tt.wantLog) {
				t.Errorf("log = %q, want it to mention %q", buf.String(), tt.wantLog)
			}
		})
	}
}
