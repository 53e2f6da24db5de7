package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// run executes the command tree against the config at cfgPath and returns
// its stdout.
func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := "storage:\n  path: " + filepath.Join(dir, "fleet.db") + "\n" +
		"log:\n  dir: " + filepath.Join(dir, "logs") + "\n" +
		"display:\n  theme: plain\n"
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2024-05-10")
	if err != nil || !got.Equal(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("parseDate() = %v, %v", got, err)
	}
	if _, err := parseDate("10/05/2024"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestCommands(t *testing.T) {
	cfg := writeConfig(t)

	if _, err := run(t, cfg, "dashboard"); !errors.Is(err, errNotLoggedIn) {
		t.Fatalf("dashboard before login error = %v", err)
	}
	if _, err := run(t, cfg, "login", "--email", "admin@entnt.com", "--password", "wrong"); err == nil {
		t.Fatal("login with a bad password succeeded")
	}

	out, err := run(t, cfg, "login", "--email", "admin@entnt.com", "--password", "admin123")
	if err != nil || !strings.Contains(out, "Signed in as Admin User (admin)") {
		t.Fatalf("login = %q, %v", out, err)
	}

	out, err = run(t, cfg, "ship", "list", "--search", "falcon")
	if err != nil || !strings.Contains(out, "Sea Falcon") || strings.Contains(out, "Northern Star") {
		t.Fatalf("ship list = %q, %v", out, err)
	}

	out, err = run(t, cfg, "task", "reschedule", "task-002", "2024-06-01")
	if err != nil || !strings.Contains(out, "Jun 01, 2024") {
		t.Fatalf("task reschedule = %q, %v", out, err)
	}

	out, err = run(t, cfg, "notifications", "list")
	if err != nil || !strings.Contains(out, "1 unread") || !strings.Contains(out, "Task Rescheduled") {
		t.Fatalf("notifications list = %q, %v", out, err)
	}

	out, err = run(t, cfg, "calendar", "--year", "2024", "--month", "4")
	if err != nil || !strings.Contains(out, "April 2024") || !strings.Contains(out, "Propeller Replacement") {
		t.Fatalf("calendar = %q, %v", out, err)
	}

	out, err = run(t, cfg, "metrics")
	if err != nil || !strings.Contains(out, `fleet_ships{status="operational"} 2`) {
		t.Fatalf("metrics = %q, %v", out, err)
	}

	if _, err := run(t, cfg, "logout"); err != nil {
		t.Fatalf("logout error = %v", err)
	}
	if _, err := run(t, cfg, "whoami"); !errors.Is(err, errNotLoggedIn) {
		t.Fatalf("whoami after logout error = %v", err)
	}
}
