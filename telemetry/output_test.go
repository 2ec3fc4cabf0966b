package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/hunt/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}
	// Every method must be safe on nil
	if err := om.WriteTurns([]TurnRecord{{Turn: 1}}); err != nil {
		t.Errorf("WriteTurns on nil: %v", err)
	}
	if err := om.WriteSession(SessionStats{}); err != nil {
		t.Errorf("WriteSession on nil: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	if err := om.WriteTurns([]TurnRecord{{SessionID: "s", Turn: 1, Action: "move_up", Hunger: 99}}); err != nil {
		t.Fatalf("WriteTurns: %v", err)
	}
	if err := om.WriteTurns([]TurnRecord{{SessionID: "s", Turn: 2, Action: "consume", Hunger: 89}}); err != nil {
		t.Fatalf("WriteTurns: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, "s", 2); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.WriteSession(SessionStats{SessionID: "s", Outcome: "lost", Reason: "starved"}); err != nil {
		t.Fatalf("WriteSession: %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "turns.csv"))
	if err != nil {
		t.Fatalf("reading turns.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("turns.csv has %d lines, want header plus 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "session_id,level,turn,action") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "session_id") != 1 {
		t.Error("header written more than once")
	}

	sessions, err := os.ReadFile(filepath.Join(dir, "sessions.csv"))
	if err != nil {
		t.Fatalf("reading sessions.csv: %v", err)
	}
	if !strings.Contains(string(sessions), "starved") {
		t.Errorf("sessions.csv missing reason: %q", sessions)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not reload: %v", err)
	}
}
