package game

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/hunt/telemetry"
)

// preylessSession builds a session whose levels are won on the first advance.
func preylessSession(t *testing.T, levels int, opts SessionOptions) *Session {
	t.Helper()
	cfg := testConfig(t)
	cfg.Population.Rabbits = 0
	cfg.Population.Squirrels = 0
	cfg.Levels.Count = levels
	cfg.ComputeDerived()

	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(3))
	}
	if opts.Clock == nil {
		opts.Clock = newFakeClock().Now
	}
	opts.Logger = quietLogger
	return NewSession(cfg, opts)
}

func TestSessionLevelProgression(t *testing.T) {
	s := preylessSession(t, 2, SessionOptions{})

	if s.ID() == "" {
		t.Fatal("session has no id")
	}

	s.Advance()
	if state, _ := s.State(); state != StateLevelComplete {
		t.Fatalf("got state %v after clearing level 1, want level_complete", state)
	}
	if s.Snapshot().State != StateLevelComplete {
		t.Error("snapshot does not carry the session state")
	}

	// Any key continues
	s.Handle(CmdMoveLeft)
	if s.Level() != 2 {
		t.Fatalf("got level %d, want 2", s.Level())
	}
	if state, _ := s.State(); state != StatePlaying {
		t.Fatalf("got state %v on level 2, want playing", state)
	}
	if got := s.Game().WolfCount(); got != 2 {
		t.Errorf("got %d wolves on level 2, want 2", got)
	}
	if s.Game().Player().Hunger != 100 {
		t.Errorf("hunger not reset on new level: %v", s.Game().Player().Hunger)
	}

	s.Advance()
	if state, _ := s.State(); state != StateWon {
		t.Fatalf("got state %v after clearing the last level, want won", state)
	}
	if !s.Done() {
		t.Error("session not done after final win")
	}
}

func TestSessionQuitFromLevelComplete(t *testing.T) {
	s := preylessSession(t, 3, SessionOptions{})
	s.Advance()
	s.Handle(CmdQuit)

	if state, _ := s.State(); state != StateQuit {
		t.Errorf("got state %v, want quit", state)
	}
	if s.Level() != 1 {
		t.Errorf("got level %d, want 1", s.Level())
	}
}

func TestSessionLossReason(t *testing.T) {
	cfg := testConfig(t)
	cfg.Hunger.Initial = 5
	clock := newFakeClock()
	s := NewSession(cfg, SessionOptions{Rand: rand.New(rand.NewSource(5)), Clock: clock.Now, Logger: quietLogger})

	s.Advance()
	s.Handle(CmdConsume)
	// Either the failed consume starved the player or the prey escaped
	for i := 0; i < 10 && !s.Done(); i++ {
		s.Advance()
		s.Handle(CmdConsume)
	}

	state, reason := s.State()
	if state != StateLost {
		t.Fatalf("got state %v, want lost", state)
	}
	if reason != ReasonStarved && reason != ReasonCaught {
		t.Errorf("got reason %q", reason)
	}
}

func TestSessionRunStopsOnQuit(t *testing.T) {
	var frames int
	s := preylessSession(t, 1, SessionOptions{})
	s.cfg.Population.Rabbits = 3
	s.cfg.ComputeDerived()
	s.buildLevel()
	s.opts.Render = func(Snapshot) { frames++ }

	commands := make(chan Command, 3)
	commands <- CmdMoveLeft
	commands <- CmdQuit
	commands <- CmdMoveRight

	if err := s.Run(context.Background(), commands); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if state, _ := s.State(); state != StateQuit {
		t.Errorf("got state %v, want quit", state)
	}
	// Two turns plus the closing frame
	if frames != 3 {
		t.Errorf("rendered %d frames, want 3", frames)
	}
	if len(commands) != 1 {
		t.Errorf("%d commands left unread, want 1", len(commands))
	}
}

func TestSessionRunExcludesInputWait(t *testing.T) {
	s := preylessSession(t, 1, SessionOptions{})
	s.cfg.Population.Rabbits = 3
	s.cfg.ComputeDerived()
	s.buildLevel()

	commands := make(chan Command)
	go func() {
		time.Sleep(100 * time.Millisecond)
		commands <- CmdMoveLeft
		close(commands)
	}()

	if err := s.Run(context.Background(), commands); err != nil {
		t.Fatalf("Run: %v", err)
	}

	stats := s.perf.Stats()
	if stats.MaxTurnDuration >= 100*time.Millisecond {
		t.Errorf("got max turn %v, want input wait excluded", stats.MaxTurnDuration)
	}
	if got := stats.PhaseAvg[telemetry.PhaseHunger]; got >= 100*time.Millisecond {
		t.Errorf("got hunger phase %v, want input wait excluded", got)
	}
}

func TestSessionRunStopsOnTerminalState(t *testing.T) {
	var last Snapshot
	s := preylessSession(t, 1, SessionOptions{Render: func(snap Snapshot) { last = snap }})

	if err := s.Run(context.Background(), make(chan Command)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if last.State != StateWon {
		t.Errorf("last frame state %v, want won", last.State)
	}
}

func TestSessionRunStopsOnClosedChannel(t *testing.T) {
	s := preylessSession(t, 1, SessionOptions{})
	s.cfg.Population.Rabbits = 3
	s.cfg.ComputeDerived()
	s.buildLevel()

	commands := make(chan Command)
	close(commands)
	if err := s.Run(context.Background(), commands); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if state, _ := s.State(); state != StateQuit {
		t.Errorf("got state %v, want quit", state)
	}
}

func TestSessionRunCancelled(t *testing.T) {
	s := preylessSession(t, 1, SessionOptions{})
	s.cfg.Population.Rabbits = 3
	s.cfg.ComputeDerived()
	s.buildLevel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := s.Run(ctx, make(chan Command))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got error %v, want deadline exceeded", err)
	}
}

func TestSessionCloseWritesOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	s := preylessSession(t, 1, SessionOptions{Output: om})
	s.Advance()

	stats, err := s.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("closing output: %v", err)
	}

	if stats.Outcome != "won" || stats.SessionID != s.ID() {
		t.Errorf("got summary %+v", stats)
	}
	if stats.Turns != 1 || stats.LevelsCleared != 1 {
		t.Errorf("got turns=%d levels_cleared=%d, want 1 and 1", stats.Turns, stats.LevelsCleared)
	}

	turns, err := os.ReadFile(filepath.Join(dir, "turns.csv"))
	if err != nil {
		t.Fatalf("reading turns.csv: %v", err)
	}
	if !strings.Contains(string(turns), s.ID()) {
		t.Error("turns.csv does not carry the session id")
	}
	perf, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatalf("reading perf.csv: %v", err)
	}
	if !strings.Contains(string(perf), s.ID()) {
		t.Error("perf.csv does not carry the session id")
	}
	sessions, err := os.ReadFile(filepath.Join(dir, "sessions.csv"))
	if err != nil {
		t.Fatalf("reading sessions.csv: %v", err)
	}
	if !strings.Contains(string(sessions), "won") {
		t.Errorf("sessions.csv missing outcome: %q", sessions)
	}
}
