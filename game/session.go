package game

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pthm-cable/hunt/config"
	"github.com/pthm-cable/hunt/systems"
	"github.com/pthm-cable/hunt/telemetry"
)

// State is where a session stands between turns.
type State uint8

const (
	StatePlaying State = iota
	StateLevelComplete
	StateWon
	StateLost
	StateQuit
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateLevelComplete:
		return "level_complete"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	case StateQuit:
		return "quit"
	}
	return "unknown"
}

// Done reports whether the session is over.
func (s State) Done() bool {
	return s == StateWon || s == StateLost || s == StateQuit
}

// stateFor maps a level status onto the session state.
func stateFor(status Status, level, levels int) State {
	switch {
	case status.Lost:
		return StateLost
	case status.Won && level < levels:
		return StateLevelComplete
	case status.Won:
		return StateWon
	}
	return StatePlaying
}

// SessionOptions configures a Session. Zero values pick sensible defaults.
type SessionOptions struct {
	Rand     systems.Rand
	Clock    Clock
	Logger   *slog.Logger
	Output   *telemetry.OutputManager // nil disables CSV output
	LogStats bool                     // log periodic perf stats
	Render   func(Snapshot)           // called once per turn before input is read
}

// Session plays levels one after another until the player wins the last
// level, loses, or quits.
type Session struct {
	cfg    *config.Config
	opts   SessionOptions
	game   *Game
	level  int
	state  State
	reason string
	last   Action

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
}

// NewSession creates a session and builds its first level.
func NewSession(cfg *config.Config, opts SessionOptions) *Session {
	gameOpts := Options{Rand: opts.Rand, Clock: opts.Clock, Logger: opts.Logger}.withDefaults()
	opts.Rand, opts.Clock, opts.Logger = gameOpts.Rand, gameOpts.Clock, gameOpts.Logger

	id := uuid.NewString()
	s := &Session{
		cfg:       cfg,
		opts:      opts,
		level:     1,
		collector: telemetry.NewCollector(id),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:    opts.Output,
	}
	s.opts.Logger = opts.Logger.With("session", id)
	s.buildLevel()
	return s
}

func (s *Session) buildLevel() {
	s.game = New(s.cfg, Options{
		Rand:      s.opts.Rand,
		Clock:     s.opts.Clock,
		Level:     s.level,
		Logger:    s.opts.Logger,
		Collector: s.collector,
		Perf:      s.perf,
	})
	s.state = StatePlaying
	s.reason = ""
	s.last = Action{}
}

// ID returns the session's unique id.
func (s *Session) ID() string {
	return s.collector.SessionID()
}

// Game returns the current level.
func (s *Session) Game() *Game {
	return s.game
}

// Level returns the 1-based current level.
func (s *Session) Level() int {
	return s.level
}

// State returns the session state and, when lost, the reason.
func (s *Session) State() (State, string) {
	return s.state, s.reason
}

// Done reports whether the session is over.
func (s *Session) Done() bool {
	return s.state.Done()
}

// LastAction returns the outcome of the most recent command.
func (s *Session) LastAction() Action {
	return s.last
}

// Snapshot copies the current level with session state attached.
func (s *Session) Snapshot() Snapshot {
	snap := s.game.Snapshot()
	snap.State = s.state
	snap.LastAction = s.last
	return snap
}

// Advance runs the world half of a turn while playing.
func (s *Session) Advance() AdvanceResult {
	if s.state != StatePlaying {
		return AdvanceResult{}
	}
	res := s.game.Advance()
	s.sync()
	return res
}

// Handle applies a command. While a level-complete screen is shown any
// command other than quit starts the next level.
func (s *Session) Handle(cmd Command) {
	switch s.state {
	case StateLevelComplete:
		if cmd == CmdQuit {
			s.quit()
			return
		}
		s.NextLevel()
		return
	case StatePlaying:
	default:
		return
	}

	s.last = s.game.Act(cmd)
	if cmd == CmdQuit {
		s.quit()
		return
	}
	s.sync()

	if s.game.Turn()%s.cfg.Telemetry.PerfWindow == 0 {
		s.flush()
	}
}

// NextLevel rebuilds terrain, animals and the player for the following level.
func (s *Session) NextLevel() {
	if s.state != StateLevelComplete {
		return
	}
	s.level++
	s.buildLevel()
}

// Run drives the session from a command channel. It returns when the
// session ends, when commands is closed, or when ctx is cancelled.
func (s *Session) Run(ctx context.Context, commands <-chan Command) error {
	for {
		s.Advance()
		if s.opts.Render != nil {
			s.opts.Render(s.Snapshot())
		}
		if s.Done() {
			return nil
		}

		select {
		case <-ctx.Done():
			s.quit()
			return ctx.Err()
		case cmd, ok := <-commands:
			if !ok {
				s.quit()
				return nil
			}
			s.Handle(cmd)
		}
	}
}

// Close writes pending output and the session summary.
func (s *Session) Close() (telemetry.SessionStats, error) {
	var firstErr error
	if err := s.flush(); err != nil {
		firstErr = err
	}

	stats := s.collector.Summary(s.state.String(), s.reason, s.level)
	if err := s.output.WriteSession(stats); err != nil {
		s.opts.Logger.Error("failed to write session", "error", err)
		if firstErr == nil {
			firstErr = err
		}
	}

	s.opts.Logger.Info("session ended", "stats", stats)
	if s.opts.LogStats {
		stats.LogStats()
	}
	return stats, firstErr
}

// sync copies the level status into the session state.
func (s *Session) sync() {
	status := s.game.Status()
	next := stateFor(status, s.level, s.cfg.Levels.Count)
	if next == s.state {
		return
	}
	s.state = next
	s.reason = status.LossReason

	switch next {
	case StateLevelComplete:
		s.collector.Record(telemetry.NewEvent(telemetry.EventLevelComplete, s.game.Turn(), s.level))
		s.opts.Logger.Info("level complete", "level", s.level, "turn", s.game.Turn())
	case StateWon:
		s.collector.Record(telemetry.NewEvent(telemetry.EventLevelComplete, s.game.Turn(), s.level))
		s.opts.Logger.Info("game won", "level", s.level, "turn", s.game.Turn())
	case StateLost:
		s.opts.Logger.Info("game lost", "level", s.level, "reason", s.reason)
	}
}

func (s *Session) quit() {
	if s.state.Done() {
		return
	}
	s.state = StateQuit
	s.opts.Logger.Info("player quit", "level", s.level, "turn", s.game.Turn())
}

// flush writes buffered turn records and the current perf window.
func (s *Session) flush() error {
	var firstErr error

	if err := s.output.WriteTurns(s.collector.Drain()); err != nil {
		s.opts.Logger.Error("failed to write turns", "error", err)
		firstErr = err
	}

	perfStats := s.perf.Stats()
	if err := s.output.WritePerf(perfStats, s.ID(), s.game.Turn()); err != nil {
		s.opts.Logger.Error("failed to write perf", "error", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	if s.opts.LogStats {
		perfStats.LogStats()
	}
	return firstErr
}
