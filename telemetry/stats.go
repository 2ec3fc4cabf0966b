package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// TurnRecord is one row of turns.csv.
type TurnRecord struct {
	SessionID string  `csv:"session_id"`
	Level     int     `csv:"level"`
	Turn      int     `csv:"turn"`
	Action    string  `csv:"action"`
	Outcome   string  `csv:"outcome"`
	Hunger    float64 `csv:"hunger"`
	Prey      int     `csv:"prey"`
	Wolves    int     `csv:"wolves"`
	Activated int     `csv:"activated"`
	Moved     int     `csv:"moved"`
	PlayerX   int     `csv:"player_x"`
	PlayerY   int     `csv:"player_y"`
	Status    string  `csv:"status"`
}

// SessionStats summarises a whole session. It is one row of sessions.csv.
type SessionStats struct {
	SessionID     string `csv:"session_id"`
	Outcome       string `csv:"outcome"`
	Reason        string `csv:"reason"`
	Level         int    `csv:"level"`
	LevelsCleared int    `csv:"levels_cleared"`
	Caught        int    `csv:"caught"`  // Levels lost to a wolf
	Starved       int    `csv:"starved"` // Levels lost to hunger
	Turns         int    `csv:"turns"`

	// Player actions
	Moves           int     `csv:"moves"`
	MovesBlocked    int     `csv:"moves_blocked"`
	RabbitsEaten    int     `csv:"rabbits_eaten"`
	SquirrelsEaten  int     `csv:"squirrels_eaten"`
	Escapes         int     `csv:"escapes"`
	NoTargets       int     `csv:"no_targets"`
	EatRate         float64 `csv:"eat_rate"`
	Repels          int     `csv:"repels"`
	RepelsFailed    int     `csv:"repels_failed"`
	WolvesDisplaced int     `csv:"wolves_displaced"`

	// Hunger economy
	HungerGained float64 `csv:"hunger_gained"`
	HungerSpent  float64 `csv:"hunger_spent"`
	HungerMean   float64 `csv:"hunger_mean"`
	HungerStd    float64 `csv:"hunger_std"`
	HungerP10    float64 `csv:"hunger_p10"`
	HungerP50    float64 `csv:"hunger_p50"`
	HungerP90    float64 `csv:"hunger_p90"`
}

// ComputeHungerStats calculates mean, sample standard deviation and
// empirical percentiles of hunger samples. Empty input yields zeros.
func ComputeHungerStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	// Quantile needs sorted input
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s SessionStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("session_id", s.SessionID),
		slog.String("outcome", s.Outcome),
		slog.String("reason", s.Reason),
		slog.Int("level", s.Level),
		slog.Int("levels_cleared", s.LevelsCleared),
		slog.Int("caught", s.Caught),
		slog.Int("starved", s.Starved),
		slog.Int("turns", s.Turns),
		slog.Int("moves", s.Moves),
		slog.Int("moves_blocked", s.MovesBlocked),
		slog.Int("rabbits_eaten", s.RabbitsEaten),
		slog.Int("squirrels_eaten", s.SquirrelsEaten),
		slog.Int("escapes", s.Escapes),
		slog.Int("no_targets", s.NoTargets),
		slog.Float64("eat_rate", s.EatRate),
		slog.Int("repels", s.Repels),
		slog.Int("repels_failed", s.RepelsFailed),
		slog.Int("wolves_displaced", s.WolvesDisplaced),
		slog.Float64("hunger_gained", s.HungerGained),
		slog.Float64("hunger_spent", s.HungerSpent),
		slog.Float64("hunger_mean", s.HungerMean),
		slog.Float64("hunger_std", s.HungerStd),
		slog.Float64("hunger_p10", s.HungerP10),
		slog.Float64("hunger_p50", s.HungerP50),
		slog.Float64("hunger_p90", s.HungerP90),
	)
}

// LogStats logs the headline numbers of the session.
func (s SessionStats) LogStats() {
	slog.Info("session",
		"outcome", s.Outcome,
		"reason", s.Reason,
		"level", s.Level,
		"turns", s.Turns,
		"eaten", s.RabbitsEaten+s.SquirrelsEaten,
		"repels", s.Repels,
		"hunger_mean", s.HungerMean,
	)
}
