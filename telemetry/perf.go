package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one game turn.
const (
	PhaseAnimals = "animals"
	PhaseHunger  = "hunger"
	PhaseAction  = "action"
)

// PerfSample holds timing data for a single turn.
type PerfSample struct {
	TurnDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks turn timing over a rolling window. A turn may be
// paused between phases; time spent paused counts toward neither the turn
// nor any phase. A nil PerfCollector ignores every call.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	spanStart     time.Time     // start of the current unpaused span
	active        time.Duration // unpaused time in closed spans
	phaseStart    time.Time
	lastPhase     string
	open          bool
	paused        bool
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of turns to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTurn begins timing a new turn.
func (p *PerfCollector) StartTurn() {
	if p == nil {
		return
	}
	p.spanStart = time.Now()
	p.active = 0
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
	p.open = true
	p.paused = false
}

// StartPhase begins timing a specific phase, ending the previous one.
// It resumes a paused turn.
func (p *PerfCollector) StartPhase(phase string) {
	if p == nil || !p.open {
		return
	}
	now := time.Now()
	if p.paused {
		p.spanStart = now
		p.paused = false
	}
	p.closePhase(now)
	p.phaseStart = now
	p.lastPhase = phase
}

// Pause ends the current phase and stops the turn clock until the next
// StartPhase, e.g. while waiting for player input.
func (p *PerfCollector) Pause() {
	if p == nil || !p.open || p.paused {
		return
	}
	now := time.Now()
	p.closePhase(now)
	p.active += now.Sub(p.spanStart)
	p.paused = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}
}

// EndTurn finishes timing the current turn and records the sample.
// Calling it without an open turn does nothing.
func (p *PerfCollector) EndTurn() {
	if p == nil || !p.open {
		return
	}
	if !p.paused {
		now := time.Now()
		p.closePhase(now)
		p.active += now.Sub(p.spanStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		TurnDuration: p.active,
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.open = false
	p.paused = false
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTurnDuration time.Duration
	MinTurnDuration time.Duration
	MaxTurnDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total turn time
	PhasePct map[string]float64

	TurnsPerSecond float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p == nil || p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	var total, minTurn, maxTurn time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.TurnDuration

		if i == 0 || s.TurnDuration < minTurn {
			minTurn = s.TurnDuration
		}
		if s.TurnDuration > maxTurn {
			maxTurn = s.TurnDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var perSec float64
	if avg > 0 {
		perSec = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgTurnDuration: avg,
		MinTurnDuration: minTurn,
		MaxTurnDuration: maxTurn,
		PhaseAvg:        phaseAvg,
		PhasePct:        phasePct,
		TurnsPerSecond:  perSec,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_turn_us", s.AvgTurnDuration.Microseconds(),
		"min_turn_us", s.MinTurnDuration.Microseconds(),
		"max_turn_us", s.MaxTurnDuration.Microseconds(),
		"turns_per_sec", int(s.TurnsPerSecond),
	}

	for _, phase := range []string{PhaseAnimals, PhaseHunger, PhaseAction} {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_turn_us", s.AvgTurnDuration.Microseconds()),
		slog.Int64("min_turn_us", s.MinTurnDuration.Microseconds()),
		slog.Int64("max_turn_us", s.MaxTurnDuration.Microseconds()),
		slog.Float64("turns_per_sec", s.TurnsPerSecond),
	}
	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	SessionID   string  `csv:"session_id"`
	Turn        int     `csv:"turn"`
	AvgTurnUS   int64   `csv:"avg_turn_us"`
	MinTurnUS   int64   `csv:"min_turn_us"`
	MaxTurnUS   int64   `csv:"max_turn_us"`
	TurnsPerSec float64 `csv:"turns_per_sec"`
	AnimalsPct  float64 `csv:"animals_pct"`
	HungerPct   float64 `csv:"hunger_pct"`
	ActionPct   float64 `csv:"action_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(sessionID string, turn int) PerfStatsCSV {
	return PerfStatsCSV{
		SessionID:   sessionID,
		Turn:        turn,
		AvgTurnUS:   s.AvgTurnDuration.Microseconds(),
		MinTurnUS:   s.MinTurnDuration.Microseconds(),
		MaxTurnUS:   s.MaxTurnDuration.Microseconds(),
		TurnsPerSec: s.TurnsPerSecond,
		AnimalsPct:  s.PhasePct[PhaseAnimals],
		HungerPct:   s.PhasePct[PhaseHunger],
		ActionPct:   s.PhasePct[PhaseAction],
	}
}
