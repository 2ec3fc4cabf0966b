package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTurn()
		pc.StartPhase(PhaseAnimals)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseAction)
		time.Sleep(200 * time.Microsecond)
		pc.EndTurn()
	}

	stats := pc.Stats()

	if stats.AvgTurnDuration <= 0 {
		t.Error("expected positive average turn duration")
	}
	if _, ok := stats.PhaseAvg[PhaseAnimals]; !ok {
		t.Error("expected animals phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseAction]; !ok {
		t.Error("expected action phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseHunger]; ok {
		t.Error("hunger phase tracked without being started")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTurn()
		pc.StartPhase(PhaseHunger)
		time.Sleep(10 * time.Microsecond)
		pc.EndTurn()
	}

	stats := pc.Stats()
	if stats.AvgTurnDuration <= 0 {
		t.Error("expected positive average turn duration after window filled")
	}
	if stats.TurnsPerSecond <= 0 {
		t.Error("expected positive turns per second")
	}
	if pc.sampleCount != 5 {
		t.Errorf("got %d samples, want window size 5", pc.sampleCount)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTurn()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(2 * time.Millisecond)
		pc.EndTurn()
	}

	stats := pc.Stats()
	fastPct := stats.PhasePct["fast"]
	slowPct := stats.PhasePct["slow"]

	if slowPct <= fastPct {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", slowPct, fastPct)
	}
}

func TestPerfCollector_PauseExcludesIdleTime(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.StartTurn()
	pc.StartPhase(PhaseAnimals)
	pc.StartPhase(PhaseHunger)
	pc.Pause()
	time.Sleep(50 * time.Millisecond)
	pc.Pause() // second pause is a no-op
	pc.StartPhase(PhaseAction)
	pc.EndTurn()

	stats := pc.Stats()
	if stats.MaxTurnDuration >= 50*time.Millisecond {
		t.Errorf("got turn duration %v, want idle time excluded", stats.MaxTurnDuration)
	}
	if got := stats.PhaseAvg[PhaseHunger]; got >= 50*time.Millisecond {
		t.Errorf("got hunger phase %v, want idle time excluded", got)
	}
	if _, ok := stats.PhaseAvg[PhaseAction]; !ok {
		t.Error("action phase after resume not recorded")
	}
}

func TestPerfCollector_EndWhilePaused(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.StartTurn()
	pc.StartPhase(PhaseAnimals)
	pc.Pause()
	time.Sleep(20 * time.Millisecond)
	pc.EndTurn()

	if got := pc.Stats().MaxTurnDuration; got >= 20*time.Millisecond {
		t.Errorf("got turn duration %v, want paused time excluded", got)
	}
}

func TestPerfCollector_EndWithoutStart(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.StartPhase(PhaseAction)
	pc.EndTurn()

	if pc.sampleCount != 0 {
		t.Errorf("got %d samples, want 0", pc.sampleCount)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)
	stats := pc.Stats()

	if stats.AvgTurnDuration != 0 {
		t.Error("expected zero avg turn duration for empty collector")
	}
	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}
	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_Nil(t *testing.T) {
	var pc *PerfCollector
	pc.StartTurn()
	pc.StartPhase(PhaseAnimals)
	pc.EndTurn()

	if stats := pc.Stats(); stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map from nil collector")
	}
}
