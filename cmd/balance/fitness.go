package main

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/hunt/config"
	"github.com/pthm-cable/hunt/game"
)

// FitnessEvaluator plays autopilot sessions and scores how far their win
// rate is from the target.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTurns   int
	seeds      []int64
	baseConfig *config.Config
	targetWin  float64

	mu       sync.Mutex
	lastRuns []runResult
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTurns int, seeds []int64, baseCfg *config.Config, targetWin float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTurns:   maxTurns,
		seeds:      seeds,
		baseConfig: baseCfg,
		targetWin:  targetWin,
	}
}

// runResult holds the outcome of a single autopilot session.
type runResult struct {
	won           bool
	levelsCleared int
	turns         int
}

// Summary aggregates the runs of one evaluation.
type Summary struct {
	WinRate    float64
	MeanLevels float64
	MeanTurns  float64
}

// LastSummary returns the aggregate of the most recent Evaluate call.
func (fe *FitnessEvaluator) LastSummary() Summary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return summarize(fe.lastRuns)
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is the squared distance between the win rate and the target, with
// a small bonus for sessions that get further before losing.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSession(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	fe.mu.Lock()
	fe.lastRuns = results
	fe.mu.Unlock()

	sum := summarize(results)
	progress := sum.MeanLevels / float64(cfg.Levels.Count)
	return math.Pow(sum.WinRate-fe.targetWin, 2) - 0.01*progress
}

// runSession plays one seeded session to completion or the turn cap.
func (fe *FitnessEvaluator) runSession(cfg *config.Config, seed int64) runResult {
	session := game.NewSession(cfg, game.SessionOptions{
		Rand:   rand.New(rand.NewSource(seed)),
		Clock:  game.NewStepClock(time.Unix(0, 0), cfg.Hunger.DecayInterval).Now,
		Logger: slog.New(slog.DiscardHandler),
	})
	pilot := game.NewAutopilot(cfg, rand.New(rand.NewSource(seed+1)))

	turns := game.PlayHeadless(context.Background(), session, pilot, fe.maxTurns)
	stats, _ := session.Close()
	state, _ := session.State()

	return runResult{
		won:           state == game.StateWon,
		levelsCleared: stats.LevelsCleared,
		turns:         turns,
	}
}

func summarize(runs []runResult) Summary {
	if len(runs) == 0 {
		return Summary{}
	}
	wins := make([]float64, len(runs))
	levels := make([]float64, len(runs))
	turns := make([]float64, len(runs))
	for i, r := range runs {
		if r.won {
			wins[i] = 1
		}
		levels[i] = float64(r.levelsCleared)
		turns[i] = float64(r.turns)
	}
	return Summary{
		WinRate:    stat.Mean(wins, nil),
		MeanLevels: stat.Mean(levels, nil),
		MeanTurns:  stat.Mean(turns, nil),
	}
}
