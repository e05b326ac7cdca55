// Package metrics records gameplay counters through OpenTelemetry.
package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/tomz197/invaders/internal/metrics"

// Outcome labels a finished game.
type Outcome string

const (
	OutcomeWon       Outcome = "won"
	OutcomeLost      Outcome = "lost"
	OutcomeAbandoned Outcome = "abandoned"
)

// Recorder holds the game counters. A nil *Recorder is valid and records
// nothing.
type Recorder struct {
	shots     metric.Int64Counter
	destroyed metric.Int64Counter
	waves     metric.Int64Counter
	games     metric.Int64Counter
}

// New creates a Recorder on the global meter provider.
func New() (*Recorder, error) {
	return NewWithMeter(otel.Meter(instrumentationName))
}

// NewWithMeter creates a Recorder on m.
func NewWithMeter(m metric.Meter) (*Recorder, error) {
	var (
		r   Recorder
		err error
	)

	r.shots, err = m.Int64Counter(
		"invaders.shots",
		metric.WithDescription("Projectiles fired"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create shots counter: %w", err)
	}

	r.destroyed, err = m.Int64Counter(
		"invaders.enemies.destroyed",
		metric.WithDescription("Enemies destroyed"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create destroyed counter: %w", err)
	}

	r.waves, err = m.Int64Counter(
		"invaders.waves.cleared",
		metric.WithDescription("Waves cleared before the last one"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create waves counter: %w", err)
	}

	r.games, err = m.Int64Counter(
		"invaders.games",
		metric.WithDescription("Finished games by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create games counter: %w", err)
	}

	return &r, nil
}

// Shot records one accepted fire request.
func (r *Recorder) Shot(ctx context.Context) {
	if r == nil {
		return
	}
	r.shots.Add(ctx, 1)
}

// EnemyDestroyed records one destroyed enemy.
func (r *Recorder) EnemyDestroyed(ctx context.Context) {
	if r == nil {
		return
	}
	r.destroyed.Add(ctx, 1)
}

// WaveCleared records a cleared wave that led to a larger one.
func (r *Recorder) WaveCleared(ctx context.Context) {
	if r == nil {
		return
	}
	r.waves.Add(ctx, 1)
}

// GameFinished records a game ending with outcome on the given difficulty.
func (r *Recorder) GameFinished(ctx context.Context, outcome Outcome, difficulty string) {
	if r == nil {
		return
	}
	r.games.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", string(outcome)),
		attribute.String("difficulty", difficulty),
	))
}
