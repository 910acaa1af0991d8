// Package redis publishes analysis snapshots so downstream consumers
// (dashboards, alerting) can read the latest signal or subscribe to
// updates. A circuit breaker keeps a dead Redis from stalling the
// analysis loop.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"backtest-systemv1/internal/strategy"
)

// Publisher writes the latest analysis to Redis: a SET on
// signal:latest:<symbol> for poll-based readers and a PUBLISH on
// pub:signal:<symbol> for subscribers, pipelined together.
type Publisher struct {
	client  *goredis.Client
	breaker *CircuitBreaker
}

// NewPublisher connects to Redis and verifies the connection with a
// ping before returning.
func NewPublisher(ctx context.Context, addr, password string, db int) (*Publisher, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	log.Printf("[redis] connected to %s", addr)
	return &Publisher{
		client:  client,
		breaker: NewCircuitBreaker(3, 30*time.Second),
	}, nil
}

// Close releases the client connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}

// Ping checks connectivity, for health endpoints.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// BreakerState exposes the breaker for metrics.
func (p *Publisher) BreakerState() State {
	return p.breaker.State()
}

// PublishAnalysis stores and broadcasts the analysis for symbol.
func (p *Publisher) PublishAnalysis(ctx context.Context, symbol string, a *strategy.Analysis) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	return p.breaker.Execute(func() error {
		pipe := p.client.Pipeline()
		pipe.Set(ctx, "signal:latest:"+symbol, payload, 0)
		pipe.Publish(ctx, "pub:signal:"+symbol, payload)
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("publish %s: %w", symbol, err)
		}
		return nil
	})
}
