package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/npcwander/internal/model"
)

// summaryEvery is how many ticks pass between summary log lines.
const summaryEvery = 200

// TickManager drives all registered controllers with a fixed time step.
// Each controller is ticked by exactly one goroutine per pass; controllers are
// spread over at most `workers` goroutines.
type TickManager struct {
	controllers     sync.Map // map[uint32]Controller keyed by object ID
	controllerCount atomic.Int32
	ticks           atomic.Uint64

	interval time.Duration
	workers  int

	stopCh   chan struct{}
	stopOnce sync.Once
}

// Counts is a breakdown of registered controllers by state.
type Counts struct {
	Patrolling int
	Idle       int
	Disabled   int
}

// NewTickManager creates a manager ticking every interval with up to workers goroutines.
func NewTickManager(interval time.Duration, workers int) *TickManager {
	if workers < 1 {
		workers = 1
	}
	return &TickManager{
		interval: interval,
		workers:  workers,
		stopCh:   make(chan struct{}),
	}
}

// Register registers and starts a controller.
func (m *TickManager) Register(c Controller) {
	if _, loaded := m.controllers.LoadOrStore(c.ID(), c); loaded {
		slog.Warn("AI controller already registered", "objectID", c.ID())
		return
	}
	m.controllerCount.Add(1)
	c.Start()

	slog.Debug("AI controller registered",
		"objectID", c.ID(),
		"state", c.State(),
		"disabled", c.Disabled())
}

// Unregister stops and removes a controller.
func (m *TickManager) Unregister(objectID uint32) {
	value, ok := m.controllers.LoadAndDelete(objectID)
	if !ok {
		return
	}
	m.controllerCount.Add(-1)

	value.(Controller).Stop()
	slog.Debug("AI controller unregistered", "objectID", objectID)
}

// Start runs the tick loop until ctx is canceled or Stop is called.
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	dt := m.interval.Seconds()
	slog.Info("AI tick manager started",
		"interval", m.interval,
		"workers", m.workers,
		"controllers", m.Count())

	for {
		select {
		case <-ctx.Done():
			slog.Info("AI tick manager stopping", "ticks", m.ticks.Load())
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("AI tick manager stopped", "ticks", m.ticks.Load())
			return nil

		case <-ticker.C:
			if err := m.TickAll(ctx, dt); err != nil {
				return err
			}
		}
	}
}

// Stop stops the tick loop. Safe to call more than once.
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// TickAll advances every registered controller by dt.
func (m *TickManager) TickAll(ctx context.Context, dt float64) error {
	batch := make([]Controller, 0, m.Count())
	m.controllers.Range(func(_, value any) bool {
		batch = append(batch, value.(Controller))
		return true
	})
	if len(batch) == 0 {
		return nil
	}

	shards := min(m.workers, len(batch))
	size := (len(batch) + shards - 1) / shards

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(shards)
	for start := 0; start < len(batch); start += size {
		shard := batch[start:min(start+size, len(batch))]
		g.Go(func() error {
			for _, c := range shard {
				if err := gctx.Err(); err != nil {
					return err
				}
				c.Tick(dt)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("ticking controllers: %w", err)
	}

	if n := m.ticks.Add(1); n%summaryEvery == 0 {
		c := m.Counts()
		slog.Info("AI tick summary",
			"tick", n,
			"patrolling", c.Patrolling,
			"idle", c.Idle,
			"disabled", c.Disabled)
	} else if IsDebugEnabled() {
		slog.Debug("AI tick completed", "controllers", len(batch))
	}
	return nil
}

// Count returns number of registered controllers (cached, O(1)).
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// Ticks returns the number of completed tick passes.
func (m *TickManager) Ticks() uint64 {
	return m.ticks.Load()
}

// Counts returns the state breakdown of registered controllers.
// Call it between passes; it reads controller state without synchronization.
func (m *TickManager) Counts() Counts {
	var c Counts
	m.controllers.Range(func(_, value any) bool {
		ctrl := value.(Controller)
		switch {
		case ctrl.Disabled():
			c.Disabled++
		case ctrl.State() == model.StateIdle:
			c.Idle++
		default:
			c.Patrolling++
		}
		return true
	})
	return c
}

// GetController returns the controller for objectID.
func (m *TickManager) GetController(objectID uint32) (Controller, error) {
	value, ok := m.controllers.Load(objectID)
	if !ok {
		return nil, fmt.Errorf("controller not found for objectID %d", objectID)
	}
	return value.(Controller), nil
}
