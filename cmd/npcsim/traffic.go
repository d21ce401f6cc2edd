package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/npcwander/internal/config"
	"github.com/udisondev/npcwander/internal/model"
	"github.com/udisondev/npcwander/internal/world"
)

// mover is a scripted threat looping through its waypoints.
type mover struct {
	entity    *model.Entity
	waypoints []model.Vec3
	speed     float64
	next      int
}

// traffic drives all scripted threats. Agents see them through world queries.
type traffic struct {
	world  *world.World
	movers []*mover
}

const defaultThreatRadius = 0.5

func newTraffic(w *world.World, cfgs []config.TrafficConfig) (*traffic, error) {
	t := &traffic{world: w}
	for i, c := range cfgs {
		class, ok := model.ParseEntityClass(c.Class)
		if !ok || !class.IsThreat() {
			return nil, fmt.Errorf("traffic[%d]: class %q is not a threat", i, c.Class)
		}
		if len(c.Waypoints) == 0 {
			return nil, fmt.Errorf("traffic[%d]: no waypoints", i)
		}

		points := make([]model.Vec3, len(c.Waypoints))
		for j, p := range c.Waypoints {
			points[j] = model.Vec3{X: p.X, Y: p.Y, Z: p.Z}
		}
		radius := c.Radius
		if radius <= 0 {
			radius = defaultThreatRadius
		}

		e, err := w.Spawn(class, points[0], radius, false)
		if err != nil {
			return nil, fmt.Errorf("traffic[%d]: %w", i, err)
		}
		t.movers = append(t.movers, &mover{
			entity:    e,
			waypoints: points,
			speed:     c.Speed,
			next:      1 % len(points),
		})
	}
	return t, nil
}

// Run advances every mover each interval until ctx is canceled.
func (t *traffic) Run(ctx context.Context, interval time.Duration) error {
	if len(t.movers) == 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("traffic started", "movers", len(t.movers))
	dt := interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			t.Step(dt)
		}
	}
}

// Step moves every mover toward its next waypoint, wrapping around at the end.
func (t *traffic) Step(dt float64) {
	for _, m := range t.movers {
		pos := m.entity.Position()
		budget := m.speed * dt
		// A lap over coincident waypoints makes no progress; stop there.
		for visited := 0; budget > 0 && visited < len(m.waypoints); visited++ {
			wp := m.waypoints[m.next]
			d := pos.Distance(wp)
			if d > budget {
				pos = pos.Add(wp.Sub(pos).Scale(budget / d))
				break
			}
			pos = wp
			budget -= d
			m.next = (m.next + 1) % len(m.waypoints)
		}
		t.world.Move(m.entity.ObjectID(), pos)
	}
}
