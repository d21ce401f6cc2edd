package ai

import (
	"math"

	"github.com/udisondev/npcwander/internal/model"
	"github.com/udisondev/npcwander/internal/rng"
)

// ThreatAvoider runs the lower-frequency threat scan of one agent.
// It never changes BehaviorState; a hit only rewrites the movement target.
type ThreatAvoider struct {
	spatial       SpatialQuery
	radius        float64
	avoidDistance float64
	cadence       Timer
}

// NewThreatAvoider creates an avoider scanning every interval seconds.
func NewThreatAvoider(spatial SpatialQuery, radius, avoidDistance, interval float64) *ThreatAvoider {
	t := &ThreatAvoider{
		spatial:       spatial,
		radius:        radius,
		avoidDistance: avoidDistance,
		cadence:       NewTimer(interval, interval),
	}
	t.cadence.Set(interval)
	return t
}

// Due advances the cadence timer and reports whether a scan is due this tick.
func (t *ThreatAvoider) Due(dt float64, src rng.Source) bool {
	return t.cadence.Advance(dt, src)
}

// Nearest returns the closest threat within the detection radius of pos.
// Ties keep the first one returned by the spatial query.
func (t *ThreatAvoider) Nearest(pos model.Vec3) (*model.Entity, bool) {
	var (
		closest     *model.Entity
		closestDist = math.Inf(1)
		limit       = t.radius * t.radius
	)

	for _, e := range t.spatial.QueryNearby(pos, t.radius) {
		if !e.Class().IsThreat() {
			continue
		}
		d := pos.DistanceSquared(e.Position())
		if d > limit {
			continue
		}
		if d < closestDist {
			closestDist = d
			closest = e
		}
	}

	return closest, closest != nil
}

// FleePoint returns the point avoidDistance away from pos, directly away from threat.
// A threat standing exactly on pos yields pos itself.
func (t *ThreatAvoider) FleePoint(pos, threat model.Vec3) model.Vec3 {
	return FleePoint(pos, threat, t.avoidDistance)
}

// FleePoint computes pos + normalize(pos - threat) * distance.
func FleePoint(pos, threat model.Vec3, distance float64) model.Vec3 {
	away := pos.Sub(threat).Normalized()
	return pos.Add(away.Scale(distance))
}
