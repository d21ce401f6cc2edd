package anim

import (
	"sync"
	"sync/atomic"

	"github.com/udisondev/npcwander/internal/model"
)

// Tracker remembers the last pose of every agent and counts plays per pose.
// Safe for concurrent use by all agent shards.
type Tracker struct {
	last   sync.Map // map[uint32]model.Pose
	counts [model.PoseCount]atomic.Uint64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Play implements ai.PoseSink.
func (t *Tracker) Play(agentID uint32, pose model.Pose) {
	t.last.Store(agentID, pose)
	if int(pose) >= 0 && int(pose) < len(t.counts) {
		t.counts[pose].Add(1)
	}
}

// Last returns the last pose played for agentID.
func (t *Tracker) Last(agentID uint32) (model.Pose, bool) {
	v, ok := t.last.Load(agentID)
	if !ok {
		return 0, false
	}
	return v.(model.Pose), true
}

// Count returns how many times pose has been played across all agents.
func (t *Tracker) Count(pose model.Pose) uint64 {
	if int(pose) < 0 || int(pose) >= len(t.counts) {
		return 0
	}
	return t.counts[pose].Load()
}

// Forget implements ai.PoseForgetter: it drops the remembered pose of a despawned agent.
func (t *Tracker) Forget(agentID uint32) {
	t.last.Delete(agentID)
}

// Summary returns play counts keyed by pose name.
func (t *Tracker) Summary() map[string]uint64 {
	out := make(map[string]uint64, len(t.counts))
	for i := range t.counts {
		out[model.Pose(i).String()] = t.counts[i].Load()
	}
	return out
}
