// Package anim receives pose signals from agents.
package anim

import (
	"log/slog"
	"sync"

	"github.com/udisondev/npcwander/internal/ai"
	"github.com/udisondev/npcwander/internal/model"
)

var (
	_ ai.PoseSink = (*LogSink)(nil)
	_ ai.PoseSink = (*Tracker)(nil)
	_ ai.PoseSink = Multi(nil)

	_ ai.PoseForgetter = (*LogSink)(nil)
	_ ai.PoseForgetter = (*Tracker)(nil)
	_ ai.PoseForgetter = Multi(nil)
)

// LogSink logs pose changes at debug level. Repeated plays of the same pose are not logged.
type LogSink struct {
	logger *slog.Logger
	last   sync.Map // map[uint32]model.Pose
}

// NewLogSink creates a sink writing to logger (slog.Default() if nil).
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Play implements ai.PoseSink.
func (s *LogSink) Play(agentID uint32, pose model.Pose) {
	prev, loaded := s.last.Swap(agentID, pose)
	if loaded && prev.(model.Pose) == pose {
		return
	}
	s.logger.Debug("pose", "agent", agentID, "pose", pose)
}

// Forget implements ai.PoseForgetter.
func (s *LogSink) Forget(agentID uint32) {
	s.last.Delete(agentID)
}

// Multi fans one pose signal out to several sinks in order.
type Multi []ai.PoseSink

// Play implements ai.PoseSink.
func (m Multi) Play(agentID uint32, pose model.Pose) {
	for _, s := range m {
		s.Play(agentID, pose)
	}
}

// Forget passes the call on to every sink that keeps per-agent state.
func (m Multi) Forget(agentID uint32) {
	for _, s := range m {
		if f, ok := s.(ai.PoseForgetter); ok {
			f.Forget(agentID)
		}
	}
}
