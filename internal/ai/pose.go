package ai

import "github.com/udisondev/npcwander/internal/model"

// PoseSelector cycles through the idle pose rotation.
// It only decides which signal to emit; clip playback belongs to the sink.
type PoseSelector struct {
	index int
}

// NewPoseSelector creates a selector starting at the first idle pose.
func NewPoseSelector() *PoseSelector {
	return &PoseSelector{}
}

// Next returns the idle pose at the current index and advances the index.
func (s *PoseSelector) Next() model.Pose {
	p := model.IdlePoses[s.index]
	s.index = (s.index + 1) % len(model.IdlePoses)
	return p
}

// Moving returns the constant movement signal.
func (s *PoseSelector) Moving() model.Pose {
	return model.PoseMoving
}

// Index returns the index of the pose the next call to Next will return.
func (s *PoseSelector) Index() int {
	return s.index
}
