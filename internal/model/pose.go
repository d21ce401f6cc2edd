package model

// Pose is the animation signal handed to the pose sink.
type Pose int32

const (
	// PoseMoving is emitted while the agent moves faster than the stationary threshold.
	PoseMoving Pose = iota
	PoseWarmingUp
	PosePhoneTalking
	PoseSelfCheck

	// PoseCount is the number of defined poses.
	PoseCount = iota
)

// IdlePoses is the fixed rotation of idle poses, in playback order.
var IdlePoses = [...]Pose{PoseWarmingUp, PosePhoneTalking, PoseSelfCheck}

// IsIdle reports whether p is one of the idle poses.
func (p Pose) IsIdle() bool {
	return p >= PoseWarmingUp && p <= PoseSelfCheck
}

// String returns the signal name consumed by the animation layer.
func (p Pose) String() string {
	switch p {
	case PoseMoving:
		return "moving"
	case PoseWarmingUp:
		return "idle-1"
	case PosePhoneTalking:
		return "idle-2"
	case PoseSelfCheck:
		return "idle-3"
	default:
		return "unknown"
	}
}
