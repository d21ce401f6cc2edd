package ai

import "github.com/udisondev/npcwander/internal/model"

// Navigator is the per-agent path follower of the navigation collaborator.
// The behavior core only sets destinations and reads progress; stepping along
// the computed path happens inside Advance.
type Navigator interface {
	// SetDestination computes a path from -> to. An error leaves the previous path in place.
	SetDestination(from, to model.Vec3) error
	// PathPending reports whether a fresh path has not been followed yet.
	PathPending() bool
	// RemainingDistance returns the distance left along the current path.
	RemainingDistance() float64
	// SetStopped freezes or releases path following.
	SetStopped(stopped bool)
	// Advance moves along the path for dt seconds and returns the new position and velocity.
	Advance(from model.Vec3, dt float64) (pos, velocity model.Vec3)
}

// Surface samples reachable points of the navigation surface.
type Surface interface {
	// SamplePoint returns the nearest reachable point within radius of center.
	SamplePoint(center model.Vec3, radius float64) (model.Vec3, bool)
}

// ObstacleProbe casts a short ray for the steering variant.
type ObstacleProbe interface {
	Raycast(origin, dir model.Vec3, distance float64) bool
}

// SpatialQuery returns entities near a point.
type SpatialQuery interface {
	QueryNearby(center model.Vec3, radius float64) []*model.Entity
}

// PoseSink receives pose signals. Write-only from the behavior side.
type PoseSink interface {
	Play(agentID uint32, pose model.Pose)
}

// PoseForgetter is implemented by sinks that keep per-agent state.
// Forget is called once the agent is despawned.
type PoseForgetter interface {
	Forget(agentID uint32)
}

// Body mirrors the agent into the surrounding world after each move and
// reports the contacts the move produced.
type Body interface {
	MoveTo(pos model.Vec3) []ContactEvent
}

// ContactPhase distinguishes first contact from sustained contact.
type ContactPhase int32

const (
	ContactEnter ContactPhase = iota
	ContactStay
)

// String returns human-readable phase name
func (p ContactPhase) String() string {
	switch p {
	case ContactEnter:
		return "enter"
	case ContactStay:
		return "stay"
	default:
		return "unknown"
	}
}

// ContactEvent is a contact reported by the physics collaborator.
type ContactEvent struct {
	OtherID  uint32
	Phase    ContactPhase
	Obstacle bool
}

// Deps bundles the collaborators of one agent.
// Which ones are required depends on the movement kind and profile.
type Deps struct {
	Navigator Navigator
	Surface   Surface
	Probe     ObstacleProbe
	Spatial   SpatialQuery
	Poses     PoseSink
	Body      Body
}
