package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/npcwander/internal/model"
	"github.com/udisondev/npcwander/internal/rng"
)

func TestThreatAvoider_Nearest(t *testing.T) {
	tests := []struct {
		name     string
		entities []*model.Entity
		wantID   uint32
		wantOK   bool
	}{
		{
			name:     "empty",
			entities: nil,
		},
		{
			name: "ignores non-threat classes",
			entities: []*model.Entity{
				threat(1, model.ClassNPC, model.NewVec3(1, 0, 0)),
				threat(2, model.ClassProp, model.NewVec3(0, 0, 1)),
			},
		},
		{
			name: "picks closest threat",
			entities: []*model.Entity{
				threat(1, model.ClassVehicle, model.NewVec3(6, 0, 0)),
				threat(2, model.ClassPlayer, model.NewVec3(0, 0, 3)),
				threat(3, model.ClassNPC, model.NewVec3(1, 0, 0)),
			},
			wantID: 2,
			wantOK: true,
		},
		{
			name: "tie keeps first encountered",
			entities: []*model.Entity{
				threat(7, model.ClassPlayer, model.NewVec3(4, 0, 0)),
				threat(8, model.ClassVehicle, model.NewVec3(-4, 0, 0)),
			},
			wantID: 7,
			wantOK: true,
		},
		{
			name: "outside radius",
			entities: []*model.Entity{
				threat(1, model.ClassPlayer, model.NewVec3(11, 0, 0)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			av := NewThreatAvoider(&fakeSpatial{entities: tt.entities}, 10, 3, 0.1)
			got, ok := av.Nearest(model.Zero)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantID, got.ObjectID())
			}
		})
	}
}

func TestFleePoint_ExactlyAvoidDistanceAway(t *testing.T) {
	src := rng.New(17)
	for range 500 {
		pos := rng.InsideUnitSphere(src).Scale(50)
		offset := rng.InsideUnitSphere(src).Scale(10)
		if offset.Length() < 1e-6 {
			continue
		}
		threatPos := pos.Add(offset)

		p := FleePoint(pos, threatPos, 3)

		assert.InDelta(t, 3.0, p.Distance(pos), 1e-9)
		// Away from the threat: flee direction opposes the threat direction.
		away := p.Sub(pos).Normalized()
		assert.InDelta(t, -1.0, away.Dot(offset.Normalized()), 1e-9)
	}
}

func TestFleePoint_ThreatOnTop(t *testing.T) {
	pos := model.NewVec3(2, 0, 2)
	assert.Equal(t, pos, FleePoint(pos, pos, 3))
}

func TestThreatAvoider_Cadence(t *testing.T) {
	src := rng.Constant(0.5)
	av := NewThreatAvoider(&fakeSpatial{}, 10, 3, 0.1)

	due := 0
	for range 100 { // 1s at 100 Hz
		if av.Due(0.01, src) {
			due++
		}
	}
	assert.Equal(t, 10, due)
}
