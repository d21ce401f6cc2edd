package anim

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/npcwander/internal/model"
)

func TestLogSinkSkipsRepeats(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sink := NewLogSink(logger)

	sink.Play(1, model.PoseMoving)
	sink.Play(1, model.PoseMoving)
	sink.Play(1, model.PoseWarmingUp)
	sink.Play(2, model.PoseMoving)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "pose=moving")
	assert.Contains(t, lines[1], "pose=idle-1")
	assert.Contains(t, lines[2], "agent=2")
}

func TestTracker(t *testing.T) {
	tr := NewTracker()

	_, ok := tr.Last(5)
	assert.False(t, ok)

	tr.Play(5, model.PoseMoving)
	tr.Play(5, model.PoseSelfCheck)
	tr.Play(6, model.PoseSelfCheck)

	pose, ok := tr.Last(5)
	require.True(t, ok)
	assert.Equal(t, model.PoseSelfCheck, pose)
	assert.Equal(t, uint64(1), tr.Count(model.PoseMoving))
	assert.Equal(t, uint64(2), tr.Count(model.PoseSelfCheck))
	assert.Equal(t, uint64(0), tr.Count(model.Pose(42)))

	assert.Equal(t, map[string]uint64{
		"moving": 1,
		"idle-1": 0,
		"idle-2": 0,
		"idle-3": 2,
	}, tr.Summary())

	tr.Forget(5)
	_, ok = tr.Last(5)
	assert.False(t, ok)
}

func TestTrackerConcurrent(t *testing.T) {
	tr := NewTracker()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Go(func() {
			for range 1000 {
				tr.Play(uint32(i), model.PoseMoving)
			}
		})
	}
	wg.Wait()

	assert.Equal(t, uint64(8000), tr.Count(model.PoseMoving))
}

func TestMultiFansOut(t *testing.T) {
	a, b := NewTracker(), NewTracker()
	Multi{a, b}.Play(3, model.PosePhoneTalking)

	for _, tr := range []*Tracker{a, b} {
		pose, ok := tr.Last(3)
		require.True(t, ok)
		assert.Equal(t, model.PosePhoneTalking, pose)
	}
}

func TestMultiForget(t *testing.T) {
	var buf bytes.Buffer
	logSink := NewLogSink(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	tr := NewTracker()
	m := Multi{tr, logSink}

	m.Play(3, model.PoseMoving)
	m.Forget(3)

	_, ok := tr.Last(3)
	assert.False(t, ok)

	// A forgotten agent logs its next pose again even when it repeats.
	m.Play(3, model.PoseMoving)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
}
