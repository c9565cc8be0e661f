package viewer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"staging-console-backend/internal/viewer"
)

func TestPosition(t *testing.T) {
	assert.Equal(t, 50.0, viewer.Position(150, 100, 100))
	assert.Equal(t, 0.0, viewer.Position(50, 100, 100))
	assert.Equal(t, 100.0, viewer.Position(400, 100, 100))
	assert.Equal(t, 25.0, viewer.Position(125, 100, 100))
	assert.Equal(t, 0.0, viewer.Position(150, 100, 0))
	assert.Equal(t, 0.0, viewer.Position(150, 100, -10))
}

func TestSlider_DragSession(t *testing.T) {
	source := viewer.NewBroadcaster()
	s := viewer.NewSlider(viewer.Bounds{Left: 100, Top: 0, Width: 200, Height: 100}, source)
	assert.Equal(t, 50.0, s.Position())

	// moves before a press are ignored
	source.Move(150)
	s.Move(150)
	assert.Equal(t, 50.0, s.Position())

	assert.False(t, s.Press(50, 50), "press outside the container")
	assert.Equal(t, viewer.Idle, s.State())
	assert.Equal(t, 0, source.Len())

	assert.True(t, s.Press(200, 50))
	assert.Equal(t, viewer.Dragging, s.State())
	assert.Equal(t, 50.0, s.Position())
	assert.Equal(t, 1, source.Len())

	source.Move(250)
	assert.Equal(t, 75.0, s.Position())
	source.Move(900)
	assert.Equal(t, 100.0, s.Position())

	// release outside the container still ends the session
	source.Release()
	assert.Equal(t, viewer.Idle, s.State())
	assert.Equal(t, 0, source.Len())

	source.Move(100)
	assert.Equal(t, 100.0, s.Position())
}

func TestSlider_PressTwiceSubscribesOnce(t *testing.T) {
	source := viewer.NewBroadcaster()
	s := viewer.NewSlider(viewer.Bounds{Width: 100, Height: 100}, source)

	s.Press(10, 10)
	s.Press(20, 20)
	assert.Equal(t, 1, source.Len())
	assert.Equal(t, 10.0, s.Position())
}

func TestSlider_CloseReleasesSubscription(t *testing.T) {
	source := viewer.NewBroadcaster()
	s := viewer.NewSlider(viewer.Bounds{Width: 100, Height: 100}, source)

	s.Press(10, 10)
	s.Close()
	assert.Equal(t, viewer.Idle, s.State())
	assert.Equal(t, 0, source.Len())

	s.Close()
	assert.Equal(t, "idle", s.State().String())
}
