package scene

import (
	"errors"
	"sync"
	"testing"

	"github.com/san-kum/efield/internal/config"
	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *Session {
	return NewSession(Grid{Spacing: 50, Thickness: 2}, field.DefaultParams())
}

func TestGrid_SnapValue(t *testing.T) {
	g := Grid{Spacing: 50, Thickness: 2}
	tests := []struct {
		in, want float64
	}{
		{173, 151},
		{176, 201},
		{175, 151},
		{0, 1},
		{24, 1},
		{26, 51},
		{350, 351},
		{-10, 1},
		{-30, -49},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.SnapValue(tt.in), "snap %v", tt.in)
	}
}

func TestSession_Place(t *testing.T) {
	s := newTestSession()

	i, ok := s.Place(geometry.V(348, 305))
	require.True(t, ok)
	assert.Equal(t, 0, i)

	snap := s.Snapshot()
	require.Len(t, snap.Charges, 1)
	assert.Equal(t, field.Charge{X: 351, Y: 301, Magnitude: 1}, snap.Charges[0])

	idx, editing := s.Editing()
	assert.True(t, editing)
	assert.Equal(t, 0, idx)
}

func TestSession_PlaceDuplicate(t *testing.T) {
	s := newTestSession()
	_, ok := s.Place(geometry.V(350, 300))
	require.True(t, ok)

	_, ok = s.Place(geometry.V(355, 290))
	assert.False(t, ok, "same grid point")
	assert.Equal(t, 1, s.Len())
}

func TestSession_Select(t *testing.T) {
	s := newTestSession()
	s.Place(geometry.V(100, 100))
	s.Place(geometry.V(200, 100))

	i, ok := s.Select(geometry.V(98, 104))
	require.True(t, ok)
	assert.Equal(t, 0, i)

	_, ok = s.Select(geometry.V(500, 500))
	assert.False(t, ok)
	idx, _ := s.Editing()
	assert.Equal(t, 0, idx, "failed select keeps the editing target")

	assert.Equal(t, 1, s.IndexAt(geometry.V(201, 101)))
	assert.Equal(t, -1, s.IndexAt(geometry.V(200, 100)))
}

func TestSession_EditingEmpty(t *testing.T) {
	s := newTestSession()
	_, ok := s.Editing()
	assert.False(t, ok)

	_, ok = s.SetMagnitude("3")
	assert.False(t, ok)
	assert.False(t, s.Remove())
}

func TestSession_SetMagnitude(t *testing.T) {
	s := newTestSession()
	s.Place(geometry.V(100, 100))

	m, ok := s.SetMagnitude("-2")
	require.True(t, ok)
	assert.Equal(t, -2.0, m)

	m, _ = s.SetMagnitude("lots")
	assert.Equal(t, 0.0, m, "unparseable magnitude resets to zero")

	m, _ = s.AdjustMagnitude(1.5)
	assert.Equal(t, 1.5, m)
	assert.Equal(t, 1.5, s.Snapshot().Charges[0].Magnitude)
}

func TestSession_ApplyParam(t *testing.T) {
	s := newTestSession()

	assert.True(t, s.ApplyParam(config.ParamStepSize, "4"))
	assert.Equal(t, 4.0, s.Params().StepSize)

	assert.True(t, s.ApplyParam(config.ParamStepSize, "four"))
	assert.Equal(t, 4.0, s.Params().StepSize)

	assert.False(t, s.ApplyParam("bogus", "1"))
}

func TestSession_LoadPreset(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.LoadPreset("opposite-sign"))

	snap := s.Snapshot()
	assert.Len(t, snap.Charges, 2)
	idx, ok := s.Editing()
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "opposite-sign", s.Preset())

	s.AdjustMagnitude(1)
	assert.Empty(t, s.Preset(), "editing clears the preset name")

	err := s.LoadPreset("missing")
	var unknown ErrUnknownPreset
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "missing", unknown.Name)
}

func TestSession_LoadPresetEscapeRadius(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Field.EscapeRadius = 500
	require.NoError(t, cfg.ApplyPreset("lines"))

	s := NewSessionFromConfig(cfg)
	assert.Equal(t, 2000.0, s.Params().EscapeRadius)

	require.NoError(t, s.LoadPreset("point-charge"))
	assert.Equal(t, 500.0, s.Params().EscapeRadius, "configured radius comes back")

	require.NoError(t, s.LoadPreset("lines"))
	assert.Equal(t, 2000.0, s.Params().EscapeRadius)
}

func TestSession_Remove(t *testing.T) {
	s := newTestSession()
	s.Place(geometry.V(100, 100))
	s.Place(geometry.V(200, 100))

	require.True(t, s.Remove())
	idx, ok := s.Editing()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	require.True(t, s.Remove())
	_, ok = s.Editing()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestSession_SnapshotIsCopy(t *testing.T) {
	s := newTestSession()
	s.Place(geometry.V(100, 100))

	snap := s.Snapshot()
	snap.Charges[0].Magnitude = 99
	snap.Params.StepSize = 99

	assert.Equal(t, 1.0, s.Snapshot().Charges[0].Magnitude)
	assert.Equal(t, 1.0, s.Params().StepSize)
}

func TestNewSessionFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.ApplyPreset("same-sign"))

	s := NewSessionFromConfig(cfg)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "same-sign", s.Preset())
	assert.Equal(t, Grid{Spacing: 50, Thickness: 2}, s.Grid())

	cfg.Charges[0].Magnitude = 7
	assert.Equal(t, 1.0, s.Snapshot().Charges[0].Magnitude)
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := newTestSession()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.Place(geometry.V(float64(i*50), 0))
			s.AdjustMagnitude(1)
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, s.Len())
}
