package scene

import (
	"math"
	"sync"

	"github.com/san-kum/efield/internal/config"
	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/geometry"
)

// DefaultMagnitude is the charge given to a freshly placed charge.
const DefaultMagnitude = 1.0

// Grid snaps world coordinates onto gridline intersections.
type Grid struct {
	Spacing   float64
	Thickness float64
}

func GridFromConfig(g config.GridConfig) Grid {
	return Grid{Spacing: g.Spacing, Thickness: g.Thickness}
}

// SnapValue rounds v to the nearest gridline and centres it on the line.
// Exact midpoints round down.
func (g Grid) SnapValue(v float64) float64 {
	if g.Spacing <= 0 {
		return v
	}
	r := math.Mod(v, g.Spacing)
	if r < 0 {
		r += g.Spacing
	}
	base := v - r
	if r > g.Spacing/2 {
		base += g.Spacing
	}
	return base + g.Thickness/2
}

func (g Grid) Snap(p geometry.Vec) geometry.Vec {
	return geometry.V(g.SnapValue(p.X), g.SnapValue(p.Y))
}

// Snapshot is an immutable copy of the scene for one render cycle.
type Snapshot struct {
	Charges []field.Charge
	Params  field.Params
}

// Session is the UI-owned charge collection. It is safe for concurrent use;
// renders read it only through Snapshot.
type Session struct {
	mu      sync.RWMutex
	grid    Grid
	charges []field.Charge
	params  field.Params
	editing int
	preset  string
	// escape is the configured escape radius, restored by presets that
	// leave it unset.
	escape float64
}

func NewSession(grid Grid, params field.Params) *Session {
	return &Session{grid: grid, params: params, editing: -1, escape: params.EscapeRadius}
}

// NewSessionFromConfig seeds a session with the configured charges and grid.
func NewSessionFromConfig(cfg *config.Config) *Session {
	s := NewSession(GridFromConfig(cfg.Grid), cfg.Field)
	s.charges = append([]field.Charge(nil), cfg.Charges...)
	if len(s.charges) > 0 {
		s.editing = len(s.charges) - 1
	}
	s.preset = cfg.Preset
	s.escape = cfg.EscapeRadius()
	return s
}

func (s *Session) Grid() Grid { return s.grid }

// Place adds a unit charge at the grid intersection nearest p and makes it
// the editing target. It returns false when a charge already sits there.
func (s *Session) Place(p geometry.Vec) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := s.grid.Snap(p)
	if s.indexAt(at) >= 0 {
		return -1, false
	}
	s.charges = append(s.charges, field.Charge{X: at.X, Y: at.Y, Magnitude: DefaultMagnitude})
	s.editing = len(s.charges) - 1
	s.preset = ""
	return s.editing, true
}

// Select makes the charge at the snapped position the editing target.
func (s *Session) Select(p geometry.Vec) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexAt(s.grid.Snap(p))
	if i < 0 {
		return -1, false
	}
	s.editing = i
	return i, true
}

// SelectIndex sets the editing target directly.
func (s *Session) SelectIndex(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.charges) {
		return false
	}
	s.editing = i
	return true
}

// IndexAt returns the index of the charge at exactly p, or -1.
func (s *Session) IndexAt(p geometry.Vec) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexAt(p)
}

func (s *Session) indexAt(p geometry.Vec) int {
	for i, c := range s.charges {
		if c.X == p.X && c.Y == p.Y {
			return i
		}
	}
	return -1
}

// Remove deletes the editing charge. The charge that moves into its slot,
// or the new last charge, becomes the editing target.
func (s *Session) Remove() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing < 0 {
		return false
	}
	s.charges = append(s.charges[:s.editing], s.charges[s.editing+1:]...)
	if s.editing >= len(s.charges) {
		s.editing = len(s.charges) - 1
	}
	s.preset = ""
	return true
}

// Editing returns the index of the charge being edited.
func (s *Session) Editing() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editing, s.editing >= 0
}

// SetMagnitude parses input as the editing charge's magnitude. Unparseable
// input sets it to zero. It returns the stored value.
func (s *Session) SetMagnitude(input string) (float64, bool) {
	m := config.ParseMagnitude(input)
	return s.updateMagnitude(func(float64) float64 { return m })
}

// AdjustMagnitude adds delta to the editing charge's magnitude.
func (s *Session) AdjustMagnitude(delta float64) (float64, bool) {
	return s.updateMagnitude(func(cur float64) float64 { return cur + delta })
}

func (s *Session) updateMagnitude(fn func(float64) float64) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing < 0 {
		return 0, false
	}
	m := fn(s.charges[s.editing].Magnitude)
	s.charges[s.editing].Magnitude = m
	s.preset = ""
	return m, true
}

// ApplyParam updates one tracing parameter from user input, keeping the
// previous value when the input is unusable.
func (s *Session) ApplyParam(name, input string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := config.ApplyParam(s.params, name, input)
	if ok {
		s.params = p
	}
	return ok
}

func (s *Session) Params() field.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// LoadPreset replaces the charges and parameter overrides with a preset.
// The last preset charge becomes the editing target. A preset without an
// escape radius restores the configured one.
func (s *Session) LoadPreset(name string) error {
	p := config.GetPreset(name)
	if p == nil {
		return ErrUnknownPreset{Name: name}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charges = p.ChargeList()
	params := s.params
	params.EscapeRadius = s.escape
	s.params = p.Apply(params)
	s.editing = len(s.charges) - 1
	s.preset = p.Name
	return nil
}

// Preset returns the loaded preset name, or "" once the scene is edited.
func (s *Session) Preset() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preset
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charges = nil
	s.editing = -1
	s.preset = ""
}

func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.charges)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Charges: append([]field.Charge(nil), s.charges...),
		Params:  s.params,
	}
}
