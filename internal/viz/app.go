package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/efield/internal/config"
	"github.com/san-kum/efield/internal/geometry"
	"github.com/san-kum/efield/internal/logging"
	"github.com/san-kum/efield/internal/render"
	"github.com/san-kum/efield/internal/scene"
	"go.uber.org/zap"
)

const (
	defaultCols = 80
	defaultRows = 30
	panelWidth  = 38
	tickEvery   = 100 * time.Millisecond
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeMagnitude
	modeParam
)

type TickMsg time.Time

// gen tags each render request so results arriving out of order can be
// told apart.
type frameMsg struct {
	gen   uint64
	frame *render.Frame
}

type renderErrMsg struct {
	gen uint64
	err error
}

// App is the interactive field editor. Charges live in the Session; every
// edit requests a new render, which supersedes any render still running.
type App struct {
	ctx      context.Context
	session  *scene.Session
	renderer *render.Renderer
	world    geometry.Bounds

	canvas *Canvas
	vp     *Viewport
	cursor geometry.Vec

	frame     *render.Frame
	gen       uint64
	shown     uint64
	rendering bool
	renderErr error
	spin      int

	mode     inputMode
	param    string
	buffer   string
	status   string
	theme    Theme
	styles   Styles
	showHelp bool
}

// NewApp builds the editor over an existing session. world is the visible
// area in charge coordinates.
func NewApp(ctx context.Context, sess *scene.Session, r *render.Renderer, world geometry.Bounds, theme string) App {
	t := GetTheme(theme)
	a := App{
		ctx:      ctx,
		session:  sess,
		renderer: r,
		world:    world,
		theme:    t,
		styles:   NewStyles(t),
	}
	a.resize(defaultCols+panelWidth, defaultRows+2)
	a.cursor = sess.Grid().Snap(geometry.V(
		(world.Min.X+world.Max.X)/2,
		(world.Min.Y+world.Max.Y)/2,
	))
	if i, ok := sess.Editing(); ok {
		a.cursor = sess.Snapshot().Charges[i].Pos()
	}
	a.gen = 1
	a.rendering = true
	return a
}

func tick() tea.Cmd {
	return tea.Tick(tickEvery, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.renderCmd(a.gen), tick())
}

// renderCmd snapshots the session now and traces it off the update loop.
func (a App) renderCmd(gen uint64) tea.Cmd {
	snap := a.session.Snapshot()
	r, ctx := a.renderer, a.ctx
	return func() tea.Msg {
		f, err := r.Render(ctx, snap)
		if err != nil {
			return renderErrMsg{gen: gen, err: err}
		}
		return frameMsg{gen: gen, frame: f}
	}
}

func (a *App) rerender() tea.Cmd {
	a.gen++
	a.rendering = true
	a.renderErr = nil
	return a.renderCmd(a.gen)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case TickMsg:
		a.spin++
		return a, tick()

	case frameMsg:
		if msg.gen < a.shown {
			return a, nil
		}
		a.frame, a.shown = msg.frame, msg.gen
		if msg.gen == a.gen {
			a.rendering = false
		}
		return a, nil

	case renderErrMsg:
		if errors.Is(msg.err, render.ErrSuperseded) || msg.gen != a.gen {
			return a, nil
		}
		a.rendering = false
		a.renderErr = msg.err
		if !errors.Is(msg.err, context.Canceled) {
			logging.Get().Warn("render failed", zap.Error(msg.err))
		}
		return a, nil

	case tea.KeyMsg:
		if a.mode != modeNormal {
			return a.updateInput(msg)
		}
		return a.updateNormal(msg)
	}
	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	spacing := a.session.Grid().Spacing
	a.status = ""

	switch key := msg.String(); key {
	case "q", "ctrl+c":
		a.renderer.Cancel()
		return a, tea.Quit
	case "?":
		a.showHelp = !a.showHelp
	case "t":
		a.theme = NextTheme(a.theme.Name)
		a.styles = NewStyles(a.theme)
	case "up", "k":
		a.moveCursor(0, -spacing)
	case "down", "j":
		a.moveCursor(0, spacing)
	case "left", "h":
		a.moveCursor(-spacing, 0)
	case "right", "l":
		a.moveCursor(spacing, 0)
	case "enter", " ":
		if _, ok := a.session.Place(a.cursor); !ok {
			a.status = fmt.Sprintf("charge already at (%g, %g)", a.cursor.X, a.cursor.Y)
			return a, nil
		}
		return a, a.rerender()
	case "s":
		if _, ok := a.session.Select(a.cursor); !ok {
			a.status = "no charge under cursor"
		}
	case "tab":
		a.cycleEditing()
	case "+", "=":
		if _, ok := a.session.AdjustMagnitude(1); ok {
			return a, a.rerender()
		}
	case "-", "_":
		if _, ok := a.session.AdjustMagnitude(-1); ok {
			return a, a.rerender()
		}
	case "m":
		if i, ok := a.session.Editing(); ok {
			a.mode = modeMagnitude
			a.buffer = fmt.Sprintf("%g", a.session.Snapshot().Charges[i].Magnitude)
		}
	case "d", "i", "a":
		a.mode = modeParam
		a.param = map[string]string{
			"d": config.ParamStepSize,
			"i": config.ParamMaxIterations,
			"a": config.ParamArrowInterval,
		}[key]
		a.buffer = config.ParamValue(a.session.Params(), a.param)
	case "x", "delete":
		if a.session.Remove() {
			return a, a.rerender()
		}
	case "c":
		a.session.Clear()
		return a, a.rerender()
	case "r":
		return a, a.rerender()
	case "1", "2", "3", "4":
		names := config.ListPresets()
		n := int(key[0] - '1')
		if n < len(names) {
			if err := a.session.LoadPreset(names[n]); err != nil {
				a.status = err.Error()
				return a, nil
			}
			if i, ok := a.session.Editing(); ok {
				a.cursor = a.session.Snapshot().Charges[i].Pos()
			}
			return a, a.rerender()
		}
	}
	return a, nil
}

func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = modeNormal
		a.buffer = ""
		return a, nil
	case tea.KeyEnter:
		mode, input := a.mode, a.buffer
		a.mode = modeNormal
		a.buffer = ""
		if mode == modeMagnitude {
			a.session.SetMagnitude(input)
		} else {
			a.session.ApplyParam(a.param, input)
		}
		return a, a.rerender()
	case tea.KeyBackspace:
		if r := []rune(a.buffer); len(r) > 0 {
			a.buffer = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		a.buffer += string(msg.Runes)
	}
	return a, nil
}

func (a *App) moveCursor(dx, dy float64) {
	next := a.cursor.Add(geometry.V(dx, dy))
	if next.X < a.world.Min.X || next.X > a.world.Max.X || next.Y < a.world.Min.Y || next.Y > a.world.Max.Y {
		return
	}
	a.cursor = next
}

func (a *App) cycleEditing() {
	n := a.session.Len()
	if n == 0 {
		return
	}
	i, ok := a.session.Editing()
	next := 0
	if ok {
		next = (i + 1) % n
	}
	a.session.SelectIndex(next)
	a.cursor = a.session.Snapshot().Charges[next].Pos()
}

func (a *App) resize(w, h int) {
	cols := w - panelWidth - 2
	rows := h - 2
	if cols < 10 {
		cols = 10
	}
	if rows < 5 {
		rows = 5
	}
	a.canvas = NewCanvas(cols, rows)
	a.vp = NewViewport(a.canvas, a.world)
}

// Cursor returns the grid point under the cursor.
func (a App) Cursor() geometry.Vec { return a.cursor }

// Frame returns the newest frame received, or nil.
func (a App) Frame() *render.Frame { return a.frame }

func (a App) View() string {
	snap := a.session.Snapshot()
	editing, _ := a.session.Editing()

	layer := Layer{
		Grid:    a.session.Grid(),
		Charges: snap.Charges,
		Editing: editing,
	}
	if a.frame != nil {
		layer.Lines = a.frame.Lines
		layer.ArrowLength = a.frame.Params.ArrowLength
	}
	Draw(a.vp, layer, a.styles)
	if a.session.IndexAt(a.cursor) < 0 {
		a.vp.Mark(a.cursor, a.styles.Cursor.Render("╋"))
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, a.canvas.Render(a.styles.Line), a.panel(snap))
	if a.showHelp {
		return helpText + "\n" + main
	}
	return main
}

func (a App) panel(snap scene.Snapshot) string {
	st := a.styles
	var s strings.Builder

	s.WriteString(st.Title.Render("ELECTRIC FIELD") + "\n")
	switch {
	case a.rendering:
		s.WriteString(st.Status.Render(AnimatedSpinner(a.spin)+" tracing") + "\n")
	case a.renderErr != nil:
		s.WriteString(st.Warning.Render("error: "+a.renderErr.Error()) + "\n")
	case a.frame != nil:
		s.WriteString(st.Status.Render(fmt.Sprintf("ready %s", a.frame.Elapsed.Round(time.Millisecond))) + "\n")
	}
	if a.status != "" {
		s.WriteString(st.Warning.Render(a.status) + "\n")
	}
	s.WriteString(st.Separator(panelWidth-4) + "\n")

	preset := a.session.Preset()
	if preset == "" {
		preset = "custom"
	}
	row := func(label, value string) {
		s.WriteString(st.Label.Render(label) + st.Value.Render(value) + "\n")
	}
	row("Preset", preset)
	row("Charges", fmt.Sprintf("%d", len(snap.Charges)))
	if a.frame != nil {
		row("Lines", fmt.Sprintf("%d", a.frame.LineCount()))
	}
	row("Cursor", fmt.Sprintf("(%g, %g)", a.cursor.X, a.cursor.Y))

	if i, ok := a.session.Editing(); ok && i < len(snap.Charges) {
		c := snap.Charges[i]
		value := fmt.Sprintf("#%d q=%g", i, c.Magnitude)
		if a.mode == modeMagnitude {
			s.WriteString(st.Active.Render(fmt.Sprintf("> %-12s%s_", "Charge", a.buffer)) + "\n")
		} else {
			row("Editing", value)
		}
	}

	s.WriteString("\n")
	for _, name := range config.EditableParams {
		if a.mode == modeParam && a.param == name {
			s.WriteString(st.Active.Render(fmt.Sprintf("> %-12s%s_", name, a.buffer)) + "\n")
			continue
		}
		row(name, config.ParamValue(snap.Params, name))
	}

	if a.frame != nil && a.frame.LineCount() > 1 {
		var iters []float64
		for _, p := range a.frame.Paths() {
			iters = append(iters, float64(p.Iterations))
		}
		chart := asciigraph.Plot(iters,
			asciigraph.Height(4),
			asciigraph.Width(panelWidth-12),
			asciigraph.Caption("iterations per line"),
		)
		s.WriteString("\n" + st.Line.Render(chart) + "\n")
	}

	s.WriteString("\n" + st.KeyHint.Render("arrows:move enter:place s:select\n+/-:charge m:edit d/i/a:params\n1-4:presets x:del c:clear ?:help q:quit"))
	return st.Panel.Render(s.String())
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Arrows/HJKL - Move cursor           ║
║  Enter/Space - Place charge          ║
║  S           - Select charge         ║
║  Tab         - Next charge           ║
║  + / -       - Change charge by 1    ║
║  M           - Type a charge value   ║
║  D / I / A   - Edit ds, iterations,  ║
║                arrow increment       ║
║  X           - Delete charge         ║
║  C           - Clear all charges     ║
║  1-4         - Load preset           ║
║  R           - Re-render             ║
║  T           - Cycle themes          ║
║  Q           - Quit                  ║
╚══════════════════════════════════════╝`
