package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbitsim/internal/clock"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/metrics"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600

	// upper bound on catch-up steps per frame so a stalled terminal does
	// not freeze the UI trying to repay the whole gap at once
	maxStepsPerFrame = 5000
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the live view and, with its accumulator, the driver of the
// simulation: each frame it measures elapsed wall-clock time and repays it
// as whole fixed steps. The engine itself never sees real time.
type Model struct {
	sim     *engine.Simulation
	initial *engine.Simulation
	acc     *clock.Accumulator
	palette Palette
	canvas  *Canvas
	drift   *metrics.Drift

	lastTick      time.Time
	running       bool
	energyHistory []float64
	maxRadius     float64
}

func NewModel(sim *engine.Simulation, speed float64, palette Palette) Model {
	maxRadius := 1.0
	for _, b := range sim.Bodies() {
		r := math.Max(math.Abs(b.Position.X), math.Abs(b.Position.Y))
		if r > maxRadius {
			maxRadius = r
		}
	}

	return Model{
		sim:           sim,
		initial:       sim.Clone(),
		acc:           clock.New(sim.Dt(), speed),
		palette:       palette,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		drift:         metrics.NewDrift(),
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		maxRadius:     maxRadius,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			m.acc.Reset()
		case "r":
			m.reset()
		case "+", "=":
			m.acc.SetSpeed(m.acc.Speed() * 1.25)
		case "-", "_":
			m.acc.SetSpeed(m.acc.Speed() / 1.25)
		}
	case TickMsg:
		now := time.Time(msg)
		if m.running && !m.lastTick.IsZero() {
			elapsed := now.Sub(m.lastTick)
			if elapsed > 250*time.Millisecond {
				elapsed = 250 * time.Millisecond
			}
			steps := m.acc.Advance(elapsed)
			if steps > maxStepsPerFrame {
				steps = maxStepsPerFrame
			}
			for i := 0; i < steps; i++ {
				m.sim.Step()
			}
			m.observe()
		}
		m.lastTick = now
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) observe() {
	for _, b := range m.sim.Bodies() {
		r := math.Max(math.Abs(b.Position.X), math.Abs(b.Position.Y))
		if r > m.maxRadius {
			m.maxRadius = r
		}
	}

	energy := m.sim.Energy()
	m.drift.Observe(energy)
	m.energyHistory = append(m.energyHistory, energy)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	m.sim = m.initial.Clone()
	m.acc.Reset()
	m.drift.Reset()
	m.energyHistory = m.energyHistory[:0]

	m.maxRadius = 1
	for _, b := range m.sim.Bodies() {
		r := math.Max(math.Abs(b.Position.X), math.Abs(b.Position.Y))
		if r > m.maxRadius {
			m.maxRadius = r
		}
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("ORBITSIM") + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4),
			asciigraph.Width(28),
			asciigraph.Caption("Energy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f", m.sim.Time())) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Steps())) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.0fx", m.acc.Speed())) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f", m.sim.Energy())) + "\n")
	s.WriteString(labelStyle.Render("Drift") + valueStyle.Render(fmt.Sprintf("%.2e", m.drift.Value())) + "\n")

	s.WriteString("\nBODIES\n")
	for i, b := range m.sim.Bodies() {
		line := fmt.Sprintf(" m=%-6.1f (%.1f, %.1f)", b.Mass, b.Position.X, b.Position.Y)
		s.WriteString(m.palette.Render(i, "●") + labelStyle.Render(line) + "\n")
	}

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset +/-:Speed Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// draw projects trails and bodies onto the canvas, auto-zooming out as the
// system spreads. The zoom never jumps back in mid-run so the view stays
// steady.
func (m Model) draw() {
	m.canvas.Clear()
	pw, ph := m.canvas.PixelSize()
	cx, cy := pw/2, ph/2
	scale := float64(ph) / (2.2 * m.maxRadius)

	for i := 0; i < m.sim.Len(); i++ {
		trail := m.sim.Trail(i)
		prevX, prevY := 0, 0
		for j, p := range trail {
			px := cx + int(p.X*scale)
			py := cy - int(p.Y*scale)
			if j > 0 {
				m.canvas.DrawLine(prevX, prevY, px, py)
			}
			prevX, prevY = px, py
		}
	}

	for _, b := range m.sim.Bodies() {
		px := cx + int(b.Position.X*scale)
		py := cy - int(b.Position.Y*scale)
		m.canvas.Blob(px, py, 1)
	}
}
