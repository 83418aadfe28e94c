package tui

import (
	"bytes"
	"io"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/fchimpan/block-breaker/internal/config"
	"github.com/fchimpan/block-breaker/internal/game"
	"github.com/fchimpan/block-breaker/internal/layout"
	"github.com/fchimpan/block-breaker/internal/sprite"
)

const (
	minSpeed = 0.25
	maxSpeed = 5.0

	// Key repeat in terminals is slower than the frame rate, so one key press
	// keeps the paddle moving for a few frames.
	moveHoldFrames = 6
)

type Model struct {
	cfg    config.Config
	grid   layout.BlockGrid
	helper *sprite.Sprite
	logger *log.Logger
	keys   KeyMap
	help   help.Model

	seed  uint64
	speed float64

	lastTick time.Time
	acc      float64

	rng           *rand.Rand
	confetti      []confettiParticle
	confettiSpawn float64

	ready bool
	w     int
	h     int

	fieldW int
	fieldH int

	state game.State

	move     int
	moveHold int

	viewBuf bytes.Buffer
	canvas  canvasBuf
	cells   cellCache
}

func NewModel(cfg config.Config, helper *sprite.Sprite, logger *log.Logger, seed uint64, speed float64) *Model {
	if speed <= 0 {
		speed = 1
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if helper == nil {
		c, err := sprite.ParseHex(cfg.Sweep.HelperColor)
		if err != nil {
			c = defaultHelperColor
		}
		helper = sprite.Placeholder(c)
	}
	grid := layout.BuildBlockGrid(cfg.Blocks, cfg.Screen.Width)

	h := help.New()
	h.ShowAll = false

	return &Model{
		cfg:    cfg,
		grid:   grid,
		helper: helper,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   h,
		seed:   seed,
		speed:  speed,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		state:  game.NewState(cfg, grid, seed),
		cells:  cellCache{},
	}
}

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		d = time.Second / 60
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	m.logger.Info("game started", "variant", m.cfg.Variant, "seed", m.seed, "blocks", m.state.BlocksTotal)
	return tickCmd(m.frameDuration())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w = msg.Width
		m.h = msg.Height
		m.resize()
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		if m.lastTick.IsZero() {
			m.lastTick = now
			return m, tickCmd(m.frameDuration())
		}

		// Measure real elapsed time, but clamp to avoid a huge "warp" when the app lags.
		dt := now.Sub(m.lastTick).Seconds()
		m.lastTick = now
		dt = min(max(dt, 0), 0.05)

		m.updateParty(dt)
		m.advance(dt)
		return m, tickCmd(m.frameDuration())
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.logger.Info("quit", "score", m.state.Score, "phase", m.state.Phase)
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			m.restart()
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(m.speed+0.1, maxSpeed)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(m.speed-0.1, minSpeed)
		case key.Matches(msg, m.keys.Left):
			m.move, m.moveHold = -1, moveHoldFrames
		case key.Matches(msg, m.keys.Right):
			m.move, m.moveHold = 1, moveHoldFrames
		}
		return m, nil
	default:
		return m, nil
	}
}

// advance runs as many fixed frames as dt (scaled by speed) covers.
func (m *Model) advance(dt float64) {
	if !m.ready || m.state.Phase.Terminal() {
		return
	}
	fixed := 1.0 / float64(max(m.cfg.FPS, 1))
	const maxStepsPerTick = 10

	m.acc += dt * m.speed
	steps := 0
	for m.acc >= fixed && steps < maxStepsPerTick && !m.state.Phase.Terminal() {
		in := game.Input{}
		if m.moveHold > 0 {
			in.Move = m.move
			m.moveHold--
		}
		m.logEvents(m.state.Step(in))
		m.acc -= fixed
		steps++
	}
	// If we are too far behind, drop the remainder to keep the app responsive.
	if steps >= maxStepsPerTick {
		m.acc = math.Mod(m.acc, fixed)
	}
	if m.state.Phase.Terminal() {
		m.acc = 0
		m.moveHold = 0
	}
}

func (m *Model) logEvents(evs []game.Event) {
	for _, ev := range evs {
		switch ev.Kind {
		case game.EventBlockHit:
			m.logger.Debug("block hit", "tick", ev.Tick, "remaining", len(m.state.Blocks))
		case game.EventItemDropped, game.EventItemCollected, game.EventEffectExpired:
			m.logger.Debug(ev.Kind.String(), "tick", ev.Tick, "item", ev.Item)
		case game.EventLifeLost:
			m.logger.Info("life lost", "tick", ev.Tick, "lives", m.state.Lives)
		case game.EventGameOver, game.EventGameClear:
			m.logger.Info(ev.Kind.String(), "tick", ev.Tick, "score", m.state.Score)
		}
	}
}

func (m *Model) restart() {
	if !m.state.Phase.Terminal() {
		return
	}
	// Change seed so retries feel fresh even with a fixed --seed.
	m.seed++
	m.state.Restart(m.seed)
	m.rng = rand.New(rand.NewPCG(m.seed, m.seed^0x9e3779b97f4a7c15))
	m.lastTick = time.Time{}
	m.acc = 0
	m.move, m.moveHold = 0, 0
	m.confetti = nil
	m.confettiSpawn = 0
	m.logger.Info("restart", "seed", m.seed)
}

func (m *Model) frameDuration() time.Duration {
	// Bubble Tea drives View() on every message; avoid rendering 60fps when not needed.
	switch {
	case !m.ready:
		return time.Second / 60
	case m.state.Phase == game.PhaseGameOver:
		return time.Second / 15
	case m.state.Phase == game.PhaseClear:
		return time.Second / 30
	}
	return time.Second / time.Duration(max(m.cfg.FPS, 1))
}

func (m *Model) resize() {
	m.fieldW, m.fieldH = fieldSize(m.w, m.h)
	m.help.Width = m.w
	m.canvas.Reset()
	// Sprite cells are resampled at the new size.
	m.cells = cellCache{}
	m.confetti = nil
	m.confettiSpawn = 0
	m.ready = true
}

// Terminal cells are roughly twice as tall as they are wide, so a 4:3 pixel
// field maps to a cols:rows ratio of 8:3.
const (
	fieldAspectNum = 3
	fieldAspectDen = 8
	minFieldW      = 40
	minFieldH      = 15
	chromeRows     = 4 // HUD, status, help, trailing line
)

func fieldSize(termW, termH int) (int, int) {
	w := max(termW-2, minFieldW)
	h := max(termH-chromeRows, minFieldH)
	if w*fieldAspectNum/fieldAspectDen > h {
		w = h * fieldAspectDen / fieldAspectNum
	}
	return max(w, minFieldW), max(w*fieldAspectNum/fieldAspectDen, minFieldH)
}

func (m *Model) View() string {
	if !m.ready {
		return "loading...\n"
	}

	m.viewBuf.Reset()
	b := &m.viewBuf

	hud := renderHUD(m.hudInfo())
	status := m.statusLine()
	helpLine := styleHudDim.Render(m.help.View(m.keys))

	contentW := max(m.fieldW, lipgloss.Width(hud), lipgloss.Width(status))
	leftPad := ""
	if m.w > contentW {
		leftPad = strings.Repeat(" ", (m.w-contentW)/2)
	}

	contentH := 1 + 1 + m.fieldH + 1
	if m.h > contentH {
		b.WriteString(strings.Repeat("\n", (m.h-contentH)/2))
	}

	b.WriteString(leftPad)
	b.WriteString(hud)
	b.WriteByte('\n')
	b.WriteString(leftPad)
	b.WriteString(status)
	b.WriteByte('\n')

	var overlay *fieldOverlay
	switch m.state.Phase {
	case game.PhaseGameOver:
		overlay = &fieldOverlay{
			Title:  "GAME OVER",
			Lines:  []string{scoreLine(m.state.Score)},
			Footer: "press r to restart, q to quit",
		}
	case game.PhaseClear:
		overlay = &fieldOverlay{
			Title:  "GAME CLEAR!",
			Lines:  []string{"all blocks removed.", scoreLine(m.state.Score)},
			Footer: "press r to restart, q to quit",
			Clear:  true,
		}
	}

	renderFieldTo(b, fieldView{
		state:    &m.state,
		w:        m.fieldW,
		h:        m.fieldH,
		helper:   m.helper,
		confetti: m.confetti,
		overlay:  overlay,
		leftPad:  leftPad,
	}, &m.canvas, m.cells)

	b.WriteString(leftPad)
	b.WriteString(helpLine)
	b.WriteByte('\n')
	return b.String()
}

func (m *Model) statusLine() string {
	switch m.state.Phase {
	case game.PhaseClear:
		return styleHudOk.Render("CLEAR! all blocks removed.")
	case game.PhaseGameOver:
		return ""
	}
	if m.cfg.Variant == config.VariantSweep {
		return styleHudDim.Render("items: B bomb, H helper")
	}
	return styleHudDim.Render("items: E extend, L life, O ball")
}

func (m *Model) hudInfo() hudInfo {
	info := hudInfo{
		score:     m.state.Score,
		remaining: len(m.state.Blocks),
		total:     m.state.BlocksTotal,
		lives:     -1,
		speed:     m.speed,
	}
	for i := range m.state.Items {
		if it := &m.state.Items[i]; it.Active && it.Kind == game.ItemHelper {
			info.helper = max(info.helper, m.frames(it.Life))
		}
	}
	if m.cfg.Variant == config.VariantPowerUp {
		info.lives = m.state.Lives
		if left := m.state.ExtendRemaining(); left > 0 {
			info.extend = m.frames(left)
		}
	}
	return info
}

// frames converts simulation frames into wall-clock time at 1.0x speed.
func (m *Model) frames(n int64) time.Duration {
	return time.Duration(n) * time.Second / time.Duration(max(m.cfg.FPS, 1))
}

type confettiParticle struct {
	X    int
	Y    float64
	VY   float64
	Cell string
}

func (m *Model) updateParty(dt float64) {
	if !m.ready {
		return
	}
	// Party only on CLEAR (no confetti for GAME OVER).
	if m.state.Phase != game.PhaseClear {
		if len(m.confetti) > 0 {
			m.confetti = nil
			m.confettiSpawn = 0
		}
		return
	}

	w, h := m.fieldW, m.fieldH
	if w <= 0 || h <= 0 {
		return
	}

	out := m.confetti[:0]
	for i := range m.confetti {
		p := m.confetti[i]
		p.Y += p.VY * dt
		if p.Y < float64(h) {
			out = append(out, p)
		}
	}
	m.confetti = out

	m.confettiSpawn = min(m.confettiSpawn+dt*45.0, 200)
	for m.confettiSpawn >= 1.0 {
		m.confettiSpawn -= 1.0
		ci := m.rng.IntN(len(confettiChars))
		co := m.rng.IntN(len(confettiColors))
		m.confetti = append(m.confetti, confettiParticle{
			X:    m.rng.IntN(w),
			Y:    -1,
			VY:   10.0 + m.rng.Float64()*25.0,
			Cell: confettiCells[ci][co],
		})
	}
}
