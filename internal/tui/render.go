package tui

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fchimpan/block-breaker/internal/game"
	"github.com/fchimpan/block-breaker/internal/sprite"
)

var defaultHelperColor = color.RGBA{R: 0xc8, B: 0xc8, A: 0xff}

type hudInfo struct {
	score     int
	remaining int
	total     int
	lives     int // negative hides the field
	extend    time.Duration
	helper    time.Duration
	speed     float64
}

func renderHUD(info hudInfo) string {
	sep := styleHudDim.Render("  |  ")

	total := max(info.total, info.remaining, 0)
	remaining := max(info.remaining, 0)
	done := min(max(total-remaining, 0), total)

	const barW = 18
	fill := 0
	if total > 0 {
		fill = min(max(barW*done/total, 0), barW)
	}
	bar := styleHudLabel.Render("[") +
		styleHudOk.Render(strings.Repeat("█", fill)) +
		styleHudDim.Render(strings.Repeat("░", barW-fill)) +
		styleHudLabel.Render("]")

	parts := []string{
		styleHudLabel.Render("score ") + styleHudScore.Render(fmt.Sprintf("%6d", info.score)),
		sep,
		styleHudLabel.Render("blocks ") + styleHudValue.Render(fmt.Sprintf("%3d/%3d", remaining, total)) + " " + bar,
	}
	if info.lives >= 0 {
		parts = append(parts, sep, styleHudLabel.Render("lives ")+styleHudValue.Render(fmt.Sprintf("%d", info.lives)))
	}
	if info.extend > 0 {
		parts = append(parts, sep, styleHudLabel.Render("extend ")+styleHudOk.Render(fmt.Sprintf("%.1fs", info.extend.Seconds())))
	}
	if info.helper > 0 {
		parts = append(parts, sep, styleHudLabel.Render("helper ")+styleHudOk.Render(fmt.Sprintf("%.1fs", info.helper.Seconds())))
	}
	parts = append(parts, sep, styleHudLabel.Render("speed ")+styleHudValue.Render(fmt.Sprintf("%.2fx", info.speed)))
	return strings.Join(parts, "")
}

func scoreLine(score int) string {
	return fmt.Sprintf("score: %6d", score)
}

type fieldOverlay struct {
	Title  string
	Lines  []string
	Footer string
	Clear  bool
}

// fieldView is everything renderFieldTo needs for one frame.
type fieldView struct {
	state    *game.State
	w, h     int
	helper   *sprite.Sprite
	confetti []confettiParticle
	overlay  *fieldOverlay
	leftPad  string
}

// ===== Render helpers (cached styles) =====

var (
	stylePaddle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#d0d7de"))
	stylePaddleExtended = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7ee787"))
	styleBall           = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))

	paddleCell         = stylePaddle.Render("=")
	paddleExtendedCell = stylePaddleExtended.Render("=")
	ballCell           = styleBall.Render("●")

	styleHudLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	styleHudValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d0d7de"))
	styleHudScore = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd33d"))
	styleHudOk    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7ee787"))
	styleHudDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))

	itemColors = map[game.ItemKind]lipgloss.Color{
		game.ItemBomb:   lipgloss.Color("#ff7b72"),
		game.ItemHelper: lipgloss.Color("#d2a8ff"),
		game.ItemExtend: lipgloss.Color("#7ee787"),
		game.ItemLife:   lipgloss.Color("#ff9bce"),
		game.ItemBall:   lipgloss.Color("#79c0ff"),
	}
	itemCells = func() map[game.ItemKind]string {
		cells := make(map[game.ItemKind]string, len(itemColors))
		for k, c := range itemColors {
			cells[k] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0d1117")).Background(c).Render(string(k.Glyph()))
		}
		return cells
	}()
)

var (
	confettiChars  = []rune{'*', '+', 'x', 'o', '~', '^'}
	confettiColors = []lipgloss.Color{
		lipgloss.Color("#ff7b72"),
		lipgloss.Color("#ffd33d"),
		lipgloss.Color("#7ee787"),
		lipgloss.Color("#79c0ff"),
		lipgloss.Color("#d2a8ff"),
	}
	confettiCells = func() [][]string {
		cells := make([][]string, len(confettiChars))
		for i, ch := range confettiChars {
			row := make([]string, len(confettiColors))
			for j, col := range confettiColors {
				row[j] = lipgloss.NewStyle().Foreground(col).Render(string(ch))
			}
			cells[i] = row
		}
		return cells
	}()
)

// cellCache holds one rendered background cell per colour.
type cellCache map[string]string

func (c cellCache) bg(hex string) string {
	if cell, ok := c[hex]; ok {
		return cell
	}
	cell := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(" ")
	c[hex] = cell
	return cell
}

// projector maps logical field pixels to terminal cells.
type projector struct {
	sx, sy float64
}

func newProjector(s *game.State, w, h int) projector {
	if s.Width <= 0 || s.Height <= 0 {
		return projector{}
	}
	return projector{sx: float64(w) / s.Width, sy: float64(h) / s.Height}
}

// span returns the cell range [x0,x1) x [y0,y1) covered by r; never empty.
func (p projector) span(r game.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Round(r.Left() * p.sx))
	x1 = max(int(math.Round(r.Right()*p.sx)), x0+1)
	y0 = int(math.Round(r.Top() * p.sy))
	y1 = max(int(math.Round(r.Bottom()*p.sy)), y0+1)
	return x0, y0, x1, y1
}

func (p projector) point(x, y float64) (int, int) {
	return int(math.Floor(x * p.sx)), int(math.Floor(y * p.sy))
}

type canvasBuf struct {
	w     int
	h     int
	cells []string // flat: y*w + x
}

func (c *canvasBuf) Reset() {
	c.w = 0
	c.h = 0
	c.cells = nil
}

func (c *canvasBuf) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		c.Reset()
		return
	}
	n := w * h
	if c.w == w && c.h == h && cap(c.cells) >= n {
		c.cells = c.cells[:n]
		return
	}
	c.w = w
	c.h = h
	c.cells = make([]string, n)
}

func (c *canvasBuf) Fill(cell string) {
	for i := range c.cells {
		c.cells[i] = cell
	}
}

func (c *canvasBuf) Set(x, y int, cell string) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell
}

func (c *canvasBuf) FillRect(x0, y0, x1, y1 int, cell string) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.Set(x, y, cell)
		}
	}
}

func renderFieldTo(out *bytes.Buffer, v fieldView, canvas *canvasBuf, cells cellCache) {
	if v.w <= 0 || v.h <= 0 || v.state == nil {
		return
	}
	s := v.state
	p := newProjector(s, v.w, v.h)

	canvas.Resize(v.w, v.h)
	canvas.Fill(" ")

	for i := range s.Blocks {
		blk := &s.Blocks[i]
		x0, y0, x1, y1 := p.span(blk.Rect)
		canvas.FillRect(x0, y0, x1, y1, cells.bg(blk.Color))
	}

	for i := range s.Items {
		it := &s.Items[i]
		if it.Active {
			drawHelper(canvas, p, it, v.helper, cells)
			continue
		}
		x, y := p.point(it.Rect.CenterX(), it.Rect.CenterY())
		canvas.Set(x, y, itemCells[it.Kind])
	}

	pc := paddleCell
	if s.Paddle.Extended() {
		pc = paddleExtendedCell
	}
	x0, y0, x1, _ := p.span(s.Paddle.Rect)
	canvas.FillRect(x0, y0, x1, y0+1, pc)

	for i := range s.Balls {
		x, y := p.point(s.Balls[i].Rect.CenterX(), s.Balls[i].Rect.CenterY())
		canvas.Set(x, y, ballCell)
	}

	for i := range v.confetti {
		canvas.Set(v.confetti[i].X, int(v.confetti[i].Y), v.confetti[i].Cell)
	}

	if v.overlay != nil {
		applyOverlay(canvas, v.overlay)
	}

	for y := 0; y < canvas.h; y++ {
		out.WriteString(v.leftPad)
		rowOff := y * canvas.w
		for x := 0; x < canvas.w; x++ {
			out.WriteString(canvas.cells[rowOff+x])
		}
		out.WriteByte('\n')
	}
}

func drawHelper(canvas *canvasBuf, p projector, it *game.Item, helper *sprite.Sprite, cells cellCache) {
	x0, y0, x1, y1 := p.span(it.Rect)
	if helper == nil {
		canvas.FillRect(x0, y0, x1, y1, itemCells[it.Kind])
		return
	}
	grid := helper.Cells(x1-x0, y1-y0)
	for dy, row := range grid {
		for dx, c := range row {
			canvas.Set(x0+dx, y0+dy, cells.bg(sprite.Hex(c)))
		}
	}
}

func applyOverlay(canvas *canvasBuf, ov *fieldOverlay) {
	h := canvas.h
	w := canvas.w
	if h == 0 || w == 0 {
		return
	}

	lines := make([]string, 0, 2+len(ov.Lines))
	if ov.Title != "" {
		lines = append(lines, ov.Title)
	}
	lines = append(lines, ov.Lines...)
	if ov.Footer != "" {
		lines = append(lines, ov.Footer)
	}

	innerW := 0
	for _, s := range lines {
		innerW = max(innerW, len(s))
	}
	innerH := len(lines)

	// padding 1 and border 1 on every side
	boxW := min(innerW+4, w)
	boxH := min(innerH+4, h)

	x0 := (w - boxW) / 2
	y0 := (h - boxH) / 2

	borderColor := "#30363d"
	titleColor := "#ff7b72"
	if ov.Clear {
		borderColor = "#7ee787"
		titleColor = "#7ee787"
	}

	borderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(titleColor))
	scoreStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd33d"))
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#d0d7de"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	panelStyle := lipgloss.NewStyle().Background(lipgloss.Color("#161b22"))

	canvas.FillRect(x0, y0, x0+boxW, y0+boxH, panelStyle.Render(" "))

	hLine := borderStyle.Render("─")
	vLine := borderStyle.Render("│")
	for x := x0 + 1; x < x0+boxW-1; x++ {
		canvas.Set(x, y0, hLine)
		canvas.Set(x, y0+boxH-1, hLine)
	}
	for y := y0 + 1; y < y0+boxH-1; y++ {
		canvas.Set(x0, y, vLine)
		canvas.Set(x0+boxW-1, y, vLine)
	}
	canvas.Set(x0, y0, borderStyle.Render("╭"))
	canvas.Set(x0+boxW-1, y0, borderStyle.Render("╮"))
	canvas.Set(x0, y0+boxH-1, borderStyle.Render("╰"))
	canvas.Set(x0+boxW-1, y0+boxH-1, borderStyle.Render("╯"))

	tx0 := x0 + 2
	ty0 := y0 + 2
	for i, line := range lines {
		y := ty0 + i
		if y >= y0+boxH-2 {
			break
		}
		if len(line) > innerW {
			line = line[:innerW]
		}
		startX := tx0 + (innerW-len(line))/2

		var st lipgloss.Style
		switch {
		case i == 0 && ov.Title != "":
			st = titleStyle
		case strings.HasPrefix(line, "score:"):
			st = scoreStyle
		case i == len(lines)-1 && ov.Footer != "":
			st = helpStyle
		default:
			st = textStyle
		}

		for j := 0; j < len(line); j++ {
			x := startX + j
			if x >= x0+boxW-2 {
				break
			}
			canvas.Set(x, y, panelStyle.Foreground(st.GetForeground()).Render(string(line[j])))
		}
	}
}
