package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/fingerhunt/internal/game"
)

type cellStyle int

const (
	plain cellStyle = iota
	title
	info
	target
	hotspot
	fingertip
	cursor
	warning
)

var cellStyles = map[cellStyle]lipgloss.Style{
	title:     TitleStyle,
	info:      InfoStyle,
	target:    TargetStyle,
	hotspot:   HotspotStyle,
	fingertip: FingertipStyle,
	cursor:    InfoStyle,
	warning:   WarningStyle,
}

// canvas is the play field in terminal cells.
type canvas struct {
	w, h   int
	cellW  int
	cellH  int
	runes  [][]rune
	styles [][]cellStyle
}

func newCanvas(w, h, cellW, cellH int) *canvas {
	c := &canvas{w: w, h: h, cellW: cellW, cellH: cellH}
	c.runes = make([][]rune, h)
	c.styles = make([][]cellStyle, h)
	for y := range c.runes {
		c.runes[y] = []rune(strings.Repeat(" ", w))
		c.styles[y] = make([]cellStyle, w)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, s cellStyle) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y][x] = r
	c.styles[y][x] = s
}

func (c *canvas) text(x, y int, s string, style cellStyle) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, style)
	}
}

// centered writes s horizontally centered on row y.
func (c *canvas) centered(y int, s string, style cellStyle) {
	c.text((c.w-len([]rune(s)))/2, y, s, style)
}

// circle fills every cell whose center lies within the circle, given in
// field pixels, and writes the label below it.
func (c *canvas) circle(circle game.Circle, r rune, style cellStyle) {
	rad := circle.Radius
	for y := (circle.Y - rad) / c.cellH; y <= (circle.Y+rad)/c.cellH; y++ {
		for x := (circle.X - rad) / c.cellW; x <= (circle.X+rad)/c.cellW; x++ {
			dx := x*c.cellW + c.cellW/2 - circle.X
			dy := y*c.cellH + c.cellH/2 - circle.Y
			if dx*dx+dy*dy <= rad*rad {
				c.set(x, y, r, style)
			}
		}
	}
	// Always mark the center so small circles stay visible.
	c.set(circle.X/c.cellW, circle.Y/c.cellH, r, style)

	if circle.Label != "" {
		label := []rune(circle.Label)
		c.text(circle.X/c.cellW-len(label)/2, (circle.Y+rad)/c.cellH+1, circle.Label, style)
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y := range c.runes {
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.styles[y][x] == c.styles[y][start] {
				continue
			}
			run := string(c.runes[y][start:x])
			if s, ok := cellStyles[c.styles[y][start]]; ok {
				run = s.Render(run)
			}
			b.WriteString(run)
			start = x
		}
		if y < len(c.runes)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height <= headerLines+footerLines {
		return "Loading..."
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.header(), m.field().String(), m.help.ShortHelpView(m.keys.ShortHelp()))
}

// field draws the last frame into a canvas the size of the play area.
func (m *Model) field() *canvas {
	rows := m.height - headerLines - footerLines
	c := newCanvas(m.width, rows, m.opts.CellWidth, m.opts.CellHeight)
	f := m.frame

	switch f.State {
	case game.AwaitingHand:
		c.centered(rows/2-1, f.Title, title)
		c.centered(rows/2+1, f.Instructions, info)
		c.centered(rows/2+2, "(move the mouse over the field)", info)

	case game.Playing:
		if f.Target != nil {
			c.circle(*f.Target, '●', target)
		}

	case game.GameOver:
		c.centered(rows/2-1, "Time's up!", warning)
		c.centered(rows/2+1, fmt.Sprintf("Final score: %d", f.Score), info)
		if f.Hotspot != nil {
			c.circle(*f.Hotspot, '◎', hotspot)
		}
	}

	// The pointer is drawn as a plain cursor; only the engine's highlight
	// marks the tracked index fingertip.
	if pts := m.Points(); len(pts) == 1 {
		p := pts[0]
		c.set(p.X/m.opts.CellWidth, p.Y/m.opts.CellHeight, '+', cursor)
	}
	if f.Highlight != nil {
		c.set(f.Highlight.X/m.opts.CellWidth, f.Highlight.Y/m.opts.CellHeight, '◉', fingertip)
	}

	return c
}

func (m *Model) header() string {
	f := m.frame
	var parts []string
	switch f.State {
	case game.Playing:
		parts = append(parts,
			fmt.Sprintf("Time: %2ds", f.Remaining),
			fmt.Sprintf("Score: %d", f.Score))
	case game.GameOver:
		parts = append(parts, fmt.Sprintf("Score: %d", f.Score), "Touch Restart with your Index finger")
	default:
		parts = append(parts, game.TitleText)
	}
	parts = append(parts, "Finger: "+m.finger.String())
	if m.hidden {
		parts = append(parts, "hand hidden")
	}
	parts = append(parts, fmt.Sprintf("%3.0f fps", f.FPS))

	line := " " + strings.Join(parts, "  |  ")
	if pad := m.width - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return HeaderStyle.Render(line)
}
