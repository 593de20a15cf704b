package main

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/udoprog/ropey/internal/engine/rope"
)

// viewer renders a Rope to a terminal screen, one line of text per row,
// with a status bar whose color blends along the scroll position. It is
// the ropeview analog of the teacher's Terminal backend, narrowed from a
// generic cell-grid abstraction down to what a single read-mostly text
// viewer needs directly from tcell.
type viewer struct {
	screen    tcell.Screen
	buf       rope.Rope
	path      string
	cfg       Config
	sessionID uuid.UUID
	top       int // first visible line
}

func newViewer(screen tcell.Screen, buf rope.Rope, path string, cfg Config) *viewer {
	return &viewer{
		screen:    screen,
		buf:       buf,
		path:      path,
		cfg:       cfg,
		sessionID: uuid.New(),
	}
}

func (v *viewer) lineCount() int {
	return v.buf.LenLines()
}

func (v *viewer) draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	rows := height - 1 // reserve the last row for the status bar

	total := v.lineCount()
	if v.top > total-1 {
		v.top = total - 1
	}
	if v.top < 0 {
		v.top = 0
	}

	for row := 0; row < rows; row++ {
		lineNo := v.top + row
		if lineNo >= total {
			break
		}
		text, err := v.buf.Line(lineNo)
		if err != nil {
			continue
		}
		text = strings.TrimRight(text, "\r\n")
		v.drawLine(row, width, text)
	}

	v.drawStatus(width, height-1, total)
	v.screen.Show()
}

func (v *viewer) drawLine(row, width int, text string) {
	col := 0
	for _, r := range text {
		if col >= width {
			return
		}
		if r == '\t' {
			col += v.cfg.TabWidth
			continue
		}
		v.screen.SetContent(col, row, r, nil, tcell.StyleDefault)
		col++
	}
}

// drawStatus renders the bottom bar, blending from the configured start
// color to the end color as scroll position moves from the top of the
// buffer to the bottom — a visible progress indicator that also exercises
// go-colorful's perceptual Lab blend rather than a flat RGB lerp.
func (v *viewer) drawStatus(width, row, total int) {
	frac := 0.0
	if total > 1 {
		frac = float64(v.top) / float64(total-1)
	}
	start, err1 := colorful.Hex(v.cfg.Theme.StatusStart)
	end, err2 := colorful.Hex(v.cfg.Theme.StatusEnd)
	bg := tcell.ColorBlack
	if err1 == nil && err2 == nil {
		blended := start.BlendLab(end, frac)
		r, g, b := blended.RGB255()
		bg = tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	style := tcell.StyleDefault.Background(bg).Foreground(tcell.ColorWhite)

	label := v.path
	if label == "" {
		label = "[no file]"
	}
	status := " " + label + " — line " + strconv.Itoa(v.top+1) + "/" + strconv.Itoa(total) + " "
	col := 0
	for _, r := range status {
		if col >= width {
			break
		}
		v.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		v.screen.SetContent(col, row, ' ', nil, style)
	}
}

func (v *viewer) scroll(delta int) {
	v.top += delta
	if v.top < 0 {
		v.top = 0
	}
}

func (v *viewer) pageSize() int {
	_, height := v.screen.Size()
	if height <= 1 {
		return 1
	}
	return height - 1
}

func (v *viewer) setBuffer(buf rope.Rope) {
	v.buf = buf
}
