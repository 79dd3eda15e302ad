package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
)

// Sprite is one thing drawn in the arena, in arena coordinates.
type Sprite struct {
	X, Y  float64
	Glyph rune
	Color string // Hex color; empty uses the default foreground
	Bold  bool
}

// TeamLine is one team's HUD entry.
type TeamLine struct {
	Name  string
	Color string
	Score int
	Alive int
}

// HUD holds the text drawn around the arena.
type HUD struct {
	Mode       string
	Score      int
	HighScore  int
	Kills      int
	Health     int
	MaxHealth  int
	Shield     int
	Ammo       int
	MaxAmmo    int
	TimeLeft   float64 // Seconds; +Inf for untimed rounds
	Multiplier float64
	Teams      []TeamLine
	Prompt     string
	Message    string

	Respawning     bool
	RespawnSeconds int

	Summary []string // Round-over lines; non-empty shows the summary box
}

// Frame is everything drawn in one pass.
type Frame struct {
	ArenaWidth, ArenaHeight float64

	Elements    []Sprite
	PowerUps    []Sprite
	Particles   []Sprite
	Projectiles []Sprite
	Mobs        []Sprite
	Player      *Sprite // nil while hidden

	HUD HUD
}

// Rows reserved above and below the arena.
const (
	hudTop    = 1
	hudBottom = 2
)

// Renderer draws frames onto a Screen.
type Renderer struct {
	screen  *Screen
	palette *Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen, palette: NewPalette(tcell.ColorWhite)}
}

// Render draws f and flushes the screen.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()
	w, h := r.screen.Size()
	view := viewport{x: 1, y: hudTop + 1, w: w - 2, h: h - hudTop - hudBottom - 2}
	if view.w <= 0 || view.h <= 0 {
		r.screen.Show()
		return
	}
	view.sx = float64(view.w) / f.ArenaWidth
	view.sy = float64(view.h) / f.ArenaHeight

	r.border(view)

	// Later layers draw over earlier ones.
	for _, layer := range [][]Sprite{f.Elements, f.PowerUps, f.Particles, f.Projectiles, f.Mobs} {
		for _, s := range layer {
			r.sprite(view, s)
		}
	}
	if f.Player != nil {
		r.sprite(view, *f.Player)
	}

	r.hud(f.HUD, h)

	switch {
	case len(f.HUD.Summary) > 0:
		r.box(w, h, f.HUD.Summary)
	case f.HUD.Respawning:
		r.box(w, h, []string{"YOU DIED", fmt.Sprintf("Respawning in %d...", f.HUD.RespawnSeconds)})
	}

	r.screen.Show()
}

// viewport maps arena coordinates onto a screen rectangle.
type viewport struct {
	x, y, w, h int
	sx, sy     float64
}

func (v viewport) cell(ax, ay float64) (int, int, bool) {
	cx := int(math.Floor(ax * v.sx))
	cy := int(math.Floor(ay * v.sy))
	if cx < 0 || cy < 0 || cx >= v.w || cy >= v.h {
		return 0, 0, false
	}
	return v.x + cx, v.y + cy, true
}

func (r *Renderer) sprite(v viewport, s Sprite) {
	x, y, ok := v.cell(s.X, s.Y)
	if !ok {
		return
	}
	style := tcell.StyleDefault
	if s.Color != "" {
		style = style.Foreground(r.palette.Color(s.Color))
	}
	if s.Bold {
		style = style.Bold(true)
	}
	r.screen.SetContent(x, y, s.Glyph, style)
}

func (r *Renderer) border(v viewport) {
	style := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	left, top := v.x-1, v.y-1
	right, bottom := v.x+v.w, v.y+v.h
	for x := left + 1; x < right; x++ {
		r.screen.SetContent(x, top, tcell.RuneHLine, style)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, style)
	}
	for y := top + 1; y < bottom; y++ {
		r.screen.SetContent(left, y, tcell.RuneVLine, style)
		r.screen.SetContent(right, y, tcell.RuneVLine, style)
	}
	r.screen.SetContent(left, top, tcell.RuneULCorner, style)
	r.screen.SetContent(right, top, tcell.RuneURCorner, style)
	r.screen.SetContent(left, bottom, tcell.RuneLLCorner, style)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, style)
}

func (r *Renderer) hud(h HUD, rows int) {
	plain := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	top := fmt.Sprintf("%s  Score %d  Best %d  Kills %d  x%.1f", h.Mode, h.Score, h.HighScore, h.Kills, h.Multiplier)
	if !math.IsInf(h.TimeLeft, 1) {
		top += "  " + FormatClock(h.TimeLeft)
	}
	r.screen.Text(0, 0, top, plain)

	x := len(top) + 2
	for _, t := range h.Teams {
		line := fmt.Sprintf("%s %d (%d)", t.Name, t.Score, t.Alive)
		r.screen.Text(x, 0, line, plain.Foreground(r.palette.Color(t.Color)))
		x += len(line) + 2
	}

	status := fmt.Sprintf("HP %d/%d  Shield %d  Ammo %d/%d", h.Health, h.MaxHealth, h.Shield, h.Ammo, h.MaxAmmo)
	if h.Prompt != "" {
		status += "  [E] " + h.Prompt
	}
	r.screen.Text(0, rows-2, status, plain)
	r.screen.Text(0, rows-1, h.Message, plain.Foreground(tcell.ColorGray))
}

// box draws lines centered in a bordered box.
func (r *Renderer) box(w, h int, lines []string) {
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	width += 4
	height := len(lines) + 2
	left := (w - width) / 2
	top := (h - height) / 2

	style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
	for y := top; y < top+height; y++ {
		for x := left; x < left+width; x++ {
			r.screen.SetContent(x, y, ' ', style)
		}
	}
	for i, l := range lines {
		r.screen.Text(left+(width-len(l))/2, top+1+i, l, style.Bold(i == 0))
	}
}

// FormatClock renders seconds as m:ss, rounding up so 0:00 means time is up.
func FormatClock(seconds float64) string {
	s := int(math.Ceil(math.Max(0, seconds)))
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
