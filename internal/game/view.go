package game

import (
	"fmt"
	"math"

	"github.com/samdwyer/survivalarena/internal/mode"
	"github.com/samdwyer/survivalarena/internal/ui"
)

var powerUpColors = map[string]string{
	"health": "#2ECC71",
	"ammo":   "#BDC3C7",
	"shield": "#85C1E9",
	"energy": "#9B59B6",
}

// BuildFrame snapshots s for the renderer.
func BuildFrame(s *Session) ui.Frame {
	arena := s.Arena()
	f := ui.Frame{ArenaWidth: arena.Width, ArenaHeight: arena.Height}

	for _, el := range s.Environment().Elements() {
		f.Elements = append(f.Elements, ui.Sprite{X: el.X, Y: el.Y, Glyph: el.Def.GlyphRune(), Color: el.Def.Color})
	}
	for _, pu := range s.PowerUps() {
		f.PowerUps = append(f.PowerUps, ui.Sprite{X: pu.X, Y: pu.Y, Glyph: '$', Color: powerUpColors[pu.Kind], Bold: true})
	}
	for _, p := range s.Environment().Particles() {
		f.Particles = append(f.Particles, ui.Sprite{X: p.X, Y: p.Y, Glyph: p.Glyph, Color: p.Color})
	}
	for _, p := range s.Projectiles() {
		f.Projectiles = append(f.Projectiles, ui.Sprite{X: p.X, Y: p.Y, Glyph: '.', Color: "#FFFFFF"})
	}
	for _, m := range s.Mobs() {
		sp := ui.Sprite{X: m.X, Y: m.Y, Glyph: m.Symbol, Bold: m.IsBoss()}
		if m.Def != nil {
			sp.Color = m.Def.Color
		}
		f.Mobs = append(f.Mobs, sp)
	}
	if p := s.Player(); p != nil && p.Visible {
		f.Player = &ui.Sprite{X: p.X, Y: p.Y, Glyph: p.Symbol, Color: "#FFFF00", Bold: true}
	}

	f.HUD = buildHUD(s)
	return f
}

func buildHUD(s *Session) ui.HUD {
	modes := s.Modes()
	sc := s.Score()
	h := ui.HUD{
		Score:      sc.Score(),
		HighScore:  sc.HighScore(),
		Kills:      sc.Kills(),
		TimeLeft:   math.Inf(1),
		Multiplier: modes.Multiplier(),
		Message:    s.Message(),
	}
	if v := modes.Current(); v != nil {
		h.Mode = v.Def().Name
		h.TimeLeft = modes.TimeRemaining()
	}
	if p := s.Player(); p != nil {
		h.Health, h.MaxHealth = max(0, p.Health), p.MaxHealth
		h.Shield = p.Shield
		h.Ammo, h.MaxAmmo = p.Ammo, p.MaxAmmo
	}
	for _, t := range modes.Teams() {
		h.Teams = append(h.Teams, ui.TeamLine{Name: t.Name, Color: t.Color, Score: t.Score, Alive: t.Alive()})
	}
	if pr := s.Environment().Prompt(); pr != nil {
		h.Prompt = fmt.Sprintf("%s (%d)", pr.Name, pr.UsesLeft)
	}

	if ov := s.Respawn().Overlay(); ov.Visible {
		h.Respawning = true
		h.RespawnSeconds = ov.Seconds
	}
	if s.State() == StateRoundOver {
		h.Summary = summary(s.Results(), s.FinalScore().HighScore)
	}
	return h
}

// summary renders the round-over box.
func summary(r *mode.Results, highScore int) []string {
	if r == nil {
		return []string{"ROUND OVER", "[R] restart  [Q] quit"}
	}
	lines := []string{
		"ROUND OVER: " + r.ModeName,
		fmt.Sprintf("Score %d  Kills %d  Best %d", r.Stats.Score, r.Stats.Kills, highScore),
		fmt.Sprintf("Time %s", ui.FormatClock(r.Elapsed.Seconds())),
	}
	if ta := r.TimeAttack; ta != nil {
		lines = append(lines, fmt.Sprintf("%.1f pts/min  %.1f kills/min", ta.PointsPerMinute, ta.KillsPerMinute))
	}
	if tb := r.TeamBattle; tb != nil {
		result := "Draw"
		switch r.Outcome {
		case mode.OutcomeVictory:
			result = "Victory"
		case mode.OutcomeDefeat:
			result = "Defeat"
		}
		lines = append(lines, fmt.Sprintf("%s (%s)  Teamwork: %s", result, tb.Reason, tb.Rating))
	}
	return append(lines, "[R] restart  [Q] quit")
}
