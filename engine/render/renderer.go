package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/1siamBot/rts-sim/engine/core"
	"github.com/1siamBot/rts-sim/engine/effects"
	"github.com/1siamBot/rts-sim/engine/maplib"
	"github.com/1siamBot/rts-sim/engine/sim"
)

// Palette colours, placeholders until real sprites
var (
	Background = color.RGBA{20, 20, 30, 255}
	RockColor  = colornames.Dimgray
	MineralCol = colornames.Deepskyblue
	GeyserCol  = colornames.Mediumseagreen
	SideColors = [2]color.RGBA{colornames.Dodgerblue, colornames.Crimson}
	SelectCol  = colornames.Lime
	HealthCol  = colornames.Limegreen
	ShieldCol  = colornames.Cyan
	ShotCol    = colornames.Gold
	Shroud     = color.RGBA{0, 0, 0, 255}
	Explored   = color.RGBA{0, 0, 0, 120}
)

// Renderer draws a match top-down with flat shapes
type Renderer struct {
	Camera *Camera

	minimapTerrain *ebiten.Image
}

func NewRenderer(screenW, screenH int) *Renderer {
	return &Renderer{Camera: NewCamera(screenW, screenH)}
}

func (r *Renderer) pt(wx, wy float64) (float32, float32) {
	sx, sy := r.Camera.WorldToScreen(wx, wy)
	return float32(sx), float32(sy)
}

func (r *Renderer) onScreen(x, y, pad float32) bool {
	return x > -pad && y > -pad && x < float32(r.Camera.ScreenW)+pad && y < float32(r.Camera.ScreenH)+pad
}

// DrawMap draws rock tiles and resource fields
func (r *Renderer) DrawMap(screen *ebiten.Image, m *maplib.Map) {
	screen.Fill(Background)
	z := float32(r.Camera.Zoom)
	ts := maplib.TileSize * z
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			if m.Tiles[row*m.Cols+col] != maplib.TileRock {
				continue
			}
			x, y := r.pt(float64(col*maplib.TileSize), float64(row*maplib.TileSize))
			if r.onScreen(x, y, ts) {
				vector.DrawFilledRect(screen, x, y, ts, ts, RockColor, false)
			}
		}
	}
	for _, res := range m.Minerals {
		if res.Amount > 0 {
			x, y := r.pt(res.X, res.Y)
			vector.DrawFilledCircle(screen, x, y, 10*z, MineralCol, false)
		}
	}
	for _, res := range m.Geysers {
		x, y := r.pt(res.X, res.Y)
		vector.DrawFilledCircle(screen, x, y, 14*z, GeyserCol, false)
	}
}

// DrawEntities draws every living entity the player can see
func (r *Renderer) DrawEntities(screen *ebiten.Image, ents []*core.Entity, fog *sim.Fog) {
	z := float32(r.Camera.Zoom)
	for _, ent := range ents {
		if !ent.Alive() || (ent.Side != core.Player && !fog.IsVisible(ent.X, ent.Y)) {
			continue
		}
		x, y := r.pt(ent.X, ent.Y)
		rad := float32(ent.Size) * z
		if !r.onScreen(x, y, rad) {
			continue
		}
		team := SideColors[ent.Side]
		if ent.IsBuilding {
			vector.DrawFilledRect(screen, x-rad, y-rad, 2*rad, 2*rad, team, false)
			if ent.Built < 1 {
				vector.DrawFilledRect(screen, x-rad, y-rad, 2*rad, 2*rad*float32(1-ent.Built), color.RGBA{0, 0, 0, 140}, false)
			}
		} else {
			vector.DrawFilledCircle(screen, x, y, rad, team, false)
		}
		if ent.Selected {
			vector.StrokeCircle(screen, x, y, rad+4, 2, SelectCol, false)
		}
		if ent.HP < ent.MaxHP || ent.Selected {
			barW := 2 * rad
			vector.DrawFilledRect(screen, x-rad, y-rad-6, barW, 3, color.RGBA{40, 40, 40, 200}, false)
			vector.DrawFilledRect(screen, x-rad, y-rad-6, barW*float32(ent.HP/ent.MaxHP), 3, HealthCol, false)
			if ent.MaxShield > 0 {
				vector.DrawFilledRect(screen, x-rad, y-rad-10, barW*float32(ent.Shield/ent.MaxShield), 2, ShieldCol, false)
			}
		}
	}
}

// DrawEffects draws projectiles and fading markers
func (r *Renderer) DrawEffects(screen *ebiten.Image, fx *effects.Manager, now float64) {
	z := float32(r.Camera.Zoom)
	for _, p := range fx.Projectiles {
		x, y := r.pt(p.X, p.Y)
		vector.DrawFilledCircle(screen, x, y, 3*z, ShotCol, false)
	}
	for _, ef := range fx.Effects {
		x, y := r.pt(ef.X, ef.Y)
		a := uint8(255 * (1 - ef.Age(now)))
		vector.StrokeCircle(screen, x, y, float32(ef.Radius+4)*z, 2, color.RGBA{255, 220, 120, a}, false)
	}
}

// DrawFog shades explored cells and blacks out unexplored ones
func (r *Renderer) DrawFog(screen *ebiten.Image, fog *sim.Fog) {
	cell := sim.FogTileSize * float32(r.Camera.Zoom)
	for row := 0; row < fog.Rows; row++ {
		for col := 0; col < fog.Cols; col++ {
			wx, wy := float64(col*sim.FogTileSize), float64(row*sim.FogTileSize)
			x, y := r.pt(wx, wy)
			if !r.onScreen(x, y, cell) {
				continue
			}
			cx, cy := wx+sim.FogTileSize/2, wy+sim.FogTileSize/2
			switch {
			case fog.IsVisible(cx, cy):
			case fog.IsExplored(cx, cy):
				vector.DrawFilledRect(screen, x, y, cell+1, cell+1, Explored, false)
			default:
				vector.DrawFilledRect(screen, x, y, cell+1, cell+1, Shroud, false)
			}
		}
	}
}

// DrawSelectionBox draws a selection rectangle on screen
func (r *Renderer) DrawSelectionBox(screen *ebiten.Image, x1, y1, x2, y2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	x, y, w, h := float32(x1), float32(y1), float32(x2-x1), float32(y2-y1)
	vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{0, 255, 0, 30}, false)
	vector.StrokeRect(screen, x, y, w, h, 1, color.RGBA{0, 255, 0, 128}, false)
}

// DrawMinimap draws terrain, visible entities and the viewport in a corner
func (r *Renderer) DrawMinimap(screen *ebiten.Image, m *maplib.Map, ents []*core.Entity, fog *sim.Fog, posX, posY, size int) {
	scale := float64(size) / float64(max(m.Width, m.Height))
	w, h := int(float64(m.Width)*scale), int(float64(m.Height)*scale)

	if r.minimapTerrain == nil {
		r.minimapTerrain = ebiten.NewImage(w, h)
		r.minimapTerrain.Fill(color.RGBA{0, 0, 0, 180})
		ts := float32(maplib.TileSize * scale)
		for row := 0; row < m.Rows; row++ {
			for col := 0; col < m.Cols; col++ {
				if m.Tiles[row*m.Cols+col] == maplib.TileRock {
					vector.DrawFilledRect(r.minimapTerrain, float32(col)*ts, float32(row)*ts, ts+1, ts+1, RockColor, false)
				}
			}
		}
		for _, res := range m.Minerals {
			vector.DrawFilledRect(r.minimapTerrain, float32(res.X*scale)-1, float32(res.Y*scale)-1, 2, 2, MineralCol, false)
		}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(posX), float64(posY))
	screen.DrawImage(r.minimapTerrain, op)

	ox, oy := float32(posX), float32(posY)
	for _, ent := range ents {
		if !ent.Alive() || (ent.Side != core.Player && !fog.IsVisible(ent.X, ent.Y)) {
			continue
		}
		d := float32(2)
		if ent.IsBuilding {
			d = 4
		}
		vector.DrawFilledRect(screen, ox+float32(ent.X*scale)-d/2, oy+float32(ent.Y*scale)-d/2, d, d, SideColors[ent.Side], false)
	}

	x0, y0, x1, y1 := r.Camera.VisibleRect()
	vector.StrokeRect(screen, ox+float32(x0*scale), oy+float32(y0*scale), float32((x1-x0)*scale), float32((y1-y0)*scale), 1, color.RGBA{255, 255, 255, 200}, false)
}

// MinimapToWorld maps a click inside the minimap to a world position
func MinimapToWorld(m *maplib.Map, posX, posY, size, sx, sy int) (float64, float64, bool) {
	scale := float64(size) / float64(max(m.Width, m.Height))
	w, h := int(float64(m.Width)*scale), int(float64(m.Height)*scale)
	if sx < posX || sy < posY || sx >= posX+w || sy >= posY+h {
		return 0, 0, false
	}
	return float64(sx-posX) / scale, float64(sy-posY) / scale, true
}
