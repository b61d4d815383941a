package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/1000nettles/heywait/common"
	"github.com/1000nettles/heywait/ecs"
	"github.com/1000nettles/heywait/ecs/component"
	"github.com/1000nettles/heywait/ecs/render"
	"github.com/1000nettles/heywait/game"
	"github.com/1000nettles/heywait/geom"
	"github.com/1000nettles/heywait/scene"
	"github.com/1000nettles/heywait/settings"
)

const (
	pathTicks   = 2 * common.TPS
	maxMessages = 6
)

type movePath struct {
	from, to geom.Point
	ttl      int
}

// Game is the desktop viewer: it draws the scene and turns mouse and key
// input into engine commands, standing in for a tabletop host.
type Game struct {
	engine    *game.Engine
	sceneName string
	debug     bool

	watcher *scene.Watcher
	pauseUI *ebitenui.UI
	face    ebtext.Face

	zoom float64

	dragging   bool
	dragToken  string
	dragOffset geom.Point

	drafting   bool
	draftStart geom.Point

	paths    []movePath
	messages []string

	clipboardReady bool
}

func NewGame(sceneName, settingsPath string, debug bool) (*Game, error) {
	s, err := settings.Load(settingsPath)
	if err != nil {
		return nil, err
	}
	sc, err := scene.LoadScene(sceneName)
	if err != nil {
		return nil, err
	}

	engine := game.New(s, scene.LoadScript)
	if err := engine.LoadScene(sc); err != nil {
		return nil, err
	}

	g := &Game{
		engine:    engine,
		sceneName: sceneName,
		debug:     debug,
		face:      ebtext.NewGoXFace(basicfont.Face7x13),
		zoom:      1,
	}
	g.pauseUI = NewPauseUI(g)

	if w, err := scene.NewWatcher(scene.WatchDirs()...); err != nil {
		log.Printf("hot reload disabled: %v", err)
	} else {
		g.watcher = w
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardReady = true
	}

	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.pollWatcher()
	g.handleKeys()
	g.handleMouse()

	g.handleEvents(g.engine.Step())

	if g.engine.Paused() {
		g.pauseUI.Update()
	}

	live := g.paths[:0]
	for _, p := range g.paths {
		p.ttl--
		if p.ttl > 0 {
			live = append(live, p)
		}
	}
	g.paths = live

	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	if scene.IsScriptFile(path) {
		g.engine.InvalidateScript(scene.SceneName(path))
		g.addMessage("reloaded script " + scene.SceneName(path))
		return
	}
	if scene.SceneName(path) != scene.SceneName(g.sceneName) {
		return
	}
	sc, err := scene.LoadScene(g.sceneName)
	if err != nil {
		log.Printf("reload scene %s: %v", g.sceneName, err)
		return
	}
	if err := g.engine.LoadScene(sc); err != nil {
		log.Printf("reload scene %s: %v", g.sceneName, err)
		return
	}
	g.addMessage("reloaded scene " + sc.Name)
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.engine.SetPaused(!g.engine.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		if z, ok := g.engine.ZoneAt(g.cursorWorld()); ok {
			if _, err := g.engine.ToggleTriggered(z.ID); err != nil {
				log.Printf("toggle %s: %v", z.ID, err)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.engine.ResetAll()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyScene()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := scene.Save(g.sceneName, g.engine.Snapshot()); err != nil {
			g.addMessage("save failed: " + err.Error())
		} else {
			g.addMessage("saved " + g.sceneName)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.dragging = false
		g.drafting = false
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.zoom = common.Clamp(g.zoom*math.Pow(1.1, dy), 0.25, 4)
	}
}

func (g *Game) handleMouse() {
	cursor := g.cursorWorld()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if ebiten.IsKeyPressed(ebiten.KeyZ) {
			g.drafting = true
			g.draftStart = cursor
		} else if tok, ok := g.tokenAt(cursor); ok {
			g.dragging = true
			g.dragToken = tok.Name
			g.dragOffset = cursor.Sub(geom.Pt(tok.X, tok.Y))
		}
	}

	if !inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		return
	}

	if g.drafting {
		g.drafting = false
		r := geom.RectFromPoints(g.snapNearest(g.draftStart), g.snapNearest(cursor))
		if r.Width <= 0 || r.Height <= 0 {
			return
		}
		id, err := g.engine.CreateZone(scene.ZoneSpec{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height})
		if err != nil {
			g.addMessage("create zone: " + err.Error())
			return
		}
		g.addMessage("created zone " + shortID(id))
	}

	if g.dragging {
		g.dragging = false
		tok, ok := g.engine.Token(g.dragToken)
		if !ok {
			return
		}
		to := g.snapNearest(cursor.Sub(g.dragOffset))
		if err := g.engine.MoveToken(tok.Name, to.X, to.Y); err != nil {
			g.addMessage(err.Error())
			return
		}
		half := g.tokenSize(tok).Scale(0.5)
		g.paths = append(g.paths, movePath{
			from: geom.Pt(tok.X, tok.Y).Add(half),
			to:   to.Add(half),
			ttl:  pathTicks,
		})
	}
}

func (g *Game) handleEvents(evts []ecs.Event) {
	for _, evt := range evts {
		switch data := evt.Data.(type) {
		case component.ZoneTriggered:
			name := data.ZoneName
			if name == "" {
				name = shortID(data.ZoneID)
			}
			g.addMessage(fmt.Sprintf("%s triggered %s", data.Token, name))
		case component.ScriptMessage:
			g.addMessage(data.Message)
		case component.TokenCorrected:
			g.addMessage(fmt.Sprintf("%s stopped at %s", data.Token, data.Stop))
		case component.ZoneReset:
			state := "reset"
			if data.Triggered {
				state = "marked triggered"
			}
			g.addMessage(fmt.Sprintf("zone %s %s", shortID(data.ZoneID), state))
		case component.PauseChanged:
			if !data.Paused {
				g.addMessage("resumed")
			}
		case component.CameraPan:
			if g.debug {
				g.addMessage(fmt.Sprintf("pan to (%.0f,%.0f) x%.2f", data.X, data.Y, data.Scale))
			}
		}
	}
}

func (g *Game) copyScene() {
	if !g.clipboardReady {
		g.addMessage("clipboard unavailable")
		return
	}
	data, err := g.engine.Snapshot().Marshal()
	if err != nil {
		g.addMessage("copy failed: " + err.Error())
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.addMessage("scene YAML copied")
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

func (g *Game) tokenAt(p geom.Point) (game.TokenView, bool) {
	toks := g.engine.Tokens()
	for i := len(toks) - 1; i >= 0; i-- {
		size := g.tokenSize(toks[i])
		if (geom.Rect{X: toks[i].X, Y: toks[i].Y, Width: size.X, Height: size.Y}).Contains(p) {
			return toks[i], true
		}
	}
	return game.TokenView{}, false
}

func (g *Game) tokenSize(tok game.TokenView) geom.Point {
	grid := g.engine.GridSize()
	return geom.Pt(tok.Width*grid, tok.Height*grid)
}

// snapNearest snaps to the closest grid vertex rather than the cell corner.
func (g *Game) snapNearest(p geom.Point) geom.Point {
	size := g.engine.GridSize()
	grid := geom.Grid{Size: size}
	return grid.Snap(p.Add(geom.Pt(size/2, size/2)))
}

func (g *Game) view() (cam component.Camera, scale float64) {
	cam = g.engine.Camera()
	scale = cam.Scale * g.zoom
	if scale <= 0 {
		scale = g.zoom
	}
	return cam, scale
}

func (g *Game) toScreen(p geom.Point) (float32, float32) {
	cam, scale := g.view()
	return float32((p.X-cam.X)*scale + common.BaseWidth/2), float32((p.Y-cam.Y)*scale + common.BaseHeight/2)
}

func (g *Game) cursorWorld() geom.Point {
	cam, scale := g.view()
	x, y := ebiten.CursorPosition()
	return geom.Pt(
		(float64(x)-common.BaseWidth/2)/scale+cam.X,
		(float64(y)-common.BaseHeight/2)/scale+cam.Y,
	)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	_, scale := g.view()

	g.drawGrid(screen)

	for _, z := range g.engine.Zones() {
		clr := colornames.Red
		switch {
		case !z.Enabled:
			clr = colornames.Gray
		case z.Triggered:
			clr = colornames.Limegreen
		}
		x, y := g.toScreen(geom.Pt(z.Bounds.X, z.Bounds.Y))
		w, h := float32(z.Bounds.W*scale), float32(z.Bounds.H*scale)
		vector.FillRect(screen, x, y, w, h, color.RGBA{R: clr.R, G: clr.G, B: clr.B, A: 40}, false)
		vector.StrokeRect(screen, x, y, w, h, 2, clr, false)

		labelX := float64(x) + 4
		if img, err := render.LoadImage(z.Image); err == nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(0.75, 0.75)
			op.GeoM.Translate(float64(x)+4, float64(y)+4)
			screen.DrawImage(img, op)
			labelX += float64(img.Bounds().Dx())*0.75 + 4
		}

		label := z.Name
		if label == "" {
			label = shortID(z.ID)
		}
		if z.Unlimited {
			label += " (unlimited)"
		}
		if g.debug {
			label += " " + z.Image
		}
		g.drawText(screen, label, labelX, float64(y)+8, clr)
	}

	for _, p := range g.paths {
		x0, y0 := g.toScreen(p.from)
		x1, y1 := g.toScreen(p.to)
		alpha := uint8(common.Lerp(0, 255, float64(p.ttl)/pathTicks))
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: alpha}, true)
	}

	for _, tok := range g.engine.Tokens() {
		size := g.tokenSize(tok)
		center := geom.Pt(tok.X, tok.Y).Add(size.Scale(0.5))
		cx, cy := g.toScreen(center)
		r := float32(math.Min(size.X, size.Y) / 2 * scale * 0.8)
		vector.FillCircle(screen, cx, cy, r, colornames.Steelblue, true)
		vector.StrokeCircle(screen, cx, cy, r, 2, colornames.White, true)
		g.drawText(screen, tok.Name, float64(cx)-float64(len(tok.Name))*3.5, float64(cy)+float64(r)+2, colornames.White)
	}

	cursor := g.cursorWorld()
	if g.dragging {
		if tok, ok := g.engine.Token(g.dragToken); ok {
			half := g.tokenSize(tok).Scale(0.5)
			x0, y0 := g.toScreen(geom.Pt(tok.X, tok.Y).Add(half))
			x1, y1 := g.toScreen(g.snapNearest(cursor.Sub(g.dragOffset)).Add(half))
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, colornames.White, true)
		}
	}
	if g.drafting {
		r := geom.RectFromPoints(g.snapNearest(g.draftStart), g.snapNearest(cursor))
		x, y := g.toScreen(r.Min())
		vector.StrokeRect(screen, x, y, float32(r.Width*scale), float32(r.Height*scale), 2, colornames.Orange, false)
	}

	g.drawHUD(screen)

	if g.engine.Paused() {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	size := g.engine.GridSize()
	_, scale := g.view()
	if size <= 0 || size*scale < 8 {
		return
	}
	width, height := g.engine.SceneSize()
	line := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 24}
	for x := 0.0; x <= width; x += size {
		x0, y0 := g.toScreen(geom.Pt(x, 0))
		x1, y1 := g.toScreen(geom.Pt(x, height))
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, line, false)
	}
	for y := 0.0; y <= height; y += size {
		x0, y0 := g.toScreen(geom.Pt(0, y))
		x1, y1 := g.toScreen(geom.Pt(width, y))
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, line, false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := []string{
		fmt.Sprintf("%s    FPS: %.2f", g.engine.SceneName(), ebiten.ActualFPS()),
		"drag: move token   Z+drag: new zone   T: toggle zone   R: reset zones",
		"Space: pause   C: copy scene   S: save scene   wheel: zoom",
	}
	if g.engine.Paused() {
		lines = append(lines, "PAUSED")
	}
	lines = append(lines, "")
	lines = append(lines, g.messages...)

	g.drawText(screen, strings.Join(lines, "\n"), 8, 8, colornames.White)
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = 16
	ebtext.Draw(screen, s, g.face, op)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
