package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/instanced/ecs/system"
	"github.com/milk9111/instanced/render"
	"github.com/milk9111/instanced/sandbox"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var defaultBackground = color.NRGBA{R: 0x00, G: 0x54, B: 0xa8, A: 0xff}

type Game struct {
	sandbox  *sandbox.Sandbox
	renderer *render.Renderer
	hud      *render.HUD
	pauseUI  *ebitenui.UI

	paused bool
	quit   bool
	err    error

	width, height int
}

func NewGame(cfg sandbox.Config) (*Game, error) {
	sb, err := sandbox.New(cfg, system.EbitenKeys{})
	if err != nil {
		return nil, err
	}
	if err := sb.Watch(); err != nil {
		log.Printf("game: hot reload disabled: %v", err)
	}

	hud, err := render.NewHUD(14)
	if err != nil {
		return nil, err
	}

	g := &Game{
		sandbox:  sb,
		renderer: render.NewRenderer(sb.Layout),
		hud:      hud,
		width:    baseWidth,
		height:   baseHeight,
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Close() error {
	return g.sandbox.Close()
}

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.sandbox.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background())

	view := g.sandbox.View(g.width, g.height)
	batch := g.sandbox.Batch()
	if err := g.renderer.Draw(screen, batch, view); err != nil {
		// Update stops the game on its next call.
		g.err = fmt.Errorf("game: draw: %w", err)
		return
	}
	if g.sandbox.Debug() {
		render.DrawPhysicsDebug(screen, g.sandbox.Physics().Space(), view)
	}

	g.hud.Draw(screen, render.Stats{
		Tick:      g.sandbox.Ticks(),
		FPS:       ebiten.ActualFPS(),
		Instances: batch.Instances(),
		Models:    g.sandbox.Registry.Len(),
		DrawCalls: g.renderer.DrawCalls(),
		Debug:     g.sandbox.Debug(),
	})

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) background() color.Color {
	if bg := g.sandbox.Scene.Background; bg != nil && bg.Color != nil {
		return bg.Color
	}
	return defaultBackground
}

func (g *Game) reload() {
	if err := g.sandbox.Reload(); err != nil {
		log.Printf("game: reload: %v", err)
		return
	}
	g.paused = false
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return baseWidth, baseHeight
	}
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
