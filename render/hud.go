package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const hudPadding = 8

// Stats is what the HUD shows each frame.
type Stats struct {
	Tick      int
	FPS       float64
	Instances int
	Models    int
	DrawCalls int
	Debug     bool
}

func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tick %d  fps %.0f\n", s.Tick, s.FPS)
	fmt.Fprintf(&b, "instances %d  models %d  draws %d", s.Instances, s.Models, s.DrawCalls)
	if s.Debug {
		b.WriteString("\nphysics debug (F1)")
	}
	return b.String()
}

type HUD struct {
	face *text.GoTextFace
}

func NewHUD(size float64) (*HUD, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("render: load hud font: %w", err)
	}
	return &HUD{face: &text.GoTextFace{Source: src, Size: size}}, nil
}

func (h *HUD) Draw(screen *ebiten.Image, stats Stats) {
	if h == nil || screen == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(hudPadding, hudPadding)
	op.LineSpacing = h.face.Size * 1.4
	text.Draw(screen, stats.String(), h.face, op)
}
