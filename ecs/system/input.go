package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/instanced/ecs"
	"github.com/milk9111/instanced/ecs/component"
)

// Key is a logical control. The mapping to physical keys is fixed.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyTurnLeft
	KeyTurnRight
	KeyDebug
	KeySnapshot
)

// KeySource reports keyboard state for the current tick.
type KeySource interface {
	Pressed(k Key) bool
	JustPressed(k Key) bool
}

var ebitenKeys = map[Key]ebiten.Key{
	KeyUp:        ebiten.KeyW,
	KeyDown:      ebiten.KeyS,
	KeyLeft:      ebiten.KeyA,
	KeyRight:     ebiten.KeyD,
	KeyTurnLeft:  ebiten.KeyQ,
	KeyTurnRight: ebiten.KeyE,
	KeyDebug:     ebiten.KeyF1,
	KeySnapshot:  ebiten.KeySpace,
}

// EbitenKeys reads keys through ebiten. Only valid inside ebiten's Update.
type EbitenKeys struct{}

func (EbitenKeys) Pressed(k Key) bool {
	key, ok := ebitenKeys[k]
	return ok && ebiten.IsKeyPressed(key)
}

func (EbitenKeys) JustPressed(k Key) bool {
	key, ok := ebitenKeys[k]
	return ok && inpututil.IsKeyJustPressed(key)
}

type InputSystem struct {
	keys KeySource
}

func NewInputSystem(keys KeySource) *InputSystem {
	return &InputSystem{keys: keys}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.keys == nil || w == nil {
		return
	}

	moveX := axis(i.keys, KeyLeft, KeyRight)
	moveY := axis(i.keys, KeyDown, KeyUp)
	// Q turns counter-clockwise.
	turn := axis(i.keys, KeyTurnRight, KeyTurnLeft)

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.MoveY = moveY
		input.Turn = turn
	})

	if i.keys.JustPressed(KeyDebug) {
		w.Events().Push(ecs.Event{Type: ecs.EventToggleDebug})
	}
	if i.keys.JustPressed(KeySnapshot) {
		w.Events().Push(ecs.Event{Type: ecs.EventSnapshot})
	}
}

func axis(keys KeySource, neg, pos Key) float64 {
	v := 0.0
	if keys.Pressed(neg) {
		v -= 1
	}
	if keys.Pressed(pos) {
		v += 1
	}
	return v
}
