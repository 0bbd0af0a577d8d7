package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/milk9111/instanced/ecs/system"
)

var glfwKeys = map[system.Key]glfw.Key{
	system.KeyUp:        glfw.KeyW,
	system.KeyDown:      glfw.KeyS,
	system.KeyLeft:      glfw.KeyA,
	system.KeyRight:     glfw.KeyD,
	system.KeyTurnLeft:  glfw.KeyQ,
	system.KeyTurnRight: glfw.KeyE,
	system.KeyDebug:     glfw.KeyF1,
	system.KeySnapshot:  glfw.KeySpace,
}

// glfwKeySource polls the window once per tick so JustPressed means pressed this
// tick and not the one before.
type glfwKeySource struct {
	window *glfw.Window
	down   map[system.Key]bool
	prev   map[system.Key]bool
}

func newGLFWKeys(window *glfw.Window) *glfwKeySource {
	return &glfwKeySource{
		window: window,
		down:   make(map[system.Key]bool, len(glfwKeys)),
		prev:   make(map[system.Key]bool, len(glfwKeys)),
	}
}

func (k *glfwKeySource) update() {
	for key, gk := range glfwKeys {
		k.prev[key] = k.down[key]
		k.down[key] = k.window.GetKey(gk) == glfw.Press
	}
}

func (k *glfwKeySource) Pressed(key system.Key) bool {
	return k.down[key]
}

func (k *glfwKeySource) JustPressed(key system.Key) bool {
	return k.down[key] && !k.prev[key]
}
