// Command instanced runs the sandbox on a raw OpenGL 4.2 context, drawing
// every model with one instanced base-instance draw call.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/milk9111/instanced/render/glinstanced"
	"github.com/milk9111/instanced/sandbox"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	windowTitle  = "instanced (gl)"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	cfg := sandbox.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := run(*cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg sandbox.Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Printf("instanced: OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	keys := newGLFWKeys(window)
	sb, err := sandbox.New(cfg, keys)
	if err != nil {
		return err
	}
	defer sb.Close()
	if err := sb.Watch(); err != nil {
		log.Printf("instanced: hot reload disabled: %v", err)
	}

	renderer, err := glinstanced.NewRenderer(sb.Layout)
	if err != nil {
		return err
	}
	defer renderer.Delete()

	step := time.Second / time.Duration(sb.Scene.TickRate)
	last := time.Now()
	var lag time.Duration

	for !window.ShouldClose() {
		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		now := time.Now()
		lag += now.Sub(last)
		last = now
		for lag >= step {
			keys.update()
			sb.Tick()
			lag -= step
		}

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		r, g, b := background(sb)
		gl.ClearColor(r, g, b, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := renderer.Draw(sb.Batch(), sb.View(w, h)); err != nil {
			return err
		}

		window.SwapBuffers()
	}
	return nil
}

func background(sb *sandbox.Sandbox) (float32, float32, float32) {
	bg := sb.Scene.Background
	if bg == nil || bg.Color == nil {
		return 0, 0x54 / 255.0, 0xa8 / 255.0
	}
	r, g, b, _ := bg.RGBA()
	return float32(r) / 0xffff, float32(g) / 0xffff, float32(b) / 0xffff
}
