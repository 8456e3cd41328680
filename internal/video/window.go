// Package video is the out-of-core presentation collaborator: a glfw
// window and a minimal GL pipeline that turns a Display snapshot into
// on-screen quads, plus the key-event accumulator the Keyboard polls
// through keyboard.EventSource. None of this package's GL/window
// plumbing is part of the instruction-set core; it is exercised only
// through the narrow interfaces display.Display and keyboard.EventSource
// already define.
package video

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.2/glfw"

	"github.com/inrick/chip8vm/internal/display"
)

// keymap mirrors the teacher's QWERTY-to-keypad layout:
//
//	Keypad    =>  Keyboard
//	|1|2|3|C|     |1|2|3|4|
//	|4|5|6|D|     |Q|W|E|R|
//	|7|8|9|E|     |A|S|D|F|
//	|A|0|B|F|     |Z|X|C|V|
var keymap = map[glfw.Key]uint8{
	glfw.Key1: 0x1, glfw.Key2: 0x2, glfw.Key3: 0x3, glfw.Key4: 0xC,
	glfw.KeyQ: 0x4, glfw.KeyW: 0x5, glfw.KeyE: 0x6, glfw.KeyR: 0xD,
	glfw.KeyA: 0x7, glfw.KeyS: 0x8, glfw.KeyD: 0x9, glfw.KeyF: 0xE,
	glfw.KeyZ: 0xA, glfw.KeyX: 0x0, glfw.KeyC: 0xB, glfw.KeyV: 0xF,
}

var (
	vertexShaderGLSL = `
	  #version 410 core
	  in vec2 pos;
	  void main() {
	   gl_Position = vec4(pos, 0.0, 1.0);
	  }`
	fragmentShaderGLSL = `
	  #version 410 core
	  out vec4 color;
	  void main() {
	    color = vec4(0.85, 0.85, 0.85, 1.0);
	  }`
)

// Window owns the glfw window and GL buffers, and accumulates key
// events so it can serve as a keyboard.EventSource.
type Window struct {
	win *glfw.Window

	mu      sync.Mutex
	pressed [16]bool
	quit    bool

	vertex []uint32
	vao    uint32
	vbo    uint32
	ebo    uint32
}

// New creates a glfw window scale pixels per CHIP-8 pixel and wires up
// the GL pipeline used by Render.
func New(title string, scale int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	width := display.Width * scale
	height := display.Height * scale
	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()

	w := &Window{win: win}
	w.win.SetKeyCallback(w.keyCallback)
	w.win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})

	if err := w.setupGL(); err != nil {
		glfw.Terminate()
		return nil, err
	}

	gl.ClearColor(.1, .1, .1, 0)
	return w, nil
}

// Close destroys the window and terminates glfw.
func (w *Window) Close() {
	glfw.Terminate()
}

// PressedKeys implements keyboard.EventSource.
func (w *Window) PressedKeys() [16]bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pressed
}

// QuitRequested implements keyboard.EventSource.
func (w *Window) QuitRequested() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.quit || w.win.ShouldClose()
}

// PollEvents drains the host window system's event queue. Call once
// per cycle before reading PressedKeys/QuitRequested.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// WaitEvents blocks until at least one host event arrives. Passed as
// the CPU's waitForInput pump during FX0A so the process doesn't spin
// a hot loop while suspended.
func (w *Window) WaitEvents() {
	glfw.WaitEvents()
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	logical, ok := keymap[key]
	if !ok {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.mu.Lock()
			w.quit = true
			w.mu.Unlock()
		}
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	switch action {
	case glfw.Press:
		w.pressed[logical] = true
	case glfw.Release:
		w.pressed[logical] = false
	}
}

// Render uploads frame (as produced by display.Display.Snapshot) and
// swaps buffers.
func (w *Window) Render(frame [display.Width][display.Height]uint8) {
	gl.Clear(gl.COLOR_BUFFER_BIT)

	n := w.fillVertices(frame)
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, n*4, gl.Ptr(w.vertex))
	gl.DrawElements(gl.TRIANGLES, int32(n), gl.UNSIGNED_INT, gl.PtrOffset(0))
	w.win.SwapBuffers()
}

func (w *Window) fillVertices(frame [display.Width][display.Height]uint8) int {
	h := display.Height + 1
	n := 0
	for x := range frame {
		for y := range frame[x] {
			if frame[x][y] == 0 {
				continue
			}
			q1 := uint32(x*h + y)
			q2 := uint32(x*h + y + 1)
			q3 := uint32((x+1)*h + y)
			q4 := uint32((x+1)*h + y + 1)
			w.vertex[n+0] = q1
			w.vertex[n+1] = q2
			w.vertex[n+2] = q3
			w.vertex[n+3] = q2
			w.vertex[n+4] = q3
			w.vertex[n+5] = q4
			n += 6
		}
	}
	return n
}

func (w *Window) setupGL() error {
	if err := gl.Init(); err != nil {
		return err
	}

	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	width, height := display.Width+1, display.Height+1
	ncoords := width * height * 2
	buf := make([]float32, ncoords)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			i := 2 * (x*height + y)
			buf[i] = -1 + float32(x)/float32(display.Width/2)
			buf[i+1] = 1 - float32(y)/float32(display.Height/2)
		}
	}

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(buf)*4, gl.Ptr(buf), gl.STATIC_DRAW)

	w.vertex = make([]uint32, ncoords*3)

	gl.GenBuffers(1, &w.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, w.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(w.vertex)*4, gl.Ptr(w.vertex), gl.DYNAMIC_DRAW)

	vertexShader := gl.CreateShader(gl.VERTEX_SHADER)
	cVertex, freeVertex := gl.Strs(vertexShaderGLSL)
	defer freeVertex()
	gl.ShaderSource(vertexShader, 1, cVertex, nil)
	gl.CompileShader(vertexShader)
	if err := checkShaderError(vertexShader); err != nil {
		return fmt.Errorf("vertex shader error: %w", err)
	}

	fragmentShader := gl.CreateShader(gl.FRAGMENT_SHADER)
	cFragment, freeFragment := gl.Strs(fragmentShaderGLSL)
	defer freeFragment()
	gl.ShaderSource(fragmentShader, 1, cFragment, nil)
	gl.CompileShader(fragmentShader)
	if err := checkShaderError(fragmentShader); err != nil {
		return fmt.Errorf("fragment shader error: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.BindFragDataLocation(program, 0, gl.Str("color\x00"))
	gl.LinkProgram(program)
	gl.UseProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", 1+int(length))
		gl.GetProgramInfoLog(program, length, nil, gl.Str(log))
		return fmt.Errorf("program link error: %s", log)
	}

	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, w.ebo)

	if err := gl.GetError(); err != gl.NO_ERROR {
		return fmt.Errorf("GL error: %#x", err)
	}
	return nil
}

func checkShaderError(shader uint32) error {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", 1+int(length))
		gl.GetShaderInfoLog(shader, length, nil, gl.Str(log))
		return errors.New(log)
	}
	return nil
}
