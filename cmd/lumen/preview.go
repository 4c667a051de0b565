package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/golang/glog"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
)

const (
	torqueStrength = 3.0
	dragStrength   = 0.03
	zoomStep       = 0.5
)

// preview renders r interactively in the terminal until ctx is canceled or
// the user quits.
func preview(ctx context.Context, r *render.Renderer, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("-fps must be positive, got %d", fps)
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			glog.Warningf("Terminal shutdown: %v", err)
		}
	}
	defer cleanup()

	// Each cell shows two pixels stacked vertically.
	fb := render.NewFramebuffer(width, height*2)
	r.Camera.AspectRatio = 0

	cam := r.Camera
	target := math3d.Zero3()
	orbit := NewOrbit(fps, cam.Yaw, cam.Pitch, cam.Position.Distance(target))
	orbit.Target = target

	inputTorque := struct{ pitch, yaw float64 }{}
	var mouseDown bool
	var lastMouseX, lastMouseY int
	quit := false

	// Events are drained on this goroutine so the camera never changes while
	// a frame is rendering.
	handle := func(ev uv.Event) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			if err := term.Resize(width, height); err != nil {
				glog.Warningf("Resize terminal: %v", err)
			}
			fb.Resize(width, height*2)

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape", "ctrl+c"):
				quit = true
			case ev.MatchString("r"):
				orbit.Reset()
			case ev.MatchString("w", "up"):
				inputTorque.pitch = torqueStrength
			case ev.MatchString("s", "down"):
				inputTorque.pitch = -torqueStrength
			case ev.MatchString("a", "left"):
				inputTorque.yaw = -torqueStrength
			case ev.MatchString("d", "right"):
				inputTorque.yaw = torqueStrength
			case ev.MatchString("space"):
				orbit.ApplyImpulse(
					(rand.Float64()-0.5)*0.2,
					(rand.Float64()-0.5)*0.5,
				)
			case ev.MatchString("h"):
				r.Shadows = !r.Shadows
			case ev.MatchString("+", "="):
				orbit.Zoom(-zoomStep)
			case ev.MatchString("-", "_"):
				orbit.Zoom(zoomStep)
			}

		case uv.KeyReleaseEvent:
			switch {
			case ev.MatchString("w", "up", "s", "down"):
				inputTorque.pitch = 0
			case ev.MatchString("a", "left", "d", "right"):
				inputTorque.yaw = 0
			}

		case uv.MouseClickEvent:
			mouseDown = true
			lastMouseX, lastMouseY = ev.X, ev.Y

		case uv.MouseReleaseEvent:
			mouseDown = false

		case uv.MouseMotionEvent:
			if mouseDown {
				dx := ev.X - lastMouseX
				dy := ev.Y - lastMouseY
				orbit.ApplyImpulse(float64(dy)*dragStrength, float64(-dx)*dragStrength)
				lastMouseX, lastMouseY = ev.X, ev.Y
			}

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				orbit.Zoom(-zoomStep)
			case uv.MouseWheelDown:
				orbit.Zoom(zoomStep)
			}
		}
	}

	events := term.Events()
	targetDuration := time.Second / time.Duration(fps)
	lastFrame := time.Now()
	frames := 0

	for {
	drain:
		for {
			select {
			case <-ctx.Done():
				glog.Infof("Preview stopped after %d frames", frames)
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				handle(ev)
			default:
				break drain
			}
		}
		if quit {
			glog.Infof("Preview closed after %d frames", frames)
			return nil
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		// Key release events are unreliable, so torque decays on its own.
		orbit.ApplyImpulse(inputTorque.pitch*dt, inputTorque.yaw*dt)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9

		orbit.Update()
		orbit.Apply(cam)

		if err := r.Render(ctx, fb); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("render: %w", err)
		}
		term.Draw(fb)
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
		frames++

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
