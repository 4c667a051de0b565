package main

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
)

// RotationAxis tracks position and velocity for one rotation axis with spring decay
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis with harmonica spring for smooth velocity decay
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// Critically damped: no overshoot
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0.
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// Orbit holds the camera's turntable position around the model.
type Orbit struct {
	Yaw, Pitch RotationAxis
	Distance   float64
	Target     math3d.Vec3

	fps             int
	initialYaw      float64
	initialPitch    float64
	initialDistance float64
}

const (
	minDistance = 1.0
	maxDistance = 20.0
	maxPitch    = math.Pi/2 - 0.05
)

// NewOrbit creates an orbit starting at the given angles and distance.
func NewOrbit(fps int, yaw, pitch, distance float64) *Orbit {
	o := &Orbit{
		fps:             fps,
		initialYaw:      yaw,
		initialPitch:    pitch,
		initialDistance: distance,
	}
	o.Reset()
	return o
}

// Update advances the springs by one frame.
func (o *Orbit) Update() {
	o.Yaw.Update()
	o.Pitch.Update()
	if o.Pitch.Position > maxPitch {
		o.Pitch.Position = maxPitch
		o.Pitch.Velocity = 0
	} else if o.Pitch.Position < -maxPitch {
		o.Pitch.Position = -maxPitch
		o.Pitch.Velocity = 0
	}
}

// ApplyImpulse adds angular velocity in radians per frame.
func (o *Orbit) ApplyImpulse(pitch, yaw float64) {
	o.Pitch.Velocity += pitch
	o.Yaw.Velocity += yaw
}

// Zoom moves the camera toward (negative) or away from the target.
func (o *Orbit) Zoom(delta float64) {
	o.Distance = math.Max(minDistance, math.Min(maxDistance, o.Distance+delta))
}

// Reset restores the starting view and stops any spin.
func (o *Orbit) Reset() {
	o.Yaw = NewRotationAxis(o.fps)
	o.Pitch = NewRotationAxis(o.fps)
	o.Yaw.Position = o.initialYaw
	o.Pitch.Position = o.initialPitch
	o.Distance = o.initialDistance
}

// Apply positions cam on the orbit.
func (o *Orbit) Apply(cam *render.Camera) {
	cam.Orbit(o.Target, o.Distance, o.Yaw.Position, o.Pitch.Position)
}
