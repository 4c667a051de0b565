// Package math3d provides the 3D math primitives for the lumen ray tracer.
package math3d

import (
	"fmt"
	"math"
)

// Epsilon is the float64 machine epsilon. Normalization leaves vectors no
// longer than this untouched.
const Epsilon = 2.220446049250313e-16

// Kind tags the semantic role of a Triple. It has no runtime cost; it only
// keeps a Color from being used where a Vec3 is expected.
type Kind interface {
	vectorKind | colorKind | albedoKind | baryKind | uvKind
}

type (
	vectorKind struct{}
	colorKind  struct{}
	albedoKind struct{}
	baryKind   struct{}
	uvKind     struct{}
)

// Triple is a three component value. Every role shares the same
// componentwise arithmetic; the K parameter only distinguishes roles.
//
// Converting between roles is explicit: math3d.Color(albedo).
type Triple[K Kind] struct {
	X, Y, Z float64
}

// Vec3 is a spatial vector or point.
type Vec3 = Triple[vectorKind]

// Color is a linear RGB color. Components are conventionally in [0,1] but
// are not clamped until quantization.
type Color = Triple[colorKind]

// Albedo is the base reflectance of a surface.
type Albedo = Triple[albedoKind]

// Bary holds barycentric weights (u, v, w) in X, Y, Z.
type Bary = Triple[baryKind]

// UV is a texture coordinate. Z is padding and is carried through
// interpolation untouched in meaning.
type UV = Triple[uvKind]

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// RGB creates a new linear Color.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// NewAlbedo creates a new Albedo.
func NewAlbedo(r, g, b float64) Albedo {
	return Albedo{r, g, b}
}

// NewBary creates barycentric weights.
func NewBary(u, v, w float64) Bary {
	return Bary{u, v, w}
}

// NewUV creates a texture coordinate with zero padding.
func NewUV(u, v float64) UV {
	return UV{u, v, 0}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

// Up returns the world up vector (0, 1, 0).
func Up() Vec3 {
	return Vec3{0, 1, 0}
}

// Forward returns the world forward vector (0, 0, -1).
func Forward() Vec3 {
	return Vec3{0, 0, -1}
}

// R returns the red channel.
func (a Triple[K]) R() float64 { return a.X }

// G returns the green channel.
func (a Triple[K]) G() float64 { return a.Y }

// B returns the blue channel.
func (a Triple[K]) B() float64 { return a.Z }

// Add returns the sum a + b.
func (a Triple[K]) Add(b Triple[K]) Triple[K] {
	return Triple[K]{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// AddScalar returns a with s added to every component.
func (a Triple[K]) AddScalar(s float64) Triple[K] {
	return Triple[K]{a.X + s, a.Y + s, a.Z + s}
}

// Sub returns the difference a - b.
func (a Triple[K]) Sub(b Triple[K]) Triple[K] {
	return Triple[K]{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// SubScalar returns a with s subtracted from every component.
func (a Triple[K]) SubScalar(s float64) Triple[K] {
	return Triple[K]{a.X - s, a.Y - s, a.Z - s}
}

// Scale returns a * s. Scalar multiplication commutes, so this also serves
// s * a.
func (a Triple[K]) Scale(s float64) Triple[K] {
	return Triple[K]{a.X * s, a.Y * s, a.Z * s}
}

// Mul returns the componentwise product.
func (a Triple[K]) Mul(b Triple[K]) Triple[K] {
	return Triple[K]{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

// AddAssign adds b to a in place.
func (a *Triple[K]) AddAssign(b Triple[K]) {
	a.X += b.X
	a.Y += b.Y
	a.Z += b.Z
}

// AddScalarAssign adds s to every component in place.
func (a *Triple[K]) AddScalarAssign(s float64) {
	a.X += s
	a.Y += s
	a.Z += s
}

// SubAssign subtracts b from a in place.
func (a *Triple[K]) SubAssign(b Triple[K]) {
	a.X -= b.X
	a.Y -= b.Y
	a.Z -= b.Z
}

// SubScalarAssign subtracts s from every component in place.
func (a *Triple[K]) SubScalarAssign(s float64) {
	a.X -= s
	a.Y -= s
	a.Z -= s
}

// ScaleAssign multiplies a by s in place.
func (a *Triple[K]) ScaleAssign(s float64) {
	a.X *= s
	a.Y *= s
	a.Z *= s
}

// Dot returns the dot product a · b.
func (a Triple[K]) Dot(b Triple[K]) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the right-handed cross product a × b.
func (a Triple[K]) Cross(b Triple[K]) Triple[K] {
	return Triple[K]{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the Euclidean length.
func (a Triple[K]) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// LenSq returns the squared length (no sqrt).
func (a Triple[K]) LenSq() float64 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

// Normalize rescales a to unit length in place. Vectors not longer than
// Epsilon are left unchanged, so callers must not assume a unit result.
func (a *Triple[K]) Normalize() {
	l := a.Len()
	if l > Epsilon {
		a.ScaleAssign(1 / l)
	}
}

// Normalized returns a unit-length copy of a, under the same rule as
// Normalize.
func (a Triple[K]) Normalized() Triple[K] {
	a.Normalize()
	return a
}

// Negate returns -a.
func (a Triple[K]) Negate() Triple[K] {
	return Triple[K]{-a.X, -a.Y, -a.Z}
}

// Reflect returns a reflected about normal n: a - 2(a·n)n.
func (a Triple[K]) Reflect(n Triple[K]) Triple[K] {
	return a.Sub(n.Scale(2 * a.Dot(n)))
}

// Lerp returns the linear interpolation between a and b by t.
func (a Triple[K]) Lerp(b Triple[K], t float64) Triple[K] {
	return Triple[K]{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// Distance returns the distance between two points.
func (a Triple[K]) Distance(b Triple[K]) float64 {
	return a.Sub(b).Len()
}

// Min returns the componentwise minimum.
func (a Triple[K]) Min(b Triple[K]) Triple[K] {
	return Triple[K]{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// Max returns the componentwise maximum.
func (a Triple[K]) Max(b Triple[K]) Triple[K] {
	return Triple[K]{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// Clamp returns a with every component clamped to [lo, hi].
func (a Triple[K]) Clamp(lo, hi float64) Triple[K] {
	return Triple[K]{
		math.Max(lo, math.Min(hi, a.X)),
		math.Max(lo, math.Min(hi, a.Y)),
		math.Max(lo, math.Min(hi, a.Z)),
	}
}

// Sum returns X + Y + Z.
func (a Triple[K]) Sum() float64 {
	return a.X + a.Y + a.Z
}

// IsFinite reports whether no component is NaN or infinite.
func (a Triple[K]) IsFinite() bool {
	return !math.IsNaN(a.X) && !math.IsInf(a.X, 0) &&
		!math.IsNaN(a.Y) && !math.IsInf(a.Y, 0) &&
		!math.IsNaN(a.Z) && !math.IsInf(a.Z, 0)
}

// String formats the triple as (x, y, z).
func (a Triple[K]) String() string {
	return fmt.Sprintf("(%g, %g, %g)", a.X, a.Y, a.Z)
}
