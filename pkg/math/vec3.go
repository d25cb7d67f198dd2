package math

import (
	"math"

	"github.com/samber/lo"
)

// Vec3 represents a 3D vector. It is also used for RGB colors, with X, Y
// and Z holding the red, green and blue channels.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// NewColor creates a color from its red, green and blue channels
func NewColor(r, g, b float64) Vec3 {
	return Vec3{X: r, Y: g, Z: b}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// AddScalar adds a scalar to every component
func (v Vec3) AddScalar(scalar float64) Vec3 {
	return Vec3{v.X + scalar, v.Y + scalar, v.Z + scalar}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// SubtractScalar subtracts a scalar from every component
func (v Vec3) SubtractScalar(scalar float64) Vec3 {
	return Vec3{v.X - scalar, v.Y - scalar, v.Z - scalar}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Divide returns the vector divided by a scalar
func (v Vec3) Divide(scalar float64) Vec3 {
	return Vec3{v.X / scalar, v.Y / scalar, v.Z / scalar}
}

// DivideVec returns component-wise division of two vectors
func (v Vec3) DivideVec(other Vec3) Vec3 {
	return Vec3{v.X / other.X, v.Y / other.Y, v.Z / other.Z}
}

// AddAssign adds other to v in place
func (v *Vec3) AddAssign(other Vec3) {
	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
}

// SubtractAssign subtracts other from v in place
func (v *Vec3) SubtractAssign(other Vec3) {
	v.X -= other.X
	v.Y -= other.Y
	v.Z -= other.Z
}

// MultiplyAssign scales v in place
func (v *Vec3) MultiplyAssign(scalar float64) {
	v.X *= scalar
	v.Y *= scalar
	v.Z *= scalar
}

// DivideAssign divides v by a scalar in place
func (v *Vec3) DivideAssign(scalar float64) {
	v.X /= scalar
	v.Y /= scalar
	v.Z /= scalar
}

// AddScalarAssign adds a scalar to every component in place
func (v *Vec3) AddScalarAssign(scalar float64) {
	v.X += scalar
	v.Y += scalar
	v.Z += scalar
}

// SubtractScalarAssign subtracts a scalar from every component in place
func (v *Vec3) SubtractScalarAssign(scalar float64) {
	v.X -= scalar
	v.Y -= scalar
	v.Z -= scalar
}

// MultiplyVecAssign multiplies v component-wise by other in place
func (v *Vec3) MultiplyVecAssign(other Vec3) {
	v.X *= other.X
	v.Y *= other.Y
	v.Z *= other.Z
}

// DivideVecAssign divides v component-wise by other in place
func (v *Vec3) DivideVecAssign(other Vec3) {
	v.X /= other.X
	v.Y /= other.Y
	v.Z /= other.Z
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.Dot(v)
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalize returns a unit vector in the same direction.
// A vector whose squared length is exactly zero is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	sl := v.LengthSquared()
	if sl > 0 {
		return v.Multiply(1 / math.Sqrt(sl))
	}
	return v
}

// Reflect mirrors v about the unit normal n: v - 2(v·n)n
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Add(n.Multiply(-2 * v.Dot(n)))
}

// Blend linearly interpolates between v and other: v*t + other*(1-t)
func (v Vec3) Blend(other Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X*t + other.X*(1-t),
		Y: v.Y*t + other.Y*(1-t),
		Z: v.Z*t + other.Z*(1-t),
	}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// ToRGB24 packs the color into 0xRRGGBB. Each channel is scaled by 255,
// truncated and clamped to [0, 255].
func (v Vec3) ToRGB24() uint32 {
	r := channel8(v.X)
	g := channel8(v.Y)
	b := channel8(v.Z)
	return r<<16 | g<<8 | b
}

func channel8(c float64) uint32 {
	scaled := c * 255
	if math.IsNaN(scaled) {
		return 0
	}
	return uint32(lo.Clamp(math.Trunc(scaled), 0, 255))
}

// UnpackRGB24 splits a packed 0xRRGGBB value into its channels
func UnpackRGB24(c uint32) (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}
