package common

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the tolerance used by the engine when deciding whether a vector has collapsed to zero length.
const Epsilon float32 = 1e-6

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// PutFloat32s writes the given float values into buf in little-endian order starting at offset.
//
// Parameters:
//   - buf: destination buffer (must hold offset + 4*len(values) bytes)
//   - offset: byte offset of the first value
//   - values: the values to write
func PutFloat32s(buf []byte, offset int, values ...float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v))
	}
}

// Clamp restricts v to the closed interval [lo, hi]. The caller must ensure lo <= hi.
func Clamp(v, lo, hi float32) float32 {
	return float32(math.Max(float64(lo), math.Min(float64(hi), float64(v))))
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Perspective creates a right-handed perspective projection matrix that maps depth to the
// WebGPU clip range [0, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	var m mgl32.Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1.0
	m[14] = (near * far) / (near - far)
	return m
}

// Orthographic creates a right-handed orthographic projection matrix centered on the view axis.
// The view volume spans [-width/2, width/2] x [-height/2, height/2] horizontally and [0, depth]
// along the view direction. Depth is mapped to the WebGPU clip range [0, 1].
//
// Parameters:
//   - width: width of the view volume in world units
//   - height: height of the view volume in world units
//   - depth: distance from the camera to the far plane
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func Orthographic(width, height, depth float32) mgl32.Mat4 {
	m := mgl32.Ident4()
	m[0] = 2 / width
	m[5] = 2 / height
	m[10] = -1 / depth
	return m
}
