// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to a signed 16-bit sample.
func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Int16ToFloat32 maps a signed 16-bit sample to [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// Uint8ToFloat32 maps an unsigned 8-bit sample (128 is silence) to [-1, 1).
func Uint8ToFloat32(v uint8) float32 {
	return (float32(v) - 128.0) / 128.0
}

// Float32ToUint8 is the inverse of Uint8ToFloat32 with clamping.
func Float32ToUint8(x float32) uint8 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return uint8(int(x*127.0) + 128)
}
