package mapgen

import "math"

// IsOnStreet reports whether the world point (x, z) falls within
// streetWidth of a block's leading edge on either axis. Blocks are laid
// out from -worldSize/2.
func IsOnStreet(x, z, blockSize, streetWidth, worldSize float64) bool {
	half := worldSize / 2
	modX := math.Mod(x+half, blockSize)
	modZ := math.Mod(z+half, blockSize)
	return modX < streetWidth || modZ < streetWidth
}
