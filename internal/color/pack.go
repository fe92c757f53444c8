package color

// Pack packs 8-bit channels as 0xAARRGGBB.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack splits a 0xAARRGGBB pixel into 8-bit channels.
func Unpack(p uint32) (r, g, b, a uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p), uint8(p >> 24)
}

// Encode converts linear [0,1] channels to an opaque packed pixel, applying
// the sRGB transfer function when srgb is true.
func Encode(r, g, b float32, srgb bool) uint32 {
	if srgb {
		return Pack(LinearToSRGB(r), LinearToSRGB(g), LinearToSRGB(b), 255)
	}
	return Pack(LinearToByte(r), LinearToByte(g), LinearToByte(b), 255)
}
