package hal

import "image/color"

// RGB565 packs c into the framebuffer encoding by truncating each channel.
// Alpha is ignored.
func RGB565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// RGBAFrom565 expands p to an opaque colour, scaling each channel so that
// full intensity maps to 0xFF.
func RGBAFrom565(p uint16) color.RGBA {
	r := (p >> 11) & 0x1F
	g := (p >> 5) & 0x3F
	b := p & 0x1F
	return color.RGBA{
		R: uint8(r * 255 / 31),
		G: uint8(g * 255 / 63),
		B: uint8(b * 255 / 31),
		A: 0xFF,
	}
}

func rgb565(r, g, b uint8) uint16 {
	return RGB565(color.RGBA{R: r, G: g, B: b, A: 0xFF})
}
