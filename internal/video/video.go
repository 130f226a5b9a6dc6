// Package video reconstructs the Gigatron's VGA frame from RAM and
// detects the horizontal/vertical sync edges that drive it, per spec
// §4.2. The visible display is a side effect of the running program's
// OUT writes, not a separate addressable peripheral.
package video

const (
	// Width and Height are the Gigatron's native framebuffer dimensions.
	Width  = 160
	Height = 120

	videoBase   = 2048
	videoStride = 256

	hSyncBit = 1 << 6
	vSyncBit = 1 << 7
)

// VSyncEdge reports whether OUT transitioned from sync-inactive to
// sync-active-low on bit 7 between two consecutive cycles (spec §4.2).
func VSyncEdge(prevOut, out byte) bool {
	return prevOut&vSyncBit != 0 && out&vSyncBit == 0
}

// HSyncEdge is the bit-6 analogue of VSyncEdge. The Gigatron has no
// visible action on this edge (spec §4.2); the original implementation
// comments out a per-hSync Undef reseed, and bus.Bus follows suit,
// observing the edge but not acting on it.
func HSyncEdge(prevOut, out byte) bool {
	return prevOut&hSyncBit != 0 && out&hSyncBit == 0
}

// bright expands a 2-bit channel to an 8-bit intensity by the
// approximately-square-law table in spec §4.2.
func bright(v byte) byte {
	switch v & 3 {
	case 0:
		return 0x03
	case 1:
		return 0x0F
	case 2:
		return 0x3F
	default:
		return 0xFF
	}
}

// Unpack converts a Gigatron pixel byte to a 24-bit RGB triple. Only the
// low 6 bits are meaningful: red = bits 0-1, green = bits 2-3, blue =
// bits 4-5.
func Unpack(pixel byte) (r, g, b byte) {
	pixel &= 0x3F
	r = bright(pixel & 3)
	g = bright((pixel >> 2) & 3)
	b = bright((pixel >> 4) & 3)
	return
}

// RAM is the read-only view the renderer needs of the 32Ki address
// space; bus.Bus satisfies this directly.
type RAM interface {
	ReadRAM(addr uint16) byte
}

// RenderFrame reads the 160×120 video region (spec §3: base 2048,
// stride 256, only the first 160 of 256 bytes per line are displayed)
// and nearest-neighbor scales it into dst, a dstW×dstH RGBA buffer
// (4 bytes per pixel, 0xRR,0xGG,0xBB,0xFF in memory order — matching
// ebiten.Image.WritePixels' expected layout and image.RGBA.Pix).
func RenderFrame(ram RAM, dst []byte, dstW, dstH int) {
	scaleX := dstW / Width
	scaleY := dstH / Height
	if scaleX < 1 {
		scaleX = 1
	}
	if scaleY < 1 {
		scaleY = 1
	}

	for y := 0; y < Height; y++ {
		rowBase := uint16(videoBase + y*videoStride)
		var rs, gs, bs [Width]byte
		for x := 0; x < Width; x++ {
			rs[x], gs[x], bs[x] = Unpack(ram.ReadRAM(rowBase + uint16(x)))
		}
		for sy := 0; sy < scaleY; sy++ {
			dy := y*scaleY + sy
			if dy >= dstH {
				continue
			}
			rowOff := dy * dstW * 4
			for x := 0; x < Width; x++ {
				r, g, b := rs[x], gs[x], bs[x]
				for sx := 0; sx < scaleX; sx++ {
					dx := x*scaleX + sx
					if dx >= dstW {
						continue
					}
					o := rowOff + dx*4
					dst[o+0] = r
					dst[o+1] = g
					dst[o+2] = b
					dst[o+3] = 0xFF
				}
			}
		}
	}
}
