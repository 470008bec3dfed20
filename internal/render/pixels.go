package render

import "chunk-ca/internal/world"

// FillRGBA converts a frame of tile kinds into RGBA pixels in buf. The frame
// is w cells wide and its top-left cell sits at world tile (originX, originY);
// alpha varies per tile from a hash of its world position so the texture stays
// put while panning.
func FillRGBA(buf []byte, cells []uint8, w, originX, originY int) {
	if w <= 0 {
		return
	}
	for i, c := range cells {
		k := world.Kind(c)
		col := world.ColorFor(k)
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = tileAlpha(k, originX+i%w, originY+i/w)
	}
}

// tileAlpha returns an alpha in [180, 255].
func tileAlpha(k world.Kind, tx, ty int) uint8 {
	hash := uint32(tx)*374761393 ^ uint32(ty)*668265263 ^ uint32(k)*362437
	return uint8(180 + hash%76)
}
