/*
DESCRIPTION
  Package debayer converts a single-channel Bayer-pattern frame (R G / G B,
  starting at pixel (0,0)) into 24-bit RGB via bilinear interpolation of the
  missing two channels at each pixel.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/
package debayer

// ToRGB converts in, a width x height Bayer-pattern frame in the R G / G B
// arrangement, into 24-bit RGB samples written to out (3 bytes per pixel,
// row-major). Samples are scaled so that the brightest input sample maps to
// 255. Pixels within one sample of any edge are not written, since the
// bilinear stencil needs a full ring of neighbours; callers that need edge
// coverage should pad in before calling ToRGB.
func ToRGB(in []uint16, out []uint8, width, height int) {
	var max uint16
	for _, v := range in {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return
	}
	scale := 255.0 / float64(max)

	at := func(x, y int) uint32 { return uint32(in[x+width*y]) }
	setPixel := func(x, y int, r, g, b uint32) {
		i := 3 * (x + width*y)
		out[i+0] = uint8(float64(r) * scale)
		out[i+1] = uint8(float64(g) * scale)
		out[i+2] = uint8(float64(b) * scale)
	}

	for i := 1; i < width-1; i += 2 {
		for j := 1; j < height-1; j += 2 {
			// Top left: B pixel.
			setPixel(i, j,
				(at(i-1, j-1)+at(i+1, j-1)+at(i-1, j+1)+at(i+1, j+1))/4,
				(at(i-1, j)+at(i, j-1)+at(i+1, j)+at(i, j+1))/4,
				at(i, j))

			// Top right: G pixel on the B row.
			setPixel(i+1, j,
				(at(i+1, j-1)+at(i+1, j+1))/2,
				at(i+1, j),
				(at(i, j)+at(i+2, j))/2)

			// Lower left: G pixel on the R row.
			setPixel(i, j+1,
				(at(i-1, j+1)+at(i+1, j+1))/2,
				at(i, j+1),
				(at(i, j)+at(i, j+2))/2)

			// Lower right: R pixel. The reference implementation's G
			// average here reused one neighbour twice instead of
			// sampling all four; corrected to the genuine 4-neighbour
			// average.
			setPixel(i+1, j+1,
				at(i+1, j+1),
				(at(i+1, j)+at(i+1, j+2)+at(i, j+1)+at(i+2, j+1))/4,
				(at(i, j)+at(i+2, j)+at(i, j+2)+at(i+2, j+2))/4)
		}
	}
}
