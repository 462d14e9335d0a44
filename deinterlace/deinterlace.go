/*
DESCRIPTION
  Package deinterlace reconstructs a progressive image from an interlaced
  camera source, either by averaging neighbouring rows of a single field or
  by weaving the rows of two separately captured fields.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/
package deinterlace

// Interpolate produces a 2*height x width progressive frame from a single
// height x width interlaced field in: row 2k is a copy of in's row k, row
// 2k+1 is the arithmetic mean of in's row k and row k+1 (row k+1 is
// duplicated from row k when k is the last row). out must have length
// 2*height*width.
func Interpolate(in []uint16, out []uint16, width, height int) {
	for row := 0; row < height; row++ {
		src := in[row*width : row*width+width]
		copy(out[2*row*width:], src)

		next := src
		if row+1 < height {
			next = in[(row+1)*width : (row+1)*width+width]
		}
		mid := out[(2*row+1)*width : (2*row+2)*width]
		for x := 0; x < width; x++ {
			mid[x] = uint16((uint32(src[x]) + uint32(next[x])) / 2)
		}
	}
}

// Weave interleaves the rows of two equal-sized height x width frames into
// a 2*height x width progressive frame: out's even rows come from a, odd
// rows from b. out must have length 2*height*width.
func Weave(a, b []uint16, out []uint16, width, height int) {
	for row := 0; row < height; row++ {
		copy(out[2*row*width:], a[row*width:row*width+width])
		copy(out[(2*row+1)*width:], b[row*width:row*width+width])
	}
}
