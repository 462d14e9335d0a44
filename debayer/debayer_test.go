package debayer

import "testing"

func TestToRGBAllZeroLeavesOutputZero(t *testing.T) {
	const width, height = 6, 6
	in := make([]uint16, width*height)
	out := make([]uint8, 3*width*height)
	for i := range out {
		out[i] = 0xAA // poison value; ToRGB should leave it untouched
	}

	ToRGB(in, out, width, height)

	for i, v := range out {
		if v != 0xAA {
			t.Fatalf("out[%d] = %d, want untouched 0xAA (all-zero input is a no-op)", i, v)
		}
	}
}

func TestToRGBUniformFrameSaturatesToWhite(t *testing.T) {
	const width, height = 6, 6
	in := make([]uint16, width*height)
	for i := range in {
		in[i] = 500 // any non-zero constant: it is also the frame's max
	}
	out := make([]uint8, 3*width*height)

	ToRGB(in, out, width, height)

	for i := 1; i < width-1; i += 2 {
		for j := 1; j < height-1; j += 2 {
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					idx := 3 * ((i + dx) + width*(j+dy))
					r, g, b := out[idx], out[idx+1], out[idx+2]
					if r != 255 || g != 255 || b != 255 {
						t.Errorf("pixel (%d,%d) = %d,%d,%d, want 255,255,255 (uniform input scales to full white)", i+dx, j+dy, r, g, b)
					}
				}
			}
		}
	}
}

func TestToRGBLeavesEdgesUntouched(t *testing.T) {
	const width, height = 6, 6
	in := make([]uint16, width*height)
	for i := range in {
		in[i] = 500
	}
	out := make([]uint8, 3*width*height)
	for i := range out {
		out[i] = 0x7F
	}

	ToRGB(in, out, width, height)

	// Row 0 and column 0 are within one sample of the edge, so the
	// bilinear stencil never visits them.
	for x := 0; x < width; x++ {
		idx := 3 * x
		if out[idx] != 0x7F {
			t.Errorf("edge pixel (%d,0) was written, want untouched", x)
		}
	}
	for y := 0; y < height; y++ {
		idx := 3 * (width * y)
		if out[idx] != 0x7F {
			t.Errorf("edge pixel (0,%d) was written, want untouched", y)
		}
	}
}
