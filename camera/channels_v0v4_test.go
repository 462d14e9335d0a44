package camera

import "testing"

// buildChunkV0V4 constructs a complete 44-word v0/v4 channel chunk: header,
// 42 data words each carrying three samples, and a footer carrying the
// chunk's final two samples alongside the 0x55 magic.
func buildChunkV0V4(wireChannel, row, pixels uint32, samples [128]uint16) []uint32 {
	chunk := make([]uint32, chunkWordsV0V4)
	chunk[0] = (0x2 << 30) | (pixels << 20) | (10 << 16) | (row << 4) | wireChannel

	for w := 0; w < 42; w++ {
		a, b, c := samples[w*3], samples[w*3+1], samples[w*3+2]
		chunk[1+w] = (0x3 << 30) | (uint32(a) << 20) | (uint32(b) << 10) | uint32(c)
	}

	chunk[43] = (0x3 << 30) | (uint32(samples[126]) << 20) | (uint32(samples[127]) << 10) | chunkFooterMagic
	return chunk
}

func sequentialSamples() [128]uint16 {
	var s [128]uint16
	for i := range s {
		s[i] = uint16(i % 1024)
	}
	return s
}

func TestDecodeChunkV0V4Basic(t *testing.T) {
	const width = 2048
	samples := sequentialSamples()
	// wireChannel 0 maps through channelOrder to physical channel 15.
	chunk := buildChunkV0V4(0, 3, 128, samples)

	dst := make([]uint16, 100*width)
	n, err := decodeChunkV0V4(dst, chunk, width, 100, 100, 4, true, false)
	if err != nil {
		t.Fatalf("decodeChunkV0V4() error = %v", err)
	}
	if n != chunkWordsV0V4 {
		t.Errorf("consumed %d words, want %d", n, chunkWordsV0V4)
	}

	base := 3*width + int(channelOrder[0])*pixelsPerChannel
	for i, want := range samples {
		if got := dst[base+i]; got != want {
			t.Errorf("dst[%d] = %d, want %d", base+i, got, want)
		}
	}
}

func TestDecodeChunkV0V4FastMatchesScalar(t *testing.T) {
	const width = 2048
	samples := sequentialSamples()
	chunk := buildChunkV0V4(2, 5, 128, samples)

	scalarDst := make([]uint16, 100*width)
	fastDst := make([]uint16, 100*width)

	if _, err := decodeChunkV0V4(scalarDst, append([]uint32(nil), chunk...), width, 100, 100, 4, true, false); err != nil {
		t.Fatalf("scalar decode error = %v", err)
	}
	if _, err := decodeChunkV0V4(fastDst, append([]uint32(nil), chunk...), width, 100, 100, 4, true, true); err != nil {
		t.Fatalf("fast decode error = %v", err)
	}

	for i := range scalarDst {
		if scalarDst[i] != fastDst[i] {
			t.Fatalf("scalar/fast mismatch at %d: %d vs %d", i, scalarDst[i], fastDst[i])
		}
	}
}

func TestDecodeChunkV0V4ShortRow(t *testing.T) {
	const width = 2048
	var samples [128]uint16
	for i := range samples {
		samples[i] = uint16(i)
	}
	// 127-pixel chunk: dst[base] stays 0, samples[0..126] land at base+1..base+127.
	chunk := buildChunkV0V4(1, 0, 127, samples)
	// Re-pack: with pixels=127, ppw = 127>>6 = 1, so only one footer sample.
	chunk[0] = (0x2 << 30) | (uint32(127) << 20) | (10 << 16) | (0 << 4) | 1
	for w := 0; w < 42; w++ {
		a, b, c := samples[w*3], samples[w*3+1], samples[w*3+2]
		chunk[1+w] = (0x3 << 30) | (uint32(a) << 20) | (uint32(b) << 10) | uint32(c)
	}
	chunk[43] = (0x3 << 30) | (uint32(samples[126]) << 10) | chunkFooterMagic

	dst := make([]uint16, 10*width)
	n, err := decodeChunkV0V4(dst, chunk, width, 10, 10, 4, true, false)
	if err != nil {
		t.Fatalf("decodeChunkV0V4() error = %v", err)
	}
	if n != chunkWordsV0V4 {
		t.Errorf("consumed %d words, want %d", n, chunkWordsV0V4)
	}

	base := 0*width + int(channelOrder[1])*pixelsPerChannel
	if dst[base] != 0 {
		t.Errorf("dst[base] = %d, want 0 (short-row pad)", dst[base])
	}
	for i := 0; i < 127; i++ {
		if got := dst[base+1+i]; got != samples[i] {
			t.Errorf("dst[%d] = %d, want %d", base+1+i, got, samples[i])
		}
	}
}

func TestDecodeChunkV0V4BadBpp(t *testing.T) {
	const width = 2048
	chunk := buildChunkV0V4(0, 0, 128, sequentialSamples())
	chunk[0] = (chunk[0] &^ (0xF << 16)) | (11 << 16)
	dst := make([]uint16, 10*width)
	if _, err := decodeChunkV0V4(dst, chunk, width, 10, 10, 4, true, false); err == nil {
		t.Errorf("decodeChunkV0V4() with bpp=11 err = nil, want error")
	}
}

func TestDecodeChunkV0V4RowOutOfRange(t *testing.T) {
	const width = 2048
	chunk := buildChunkV0V4(0, 50, 128, sequentialSamples())
	dst := make([]uint16, 10*width)
	if _, err := decodeChunkV0V4(dst, chunk, width, 10, 10, 4, true, false); err == nil {
		t.Errorf("decodeChunkV0V4() with row past height err = nil, want error")
	}
}

func TestDecodeChunkV0V4ChannelOutOfRange(t *testing.T) {
	// width=128 gives exactly one channel per row (channelsPerRow=1); any
	// wireChannel whose physical mapping isn't 0 must be rejected.
	const width = 128
	chunk := buildChunkV0V4(0, 0, 128, sequentialSamples()) // physical = channelOrder[0] = 15
	dst := make([]uint16, 10*width)
	if _, err := decodeChunkV0V4(dst, chunk, width, 10, 10, 4, true, false); err == nil {
		t.Errorf("decodeChunkV0V4() with out-of-range physical channel err = nil, want error")
	}
}

func TestDecodeChunkV0V4StrictTagMismatch(t *testing.T) {
	const width = 2048
	chunk := buildChunkV0V4(0, 0, 128, sequentialSamples())
	chunk[0] &^= 0x3 << 30 // corrupt the header tag bits

	dst := make([]uint16, 10*width)
	if _, err := decodeChunkV0V4(dst, chunk, width, 10, 10, 4, true, false); err == nil {
		t.Errorf("strict decode with bad header tag err = nil, want error")
	}
	if _, err := decodeChunkV0V4(dst, chunk, width, 10, 10, 4, false, false); err != nil {
		t.Errorf("lenient decode with bad header tag err = %v, want nil", err)
	}
}

func TestResolveChunkFooterResync(t *testing.T) {
	chunk := make([]uint32, 50)
	// Plant the real magic three words later than expected.
	want := 43
	chunk[want+3] = chunkFooterMagic
	idx, err := resolveChunkFooter(chunk, want)
	if err != nil {
		t.Fatalf("resolveChunkFooter() error = %v", err)
	}
	if idx != want+3 {
		t.Errorf("resolveChunkFooter() = %d, want %d", idx, want+3)
	}
}

func TestResolveChunkFooterNotFound(t *testing.T) {
	chunk := make([]uint32, 200)
	if _, err := resolveChunkFooter(chunk, 43); err == nil {
		t.Errorf("resolveChunkFooter() with no magic anywhere err = nil, want error")
	}
}

func TestUnpackTripleScalar(t *testing.T) {
	w := uint32(0x3FF<<20) | uint32(0x155<<10) | uint32(0x0AA)
	a, b, c := unpackTripleScalar(w)
	if a != 0x3FF || b != 0x155 || c != 0x0AA {
		t.Errorf("unpackTripleScalar(0x%08x) = %d,%d,%d, want 1023,341,170", w, a, b, c)
	}
}

func TestUnpackQuadFastMatchesScalar(t *testing.T) {
	words := [4]uint32{0x12345678, 0x0ABCDEF0, 0x3FF003FF, 0x00000001}
	quad := unpackQuadFast(words)
	for i, w := range words {
		a, b, c := unpackTripleScalar(w)
		if quad[i*3] != a || quad[i*3+1] != b || quad[i*3+2] != c {
			t.Errorf("unpackQuadFast word %d = %d,%d,%d, want %d,%d,%d", i, quad[i*3], quad[i*3+1], quad[i*3+2], a, b, c)
		}
	}
}
