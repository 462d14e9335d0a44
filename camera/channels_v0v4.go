/*
DESCRIPTION
  channels_v0v4.go decodes the v0 and v4 channel-chunk payload: 44-word
  chunks, one per wire channel per row, each carrying 128 ten-bit samples
  striped across the fixed channel de-permutation table.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package camera

import "github.com/pkg/errors"

const (
	chunkWordsV0V4   = 44 // 1 header + 42 data + 1 footer
	chunkFooterMagic = 0x55

	// maxFooterResync bounds the legacy v0 bug-compatible forward scan
	// for a misplaced chunk footer magic (spec.md section 7). It is kept
	// small because a real misplacement is at most a few words; anything
	// further is treated as corruption rather than scanned forever.
	maxFooterResync = 64
)

// decodeChannelsV0V4 decodes the payload of one frame encoded in the v0 or
// v4 data format. version must be 0 or 4; the two differ only in whether a
// chunk's row is bounds-checked against nRows (v0) or against the
// decoder's configured height (v4), per spec.md section 4.3.
//
// It returns the number of payload words consumed.
func decodeChannelsV0V4(dst []uint16, payload []uint32, width, height, nRows, version int, strict, fast bool) (int, error) {
	channelsPerRow := width / pixelsPerChannel
	totalChunks := nRows * channelsPerRow

	pos := 0
	for i := 0; i < totalChunks; i++ {
		if pos+chunkWordsV0V4 > len(payload) {
			return pos, errors.Wrap(ErrCorruptStream, "truncated v0/v4 channel chunk")
		}

		n, err := decodeChunkV0V4(dst, payload[pos:], width, height, nRows, version, strict, fast)
		if err != nil {
			return pos, err
		}
		pos += n
	}
	return pos, nil
}

// decodeChunkV0V4 decodes a single 44-word channel chunk starting at
// chunk[0], returning the number of words it actually occupied (usually
// exactly 44, more if the legacy footer-resync heuristic had to skip
// misplaced words).
func decodeChunkV0V4(dst []uint16, chunk []uint32, width, height, nRows, version int, strict, fast bool) (int, error) {
	header := chunk[0]
	wireChannel := header & 0xF
	row := int((header >> 4) & 0x7FF)
	bpp := (header >> 16) & 0xF
	pixels := int((header >> 20) & 0xFF)

	if strict && header>>30 != 0x2 {
		return 0, errors.Wrap(ErrCorruptStream, "chunk header tag mismatch")
	}
	if bpp != 10 {
		return 0, errors.Wrapf(ErrCorruptStream, "chunk bpp %d, want 10", bpp)
	}

	physical := channelOrder[wireChannel]
	channelsPerRow := width / pixelsPerChannel
	if int(physical) >= channelsPerRow {
		return 0, errors.Wrapf(ErrCorruptStream, "physical channel %d out of range for %d channels/row", physical, channelsPerRow)
	}

	if version == 0 {
		if row >= nRows {
			return 0, errors.Wrapf(ErrCorruptStream, "v0 chunk row %d out of range for %d rows", row, nRows)
		}
	} else if row >= height {
		return 0, errors.Wrapf(ErrCorruptStream, "v4 chunk row %d out of configured height %d", row, height)
	}

	if pixels != pixelsPerChannel && !(pixels == pixelsPerChannel-1 && row < 2) {
		return 0, errors.Wrapf(ErrCorruptStream, "chunk pixel count %d", pixels)
	}

	base := row*width + int(physical)*pixelsPerChannel
	out := 0
	if pixels == pixelsPerChannel-1 {
		dst[base] = 0
		out = 1
	}

	const dataWords = 42
	w := 1
	if fast {
		for ; w+3 <= dataWords; w += 4 {
			if strict {
				for k := 0; k < 4; k++ {
					if chunk[w+k]>>30 != 0x3 {
						return 0, errors.Wrapf(ErrCorruptStream, "data word %d tag mismatch", w+k)
					}
				}
			}
			quad := unpackQuadFast([4]uint32{chunk[w], chunk[w+1], chunk[w+2], chunk[w+3]})
			copy(dst[base+out:], quad[:])
			out += 12
		}
	}
	for ; w <= dataWords; w++ {
		data := chunk[w]
		if strict && data>>30 != 0x3 {
			return 0, errors.Wrapf(ErrCorruptStream, "data word %d tag mismatch", w)
		}
		a, b, c := unpackTripleScalar(data)
		dst[base+out], dst[base+out+1], dst[base+out+2] = a, b, c
		out += 3
	}

	footerIdx, err := resolveChunkFooter(chunk, dataWords+1)
	if err != nil {
		return 0, err
	}
	if strict && chunk[footerIdx]>>30 != 0x3 {
		return 0, errors.Wrap(ErrCorruptStream, "chunk footer tag mismatch")
	}
	footer := chunk[footerIdx]

	ppw := pixels >> 6
	for j := 0; j < ppw; j++ {
		shift := uint(10 * (ppw - j))
		dst[base+out] = uint16((footer >> shift) & 0x3FF)
		out++
	}

	return footerIdx + 1, nil
}

// resolveChunkFooter returns the index within chunk of the word carrying
// the 0x55 footer magic in its low 10 bits, starting the search at want. If
// the word at want doesn't match, it scans forward a bounded number of
// words looking for one that does, preserving the legacy resynchronisation
// heuristic described in spec.md section 7.
func resolveChunkFooter(chunk []uint32, want int) (int, error) {
	if want < len(chunk) && chunk[want]&0x3FF == chunkFooterMagic {
		return want, nil
	}

	limit := want + maxFooterResync
	if limit > len(chunk) {
		limit = len(chunk)
	}
	for i := want; i < limit; i++ {
		if chunk[i]&0x3FF == chunkFooterMagic {
			return i, nil
		}
	}
	return 0, errors.Wrap(ErrCorruptStream, "chunk footer magic not found within resync window")
}

// unpackTripleScalar unpacks the three 10-bit samples packed MSB-first into
// the low 30 bits of a v0/v4 data word. This is the portable scalar path
// referenced by spec.md section 9's SIMD note; Decoder.FastUnpack selects
// unpackQuadFast instead, a four-word batch variant with identical output
// (true SIMD needs Go assembly or cgo, out of scope here — see DESIGN.md).
func unpackTripleScalar(w uint32) (uint16, uint16, uint16) {
	return uint16((w >> 20) & 0x3FF), uint16((w >> 10) & 0x3FF), uint16(w & 0x3FF)
}

// unpackQuadFast unpacks the twelve samples carried by four consecutive
// v0/v4 data words at once. It produces byte-for-byte the same result as
// four calls to unpackTripleScalar; it exists only to give Decoder.FastUnpack
// a distinct, batch-oriented code path to dispatch to.
func unpackQuadFast(words [4]uint32) [12]uint16 {
	var out [12]uint16
	for i, w := range words {
		a, b, c := unpackTripleScalar(w)
		out[i*3], out[i*3+1], out[i*3+2] = a, b, c
	}
	return out
}
