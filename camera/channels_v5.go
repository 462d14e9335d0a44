/*
DESCRIPTION
  channels_v5.go decodes the v5 channel-chunk payload: eight-word chunks,
  each a two-word header group followed by a six-word pixel group, covering
  either the full 16-channel layout or the reduced 4-channel bank layout.

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
	// chunkSentinelV5 terminates a v5 channel run: the word at the start of
	// the next chunk slot is the start of the footer rather than another
	// chunk header.
	chunkSentinelV5 = 0x0AAAAAAA

	chunkHeaderWordsV5 = 2 // header word + one reserved word
	pixelGroupWordsV5  = 6
	chunkWordsV5        = chunkHeaderWordsV5 + pixelGroupWordsV5

	bankResetMagic   = 0xC0
	bankAdvanceMagic = 0xE0
)

// decodeChannelsV5 decodes the payload of one frame encoded in the v5 data
// format, dispatching on mode between the full 16-channel layout and the
// reduced 4-channel banked layout. It returns the number of payload words
// consumed, which is however far the terminating sentinel word sits from
// the start of payload.
func decodeChannelsV5(dst []uint16, payload []uint32, width int, mode OutputMode, strict bool) (int, error) {
	pos := 0
	off := 0

	for {
		if pos >= len(payload) {
			return pos, errors.Wrap(ErrCorruptStream, "v5 payload ended before sentinel")
		}
		if payload[pos] == chunkSentinelV5 {
			return pos, nil
		}
		if pos+chunkWordsV5 > len(payload) {
			return pos, errors.Wrap(ErrCorruptStream, "truncated v5 chunk")
		}

		header := payload[pos]
		pixelNumber := int(header & 0xFF)
		rowNumber := int((header >> 8) & 0xFFF)
		magic := (header >> 24) & 0xFF

		index := rowNumber*width + pixelNumber
		if index < 0 || index+15*pixelsPerChannel >= len(dst) {
			return pos, errors.Wrap(ErrCorruptStream, "v5 chunk index out of range")
		}

		pg := payload[pos+chunkHeaderWordsV5 : pos+chunkWordsV5]

		if mode == OutputMode4Channel {
			switch magic {
			case bankAdvanceMagic:
				off++
			case bankResetMagic:
				off++
				off = 0
			default:
				decodeChunkV5Banked(dst, index, pg, off)
			}
		} else {
			// A 0xC0 chunk in 16-channel mode carries no pixels and is
			// skipped.
			if magic != bankResetMagic {
				decodeChunkV5Full(dst, index, pg)
			}
		}

		pos += chunkWordsV5
	}
}

// decodeChunkV5Full unpacks the sixteen 10-bit samples of a full-resolution
// v5 chunk's six-word pixel group, writing each to index + channel*128.
func decodeChunkV5Full(dst []uint16, index int, pg []uint32) {
	w0, w1, w2, w3, w4, w5 := pg[0], pg[1], pg[2], pg[3], pg[4], pg[5]

	dst[index+15*pixelsPerChannel] = uint16((w0 >> 20) & 0x3FF)
	dst[index+13*pixelsPerChannel] = uint16((w0 >> 8) & 0x3FF)
	dst[index+14*pixelsPerChannel] = uint16((((w0 & 0xFF) << 4) | (w1 >> 28)) & 0x3FF)
	dst[index+12*pixelsPerChannel] = uint16((w1 >> 16) & 0x3FF)
	dst[index+10*pixelsPerChannel] = uint16((w1 >> 4) & 0x3FF)
	dst[index+8*pixelsPerChannel] = uint16((((w1 & 0x3) << 8) | (w2 >> 24)) & 0x3FF)
	dst[index+11*pixelsPerChannel] = uint16((w2 >> 12) & 0x3FF)
	dst[index+7*pixelsPerChannel] = uint16(w2 & 0x3FF)
	dst[index+9*pixelsPerChannel] = uint16((w3 >> 20) & 0x3FF)
	dst[index+6*pixelsPerChannel] = uint16((w3 >> 8) & 0x3FF)
	dst[index+5*pixelsPerChannel] = uint16((((w3 & 0xFF) << 4) | (w4 >> 28)) & 0x3FF)
	dst[index+2*pixelsPerChannel] = uint16((w4 >> 16) & 0x3FF)
	dst[index+4*pixelsPerChannel] = uint16((w4 >> 4) & 0x3FF)
	dst[index+3*pixelsPerChannel] = uint16((((w4 & 0x3) << 8) | (w5 >> 24)) & 0x3FF)
	dst[index+0*pixelsPerChannel] = uint16((w5 >> 12) & 0x3FF)
	dst[index+1*pixelsPerChannel] = uint16(w5 & 0x3FF)
}

// decodeChunkV5Banked unpacks the four 12-bit samples of a reduced-readout
// v5 chunk, writing each to index + (bank+off)*128 for bank in {0,4,8,12}.
func decodeChunkV5Banked(dst []uint16, index int, pg []uint32, off int) {
	w1, w2, w4, w5 := pg[1], pg[2], pg[4], pg[5]

	dst[index+(0+off)*pixelsPerChannel] = uint16((w5 >> 12) & 0xFFF)
	dst[index+(4+off)*pixelsPerChannel] = uint16((w4 >> 4) & 0xFFF)
	dst[index+(8+off)*pixelsPerChannel] = uint16(((w1&0xF)<<8 | (w2 >> 24)) & 0xFFF)
	dst[index+(12+off)*pixelsPerChannel] = uint16((w1 >> 16) & 0xFFF)
}
